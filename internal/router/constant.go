package router

import "time"

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// Classifier configuration
const (
	DefaultThreshold = 0.6
	DefaultTimeout   = 8 * time.Second
	DefaultMemoSize  = 4096
	// ContinuationMaxWords bounds how long a reply to a pending question may be.
	ContinuationMaxWords = 8
)

// Reasons
const (
	ReasonContinuation   = "continues pending action"
	ReasonCancel         = "withdraws pending action"
	ReasonDegraded       = "understanding capability unavailable"
	ReasonUnknownLabel   = "label outside the closed set"
	ReasonBelowThreshold = "confidence below threshold"
)
