package model

import "time"

// Utterance is one inbound message from a driver.
type Utterance struct {
	UserID     string
	Text       string
	ReceivedAt time.Time
	Locale     string
}

// IntentClassification is the classifier's decision for one utterance.
type IntentClassification struct {
	Category   Category
	Confidence float64
	// Continuation means the utterance answers the pending action rather than starting a new one.
	Continuation bool
	// Degraded means the understanding capability was unavailable and the turn fell back to general.
	Degraded bool
	// Cancel means the driver withdrew the pending action.
	Cancel bool
	// Guess keeps the raw label when the threshold demoted it to general.
	Guess  Category
	Reason string
}
