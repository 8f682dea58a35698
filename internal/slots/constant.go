package slots

import "time"

// Log prefixes
const (
	LogPrefixExtract = "internal.slots.Extract"
)

const (
	// MinSlotConfidence drops spans the capability itself doubts.
	MinSlotConfidence = 0.3
	// DefaultTimeout bounds one extraction call.
	DefaultTimeout = 8 * time.Second
	// BareAnswerMaxWords is the longest free answer accepted for a single focused field.
	BareAnswerMaxWords = 6
	// PlatformOther is used for platforms outside the enum.
	PlatformOther = "other"
)

// Platforms recognised for trips.
var Platforms = []string{"uber", "ola", "rapido", "swiggy", "zomato", "dunzo", "porter", "blinkit", "zepto", "bluesmart", PlatformOther}
