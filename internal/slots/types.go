package slots

import "gig-copilot/internal/model"

// Result is the outcome of one extraction.
type Result struct {
	Slots model.ExtractedSlots
	// Degraded means the capability failed and every slot is absent.
	Degraded bool
	// Dropped lists fields the capability proposed but that failed normalisation.
	Dropped []string
}
