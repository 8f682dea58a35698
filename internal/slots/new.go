package slots

import (
	"time"

	"gig-copilot/internal/nlu"
	"gig-copilot/pkg/log"
)

// Extractor turns raw capability spans into normalised, typed slots.
type Extractor struct {
	capability nlu.Capability
	l          log.Logger
	timeout    time.Duration
}

// New creates an Extractor. A non-positive timeout uses DefaultTimeout.
func New(capability nlu.Capability, l log.Logger, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{capability: capability, l: l, timeout: timeout}
}
