package composer

import (
	"fmt"
	"time"

	"gig-copilot/pkg/log"
)

type implComposer struct {
	l        log.Logger
	location *time.Location
}

var _ Composer = (*implComposer)(nil)

// New creates a Composer that prints times in timezone.
func New(l log.Logger, timezone string) (Composer, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("composer: invalid timezone %q: %w", timezone, err)
	}
	return &implComposer{l: l, location: loc}, nil
}
