package dispatch

import (
	"fmt"
	"time"

	"gig-copilot/internal/repository"
	"gig-copilot/pkg/geocoder"
	"gig-copilot/pkg/log"
)

// Deps are the collaborators a Dispatcher writes through. Geocoder and
// Reminders are optional.
type Deps struct {
	Trips     repository.TripStore
	Checks    repository.HealthCheckStore
	Goals     repository.GoalStore
	Geocoder  geocoder.IGeocoder
	Reminders ReminderScheduler
}

// Options tunes a Dispatcher. Zero values take the defaults.
type Options struct {
	PendingTTL     time.Duration
	CallTimeout    time.Duration
	RetryDelay     time.Duration
	RecentEntities int
	FuzzyThreshold float64
	Timezone       string
}

type implDispatcher struct {
	deps     Deps
	opts     Options
	location *time.Location
	l        log.Logger
	now      func() time.Time
}

var _ Dispatcher = (*implDispatcher)(nil)

// New creates a Dispatcher.
func New(deps Deps, opts Options, l log.Logger) (Dispatcher, error) {
	if deps.Trips == nil || deps.Checks == nil || deps.Goals == nil {
		return nil, fmt.Errorf("dispatch: trip, check and goal stores are required")
	}
	if opts.PendingTTL <= 0 {
		opts.PendingTTL = DefaultPendingTTL
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.RecentEntities <= 0 {
		opts.RecentEntities = DefaultRecentEntities
	}
	if opts.FuzzyThreshold <= 0 {
		opts.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if opts.Timezone == "" {
		opts.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dispatch: invalid timezone %q: %w", opts.Timezone, err)
	}
	return &implDispatcher{deps: deps, opts: opts, location: loc, l: l, now: time.Now}, nil
}
