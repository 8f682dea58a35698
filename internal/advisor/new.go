package advisor

import (
	"fmt"
	"time"

	"gig-copilot/internal/repository"
	"gig-copilot/pkg/datemath"
	"gig-copilot/pkg/log"
)

// Readers are the read-only stores advisors work from.
type Readers struct {
	Trips  repository.TripReader
	Checks repository.HealthCheckReader
	Goals  repository.GoalReader
}

// Options tunes a Router. Zero values take the defaults.
type Options struct {
	SavingsRate float64
	RangeDays   int
	CallTimeout time.Duration
	RetryDelay  time.Duration
	Timezone    string
}

type implRouter struct {
	readers  Readers
	opts     Options
	parser   *datemath.Parser
	location *time.Location
	l        log.Logger
	now      func() time.Time
}

var _ Router = (*implRouter)(nil)

// New creates an advisor Router.
func New(readers Readers, opts Options, l log.Logger) (Router, error) {
	if readers.Trips == nil || readers.Checks == nil || readers.Goals == nil {
		return nil, fmt.Errorf("advisor: trip, check and goal readers are required")
	}
	if opts.SavingsRate <= 0 || opts.SavingsRate > 1 {
		opts.SavingsRate = DefaultSavingsRate
	}
	if opts.RangeDays <= 0 {
		opts.RangeDays = DefaultRangeDays
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Timezone == "" {
		opts.Timezone = DefaultTimezone
	}
	parser, err := datemath.NewParser(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("advisor: %w", err)
	}
	loc, _ := time.LoadLocation(opts.Timezone)
	return &implRouter{readers: readers, opts: opts, parser: parser, location: loc, l: l, now: time.Now}, nil
}
