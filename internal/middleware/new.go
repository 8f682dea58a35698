package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"gig-copilot/pkg/log"
)

// Config tunes the per-user limiter. Zero values take the defaults.
type Config struct {
	PerMinute int
	Burst     int
	MaxUsers  int
}

type Middleware struct {
	l        log.Logger
	limit    rate.Limit
	burst    int
	limiters *expirable.LRU[string, *rate.Limiter]
}

func New(l log.Logger, cfg Config) Middleware {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = DefaultPerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.MaxUsers <= 0 {
		cfg.MaxUsers = DefaultMaxUsers
	}
	return Middleware{
		l:        l,
		limit:    rate.Every(time.Minute / time.Duration(cfg.PerMinute)),
		burst:    cfg.Burst,
		limiters: expirable.NewLRU[string, *rate.Limiter](cfg.MaxUsers, nil, limiterIdleTTL),
	}
}
