package middleware

import "time"

const (
	DefaultPerMinute = 30
	DefaultBurst     = 5
	DefaultMaxUsers  = 10000

	// limiterIdleTTL drops a user's limiter after it has been idle this long.
	limiterIdleTTL = 10 * time.Minute

	logPrefixRateLimit = "internal.middleware.RateLimit"
)
