package convctx

import "time"

const (
	// DefaultIdleTTL is how long an untouched context is kept.
	DefaultIdleTTL = 24 * time.Hour
	// DefaultMaxUsers bounds the in-memory store.
	DefaultMaxUsers = 10000
	// KeyPrefix namespaces context keys in shared stores.
	KeyPrefix = "gigcopilot:ctx:"
)

// Key returns the storage key of userID.
func Key(userID string) string {
	return KeyPrefix + userID
}
