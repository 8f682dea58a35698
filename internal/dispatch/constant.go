package dispatch

import "time"

// Log prefixes
const (
	LogPrefixDispatch = "internal.dispatch.Dispatch"
	LogPrefixTrip     = "internal.dispatch.trip"
	LogPrefixVehicle  = "internal.dispatch.vehicle"
	LogPrefixGoal     = "internal.dispatch.goal"
)

// Defaults
const (
	DefaultPendingTTL     = 5 * time.Minute
	DefaultCallTimeout    = 8 * time.Second
	DefaultRetryDelay     = 200 * time.Millisecond
	DefaultRecentEntities = 5
	DefaultFuzzyThreshold = 0.8
	DefaultTimezone       = "Asia/Kolkata"
	// ReminderHour is the local hour service reminders are placed at.
	ReminderHour = 9
)

// Validation details carried in NeedsClarification results.
const (
	DetailNegative    = "negative"
	DetailNotPositive = "not_positive"
	DetailSamePlace   = "same_place"
	DetailDuplicate   = "duplicate"
	DetailUnknown     = "unknown"
	DetailNoGoals     = "no_goals"
)
