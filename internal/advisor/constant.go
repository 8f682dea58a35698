package advisor

import "time"

// Log prefixes
const (
	LogPrefixRoute     = "internal.advisor.Route"
	LogPrefixEarnings  = "internal.advisor.earnings"
	LogPrefixVehicle   = "internal.advisor.vehicle"
	LogPrefixFinancial = "internal.advisor.financial"
)

// Defaults
const (
	DefaultRangeDays   = 30
	DefaultSavingsRate = 0.2
	DefaultCallTimeout = 8 * time.Second
	DefaultRetryDelay  = 200 * time.Millisecond
	DefaultTimezone    = "Asia/Kolkata"

	daysPerMonth = 30
	topZones     = 3
	bestHours    = 3
	// recurringMin is how many reports make a component recurring.
	recurringMin = 2
)

// Focus values understood by the earnings advisor.
const (
	FocusZones = "zones"
	FocusHours = "hours"
	FocusTrend = "trend"
	FocusFuel  = "fuel"
)
