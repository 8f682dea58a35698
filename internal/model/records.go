package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeoPoint is a resolved place.
type GeoPoint struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Trip is a stored trip record.
type Trip struct {
	ID       string
	UserID   string
	Pickup   string
	Dropoff  string
	Platform string
	Earnings decimal.Decimal
	FuelCost decimal.Decimal
	Net      decimal.Decimal
	// DistanceKm is nil when either place could not be resolved.
	DistanceKm  *float64
	CompletedAt time.Time
}

// HealthCheck is a stored vehicle concern.
type HealthCheck struct {
	ID                string
	UserID            string
	Issue             string
	Component         string
	Severity          Severity
	SeverityDefaulted bool
	Recommendations   []string
	NextCheckInDays   int
	ReminderLink      string
	ReportedAt        time.Time
}

// Goal is a savings goal.
type Goal struct {
	ID        string
	UserID    string
	Name      string
	Target    decimal.Decimal
	Saved     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is the amount still to save, never negative.
func (g Goal) Remaining() decimal.Decimal {
	r := g.Target.Sub(g.Saved)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Progress is the saved share of the target in [0,1].
func (g Goal) Progress() float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	p, _ := g.Saved.Div(g.Target).Float64()
	if p > 1 {
		return 1
	}
	return p
}

// Reached reports whether the goal target has been met.
func (g Goal) Reached() bool {
	return g.Target.IsPositive() && g.Saved.GreaterThanOrEqual(g.Target)
}
