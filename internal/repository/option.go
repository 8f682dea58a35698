package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"gig-copilot/internal/model"
)

// CreateTripOptions holds parameters for inserting a trip.
type CreateTripOptions struct {
	UserID      string
	Pickup      string
	Dropoff     string
	Platform    string
	Earnings    decimal.Decimal
	FuelCost    decimal.Decimal
	Net         decimal.Decimal
	DistanceKm  *float64
	CompletedAt time.Time
}

// ListTripsOptions filters trips of one user. Zero From/To leave that side open.
type ListTripsOptions struct {
	UserID string
	From   time.Time
	To     time.Time
	Limit  int
}

// CreateCheckOptions holds parameters for inserting a health check.
type CreateCheckOptions struct {
	UserID            string
	Issue             string
	Component         string
	Severity          model.Severity
	SeverityDefaulted bool
	Recommendations   []string
	NextCheckInDays   int
	ReminderLink      string
	ReportedAt        time.Time
}

// ListChecksOptions filters health checks of one user.
type ListChecksOptions struct {
	UserID string
	From   time.Time
	To     time.Time
	Limit  int
}

// CreateGoalOptions holds parameters for inserting a goal.
type CreateGoalOptions struct {
	UserID string
	Name   string
	Target decimal.Decimal
}

// ContributeOptions adds Amount to a goal's saved total.
type ContributeOptions struct {
	UserID string
	GoalID string
	Amount decimal.Decimal
	At     time.Time
}
