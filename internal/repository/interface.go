package repository

import (
	"context"

	"gig-copilot/internal/model"
)

// Repository is the composed data store of the copilot.
type Repository interface {
	TripStore
	HealthCheckStore
	GoalStore
}

// TripReader is the read side handed to advisors.
type TripReader interface {
	ListTrips(ctx context.Context, opt ListTripsOptions) ([]model.Trip, error)
}

// TripStore defines data access for trips.
type TripStore interface {
	TripReader
	CreateTrip(ctx context.Context, opt CreateTripOptions) (model.Trip, error)
}

// HealthCheckReader is the read side handed to advisors.
type HealthCheckReader interface {
	ListChecks(ctx context.Context, opt ListChecksOptions) ([]model.HealthCheck, error)
}

// HealthCheckStore defines data access for vehicle health checks.
type HealthCheckStore interface {
	HealthCheckReader
	CreateCheck(ctx context.Context, opt CreateCheckOptions) (model.HealthCheck, error)
}

// GoalReader is the read side handed to advisors.
type GoalReader interface {
	FindGoalsByUser(ctx context.Context, userID string) ([]model.Goal, error)
}

// GoalStore defines data access for savings goals.
type GoalStore interface {
	GoalReader
	CreateGoal(ctx context.Context, opt CreateGoalOptions) (model.Goal, error)
	Contribute(ctx context.Context, opt ContributeOptions) (model.Goal, error)
}
