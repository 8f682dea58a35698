package model

import "github.com/shopspring/decimal"

// ActionRequest is a validated write request. The set of implementations is
// closed: TripLog, VehicleHealthCheck and GoalUpdate.
type ActionRequest interface {
	Kind() ActionKind
	actionRequest()
}

// TripLog records a completed trip.
type TripLog struct {
	Pickup   string
	Dropoff  string
	Earnings decimal.Decimal
	// FuelCost is nil when the driver did not mention it.
	FuelCost *decimal.Decimal
	Platform string
}

func (TripLog) Kind() ActionKind { return ActionTrip }
func (TripLog) actionRequest()   {}

// VehicleHealthCheck records a reported vehicle concern.
type VehicleHealthCheck struct {
	Issue             string
	Component         string
	Severity          Severity
	SeverityDefaulted bool
}

func (VehicleHealthCheck) Kind() ActionKind { return ActionVehicle }
func (VehicleHealthCheck) actionRequest()   {}

// GoalOp is the operation a goal update performs.
type GoalOp string

const (
	GoalOpCreate     GoalOp = "create"
	GoalOpContribute GoalOp = "contribute"
)

// GoalUpdate creates a savings goal or contributes to an existing one.
type GoalUpdate struct {
	GoalName     string
	GoalID       string
	Op           GoalOp
	Target       *decimal.Decimal
	Contribution *decimal.Decimal
}

func (GoalUpdate) Kind() ActionKind { return ActionGoal }
func (GoalUpdate) actionRequest()   {}

var (
	_ ActionRequest = TripLog{}
	_ ActionRequest = VehicleHealthCheck{}
	_ ActionRequest = GoalUpdate{}
)
