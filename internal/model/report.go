package model

import "github.com/shopspring/decimal"

// GoalOutcome is the payload of a completed goal update.
type GoalOutcome struct {
	Goal   Goal
	Op     GoalOp
	Amount decimal.Decimal
}

// GeneralReply is the payload of the general fallback.
type GeneralReply struct {
	Degraded bool
	// Guess is the demoted category, if any, so the reply can hint at it.
	Guess Category
	// Cancelled names the pending action the driver withdrew.
	Cancelled ActionKind
}

// ZoneStat ranks an area by earnings density.
type ZoneStat struct {
	Zone     string
	Trips    int
	Earnings decimal.Decimal
	// Density is earnings per km when distances are known, else per trip.
	Density decimal.Decimal
	PerKm   bool
}

// HourStat aggregates earnings by hour of day.
type HourStat struct {
	Hour     int
	Trips    int
	Earnings decimal.Decimal
}

// EarningsReport answers an earnings question.
type EarningsReport struct {
	Range            TimeRange
	InsufficientData bool
	Focus            string
	Trips            int
	Gross            decimal.Decimal
	Fuel             decimal.Decimal
	Net              decimal.Decimal
	AvgPerTrip       decimal.Decimal
	TotalKm          float64
	TopZones         []ZoneStat
	BestHours        []HourStat
	PreviousNet      decimal.Decimal
	// TrendPct is nil when the previous window had no earnings to compare with.
	TrendPct         *float64
	PredictedMonthly decimal.Decimal
}

// ComponentStat counts reports per vehicle component.
type ComponentStat struct {
	Component string
	Count     int
}

// VehicleReport answers a vehicle health question.
type VehicleReport struct {
	Range            TimeRange
	InsufficientData bool
	Checks           int
	High             int
	Medium           int
	Low              int
	Recurring        []ComponentStat
	LatestHigh       *HealthCheck
	Advice           []string
}

// GoalPlan is one goal's line in a savings plan.
type GoalPlan struct {
	Goal              Goal
	Remaining         decimal.Decimal
	Progress          float64
	MonthlyAllocation decimal.Decimal
	// MonthsToTarget is nil when nothing can be allocated to the goal.
	MonthsToTarget *int
	Priority       int
}

// FinancialReport answers a financial planning question.
type FinancialReport struct {
	Range            TimeRange
	InsufficientData bool
	MonthlyNet       decimal.Decimal
	MonthlySavings   decimal.Decimal
	SavingsRate      float64
	Goals            []GoalPlan
}
