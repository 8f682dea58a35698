package model

// Category is the closed set of intents an utterance can be routed to.
type Category string

const (
	CategoryTripAction        Category = "action.trip"
	CategoryVehicleAction     Category = "action.vehicle"
	CategoryGoalAction        Category = "action.goal"
	CategoryEarningsAnalysis  Category = "analysis.earnings"
	CategoryVehicleAnalysis   Category = "analysis.vehicle"
	CategoryFinancialAnalysis Category = "analysis.financial"
	CategoryGeneral           Category = "general"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryTripAction,
		CategoryVehicleAction,
		CategoryGoalAction,
		CategoryEarningsAnalysis,
		CategoryVehicleAnalysis,
		CategoryFinancialAnalysis,
		CategoryGeneral,
	}
}

// ParseCategory maps a label onto the closed set. Unknown labels are rejected.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Category) IsAction() bool {
	_, ok := c.ActionKind()
	return ok
}

func (c Category) IsAnalysis() bool {
	_, ok := c.AnalysisKind()
	return ok
}

// ActionKind returns the action sub-kind for action categories.
func (c Category) ActionKind() (ActionKind, bool) {
	switch c {
	case CategoryTripAction:
		return ActionTrip, true
	case CategoryVehicleAction:
		return ActionVehicle, true
	case CategoryGoalAction:
		return ActionGoal, true
	default:
		return "", false
	}
}

// AnalysisKind returns the advisor sub-kind for analysis categories.
func (c Category) AnalysisKind() (AnalysisKind, bool) {
	switch c {
	case CategoryEarningsAnalysis:
		return AnalysisEarnings, true
	case CategoryVehicleAnalysis:
		return AnalysisVehicle, true
	case CategoryFinancialAnalysis:
		return AnalysisFinancial, true
	default:
		return "", false
	}
}

// ActionKind identifies which write operation an action request performs.
type ActionKind string

const (
	ActionTrip    ActionKind = "trip"
	ActionVehicle ActionKind = "vehicle"
	ActionGoal    ActionKind = "goal"
)

func (k ActionKind) Category() Category {
	switch k {
	case ActionTrip:
		return CategoryTripAction
	case ActionVehicle:
		return CategoryVehicleAction
	case ActionGoal:
		return CategoryGoalAction
	default:
		return CategoryGeneral
	}
}

// AnalysisKind identifies which advisor answers a read-only question.
type AnalysisKind string

const (
	AnalysisEarnings  AnalysisKind = "earnings"
	AnalysisVehicle   AnalysisKind = "vehicle"
	AnalysisFinancial AnalysisKind = "financial"
)

func (k AnalysisKind) Category() Category {
	switch k {
	case AnalysisEarnings:
		return CategoryEarningsAnalysis
	case AnalysisVehicle:
		return CategoryVehicleAnalysis
	case AnalysisFinancial:
		return CategoryFinancialAnalysis
	default:
		return CategoryGeneral
	}
}
