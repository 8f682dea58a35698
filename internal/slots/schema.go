package slots

import (
	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
)

// Schema is the fixed set of fields for one action or advisor kind.
type Schema struct {
	Name   string
	Fields []nlu.Field
}

// Required lists the unconditionally required fields.
func (s Schema) Required() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Field looks up a field by name.
func (s Schema) Field(name string) (nlu.Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nlu.Field{}, false
}

// Missing lists required fields that are absent in slots, in schema order.
func (s Schema) Missing(slots model.ExtractedSlots) []string {
	var out []string
	for _, name := range s.Required() {
		if !slots.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

var (
	TripSchema = Schema{
		Name: string(model.ActionTrip),
		Fields: []nlu.Field{
			{Name: model.SlotPickup, Type: nlu.FieldPlace, Required: true, Hint: "where the trip started"},
			{Name: model.SlotDropoff, Type: nlu.FieldPlace, Required: true, Hint: "where the trip ended"},
			{Name: model.SlotEarnings, Type: nlu.FieldMoney, Required: true, Hint: "fare or payout received"},
			{Name: model.SlotFuelCost, Type: nlu.FieldMoney, Hint: "fuel spent on the trip"},
			{Name: model.SlotPlatform, Type: nlu.FieldEnum, Enum: Platforms},
		},
	}

	VehicleSchema = Schema{
		Name: string(model.ActionVehicle),
		Fields: []nlu.Field{
			{Name: model.SlotIssue, Type: nlu.FieldText, Required: true, Hint: "the problem in the driver's words"},
			{Name: model.SlotComponent, Type: nlu.FieldText, Hint: "vehicle part involved"},
			{Name: model.SlotSeverity, Type: nlu.FieldSeverity, Enum: []string{"low", "medium", "high"}},
		},
	}

	// GoalSchema has conditional requirements: target for create, contribution for contribute.
	GoalSchema = Schema{
		Name: string(model.ActionGoal),
		Fields: []nlu.Field{
			{Name: model.SlotGoalName, Type: nlu.FieldText, Hint: "what the driver is saving for"},
			{Name: model.SlotGoalOp, Type: nlu.FieldEnum, Enum: []string{string(model.GoalOpCreate), string(model.GoalOpContribute)}},
			{Name: model.SlotTargetAmount, Type: nlu.FieldMoney, Hint: "total the goal needs"},
			{Name: model.SlotContribution, Type: nlu.FieldMoney, Hint: "amount saved now"},
		},
	}

	AdvisorSchema = Schema{
		Name: "advisor",
		Fields: []nlu.Field{
			{Name: model.SlotRange, Type: nlu.FieldText, Hint: "time period such as today, this week, last 30 days"},
			{Name: model.SlotFocus, Type: nlu.FieldEnum, Enum: []string{"zones", "hours", "trend", "fuel"}},
		},
	}
)

// ForAction returns the schema of an action kind.
func ForAction(kind model.ActionKind) Schema {
	switch kind {
	case model.ActionTrip:
		return TripSchema
	case model.ActionVehicle:
		return VehicleSchema
	case model.ActionGoal:
		return GoalSchema
	default:
		return Schema{}
	}
}
