package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
)

func classify(t *testing.T, text string) nlu.Guess {
	t.Helper()
	g, err := New().Understand(context.Background(), nlu.Request{Task: nlu.TaskClassify, Text: text})
	require.NoError(t, err)
	return g
}

func extract(t *testing.T, text string, focus []string, fields ...string) map[string]nlu.SlotGuess {
	t.Helper()
	req := nlu.Request{Task: nlu.TaskExtract, Text: text, Focus: focus}
	for _, f := range fields {
		req.Fields = append(req.Fields, nlu.Field{Name: f})
	}
	g, err := New().Understand(context.Background(), req)
	require.NoError(t, err)
	return g.Slots
}

func TestClassify(t *testing.T) {
	tcs := map[string]model.Category{
		"I just completed a trip from Indiranagar to Whitefield for 450 rupees": model.CategoryTripAction,
		"My brake is making a squeaking noise":                                  model.CategoryVehicleAction,
		"I saved 5000 today towards my phone goal":                              model.CategoryGoalAction,
		"How much did I earn this week?":                                        model.CategoryEarningsAnalysis,
		"Which zones pay the best?":                                             model.CategoryEarningsAnalysis,
		"How is my bike doing?":                                                 model.CategoryVehicleAnalysis,
		"Can I afford a new phone by December?":                                 model.CategoryFinancialAnalysis,
		"hello there":                                                           model.CategoryGeneral,
	}
	for text, want := range tcs {
		t.Run(text, func(t *testing.T) {
			g := classify(t, text)
			assert.Equal(t, string(want), g.Label)
			assert.GreaterOrEqual(t, g.Confidence, 0.6)
		})
	}
}

func TestClassify_NoCueIsLowConfidenceGeneral(t *testing.T) {
	g := classify(t, "purple elephants")
	assert.Equal(t, string(model.CategoryGeneral), g.Label)
	assert.Less(t, g.Confidence, 0.6)
}

func TestClassify_WeakCueStaysBelowThreshold(t *testing.T) {
	g := classify(t, "total")
	assert.Less(t, g.Confidence, 0.6)
}

func TestClassify_Deterministic(t *testing.T) {
	a := classify(t, "drop to airport done")
	b := classify(t, "drop to airport done")
	assert.Equal(t, a, b)
}

func TestExtract_Trip(t *testing.T) {
	slots := extract(t, "I just completed a trip from Indiranagar to Whitefield for 450 rupees", nil,
		model.SlotPickup, model.SlotDropoff, model.SlotEarnings, model.SlotFuelCost, model.SlotPlatform)

	assert.Equal(t, "Indiranagar", slots[model.SlotPickup].Value)
	assert.Equal(t, "Whitefield", slots[model.SlotDropoff].Value)
	assert.Equal(t, "450", slots[model.SlotEarnings].Value)
	assert.NotContains(t, slots, model.SlotFuelCost)
	assert.NotContains(t, slots, model.SlotPlatform)
}

func TestExtract_TripWithFuelAndPlatform(t *testing.T) {
	slots := extract(t, "Uber ride from MG Road to Koramangala 5th Block, earned ₹600 and spent 120 on petrol", nil,
		model.SlotPickup, model.SlotDropoff, model.SlotEarnings, model.SlotFuelCost, model.SlotPlatform)

	assert.Equal(t, "MG Road", slots[model.SlotPickup].Value)
	assert.Equal(t, "Koramangala 5th Block", slots[model.SlotDropoff].Value)
	assert.Equal(t, "600", slots[model.SlotEarnings].Value)
	assert.Equal(t, "120", slots[model.SlotFuelCost].Value)
	assert.Equal(t, "uber", slots[model.SlotPlatform].Value)
}

func TestExtract_FuelOnlyTakesItsOwnAmount(t *testing.T) {
	tcs := map[string]struct{ earnings, fuel string }{
		"A to B for 450, fuel 100":                   {"450", "100"},
		"A to B for 450 rupees, fuel 100":            {"450", "100"},
		"A to B for 450, petrol cost 100":            {"450", "100"},
		"A to B, earned 450 and spent 100 on petrol": {"450", "100"},
		"A to B, petrol was 80, got paid 500":        {"500", "80"},
		"A to B for 450 fuel 100":                    {"450", "100"},
	}
	for text, want := range tcs {
		t.Run(text, func(t *testing.T) {
			slots := extract(t, text, nil, model.SlotEarnings, model.SlotFuelCost)
			assert.Equal(t, want.earnings, slots[model.SlotEarnings].Value)
			assert.Equal(t, want.fuel, slots[model.SlotFuelCost].Value)
		})
	}
}

func TestExtract_EarningsNeverBecomeFuel(t *testing.T) {
	slots := extract(t, "petrol pump to station for 450", nil, model.SlotEarnings, model.SlotFuelCost)
	assert.Equal(t, "450", slots[model.SlotEarnings].Value)
	assert.NotContains(t, slots, model.SlotFuelCost)
}

func TestExtract_FocusedPlace(t *testing.T) {
	slots := extract(t, "Whitefield", []string{model.SlotDropoff}, model.SlotPickup, model.SlotDropoff, model.SlotEarnings)
	assert.Equal(t, "Whitefield", slots[model.SlotDropoff].Value)
	assert.NotContains(t, slots, model.SlotPickup)
}

func TestExtract_Vehicle(t *testing.T) {
	slots := extract(t, "My brake is making a squeaking noise.", nil, model.SlotIssue, model.SlotComponent, model.SlotSeverity)
	assert.Equal(t, "My brake is making a squeaking noise", slots[model.SlotIssue].Value)
	assert.Equal(t, "brake", slots[model.SlotComponent].Value)
}

func TestExtract_GoalContribution(t *testing.T) {
	slots := extract(t, "I saved 5000 today towards my phone goal", nil,
		model.SlotGoalName, model.SlotGoalOp, model.SlotTargetAmount, model.SlotContribution)

	assert.Equal(t, "phone", slots[model.SlotGoalName].Value)
	assert.Equal(t, "contribute", slots[model.SlotGoalOp].Value)
	assert.Equal(t, "5000", slots[model.SlotContribution].Value)
	assert.NotContains(t, slots, model.SlotTargetAmount)
}

func TestExtract_SaveAmountForNamedThing(t *testing.T) {
	slots := extract(t, "I want to save fifty thousand for a new bike", nil,
		model.SlotGoalName, model.SlotGoalOp, model.SlotTargetAmount, model.SlotContribution)
	assert.Equal(t, "new bike", slots[model.SlotGoalName].Value)
	assert.Equal(t, "create", slots[model.SlotGoalOp].Value)
	assert.Equal(t, "50000", slots[model.SlotTargetAmount].Value)
	assert.NotContains(t, slots, model.SlotContribution)

	slots = extract(t, "saved 2000 for my bike today", nil,
		model.SlotGoalName, model.SlotGoalOp, model.SlotTargetAmount, model.SlotContribution)
	assert.Equal(t, "bike", slots[model.SlotGoalName].Value)
	assert.Equal(t, "contribute", slots[model.SlotGoalOp].Value)
	assert.Equal(t, "2000", slots[model.SlotContribution].Value)
}

func TestExtract_GoalCreate(t *testing.T) {
	slots := extract(t, "Create a new goal for a bike of 80,000 rupees", nil,
		model.SlotGoalName, model.SlotGoalOp, model.SlotTargetAmount, model.SlotContribution)

	assert.Equal(t, "create", slots[model.SlotGoalOp].Value)
	assert.Equal(t, "bike", slots[model.SlotGoalName].Value)
	assert.Equal(t, "80000", slots[model.SlotTargetAmount].Value)
	assert.NotContains(t, slots, model.SlotContribution)
}

func TestExtract_AdvisorRangeAndFocus(t *testing.T) {
	slots := extract(t, "Which zones paid best last week?", nil, model.SlotRange, model.SlotFocus)
	assert.Equal(t, "last week", slots[model.SlotRange].Value)
	assert.Equal(t, "zones", slots[model.SlotFocus].Value)
}

func TestUnderstand_UnsupportedTask(t *testing.T) {
	_, err := New().Understand(context.Background(), nlu.Request{Task: "summarise"})
	assert.ErrorIs(t, err, nlu.ErrUnsupportedTask)
}
