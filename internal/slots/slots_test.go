package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
	"gig-copilot/internal/nlu/rules"
	"gig-copilot/pkg/log"
)

type stubCapability struct {
	guess nlu.Guess
	err   error
}

func (s stubCapability) Understand(ctx context.Context, req nlu.Request) (nlu.Guess, error) {
	return s.guess, s.err
}
func (s stubCapability) Name() string { return "stub" }

func slotGuess(kv ...string) nlu.Guess {
	g := nlu.Guess{Slots: map[string]nlu.SlotGuess{}}
	for i := 0; i+1 < len(kv); i += 2 {
		g.Slots[kv[i]] = nlu.SlotGuess{Value: kv[i+1], Confidence: 0.9}
	}
	return g
}

func TestExtract_TripScenario(t *testing.T) {
	e := New(rules.New(), log.NewNop(), 0)
	res := e.Extract(context.Background(), "I just completed a trip from Indiranagar to Whitefield for 450 rupees", TripSchema, nil)

	require.False(t, res.Degraded)
	assert.Empty(t, TripSchema.Missing(res.Slots))
	amt, ok := res.Slots.Money(model.SlotEarnings)
	require.True(t, ok)
	assert.Equal(t, "450", amt.String())
	assert.False(t, res.Slots.Has(model.SlotFuelCost))
}

func TestExtract_MoneyForms(t *testing.T) {
	for _, raw := range []string{"₹50,000", "fifty thousand rupees", "50000", "Rs 50,000.00"} {
		e := New(stubCapability{guess: slotGuess(model.SlotTargetAmount, raw)}, log.NewNop(), 0)
		res := e.Extract(context.Background(), "x", GoalSchema, nil)
		amt, ok := res.Slots.Money(model.SlotTargetAmount)
		require.True(t, ok, raw)
		assert.Equal(t, int64(50000), amt.IntPart(), raw)
	}
}

func TestExtract_UnparseableMoneyIsAbsent(t *testing.T) {
	e := New(stubCapability{guess: slotGuess(model.SlotEarnings, "a good amount", model.SlotPickup, "HSR")}, log.NewNop(), 0)
	res := e.Extract(context.Background(), "x", TripSchema, nil)

	assert.False(t, res.Slots.Has(model.SlotEarnings))
	_, ok := res.Slots.Money(model.SlotEarnings)
	assert.False(t, ok)
	assert.Contains(t, res.Dropped, model.SlotEarnings)
	assert.ElementsMatch(t, []string{model.SlotDropoff, model.SlotEarnings}, TripSchema.Missing(res.Slots))
}

func TestExtract_CapabilityFailure(t *testing.T) {
	e := New(stubCapability{err: errors.New("down")}, log.NewNop(), 0)
	res := e.Extract(context.Background(), "my brake is squeaking", VehicleSchema, nil)

	assert.True(t, res.Degraded)
	assert.Empty(t, res.Slots)
}

func TestExtract_PlacesKeepRawText(t *testing.T) {
	e := New(stubCapability{guess: slotGuess(model.SlotPickup, "from  MG Road ", model.SlotDropoff, "koramangala 5th block")}, log.NewNop(), 0)
	res := e.Extract(context.Background(), "x", TripSchema, nil)

	p, _ := res.Slots.String(model.SlotPickup)
	d, _ := res.Slots.String(model.SlotDropoff)
	assert.Equal(t, "MG Road", p)
	assert.Equal(t, "koramangala 5th block", d)
}

func TestExtract_UnknownPlatformIsOther(t *testing.T) {
	e := New(stubCapability{guess: slotGuess(model.SlotPlatform, "Namma Yatri")}, log.NewNop(), 0)
	res := e.Extract(context.Background(), "x", TripSchema, nil)
	v, _ := res.Slots.String(model.SlotPlatform)
	assert.Equal(t, PlatformOther, v)
}

func TestExtract_BareAnswerFillsFocus(t *testing.T) {
	e := New(stubCapability{guess: nlu.Guess{}}, log.NewNop(), 0)

	res := e.Extract(context.Background(), "₹450", TripSchema, []string{model.SlotEarnings})
	amt, ok := res.Slots.Money(model.SlotEarnings)
	require.True(t, ok)
	assert.Equal(t, "450", amt.String())

	res = e.Extract(context.Background(), "Whitefield", TripSchema, []string{model.SlotDropoff})
	d, _ := res.Slots.String(model.SlotDropoff)
	assert.Equal(t, "Whitefield", d)

	// Two open fields are not guessed from one bare answer.
	res = e.Extract(context.Background(), "Whitefield", TripSchema, []string{model.SlotPickup, model.SlotDropoff})
	assert.Empty(t, res.Slots)
}

func TestSeverity(t *testing.T) {
	e := New(rules.New(), log.NewNop(), 0)

	tcs := map[string]struct {
		text      string
		want      model.Severity
		defaulted bool
	}{
		"brake squeak is high":      {text: "My brake is making a squeaking noise", want: model.SeverityHigh},
		"smoke is high":             {text: "there is smoke coming from the bonnet", want: model.SeverityHigh},
		"warning light is medium":   {text: "the engine light came on", want: model.SeverityMedium},
		"rattle is medium":          {text: "something is rattling at the back", want: model.SeverityMedium},
		"scratch is low":            {text: "got a scratch on the door", want: model.SeverityLow},
		"unknown defaults to medium": {text: "the car feels strange", want: model.SeverityMedium, defaulted: true},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			res := e.Extract(context.Background(), tc.text, VehicleSchema, nil)
			sl := res.Slots[model.SlotSeverity]
			require.True(t, sl.Present)
			assert.Equal(t, string(tc.want), sl.Value)
			assert.Equal(t, tc.defaulted, sl.Defaulted)
		})
	}
}

func TestSchema_Missing(t *testing.T) {
	s := model.ExtractedSlots{}
	s.Set(model.SlotPickup, "A", "A", 1)
	assert.Equal(t, []string{model.SlotDropoff, model.SlotEarnings}, TripSchema.Missing(s))
	assert.Empty(t, GoalSchema.Required())
	assert.Equal(t, []string{model.SlotIssue}, VehicleSchema.Required())
}
