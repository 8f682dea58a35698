package router

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
	"gig-copilot/internal/nlu/rules"
	"gig-copilot/pkg/log"
)

type countingCapability struct {
	guess nlu.Guess
	err   error
	calls atomic.Int32
}

func (c *countingCapability) Understand(ctx context.Context, req nlu.Request) (nlu.Guess, error) {
	c.calls.Add(1)
	return c.guess, c.err
}

func (c *countingCapability) Name() string { return "counting" }

func newClassifier(t *testing.T, capability nlu.Capability) *IntentClassifier {
	t.Helper()
	r, err := New(capability, log.NewNop(), Options{})
	require.NoError(t, err)
	return r
}

func utter(text string) model.Utterance {
	return model.Utterance{UserID: "u1", Text: text, ReceivedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func pendingCtx(kind model.ActionKind, expires time.Time) *model.ConversationContext {
	cc := model.NewConversationContext("u1")
	cc.Pending = &model.PendingAction{ID: "p1", Kind: kind, Missing: []string{model.SlotEarnings}, ExpiresAt: expires}
	return cc
}

func TestClassify_Threshold(t *testing.T) {
	capability := &countingCapability{guess: nlu.Guess{Label: "analysis.earnings", Confidence: 0.55}}
	r := newClassifier(t, capability)

	out := r.Classify(context.Background(), utter("money stuff"), nil)
	assert.Equal(t, model.CategoryGeneral, out.Category)
	assert.Equal(t, model.CategoryEarningsAnalysis, out.Guess)
	assert.False(t, out.Degraded)
}

func TestClassify_AtThresholdKeepsLabel(t *testing.T) {
	capability := &countingCapability{guess: nlu.Guess{Label: "ANALYSIS.EARNINGS", Confidence: 0.6}}
	r := newClassifier(t, capability)

	out := r.Classify(context.Background(), utter("money stuff"), nil)
	assert.Equal(t, model.CategoryEarningsAnalysis, out.Category)
	assert.InDelta(t, 0.6, out.Confidence, 1e-9)
}

func TestClassify_UnknownLabel(t *testing.T) {
	r := newClassifier(t, &countingCapability{guess: nlu.Guess{Label: "weather", Confidence: 0.99}})

	out := r.Classify(context.Background(), utter("will it rain"), nil)
	assert.Equal(t, model.CategoryGeneral, out.Category)
	assert.Contains(t, out.Reason, ReasonUnknownLabel)
}

func TestClassify_CapabilityFailureDegrades(t *testing.T) {
	capability := &countingCapability{err: errors.New("boom")}
	r := newClassifier(t, capability)

	out := r.Classify(context.Background(), utter("how much did I earn"), nil)
	assert.Equal(t, model.CategoryGeneral, out.Category)
	assert.True(t, out.Degraded)

	// Degraded answers are not memoised.
	r.Classify(context.Background(), utter("how much did I earn"), nil)
	assert.EqualValues(t, 2, capability.calls.Load())
}

func TestClassify_Deterministic(t *testing.T) {
	capability := &countingCapability{guess: nlu.Guess{Label: "action.trip", Confidence: 0.9, Reason: "r"}}
	r := newClassifier(t, capability)

	first := r.Classify(context.Background(), utter("Trip  to Whitefield"), nil)
	capability.guess = nlu.Guess{Label: "general", Confidence: 0.9}
	second := r.Classify(context.Background(), utter("trip to whitefield"), nil)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, capability.calls.Load())
}

func TestClassify_Continuation(t *testing.T) {
	now := utter("").ReceivedAt
	tcs := map[string]struct {
		text    string
		cc      *model.ConversationContext
		want    model.Category
		resumed bool
	}{
		"bare amount":            {text: "₹450", cc: pendingCtx(model.ActionTrip, now.Add(time.Minute)), want: model.CategoryTripAction, resumed: true},
		"bare place":             {text: "Whitefield", cc: pendingCtx(model.ActionTrip, now.Add(time.Minute)), want: model.CategoryTripAction, resumed: true},
		"amount with earn verb":  {text: "I earned 450", cc: pendingCtx(model.ActionTrip, now.Add(time.Minute)), want: model.CategoryTripAction, resumed: true},
		"goal name answer":       {text: "the new phone one", cc: pendingCtx(model.ActionGoal, now.Add(time.Minute)), want: model.CategoryGoalAction, resumed: true},
		"expired pending":        {text: "450", cc: pendingCtx(model.ActionTrip, now.Add(-time.Second)), want: model.CategoryGeneral},
		"question is new intent": {text: "how much did I earn this week?", cc: pendingCtx(model.ActionTrip, now.Add(time.Minute)), want: model.CategoryGeneral},
		"other action":           {text: "I saved 5000 for my goal", cc: pendingCtx(model.ActionTrip, now.Add(time.Minute)), want: model.CategoryGeneral},
		"greeting":               {text: "hello", cc: pendingCtx(model.ActionTrip, now.Add(time.Minute)), want: model.CategoryGeneral},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			capability := &countingCapability{guess: nlu.Guess{Label: "general", Confidence: 0.9}}
			r := newClassifier(t, capability)

			out := r.Classify(context.Background(), utter(tc.text), tc.cc)
			assert.Equal(t, tc.want, out.Category)
			assert.Equal(t, tc.resumed, out.Continuation)
			if tc.resumed {
				assert.Zero(t, capability.calls.Load())
			}
		})
	}
}

func TestClassify_WithRules(t *testing.T) {
	r := newClassifier(t, rules.New())

	tcs := map[string]model.Category{
		"I just completed a trip from Indiranagar to Whitefield for 450 rupees": model.CategoryTripAction,
		"My brake is making a squeaking noise":                                  model.CategoryVehicleAction,
		"I saved 5000 today towards my phone goal":                              model.CategoryGoalAction,
		"hello":                                                                 model.CategoryGeneral,
	}
	for text, want := range tcs {
		out := r.Classify(context.Background(), utter(text), nil)
		assert.Equal(t, want, out.Category, text)
	}
}

func TestClassify_CancelWithdrawsPending(t *testing.T) {
	now := utter("").ReceivedAt
	for _, text := range []string{"cancel that", "Never mind", "forget it", "skip", "no, cancel"} {
		t.Run(text, func(t *testing.T) {
			capability := &countingCapability{guess: nlu.Guess{Label: "action.trip", Confidence: 0.9}}
			r := newClassifier(t, capability)

			out := r.Classify(context.Background(), utter(text), pendingCtx(model.ActionTrip, now.Add(time.Minute)))
			assert.Equal(t, model.CategoryGeneral, out.Category)
			assert.True(t, out.Cancel)
			assert.False(t, out.Continuation)
			assert.Zero(t, capability.calls.Load())
		})
	}
}

func TestClassify_CancelWithoutPendingIsOrdinary(t *testing.T) {
	capability := &countingCapability{guess: nlu.Guess{Label: "general", Confidence: 0.9}}
	r := newClassifier(t, capability)

	out := r.Classify(context.Background(), utter("never mind"), nil)
	assert.False(t, out.Cancel)
	assert.Equal(t, int32(1), capability.calls.Load())
}

func TestClassify_LastIntentCarriesShortAction(t *testing.T) {
	r := newClassifier(t, rules.New())

	fresh := r.Classify(context.Background(), utter("I saved 5000 today"), nil)
	assert.Equal(t, model.CategoryGeneral, fresh.Category)

	cc := model.NewConversationContext("u1")
	cc.LastIntent = model.CategoryGoalAction
	out := r.Classify(context.Background(), utter("I saved 5000 today"), cc)
	assert.Equal(t, model.CategoryGoalAction, out.Category)
}
