package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Kinds(t *testing.T) {
	for _, c := range Categories() {
		_, isAction := c.ActionKind()
		_, isAnalysis := c.AnalysisKind()
		if c == CategoryGeneral {
			assert.False(t, isAction || isAnalysis)
			continue
		}
		assert.True(t, isAction != isAnalysis, "category %s must be exactly one family", c)
	}

	k, ok := CategoryGoalAction.ActionKind()
	require.True(t, ok)
	assert.Equal(t, CategoryGoalAction, k.Category())

	_, ok = ParseCategory("action.flight")
	assert.False(t, ok)
}

func TestExtractedSlots_MergeKeepsAbsence(t *testing.T) {
	older := ExtractedSlots{}
	older.Set(SlotPickup, "Indiranagar", "Indiranagar", 0.9)
	older.Set(SlotEarnings, "400", "400", 0.9)

	newer := ExtractedSlots{
		SlotEarnings: {Value: "450", Present: true},
		SlotDropoff:  {Present: false},
	}
	merged := older.Merge(newer)

	amt, ok := merged.Money(SlotEarnings)
	require.True(t, ok)
	assert.True(t, amt.Equal(decimal.NewFromInt(450)))
	assert.False(t, merged.Has(SlotDropoff))
	assert.True(t, merged.Has(SlotPickup))

	_, ok = merged.Money(SlotFuelCost)
	assert.False(t, ok)
}

func TestConversationContext_PushEntity(t *testing.T) {
	c := NewConversationContext("u1")
	for _, n := range []string{"a", "b", "c", "A"} {
		c.PushEntity(EntityRef{Kind: EntityGoal, Name: n}, 2)
	}
	require.Len(t, c.RecentEntities, 2)
	assert.Equal(t, "A", c.RecentEntities[0].Name)
	assert.Equal(t, "c", c.RecentEntities[1].Name)

	c.PushEntity(EntityRef{Kind: EntityPlace, Name: " "}, 2)
	assert.Len(t, c.RecentEntities, 2)
}

func TestConversationContext_CloneIsDeep(t *testing.T) {
	now := time.Now()
	c := NewConversationContext("u1")
	c.Pending = &PendingAction{Kind: ActionTrip, Slots: ExtractedSlots{}, ExpiresAt: now.Add(time.Minute)}
	c.Pending.Slots.Set(SlotPickup, "MG Road", "MG Road", 1)

	cp := c.Clone()
	cp.Pending.Slots.Set(SlotDropoff, "HSR", "HSR", 1)

	assert.False(t, c.Pending.Slots.Has(SlotDropoff))
	assert.NotNil(t, c.LivePending(now))
	assert.Nil(t, c.LivePending(now.Add(2*time.Minute)))
}

func TestGoal_Progress(t *testing.T) {
	g := Goal{Target: decimal.NewFromInt(20000), Saved: decimal.NewFromInt(5000)}
	assert.InDelta(t, 0.25, g.Progress(), 1e-9)
	assert.True(t, g.Remaining().Equal(decimal.NewFromInt(15000)))

	g.Saved = decimal.NewFromInt(25000)
	assert.True(t, g.Reached())
	assert.True(t, g.Remaining().IsZero())
}

func TestTimeRange_Previous(t *testing.T) {
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	r := TimeRange{From: to.AddDate(0, 0, -30), To: to, Label: "last 30 days"}
	p := r.Previous()
	assert.Equal(t, r.From, p.To)
	assert.Equal(t, r.Duration(), p.Duration())
	assert.True(t, r.Contains(r.From))
	assert.False(t, r.Contains(r.To))
}
