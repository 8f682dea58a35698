package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
	"gig-copilot/internal/repository/memory"
	"gig-copilot/pkg/gcalendar"
	"gig-copilot/pkg/geocoder"
	"gig-copilot/pkg/log"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fakeGeocoder struct {
	points map[string]model.GeoPoint
	err    error
	calls  atomic.Int32
}

func (f *fakeGeocoder) Resolve(ctx context.Context, place string) (model.GeoPoint, error) {
	f.calls.Add(1)
	if f.err != nil {
		return model.GeoPoint{}, f.err
	}
	p, ok := f.points[place]
	if !ok {
		return model.GeoPoint{}, geocoder.ErrNotFound
	}
	return p, nil
}

type fakeReminders struct {
	reqs []gcalendar.ReminderRequest
	err  error
}

func (f *fakeReminders) ScheduleReminder(ctx context.Context, req gcalendar.ReminderRequest) (*gcalendar.Event, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &gcalendar.Event{ID: "ev1", HtmlLink: "https://calendar.example/ev1"}, nil
}

// flakyTrips fails the first failures CreateTrip calls.
type flakyTrips struct {
	repository.TripStore
	failures int32
	calls    atomic.Int32
}

func (f *flakyTrips) CreateTrip(ctx context.Context, opt repository.CreateTripOptions) (model.Trip, error) {
	if f.calls.Add(1) <= f.failures {
		return model.Trip{}, errors.New("connection refused")
	}
	return f.TripStore.CreateTrip(ctx, opt)
}

type fixture struct {
	d         *implDispatcher
	repo      repository.Repository
	geo       *fakeGeocoder
	reminders *fakeReminders
}

func newFixture(t *testing.T, mutate ...func(*Deps)) fixture {
	t.Helper()
	repo := memory.New()
	geo := &fakeGeocoder{points: map[string]model.GeoPoint{
		"Indiranagar": {Lat: 12.9719, Lon: 77.6412},
		"Whitefield":  {Lat: 12.9698, Lon: 77.7500},
	}}
	reminders := &fakeReminders{}
	deps := Deps{Trips: repo, Checks: repo, Goals: repo, Geocoder: geo, Reminders: reminders}
	for _, m := range mutate {
		m(&deps)
	}
	d, err := New(deps, Options{RetryDelay: time.Millisecond, CallTimeout: time.Second}, log.NewNop())
	require.NoError(t, err)
	impl := d.(*implDispatcher)
	impl.now = func() time.Time { return testNow }
	return fixture{d: impl, repo: repo, geo: geo, reminders: reminders}
}

func slotsOf(kv ...string) model.ExtractedSlots {
	s := model.ExtractedSlots{}
	for i := 0; i+1 < len(kv); i += 2 {
		s.Set(kv[i], kv[i+1], kv[i+1], 0.9)
	}
	return s
}

func trips(t *testing.T, f fixture) []model.Trip {
	t.Helper()
	list, err := f.repo.ListTrips(context.Background(), repository.ListTripsOptions{UserID: "u1"})
	require.NoError(t, err)
	return list
}

func TestTrip_Completed(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")

	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "Indiranagar", model.SlotDropoff, "Whitefield", model.SlotEarnings, "450"), cc)

	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	trip := res.Payload.(model.Trip)
	assert.True(t, trip.Net.Equal(decimal.NewFromInt(450)))
	assert.True(t, trip.FuelCost.IsZero())
	require.NotNil(t, trip.DistanceKm)
	assert.InDelta(t, 11.8, *trip.DistanceKm, 1e-9)
	assert.Nil(t, cc.Pending)
	assert.Equal(t, "Whitefield", cc.RecentEntities[0].Name)
	assert.Len(t, trips(t, f), 1)
}

func TestTrip_NetSubtractsFuel(t *testing.T) {
	f := newFixture(t)
	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "450", model.SlotFuelCost, "80.50"),
		model.NewConversationContext("u1"))

	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	trip := res.Payload.(model.Trip)
	assert.Equal(t, "369.5", trip.Net.String())
	assert.Nil(t, trip.DistanceKm, "unknown places leave distance unknown")
}

func TestTrip_MissingThenFollowUp(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")

	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "Indiranagar", model.SlotDropoff, "Whitefield"), cc)
	require.Equal(t, model.OutcomeNeedsClarification, res.Outcome)
	assert.Equal(t, model.ClarifyMissing, res.Reason)
	assert.Equal(t, []string{model.SlotEarnings}, res.Missing)
	require.NotNil(t, cc.Pending)
	assert.Equal(t, testNow.Add(DefaultPendingTTL), cc.Pending.ExpiresAt)
	pendingID := cc.Pending.ID
	assert.Empty(t, trips(t, f))

	res = f.d.Dispatch(context.Background(), model.ActionTrip, slotsOf(model.SlotEarnings, "450"), cc)
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.Nil(t, cc.Pending)
	assert.Len(t, trips(t, f), 1)
	assert.NotEmpty(t, pendingID)
}

func TestTrip_MissingListsExactlyAbsentFields(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")
	res := f.d.Dispatch(context.Background(), model.ActionTrip, slotsOf(model.SlotEarnings, "300"), cc)

	assert.Equal(t, []string{model.SlotPickup, model.SlotDropoff}, res.Missing)
	assert.Equal(t, []string{model.SlotPickup, model.SlotDropoff}, cc.Pending.Missing)
	assert.True(t, cc.Pending.Slots.Has(model.SlotEarnings))
}

func TestTrip_Validation(t *testing.T) {
	tcs := map[string]struct {
		slots  model.ExtractedSlots
		field  string
		detail string
	}{
		"same place":       {slotsOf(model.SlotPickup, "HSR Layout", model.SlotDropoff, "hsr  layout", model.SlotEarnings, "200"), model.SlotDropoff, DetailSamePlace},
		"negative earning": {slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "-50"), model.SlotEarnings, DetailNegative},
		"negative fuel":    {slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "50", model.SlotFuelCost, "-1"), model.SlotFuelCost, DetailNegative},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			cc := model.NewConversationContext("u1")
			res := f.d.Dispatch(context.Background(), model.ActionTrip, tc.slots, cc)

			require.Equal(t, model.OutcomeNeedsClarification, res.Outcome)
			assert.Equal(t, model.ClarifyInvalid, res.Reason)
			assert.Equal(t, tc.field, res.Field)
			assert.Equal(t, tc.detail, res.Detail)
			assert.False(t, cc.Pending.Slots.Has(tc.field), "invalid field is dropped")
			assert.Empty(t, trips(t, f), "nothing written")
		})
	}
}

func TestTrip_ZeroEarningsAllowed(t *testing.T) {
	f := newFixture(t)
	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "0"), model.NewConversationContext("u1"))
	assert.Equal(t, model.OutcomeCompleted, res.Outcome)
}

func TestTrip_RetriesOnce(t *testing.T) {
	var flaky *flakyTrips
	f := newFixture(t, func(d *Deps) {
		flaky = &flakyTrips{TripStore: d.Trips, failures: 1}
		d.Trips = flaky
	})
	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "100"), model.NewConversationContext("u1"))

	assert.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.EqualValues(t, 2, flaky.calls.Load())
}

func TestTrip_UnavailableAfterRetry(t *testing.T) {
	var flaky *flakyTrips
	f := newFixture(t, func(d *Deps) {
		flaky = &flakyTrips{TripStore: d.Trips, failures: 5}
		d.Trips = flaky
	})
	cc := model.NewConversationContext("u1")
	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "100"), cc)

	require.Equal(t, model.OutcomeFailed, res.Outcome)
	assert.Equal(t, model.FailUnavailable, res.FailReason)
	assert.ErrorIs(t, res.Err, model.ErrHandlerUnavailable)
	assert.EqualValues(t, 2, flaky.calls.Load())
	assert.Nil(t, cc.Pending)
}

func TestTrip_GeocoderDown(t *testing.T) {
	f := newFixture(t)
	f.geo.err = errors.New("503")

	res := f.d.Dispatch(context.Background(), model.ActionTrip,
		slotsOf(model.SlotPickup, "Indiranagar", model.SlotDropoff, "Whitefield", model.SlotEarnings, "450"), model.NewConversationContext("u1"))

	require.Equal(t, model.OutcomeFailed, res.Outcome)
	assert.Equal(t, model.FailUnavailable, res.FailReason)
	assert.EqualValues(t, 2, f.geo.calls.Load())
	assert.Empty(t, trips(t, f))
}

func TestTrip_CancelledBeforeWrite(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.d.Dispatch(ctx, model.ActionTrip,
		slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B", model.SlotEarnings, "100"), model.NewConversationContext("u1"))

	require.Equal(t, model.OutcomeFailed, res.Outcome)
	assert.Equal(t, model.FailCancelled, res.FailReason)
	assert.Empty(t, trips(t, f))
}

func TestPending_OtherKindOverwritten(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")
	f.d.Dispatch(context.Background(), model.ActionTrip, slotsOf(model.SlotPickup, "A"), cc)
	require.Equal(t, model.ActionTrip, cc.Pending.Kind)

	res := f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotGoalOp, "create", model.SlotGoalName, "Bike"), cc)
	require.Equal(t, model.OutcomeNeedsClarification, res.Outcome)
	assert.Equal(t, model.ActionGoal, cc.Pending.Kind)
	assert.False(t, cc.Pending.Slots.Has(model.SlotPickup))
}

func TestPending_ExpiredIsIgnored(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")
	f.d.Dispatch(context.Background(), model.ActionTrip, slotsOf(model.SlotPickup, "A", model.SlotDropoff, "B"), cc)

	f.d.now = func() time.Time { return testNow.Add(DefaultPendingTTL + time.Second) }
	res := f.d.Dispatch(context.Background(), model.ActionTrip, slotsOf(model.SlotEarnings, "100"), cc)
	assert.Equal(t, []string{model.SlotPickup, model.SlotDropoff}, res.Missing)
}

func TestVehicle_BrakeSqueak(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")
	s := slotsOf(model.SlotIssue, "brake is making a squeaking noise", model.SlotComponent, "brake", model.SlotSeverity, "high")

	res := f.d.Dispatch(context.Background(), model.ActionVehicle, s, cc)
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	check := res.Payload.(model.HealthCheck)
	assert.Equal(t, model.SeverityHigh, check.Severity)
	assert.False(t, check.SeverityDefaulted)
	assert.Equal(t, 1, check.NextCheckInDays)
	assert.Contains(t, check.Recommendations, "Stop driving and get it inspected today.")
	assert.Contains(t, check.Recommendations, "Ask for the brake pads, discs and brake fluid to be checked.")
	assert.Equal(t, "https://calendar.example/ev1", check.ReminderLink)

	require.Len(t, f.reminders.reqs, 1)
	loc, _ := time.LoadLocation(DefaultTimezone)
	assert.True(t, f.reminders.reqs[0].At.Equal(time.Date(2026, 3, 3, ReminderHour, 0, 0, 0, loc)))
	assert.Equal(t, "brake", cc.RecentEntities[0].Name)
}

func TestVehicle_SeverityDefaultsToMedium(t *testing.T) {
	f := newFixture(t)
	res := f.d.Dispatch(context.Background(), model.ActionVehicle, slotsOf(model.SlotIssue, "feels strange"), model.NewConversationContext("u1"))

	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	check := res.Payload.(model.HealthCheck)
	assert.Equal(t, model.SeverityMedium, check.Severity)
	assert.True(t, check.SeverityDefaulted)
	assert.Equal(t, 7, check.NextCheckInDays)
}

func TestVehicle_ReminderFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.reminders.err = errors.New("calendar down")

	res := f.d.Dispatch(context.Background(), model.ActionVehicle, slotsOf(model.SlotIssue, "got a scratch", model.SlotSeverity, "low"), model.NewConversationContext("u1"))
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.Empty(t, res.Payload.(model.HealthCheck).ReminderLink)
}

func TestVehicle_MissingIssue(t *testing.T) {
	f := newFixture(t)
	res := f.d.Dispatch(context.Background(), model.ActionVehicle, slotsOf(model.SlotComponent, "engine"), model.NewConversationContext("u1"))
	assert.Equal(t, []string{model.SlotIssue}, res.Missing)
}

func seedGoal(t *testing.T, f fixture, name string, target int64) model.Goal {
	t.Helper()
	g, err := f.repo.CreateGoal(context.Background(), repository.CreateGoalOptions{UserID: "u1", Name: name, Target: decimal.NewFromInt(target)})
	require.NoError(t, err)
	return g
}

func TestGoal_ContributeSingleMatch(t *testing.T) {
	f := newFixture(t)
	seedGoal(t, f, "New Phone", 20000)
	cc := model.NewConversationContext("u1")

	res := f.d.Dispatch(context.Background(), model.ActionGoal,
		slotsOf(model.SlotGoalOp, "contribute", model.SlotGoalName, "phone", model.SlotContribution, "5000"), cc)

	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	out := res.Payload.(model.GoalOutcome)
	assert.Equal(t, "5000", out.Goal.Saved.String())
	assert.Equal(t, "5000", out.Amount.String())
	assert.Equal(t, model.EntityGoal, cc.RecentEntities[0].Kind)
}

func TestGoal_AmbiguousThenChosen(t *testing.T) {
	f := newFixture(t)
	seedGoal(t, f, "New Phone", 20000)
	seedGoal(t, f, "Phone Repair", 3000)
	cc := model.NewConversationContext("u1")

	res := f.d.Dispatch(context.Background(), model.ActionGoal,
		slotsOf(model.SlotGoalName, "my phone goal", model.SlotContribution, "5000"), cc)
	require.Equal(t, model.OutcomeNeedsClarification, res.Outcome)
	assert.Equal(t, model.ClarifyAmbiguous, res.Reason)
	assert.Equal(t, []string{"New Phone", "Phone Repair"}, res.Candidates)
	require.NotNil(t, cc.Pending)
	assert.False(t, cc.Pending.Slots.Has(model.SlotGoalName))
	assert.True(t, cc.Pending.Slots.Has(model.SlotContribution))

	res = f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotGoalName, "new phone"), cc)
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.Equal(t, "New Phone", res.Payload.(model.GoalOutcome).Goal.Name)

	goals, _ := f.repo.FindGoalsByUser(context.Background(), "u1")
	assert.True(t, goals[1].Saved.IsZero(), "only the chosen goal changes")
}

func TestGoal_FuzzySpelling(t *testing.T) {
	f := newFixture(t)
	seedGoal(t, f, "Motorcycle", 80000)
	seedGoal(t, f, "Wedding", 200000)

	res := f.d.Dispatch(context.Background(), model.ActionGoal,
		slotsOf(model.SlotGoalName, "motorcyle", model.SlotContribution, "1000"), model.NewConversationContext("u1"))
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.Equal(t, "Motorcycle", res.Payload.(model.GoalOutcome).Goal.Name)
}

func TestGoal_UnknownName(t *testing.T) {
	f := newFixture(t)
	seedGoal(t, f, "Wedding", 200000)

	res := f.d.Dispatch(context.Background(), model.ActionGoal,
		slotsOf(model.SlotGoalName, "laptop", model.SlotContribution, "1000"), model.NewConversationContext("u1"))
	assert.Equal(t, model.ClarifyInvalid, res.Reason)
	assert.Equal(t, DetailUnknown, res.Detail)
	assert.Equal(t, []string{"Wedding"}, res.Candidates)
}

func TestGoal_NoGoals(t *testing.T) {
	f := newFixture(t)
	res := f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotContribution, "1000"), model.NewConversationContext("u1"))
	assert.Equal(t, DetailNoGoals, res.Detail)
}

func TestGoal_NameFromRecentEntity(t *testing.T) {
	f := newFixture(t)
	seedGoal(t, f, "Wedding", 200000)
	bike := seedGoal(t, f, "Bike", 60000)
	cc := model.NewConversationContext("u1")
	cc.PushEntity(model.EntityRef{Kind: model.EntityGoal, ID: bike.ID, Name: bike.Name}, 5)

	res := f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotContribution, "500"), cc)
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.Equal(t, bike.ID, res.Payload.(model.GoalOutcome).Goal.ID)
}

func TestGoal_Create(t *testing.T) {
	f := newFixture(t)
	cc := model.NewConversationContext("u1")

	res := f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotGoalOp, "create", model.SlotGoalName, "Bike"), cc)
	assert.Equal(t, []string{model.SlotTargetAmount}, res.Missing)

	res = f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotTargetAmount, "0"), cc)
	assert.Equal(t, DetailNotPositive, res.Detail)

	res = f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotTargetAmount, "60000"), cc)
	require.Equal(t, model.OutcomeCompleted, res.Outcome)
	assert.Equal(t, "60000", res.Payload.(model.GoalOutcome).Goal.Target.String())

	res = f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotGoalName, "bike", model.SlotTargetAmount, "1000"), cc)
	assert.Equal(t, DetailDuplicate, res.Detail)
}

func TestGoal_OperationUnknown(t *testing.T) {
	f := newFixture(t)
	res := f.d.Dispatch(context.Background(), model.ActionGoal, slotsOf(model.SlotGoalName, "Bike"), model.NewConversationContext("u1"))
	assert.Equal(t, []string{model.SlotGoalOp}, res.Missing)
}

func TestMatchGoals(t *testing.T) {
	goals := []model.Goal{{ID: "1", Name: "iPhone 15"}, {ID: "2", Name: "Phone"}, {ID: "3", Name: "Wedding"}}

	exact, cands := matchGoals("my phone goal", goals, DefaultFuzzyThreshold)
	require.NotNil(t, exact)
	assert.Equal(t, "2", exact.ID)
	assert.Empty(t, cands)

	exact, cands = matchGoals("iphone", goals, DefaultFuzzyThreshold)
	assert.Nil(t, exact)
	assert.Len(t, cands, 2)
}
