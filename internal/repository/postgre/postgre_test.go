package postgre

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
	repo "gig-copilot/internal/repository"
	"gig-copilot/pkg/log"
)

func setupMockDB(t *testing.T) (repo.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, log.NewNop()), mock
}

var (
	at        = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	tripCols  = []string{"id", "user_id", "pickup", "dropoff", "platform", "earnings", "fuel_cost", "net", "distance_km", "completed_at"}
	checkCols = []string{"id", "user_id", "issue", "component", "severity", "severity_defaulted", "recommendations", "next_check_in_days", "reminder_link", "reported_at"}
	goalCols  = []string{"id", "user_id", "name", "target", "saved", "created_at", "updated_at"}
)

func TestCreateTrip(t *testing.T) {
	r, mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs("u1", "Indiranagar", "Whitefield", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow("t1", "u1", "Indiranagar", "Whitefield", "", "450.00", "0.00", "450.00", 14.2, at))

	trip, err := r.CreateTrip(context.Background(), repo.CreateTripOptions{
		UserID:   "u1",
		Pickup:   "Indiranagar",
		Dropoff:  "Whitefield",
		Earnings: decimal.NewFromInt(450),
		Net:      decimal.NewFromInt(450),
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", trip.ID)
	assert.True(t, trip.Net.Equal(decimal.NewFromInt(450)))
	require.NotNil(t, trip.DistanceKm)
	assert.InDelta(t, 14.2, *trip.DistanceKm, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTrip_Failure(t *testing.T) {
	r, mock := setupMockDB(t)
	mock.ExpectQuery(`INSERT INTO trips`).WillReturnError(errors.New("connection reset"))

	_, err := r.CreateTrip(context.Background(), repo.CreateTripOptions{UserID: "u1"})
	assert.ErrorIs(t, err, repo.ErrFailedToInsert)
}

func TestListTrips(t *testing.T) {
	r, mock := setupMockDB(t)
	from := at.Add(-7 * 24 * time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE user_id = \$1 AND completed_at >= \$2 AND completed_at < \$3 ORDER BY completed_at DESC LIMIT \$4`).
		WithArgs("u1", from, at, 50).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow("t2", "u1", "HSR", "BTM", "ola", "300", "50", "250", nil, at).
			AddRow("t1", "u1", "A", "B", "uber", "200", "0", "200", 5.5, from))

	trips, err := r.ListTrips(context.Background(), repo.ListTripsOptions{UserID: "u1", From: from, To: at, Limit: 50})
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Nil(t, trips[0].DistanceKm)
	assert.Equal(t, "250", trips[0].Net.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTrips_OpenRange(t *testing.T) {
	r, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM trips WHERE user_id = \$1 ORDER BY completed_at DESC$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(tripCols))

	trips, err := r.ListTrips(context.Background(), repo.ListTripsOptions{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, trips)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCheck(t *testing.T) {
	r, mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO health_checks`).
		WithArgs("u1", "brake squeaking", "brake", "high", false, sqlmock.AnyArg(), 1, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(checkCols).
			AddRow("c1", "u1", "brake squeaking", "brake", "high", false, `{"Stop driving","Visit a mechanic"}`, 1, "", at))

	c, err := r.CreateCheck(context.Background(), repo.CreateCheckOptions{
		UserID:          "u1",
		Issue:           "brake squeaking",
		Component:       "brake",
		Severity:        model.SeverityHigh,
		Recommendations: []string{"Stop driving", "Visit a mechanic"},
		NextCheckInDays: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SeverityHigh, c.Severity)
	assert.Equal(t, []string{"Stop driving", "Visit a mechanic"}, c.Recommendations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindGoalsByUser(t *testing.T) {
	r, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM goals WHERE user_id = \$1 ORDER BY created_at ASC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(goalCols).
			AddRow("g1", "u1", "Phone", "20000", "5000", at, at))

	goals, err := r.FindGoalsByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "15000", goals[0].Remaining().String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGoal_Duplicate(t *testing.T) {
	r, mock := setupMockDB(t)
	mock.ExpectQuery(`INSERT INTO goals`).
		WithArgs("u1", "New Phone", "new phone", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := r.CreateGoal(context.Background(), repo.CreateGoalOptions{UserID: "u1", Name: "New Phone", Target: decimal.NewFromInt(20000)})
	assert.ErrorIs(t, err, repo.ErrDuplicateGoal)
}

func TestContribute(t *testing.T) {
	r, mock := setupMockDB(t)
	mock.ExpectQuery(`UPDATE goals SET saved = saved \+ \$1`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "g1", "u1").
		WillReturnRows(sqlmock.NewRows(goalCols).
			AddRow("g1", "u1", "Phone", "20000", "10000", at, at))

	g, err := r.Contribute(context.Background(), repo.ContributeOptions{UserID: "u1", GoalID: "g1", Amount: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.Equal(t, "10000", g.Saved.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContribute_NotFound(t *testing.T) {
	r, mock := setupMockDB(t)
	mock.ExpectQuery(`UPDATE goals`).WillReturnError(sql.ErrNoRows)

	_, err := r.Contribute(context.Background(), repo.ContributeOptions{UserID: "u1", GoalID: "missing", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
