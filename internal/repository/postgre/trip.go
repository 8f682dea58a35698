package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"gig-copilot/internal/model"
	repo "gig-copilot/internal/repository"
)

const tripColumns = `id, user_id, pickup, dropoff, platform, earnings, fuel_cost, net, distance_km, completed_at`

// CreateTrip inserts a trip row and returns the stored record.
func (r *implRepository) CreateTrip(ctx context.Context, opt repo.CreateTripOptions) (model.Trip, error) {
	query := `
		INSERT INTO trips (user_id, pickup, dropoff, platform, earnings, fuel_cost, net, distance_km, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
		RETURNING ` + tripColumns

	var distance sql.NullFloat64
	if opt.DistanceKm != nil {
		distance = sql.NullFloat64{Float64: *opt.DistanceKm, Valid: true}
	}
	var completedAt sql.NullTime
	if !opt.CompletedAt.IsZero() {
		completedAt = sql.NullTime{Time: opt.CompletedAt, Valid: true}
	}

	t, err := scanTrip(r.db.QueryRowContext(ctx, query,
		opt.UserID, opt.Pickup, opt.Dropoff, opt.Platform,
		opt.Earnings, opt.FuelCost, opt.Net, distance, completedAt,
	))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTrip"), err)
		return model.Trip{}, fmt.Errorf("%w: %w", repo.ErrFailedToInsert, err)
	}
	return t, nil
}

// ListTrips returns a user's trips, newest first.
func (r *implRepository) ListTrips(ctx context.Context, opt repo.ListTripsOptions) ([]model.Trip, error) {
	mods, args := buildUserRangeQuery("completed_at", opt.UserID, opt.From, opt.To, opt.Limit)
	query := fmt.Sprintf(`SELECT %s FROM trips %s`, tripColumns, mods)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTrips"), err)
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	return trips, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (model.Trip, error) {
	var (
		t        model.Trip
		distance sql.NullFloat64
	)
	err := s.Scan(&t.ID, &t.UserID, &t.Pickup, &t.Dropoff, &t.Platform,
		&t.Earnings, &t.FuelCost, &t.Net, &distance, &t.CompletedAt)
	if err != nil {
		return model.Trip{}, err
	}
	if distance.Valid {
		d := distance.Float64
		t.DistanceKm = &d
	}
	return t, nil
}
