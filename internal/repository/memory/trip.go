package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
)

func (r *implRepository) CreateTrip(ctx context.Context, opt repository.CreateTripOptions) (model.Trip, error) {
	if err := ctx.Err(); err != nil {
		return model.Trip{}, err
	}
	t := model.Trip{
		ID:          uuid.NewString(),
		UserID:      opt.UserID,
		Pickup:      opt.Pickup,
		Dropoff:     opt.Dropoff,
		Platform:    opt.Platform,
		Earnings:    opt.Earnings,
		FuelCost:    opt.FuelCost,
		Net:         opt.Net,
		DistanceKm:  opt.DistanceKm,
		CompletedAt: opt.CompletedAt,
	}
	if t.CompletedAt.IsZero() {
		t.CompletedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[opt.UserID] = append(r.trips[opt.UserID], t)
	return t, nil
}

func (r *implRepository) ListTrips(ctx context.Context, opt repository.ListTripsOptions) ([]model.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Trip
	for _, t := range r.trips[opt.UserID] {
		if repository.InRange(t.CompletedAt, opt.From, opt.To) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}
