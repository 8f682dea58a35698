package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
	"gig-copilot/internal/slots"
	"gig-copilot/pkg/geocoder"
)

func (d *implDispatcher) dispatchTrip(ctx context.Context, cc *model.ConversationContext, s model.ExtractedSlots) model.HandlerResult {
	c := model.CategoryTripAction

	req, res, ok := buildTrip(s)
	if !ok {
		return res
	}
	if res, stop := cancelled(ctx, c); stop {
		return res
	}

	distance, err := d.tripDistance(ctx, req.Pickup, req.Dropoff)
	if err != nil {
		return d.failure(ctx, LogPrefixTrip, c, "geocode", err)
	}

	fuel := decimal.Zero
	if req.FuelCost != nil {
		fuel = *req.FuelCost
	}
	opt := repository.CreateTripOptions{
		UserID:      cc.UserID,
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		Platform:    req.Platform,
		Earnings:    req.Earnings,
		FuelCost:    fuel,
		Net:         req.Earnings.Sub(fuel),
		DistanceKm:  distance,
		CompletedAt: d.now(),
	}

	if res, stop := cancelled(ctx, c); stop {
		return res
	}
	trip, err := call(ctx, d, func(ctx context.Context) (model.Trip, error) {
		return d.deps.Trips.CreateTrip(ctx, opt)
	})
	if err != nil {
		return d.failure(ctx, LogPrefixTrip, c, "create trip", err)
	}

	d.remember(cc,
		model.EntityRef{Kind: model.EntityPlace, Name: trip.Pickup},
		model.EntityRef{Kind: model.EntityPlace, Name: trip.Dropoff},
	)
	return model.Completed(c, trip)
}

// buildTrip validates present fields first, then checks for missing ones.
func buildTrip(s model.ExtractedSlots) (model.TripLog, model.HandlerResult, bool) {
	c := model.CategoryTripAction
	var req model.TripLog

	if v, ok := s.Money(model.SlotEarnings); ok {
		if v.IsNegative() {
			return req, model.NeedsValid(c, model.SlotEarnings, DetailNegative), false
		}
		req.Earnings = v
	}
	if v, ok := s.Money(model.SlotFuelCost); ok {
		if v.IsNegative() {
			return req, model.NeedsValid(c, model.SlotFuelCost, DetailNegative), false
		}
		req.FuelCost = &v
	}
	req.Pickup, _ = s.String(model.SlotPickup)
	req.Dropoff, _ = s.String(model.SlotDropoff)
	req.Platform, _ = s.String(model.SlotPlatform)

	if req.Pickup != "" && req.Dropoff != "" && samePlace(req.Pickup, req.Dropoff) {
		return req, model.NeedsValid(c, model.SlotDropoff, DetailSamePlace), false
	}
	if missing := slots.TripSchema.Missing(s); len(missing) > 0 {
		return req, model.NeedsMissing(c, missing), false
	}
	return req, model.HandlerResult{}, true
}

func samePlace(a, b string) bool {
	norm := func(s string) string { return strings.Join(strings.Fields(strings.ToLower(s)), "") }
	return norm(a) == norm(b)
}

// tripDistance resolves both places. An unknown place leaves the distance
// unknown; an unreachable geocoder is an error.
func (d *implDispatcher) tripDistance(ctx context.Context, pickup, dropoff string) (*float64, error) {
	if d.deps.Geocoder == nil {
		return nil, nil
	}
	resolve := func(place string) (model.GeoPoint, bool, error) {
		p, err := call(ctx, d, func(ctx context.Context) (model.GeoPoint, error) {
			return d.deps.Geocoder.Resolve(ctx, place)
		})
		if errors.Is(err, geocoder.ErrNotFound) {
			d.l.Infof(ctx, "%s: place %q not found, distance unknown", LogPrefixTrip, place)
			return model.GeoPoint{}, false, nil
		}
		return p, err == nil, err
	}

	from, okFrom, err := resolve(pickup)
	if err != nil {
		return nil, err
	}
	to, okTo, err := resolve(dropoff)
	if err != nil {
		return nil, err
	}
	if !okFrom || !okTo {
		return nil, nil
	}
	km := geocoder.RoundKm(geocoder.Distance(from, to))
	return &km, nil
}
