package advisor

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"gig-copilot/internal/model"
)

func (r *implRouter) earnings(ctx context.Context, userID string, q model.AdvisorQuery) model.HandlerResult {
	c := model.CategoryEarningsAnalysis
	prev := q.Range.Previous()

	var current, previous []model.Trip
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = r.listTrips(gctx, userID, q.Range)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = r.listTrips(gctx, userID, prev)
		return err
	})
	if err := g.Wait(); err != nil {
		return r.failure(ctx, LogPrefixEarnings, c, err)
	}

	return model.Completed(c, r.earningsReport(q, current, previous))
}

func (r *implRouter) earningsReport(q model.AdvisorQuery, current, previous []model.Trip) model.EarningsReport {
	rep := model.EarningsReport{Range: q.Range, Focus: q.Focus}
	if len(current) == 0 {
		rep.InsufficientData = true
		return rep
	}

	rep.Trips = len(current)
	for _, t := range current {
		rep.Gross = rep.Gross.Add(t.Earnings)
		rep.Fuel = rep.Fuel.Add(t.FuelCost)
		rep.Net = rep.Net.Add(t.Net)
		if t.DistanceKm != nil {
			rep.TotalKm += *t.DistanceKm
		}
	}
	rep.TotalKm = math.Round(rep.TotalKm*10) / 10
	rep.AvgPerTrip = rep.Gross.Div(decimal.NewFromInt(int64(rep.Trips))).Round(2)
	rep.TopZones = rankZones(current)
	rep.BestHours = r.rankHours(current)

	for _, t := range previous {
		rep.PreviousNet = rep.PreviousNet.Add(t.Net)
	}
	if rep.PreviousNet.IsPositive() {
		pct, _ := rep.Net.Sub(rep.PreviousNet).Div(rep.PreviousNet).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		rep.TrendPct = &pct
	}

	rep.PredictedMonthly = monthlyRate(rep.Net, q.Range)
	return rep
}

// monthlyRate scales an amount earned over rg to a 30 day month.
func monthlyRate(amount decimal.Decimal, rg model.TimeRange) decimal.Decimal {
	days := math.Ceil(rg.Duration().Hours() / 24)
	if days < 1 {
		days = 1
	}
	return amount.Div(decimal.NewFromFloat(days)).Mul(decimal.NewFromInt(daysPerMonth)).Round(0)
}

// rankZones groups trips by pickup area. Density is per km only when every
// trip has a known distance, so all zones are ranked on the same basis.
func rankZones(trips []model.Trip) []model.ZoneStat {
	perKm := true
	for _, t := range trips {
		if t.DistanceKm == nil || *t.DistanceKm <= 0 {
			perKm = false
			break
		}
	}

	type acc struct {
		name     string
		trips    int
		earnings decimal.Decimal
		km       float64
	}
	byZone := make(map[string]*acc)
	var order []string
	for _, t := range trips {
		key := strings.ToLower(strings.Join(strings.Fields(t.Pickup), " "))
		if key == "" {
			continue
		}
		a, ok := byZone[key]
		if !ok {
			a = &acc{name: t.Pickup}
			byZone[key] = a
			order = append(order, key)
		}
		a.trips++
		a.earnings = a.earnings.Add(t.Earnings)
		if t.DistanceKm != nil {
			a.km += *t.DistanceKm
		}
	}

	zones := make([]model.ZoneStat, 0, len(order))
	for _, key := range order {
		a := byZone[key]
		z := model.ZoneStat{Zone: a.name, Trips: a.trips, Earnings: a.earnings, PerKm: perKm}
		if perKm {
			z.Density = a.earnings.Div(decimal.NewFromFloat(a.km)).Round(2)
		} else {
			z.Density = a.earnings.Div(decimal.NewFromInt(int64(a.trips))).Round(2)
		}
		zones = append(zones, z)
	}
	sort.SliceStable(zones, func(i, j int) bool {
		if !zones[i].Density.Equal(zones[j].Density) {
			return zones[i].Density.GreaterThan(zones[j].Density)
		}
		return zones[i].Zone < zones[j].Zone
	})
	if len(zones) > topZones {
		zones = zones[:topZones]
	}
	return zones
}

func (r *implRouter) rankHours(trips []model.Trip) []model.HourStat {
	var byHour [24]model.HourStat
	for _, t := range trips {
		h := t.CompletedAt.In(r.location).Hour()
		byHour[h].Hour = h
		byHour[h].Trips++
		byHour[h].Earnings = byHour[h].Earnings.Add(t.Earnings)
	}
	var hours []model.HourStat
	for _, h := range byHour {
		if h.Trips > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		if !hours[i].Earnings.Equal(hours[j].Earnings) {
			return hours[i].Earnings.GreaterThan(hours[j].Earnings)
		}
		return hours[i].Hour < hours[j].Hour
	})
	if len(hours) > bestHours {
		hours = hours[:bestHours]
	}
	return hours
}
