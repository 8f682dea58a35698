package advisor

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"gig-copilot/internal/model"
)

func (r *implRouter) financial(ctx context.Context, userID string, q model.AdvisorQuery) model.HandlerResult {
	c := model.CategoryFinancialAnalysis

	var trips []model.Trip
	var goals []model.Goal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = r.listTrips(gctx, userID, q.Range)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = r.listGoals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return r.failure(ctx, LogPrefixFinancial, c, err)
	}

	return model.Completed(c, financialReport(q.Range, trips, goals, r.opts.SavingsRate))
}

// financialReport estimates monthly income from trips in rg and splits the
// savings across open goals in proportion to what each still needs. Without
// trips there is no income to plan from.
func financialReport(rg model.TimeRange, trips []model.Trip, goals []model.Goal, rate float64) model.FinancialReport {
	rep := model.FinancialReport{Range: rg, SavingsRate: rate}
	if len(trips) == 0 {
		rep.InsufficientData = true
	}

	net := decimal.Zero
	for _, t := range trips {
		net = net.Add(t.Net)
	}
	rep.MonthlyNet = monthlyRate(net, rg)
	if rep.MonthlyNet.IsPositive() {
		rep.MonthlySavings = rep.MonthlyNet.Mul(decimal.NewFromFloat(rate)).Round(0)
	}

	totalRemaining := decimal.Zero
	for _, g := range goals {
		totalRemaining = totalRemaining.Add(g.Remaining())
	}

	plans := make([]model.GoalPlan, 0, len(goals))
	for _, g := range goals {
		p := model.GoalPlan{Goal: g, Remaining: g.Remaining(), Progress: g.Progress()}
		if p.Remaining.IsZero() {
			zero := 0
			p.MonthsToTarget = &zero
		} else if totalRemaining.IsPositive() && rep.MonthlySavings.IsPositive() {
			p.MonthlyAllocation = rep.MonthlySavings.Mul(p.Remaining).Div(totalRemaining).Round(0)
			if p.MonthlyAllocation.IsPositive() {
				months := int(p.Remaining.Div(p.MonthlyAllocation).Ceil().IntPart())
				p.MonthsToTarget = &months
			}
		}
		plans = append(plans, p)
	}

	// Closest to done first; finished goals last.
	sort.SliceStable(plans, func(i, j int) bool {
		ri, rj := plans[i].Remaining, plans[j].Remaining
		if ri.IsZero() != rj.IsZero() {
			return rj.IsZero()
		}
		return ri.LessThan(rj)
	})
	for i := range plans {
		plans[i].Priority = i + 1
	}
	rep.Goals = plans
	return rep
}
