package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gig-copilot/internal/model"
)

func (r *implRouter) vehicle(ctx context.Context, userID string, q model.AdvisorQuery) model.HandlerResult {
	c := model.CategoryVehicleAnalysis
	checks, err := r.listChecks(ctx, userID, q.Range)
	if err != nil {
		return r.failure(ctx, LogPrefixVehicle, c, err)
	}
	return model.Completed(c, vehicleReport(q.Range, checks))
}

// vehicleReport expects checks newest first, as the stores return them.
func vehicleReport(rg model.TimeRange, checks []model.HealthCheck) model.VehicleReport {
	rep := model.VehicleReport{Range: rg}
	if len(checks) == 0 {
		rep.InsufficientData = true
		return rep
	}

	rep.Checks = len(checks)
	counts := make(map[string]int)
	names := make(map[string]string)
	for i, ch := range checks {
		switch ch.Severity {
		case model.SeverityHigh:
			rep.High++
			if rep.LatestHigh == nil {
				rep.LatestHigh = &checks[i]
			}
		case model.SeverityLow:
			rep.Low++
		default:
			rep.Medium++
		}
		if key := strings.ToLower(strings.TrimSpace(ch.Component)); key != "" {
			counts[key]++
			if _, ok := names[key]; !ok {
				names[key] = ch.Component
			}
		}
	}

	for key, n := range counts {
		if n >= recurringMin {
			rep.Recurring = append(rep.Recurring, model.ComponentStat{Component: names[key], Count: n})
		}
	}
	sort.Slice(rep.Recurring, func(i, j int) bool {
		if rep.Recurring[i].Count != rep.Recurring[j].Count {
			return rep.Recurring[i].Count > rep.Recurring[j].Count
		}
		return rep.Recurring[i].Component < rep.Recurring[j].Component
	})

	rep.Advice = vehicleAdvice(rep)
	return rep
}

func vehicleAdvice(rep model.VehicleReport) []string {
	var out []string
	if rep.LatestHigh != nil {
		subject := rep.LatestHigh.Component
		if subject == "" {
			subject = rep.LatestHigh.Issue
		}
		out = append(out, fmt.Sprintf("Get the %s fixed before your next shift.", subject))
	}
	for _, rc := range rep.Recurring {
		out = append(out, fmt.Sprintf("The %s has come up %d times; ask for a proper repair, not a patch.", rc.Component, rc.Count))
	}
	if len(out) == 0 {
		out = append(out, "Nothing urgent. Keep up with regular servicing.")
	}
	return out
}
