package composer

import (
	"fmt"
	"regexp"
	"strings"

	"gig-copilot/internal/advisor"
	"gig-copilot/internal/model"
	"gig-copilot/pkg/money"
)

func (c *implComposer) earningsText(r model.EarningsReport) string {
	if r.InsufficientData {
		return fmt.Sprintf("I don't have any trips for %s yet, so there is nothing to analyse. Log a few trips and ask again.", rangeNoun(r.Range.Label))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s you earned %s from %s (average %s per trip)",
		capitalise(inRange(r.Range.Label)), money.Format(r.Gross), plural(r.Trips, "trip", "trips"), money.Format(r.AvgPerTrip))
	if r.Fuel.IsPositive() {
		fmt.Fprintf(&b, ", net %s after %s fuel", money.Format(r.Net), money.Format(r.Fuel))
	}
	b.WriteString(".")
	if r.TotalKm > 0 {
		fmt.Fprintf(&b, " You covered %s.", money.FormatKm(r.TotalKm))
	}

	all := r.Focus == ""
	if (all || r.Focus == advisor.FocusZones) && len(r.TopZones) > 0 {
		zones := make([]string, 0, len(r.TopZones))
		for _, z := range r.TopZones {
			unit := "trip"
			if z.PerKm {
				unit = "km"
			}
			zones = append(zones, fmt.Sprintf("%s (%s/%s)", z.Zone, money.Format(z.Density), unit))
		}
		fmt.Fprintf(&b, " Best areas: %s.", strings.Join(zones, ", "))
	}
	if (all || r.Focus == advisor.FocusHours) && len(r.BestHours) > 0 {
		hours := make([]string, 0, len(r.BestHours))
		for _, h := range r.BestHours {
			hours = append(hours, fmt.Sprintf("%02d:00-%02d:00", h.Hour, (h.Hour+1)%24))
		}
		fmt.Fprintf(&b, " Best hours: %s.", strings.Join(hours, ", "))
	}
	if all || r.Focus == advisor.FocusTrend {
		switch {
		case r.TrendPct == nil:
			b.WriteString(" There's nothing from the period before to compare with.")
		case *r.TrendPct >= 0:
			fmt.Fprintf(&b, " That's up %.1f%% on the period before.", *r.TrendPct)
		default:
			fmt.Fprintf(&b, " That's down %.1f%% on the period before.", -*r.TrendPct)
		}
	}
	if r.Focus == advisor.FocusFuel {
		fmt.Fprintf(&b, " Fuel cost you %s in total.", money.Format(r.Fuel))
	}
	fmt.Fprintf(&b, " At this pace you'd net about %s a month.", money.Format(r.PredictedMonthly))
	return b.String()
}

func (c *implComposer) vehicleText(r model.VehicleReport) string {
	if r.InsufficientData {
		return fmt.Sprintf("You haven't reported any vehicle problems %s, so there's nothing to review.", inRange(r.Range.Label))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You reported %s %s: %d high, %d medium, %d low.",
		plural(r.Checks, "issue", "issues"), inRange(r.Range.Label), r.High, r.Medium, r.Low)
	if r.LatestHigh != nil {
		fmt.Fprintf(&b, " Latest serious one: %s on %s.", r.LatestHigh.Issue, r.LatestHigh.ReportedAt.In(c.location).Format("2 Jan"))
	}
	for _, a := range r.Advice {
		b.WriteString(" " + a)
	}
	return b.String()
}

func financialText(r model.FinancialReport) string {
	var b strings.Builder
	if r.InsufficientData {
		fmt.Fprintf(&b, "I need some trips from %s before I can plan your savings.", rangeNoun(r.Range.Label))
		if len(r.Goals) > 0 {
			b.WriteString(" Your goals so far:")
			for _, g := range r.Goals {
				fmt.Fprintf(&b, "\n• %s: %s of %s", g.Goal.Name, money.Format(g.Goal.Saved), money.Format(g.Goal.Target))
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "You net about %s a month.", money.Format(r.MonthlyNet))
	if !r.MonthlySavings.IsPositive() {
		b.WriteString(" There's nothing left to save at the moment.")
		return b.String()
	}
	fmt.Fprintf(&b, " Saving %d%% puts %s a month towards your goals.", int(r.SavingsRate*100+0.5), money.Format(r.MonthlySavings))
	if len(r.Goals) == 0 {
		b.WriteString(" Set a goal and I'll plan it for you.")
		return b.String()
	}
	for _, g := range r.Goals {
		fmt.Fprintf(&b, "\n%d. %s: ", g.Priority, g.Goal.Name)
		switch {
		case g.Remaining.IsZero():
			b.WriteString("reached ✅")
		case g.MonthsToTarget != nil:
			fmt.Fprintf(&b, "%s a month, about %s to go", money.Format(g.MonthlyAllocation), plural(*g.MonthsToTarget, "month", "months"))
		default:
			fmt.Fprintf(&b, "%s still needed", money.Format(g.Remaining))
		}
	}
	return b.String()
}

var countedRangeRe = regexp.MustCompile(`^(last|past|previous) \d`)

// rangeNoun reads "today", "this week" or "the last 30 days".
func rangeNoun(label string) string {
	if countedRangeRe.MatchString(label) {
		return "the " + label
	}
	return label
}

// inRange reads "today", "last week" or "in the last 30 days".
func inRange(label string) string {
	if countedRangeRe.MatchString(label) {
		return "in the " + label
	}
	return label
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
