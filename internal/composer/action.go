package composer

import (
	"fmt"
	"strings"

	"gig-copilot/internal/model"
	"gig-copilot/pkg/money"
)

func tripText(t model.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Trip logged: %s to %s", t.Pickup, t.Dropoff)
	if t.DistanceKm != nil {
		fmt.Fprintf(&b, " (%s)", money.FormatKm(*t.DistanceKm))
	}
	if t.Platform != "" {
		fmt.Fprintf(&b, " on %s", t.Platform)
	}
	fmt.Fprintf(&b, ". Earned %s", money.Format(t.Earnings))
	if !t.FuelCost.IsZero() {
		fmt.Fprintf(&b, ", fuel %s", money.Format(t.FuelCost))
	}
	fmt.Fprintf(&b, ", net %s.", money.Format(t.Net))
	return b.String()
}

func checkText(h model.HealthCheck) string {
	subject := h.Component
	if subject == "" {
		subject = "vehicle"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Noted the %s issue. Severity: %s", subject, h.Severity)
	if h.SeverityDefaulted {
		b.WriteString(" (I couldn't tell how serious it is, so I'm treating it as medium)")
	}
	b.WriteString(".")
	for _, r := range h.Recommendations {
		b.WriteString(" " + r)
	}
	fmt.Fprintf(&b, " Check it again within %s.", plural(h.NextCheckInDays, "day", "days"))
	if h.ReminderLink != "" {
		fmt.Fprintf(&b, " 📅 Reminder added: %s", h.ReminderLink)
	}
	return b.String()
}

func goalText(o model.GoalOutcome) string {
	g := o.Goal
	if o.Op == model.GoalOpCreate {
		return fmt.Sprintf("✅ New goal %q created with a target of %s.", g.Name, money.Format(g.Target))
	}
	if g.Reached() {
		return fmt.Sprintf("✅ Added %s to %s. You've reached your goal of %s!", money.Format(o.Amount), g.Name, money.Format(g.Target))
	}
	return fmt.Sprintf("✅ Added %s to %s. Saved %s of %s (%d%%), %s to go.",
		money.Format(o.Amount), g.Name, money.Format(g.Saved), money.Format(g.Target),
		int(g.Progress()*100), money.Format(g.Remaining()))
}
