package composer

import (
	"context"
	"fmt"
	"strings"

	"gig-copilot/internal/model"
)

func (c *implComposer) Compose(ctx context.Context, res model.HandlerResult) string {
	switch res.Outcome {
	case model.OutcomeCompleted:
		return c.completed(ctx, res)
	case model.OutcomeNeedsClarification:
		return clarify(res)
	case model.OutcomeFailed:
		return apology(res)
	default:
		c.l.Warnf(ctx, "%s: unknown outcome %q", LogPrefixCompose, res.Outcome)
		return apology(model.Failed(res.Category, model.FailInternal, nil))
	}
}

func (c *implComposer) completed(ctx context.Context, res model.HandlerResult) string {
	switch p := res.Payload.(type) {
	case model.Trip:
		return tripText(p)
	case model.HealthCheck:
		return checkText(p)
	case model.GoalOutcome:
		return goalText(p)
	case model.EarningsReport:
		return c.earningsText(p)
	case model.VehicleReport:
		return c.vehicleText(p)
	case model.FinancialReport:
		return financialText(p)
	case model.GeneralReply:
		return generalText(p)
	default:
		c.l.Warnf(ctx, "%s: no template for payload %T", LogPrefixCompose, res.Payload)
		return "Done."
	}
}

func generalText(p model.GeneralReply) string {
	if p.Degraded {
		return degradedText
	}
	if p.Cancelled != "" {
		return fmt.Sprintf("Okay, I've dropped that %s. Anything else?", cancelledNouns[p.Cancelled])
	}
	if hint := guessHint(p.Guess); hint != "" {
		return fmt.Sprintf("I'm not sure I understood. Did you want to %s? Please say it with a little more detail.", hint)
	}
	return "Hi! " + helpText
}

func guessHint(c model.Category) string {
	switch c {
	case model.CategoryTripAction:
		return "log a trip"
	case model.CategoryVehicleAction:
		return "report a vehicle problem"
	case model.CategoryGoalAction:
		return "update a savings goal"
	case model.CategoryEarningsAnalysis:
		return "check your earnings"
	case model.CategoryVehicleAnalysis:
		return "review your vehicle's health"
	case model.CategoryFinancialAnalysis:
		return "plan your savings"
	default:
		return ""
	}
}

// joinAnd joins items as "a", "a and b", "a, b and c".
func joinAnd(items []string, last string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " " + last + " " + items[len(items)-1]
	}
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return strings.ReplaceAll(field, "_", " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
