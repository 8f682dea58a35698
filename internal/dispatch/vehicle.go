package dispatch

import (
	"context"
	"fmt"
	"time"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
	"gig-copilot/internal/slots"
	"gig-copilot/pkg/gcalendar"
)

func (d *implDispatcher) dispatchVehicle(ctx context.Context, cc *model.ConversationContext, s model.ExtractedSlots) model.HandlerResult {
	c := model.CategoryVehicleAction

	if missing := slots.VehicleSchema.Missing(s); len(missing) > 0 {
		return model.NeedsMissing(c, missing)
	}
	req := buildVehicle(s)
	if res, stop := cancelled(ctx, c); stop {
		return res
	}

	opt := repository.CreateCheckOptions{
		UserID:            cc.UserID,
		Issue:             req.Issue,
		Component:         req.Component,
		Severity:          req.Severity,
		SeverityDefaulted: req.SeverityDefaulted,
		Recommendations:   recommend(req.Severity, req.Component, req.Issue),
		NextCheckInDays:   nextCheckInDays(req.Severity),
		ReportedAt:        d.now(),
	}
	check, err := call(ctx, d, func(ctx context.Context) (model.HealthCheck, error) {
		return d.deps.Checks.CreateCheck(ctx, opt)
	})
	if err != nil {
		return d.failure(ctx, LogPrefixVehicle, c, "create check", err)
	}

	// The check is stored; a superseding turn must not cut the rest short.
	ctx = context.WithoutCancel(ctx)
	if link := d.scheduleReminder(ctx, check); link != "" {
		check.ReminderLink = link
	}

	if check.Component != "" {
		d.remember(cc, model.EntityRef{Kind: model.EntityComponent, Name: check.Component})
	}
	return model.Completed(c, check)
}

func buildVehicle(s model.ExtractedSlots) model.VehicleHealthCheck {
	var req model.VehicleHealthCheck
	req.Issue, _ = s.String(model.SlotIssue)
	req.Component, _ = s.String(model.SlotComponent)

	if v, ok := s.String(model.SlotSeverity); ok {
		if sev, valid := model.ParseSeverity(v); valid {
			req.Severity = sev
			req.SeverityDefaulted = s[model.SlotSeverity].Defaulted
			return req
		}
	}
	if sev, _, ok := slots.ClassifySeverity(req.Issue, req.Component); ok {
		req.Severity = sev
		return req
	}
	req.Severity = model.DefaultSeverity
	req.SeverityDefaulted = true
	return req
}

// scheduleReminder books the next check on the driver's calendar. Failures
// are logged and never fail the action.
func (d *implDispatcher) scheduleReminder(ctx context.Context, check model.HealthCheck) string {
	if d.deps.Reminders == nil || check.NextCheckInDays <= 0 {
		return ""
	}
	day := check.ReportedAt.In(d.location).AddDate(0, 0, check.NextCheckInDays)
	at := time.Date(day.Year(), day.Month(), day.Day(), ReminderHour, 0, 0, 0, d.location)

	subject := check.Component
	if subject == "" {
		subject = check.Issue
	}
	ev, err := call(ctx, d, func(ctx context.Context) (*gcalendar.Event, error) {
		return d.deps.Reminders.ScheduleReminder(ctx, gcalendar.ReminderRequest{
			Summary:     fmt.Sprintf("Vehicle check: %s", subject),
			Description: fmt.Sprintf("Reported: %s (severity %s)", check.Issue, check.Severity),
			At:          at,
			Timezone:    d.location.String(),
		})
	})
	if err != nil {
		d.l.Warnf(ctx, "%s: reminder not scheduled: %v", LogPrefixVehicle, err)
		return ""
	}
	return ev.HtmlLink
}
