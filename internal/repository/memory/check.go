package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
)

func (r *implRepository) CreateCheck(ctx context.Context, opt repository.CreateCheckOptions) (model.HealthCheck, error) {
	if err := ctx.Err(); err != nil {
		return model.HealthCheck{}, err
	}
	c := model.HealthCheck{
		ID:                uuid.NewString(),
		UserID:            opt.UserID,
		Issue:             opt.Issue,
		Component:         opt.Component,
		Severity:          opt.Severity,
		SeverityDefaulted: opt.SeverityDefaulted,
		Recommendations:   append([]string(nil), opt.Recommendations...),
		NextCheckInDays:   opt.NextCheckInDays,
		ReminderLink:      opt.ReminderLink,
		ReportedAt:        opt.ReportedAt,
	}
	if c.ReportedAt.IsZero() {
		c.ReportedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[opt.UserID] = append(r.checks[opt.UserID], c)
	return c, nil
}

func (r *implRepository) ListChecks(ctx context.Context, opt repository.ListChecksOptions) ([]model.HealthCheck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.HealthCheck
	for _, c := range r.checks[opt.UserID] {
		if repository.InRange(c.ReportedAt, opt.From, opt.To) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}
