package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"gig-copilot/internal/model"
	repo "gig-copilot/internal/repository"
)

const checkColumns = `id, user_id, issue, component, severity, severity_defaulted, recommendations, next_check_in_days, reminder_link, reported_at`

// CreateCheck inserts a vehicle health check.
func (r *implRepository) CreateCheck(ctx context.Context, opt repo.CreateCheckOptions) (model.HealthCheck, error) {
	query := `
		INSERT INTO health_checks (user_id, issue, component, severity, severity_defaulted, recommendations, next_check_in_days, reminder_link, reported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
		RETURNING ` + checkColumns

	var reportedAt sql.NullTime
	if !opt.ReportedAt.IsZero() {
		reportedAt = sql.NullTime{Time: opt.ReportedAt, Valid: true}
	}

	c, err := scanCheck(r.db.QueryRowContext(ctx, query,
		opt.UserID, opt.Issue, opt.Component, string(opt.Severity), opt.SeverityDefaulted,
		pq.Array(opt.Recommendations), opt.NextCheckInDays, opt.ReminderLink, reportedAt,
	))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateCheck"), err)
		return model.HealthCheck{}, fmt.Errorf("%w: %w", repo.ErrFailedToInsert, err)
	}
	return c, nil
}

// ListChecks returns a user's health checks, newest first.
func (r *implRepository) ListChecks(ctx context.Context, opt repo.ListChecksOptions) ([]model.HealthCheck, error) {
	mods, args := buildUserRangeQuery("reported_at", opt.UserID, opt.From, opt.To, opt.Limit)
	query := fmt.Sprintf(`SELECT %s FROM health_checks %s`, checkColumns, mods)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListChecks"), err)
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	defer rows.Close()

	var checks []model.HealthCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	return checks, nil
}

func scanCheck(s scanner) (model.HealthCheck, error) {
	var (
		c        model.HealthCheck
		severity string
		recs     pq.StringArray
	)
	err := s.Scan(&c.ID, &c.UserID, &c.Issue, &c.Component, &severity, &c.SeverityDefaulted,
		&recs, &c.NextCheckInDays, &c.ReminderLink, &c.ReportedAt)
	if err != nil {
		return model.HealthCheck{}, err
	}
	c.Severity = model.Severity(severity)
	c.Recommendations = []string(recs)
	return c, nil
}
