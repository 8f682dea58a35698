package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gig-copilot/internal/model"
	repo "gig-copilot/internal/repository"
)

const (
	goalColumns = `id, user_id, name, target, saved, created_at, updated_at`

	// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint hit.
	uniqueViolation = "23505"
)

// FindGoalsByUser returns every goal of a user, oldest first.
func (r *implRepository) FindGoalsByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("FindGoalsByUser"), err)
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrFailedToList, err)
	}
	return goals, nil
}

// CreateGoal inserts a goal. Names are unique per user after normalisation.
func (r *implRepository) CreateGoal(ctx context.Context, opt repo.CreateGoalOptions) (model.Goal, error) {
	query := `
		INSERT INTO goals (user_id, name, name_key, target, saved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
		RETURNING ` + goalColumns

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, opt.UserID, opt.Name, repo.NormaliseName(opt.Name), opt.Target))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.Goal{}, fmt.Errorf("%w: %s", repo.ErrDuplicateGoal, opt.Name)
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateGoal"), err)
		return model.Goal{}, fmt.Errorf("%w: %w", repo.ErrFailedToInsert, err)
	}
	return g, nil
}

// Contribute adds to a goal's saved amount atomically.
func (r *implRepository) Contribute(ctx context.Context, opt repo.ContributeOptions) (model.Goal, error) {
	query := `
		UPDATE goals SET saved = saved + $1, updated_at = COALESCE($2, NOW())
		WHERE id = $3 AND user_id = $4
		RETURNING ` + goalColumns

	var at sql.NullTime
	if !opt.At.IsZero() {
		at = sql.NullTime{Time: opt.At, Valid: true}
	}

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, opt.Amount, at, opt.GoalID, opt.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, fmt.Errorf("%w: goal %s", repo.ErrNotFound, opt.GoalID)
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Contribute"), err)
		return model.Goal{}, fmt.Errorf("%w: %w", repo.ErrFailedToUpdate, err)
	}
	return g, nil
}

func scanGoal(s scanner) (model.Goal, error) {
	var g model.Goal
	err := s.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Saved, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}
