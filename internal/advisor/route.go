package advisor

import (
	"context"
	"errors"
	"fmt"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
	"gig-copilot/pkg/retry"
)

// Route delegates to the advisor for kind. It never writes.
func (r *implRouter) Route(ctx context.Context, kind model.AnalysisKind, query model.AdvisorQuery, cc *model.ConversationContext) model.HandlerResult {
	if cc == nil {
		cc = model.NewConversationContext("")
	}
	if query.Range.From.IsZero() || !query.Range.To.After(query.Range.From) {
		query.Range = r.defaultRange()
	}

	var res model.HandlerResult
	switch kind {
	case model.AnalysisEarnings:
		res = r.earnings(ctx, cc.UserID, query)
	case model.AnalysisVehicle:
		res = r.vehicle(ctx, cc.UserID, query)
	case model.AnalysisFinancial:
		res = r.financial(ctx, cc.UserID, query)
	default:
		r.l.Errorf(ctx, "%s: unknown analysis kind %q", LogPrefixRoute, kind)
		return model.Failed(model.CategoryGeneral, model.FailInternal, model.ErrValidationFailed)
	}
	r.l.Infof(ctx, "%s: kind=%s range=%q outcome=%s", LogPrefixRoute, kind, query.Range.Label, res.Outcome)
	return res
}

func (r *implRouter) listTrips(ctx context.Context, userID string, rg model.TimeRange) ([]model.Trip, error) {
	return fetch(ctx, r, func(ctx context.Context) ([]model.Trip, error) {
		return r.readers.Trips.ListTrips(ctx, repository.ListTripsOptions{UserID: userID, From: rg.From, To: rg.To})
	})
}

func (r *implRouter) listChecks(ctx context.Context, userID string, rg model.TimeRange) ([]model.HealthCheck, error) {
	return fetch(ctx, r, func(ctx context.Context) ([]model.HealthCheck, error) {
		return r.readers.Checks.ListChecks(ctx, repository.ListChecksOptions{UserID: userID, From: rg.From, To: rg.To})
	})
}

func (r *implRouter) listGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	return fetch(ctx, r, func(ctx context.Context) ([]model.Goal, error) {
		return r.readers.Goals.FindGoalsByUser(ctx, userID)
	})
}

func fetch[T any](ctx context.Context, r *implRouter, fn func(ctx context.Context) (T, error)) (T, error) {
	p := retry.Once(r.opts.RetryDelay, r.opts.CallTimeout)
	p.Retryable = func(err error) bool { return !errors.Is(err, context.Canceled) }
	return retry.DoValue(ctx, p, fn)
}

func (r *implRouter) failure(ctx context.Context, prefix string, c model.Category, err error) model.HandlerResult {
	reason := model.FailUnavailable
	switch {
	case errors.Is(err, context.Canceled):
		reason = model.FailCancelled
	case errors.Is(err, context.DeadlineExceeded):
		reason = model.FailTimeout
	}
	r.l.Warnf(ctx, "%s: history unavailable (%s): %v", prefix, reason, err)
	return model.Failed(c, reason, fmt.Errorf("%w: %w", model.ErrHandlerUnavailable, err))
}
