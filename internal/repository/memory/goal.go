package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
)

func (r *implRepository) FindGoalsByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Goal(nil), r.goals[userID]...), nil
}

func (r *implRepository) CreateGoal(ctx context.Context, opt repository.CreateGoalOptions) (model.Goal, error) {
	if err := ctx.Err(); err != nil {
		return model.Goal{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := repository.NormaliseName(opt.Name)
	for _, g := range r.goals[opt.UserID] {
		if repository.NormaliseName(g.Name) == key {
			return model.Goal{}, fmt.Errorf("%w: %s", repository.ErrDuplicateGoal, opt.Name)
		}
	}
	now := r.now()
	g := model.Goal{
		ID:        uuid.NewString(),
		UserID:    opt.UserID,
		Name:      opt.Name,
		Target:    opt.Target,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.goals[opt.UserID] = append(r.goals[opt.UserID], g)
	return g, nil
}

func (r *implRepository) Contribute(ctx context.Context, opt repository.ContributeOptions) (model.Goal, error) {
	if err := ctx.Err(); err != nil {
		return model.Goal{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	goals := r.goals[opt.UserID]
	for i := range goals {
		if goals[i].ID != opt.GoalID {
			continue
		}
		goals[i].Saved = goals[i].Saved.Add(opt.Amount)
		goals[i].UpdatedAt = opt.At
		if goals[i].UpdatedAt.IsZero() {
			goals[i].UpdatedAt = r.now()
		}
		return goals[i], nil
	}
	return model.Goal{}, fmt.Errorf("%w: goal %s", repository.ErrNotFound, opt.GoalID)
}
