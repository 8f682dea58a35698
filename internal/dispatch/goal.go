package dispatch

import (
	"context"
	"errors"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
)

func (d *implDispatcher) dispatchGoal(ctx context.Context, cc *model.ConversationContext, s model.ExtractedSlots) model.HandlerResult {
	c := model.CategoryGoalAction

	req, res, ok := buildGoal(s)
	if !ok {
		return res
	}
	if res, stop := cancelled(ctx, c); stop {
		return res
	}

	goals, err := call(ctx, d, func(ctx context.Context) ([]model.Goal, error) {
		return d.deps.Goals.FindGoalsByUser(ctx, cc.UserID)
	})
	if err != nil {
		return d.failure(ctx, LogPrefixGoal, c, "find goals", err)
	}

	if req.Op == model.GoalOpCreate {
		return d.createGoal(ctx, cc, req, goals)
	}
	return d.contribute(ctx, cc, req, goals)
}

// buildGoal infers the operation, validates amounts and lists missing fields.
func buildGoal(s model.ExtractedSlots) (model.GoalUpdate, model.HandlerResult, bool) {
	c := model.CategoryGoalAction
	var req model.GoalUpdate
	req.GoalName, _ = s.String(model.SlotGoalName)

	if v, ok := s.Money(model.SlotTargetAmount); ok {
		if !v.IsPositive() {
			return req, model.NeedsValid(c, model.SlotTargetAmount, DetailNotPositive), false
		}
		req.Target = &v
	}
	if v, ok := s.Money(model.SlotContribution); ok {
		if !v.IsPositive() {
			return req, model.NeedsValid(c, model.SlotContribution, DetailNotPositive), false
		}
		req.Contribution = &v
	}

	op, _ := s.String(model.SlotGoalOp)
	req.Op = model.GoalOp(op)
	if req.Op != model.GoalOpCreate && req.Op != model.GoalOpContribute {
		switch {
		case req.Contribution != nil:
			req.Op = model.GoalOpContribute
		case req.Target != nil:
			req.Op = model.GoalOpCreate
		default:
			return req, model.NeedsMissing(c, []string{model.SlotGoalOp}), false
		}
	}

	var missing []string
	switch req.Op {
	case model.GoalOpCreate:
		if req.GoalName == "" {
			missing = append(missing, model.SlotGoalName)
		}
		if req.Target == nil {
			missing = append(missing, model.SlotTargetAmount)
		}
	case model.GoalOpContribute:
		if req.Contribution == nil {
			missing = append(missing, model.SlotContribution)
		}
	}
	if len(missing) > 0 {
		return req, model.NeedsMissing(c, missing), false
	}
	return req, model.HandlerResult{}, true
}

func (d *implDispatcher) createGoal(ctx context.Context, cc *model.ConversationContext, req model.GoalUpdate, goals []model.Goal) model.HandlerResult {
	c := model.CategoryGoalAction
	if exact, _ := matchGoals(req.GoalName, goals, d.opts.FuzzyThreshold); exact != nil {
		return model.NeedsValid(c, model.SlotGoalName, DetailDuplicate)
	}

	if res, stop := cancelled(ctx, c); stop {
		return res
	}
	g, err := call(ctx, d, func(ctx context.Context) (model.Goal, error) {
		return d.deps.Goals.CreateGoal(ctx, repository.CreateGoalOptions{UserID: cc.UserID, Name: req.GoalName, Target: *req.Target})
	})
	if errors.Is(err, repository.ErrDuplicateGoal) {
		return model.NeedsValid(c, model.SlotGoalName, DetailDuplicate)
	}
	if err != nil {
		return d.failure(ctx, LogPrefixGoal, c, "create goal", err)
	}

	d.remember(cc, model.EntityRef{Kind: model.EntityGoal, ID: g.ID, Name: g.Name})
	return model.Completed(c, model.GoalOutcome{Goal: g, Op: model.GoalOpCreate, Amount: g.Target})
}

func (d *implDispatcher) contribute(ctx context.Context, cc *model.ConversationContext, req model.GoalUpdate, goals []model.Goal) model.HandlerResult {
	c := model.CategoryGoalAction

	goal, res, ok := d.resolveGoal(cc, req.GoalName, goals)
	if !ok {
		return res
	}
	amount := *req.Contribution

	if res, stop := cancelled(ctx, c); stop {
		return res
	}
	g, err := call(ctx, d, func(ctx context.Context) (model.Goal, error) {
		return d.deps.Goals.Contribute(ctx, repository.ContributeOptions{UserID: cc.UserID, GoalID: goal.ID, Amount: amount, At: d.now()})
	})
	if err != nil {
		return d.failure(ctx, LogPrefixGoal, c, "contribute", err)
	}

	d.remember(cc, model.EntityRef{Kind: model.EntityGoal, ID: g.ID, Name: g.Name})
	return model.Completed(c, model.GoalOutcome{Goal: g, Op: model.GoalOpContribute, Amount: amount})
}

// resolveGoal picks the goal a contribution is meant for. Without a name
// the most recently mentioned goal wins, then the only goal.
func (d *implDispatcher) resolveGoal(cc *model.ConversationContext, name string, goals []model.Goal) (model.Goal, model.HandlerResult, bool) {
	c := model.CategoryGoalAction
	if len(goals) == 0 {
		return model.Goal{}, model.NeedsValid(c, model.SlotGoalName, DetailNoGoals), false
	}

	if name == "" {
		if ref, ok := cc.LatestEntity(model.EntityGoal); ok {
			for _, g := range goals {
				if g.ID == ref.ID {
					return g, model.HandlerResult{}, true
				}
			}
		}
		if len(goals) == 1 {
			return goals[0], model.HandlerResult{}, true
		}
		return model.Goal{}, model.NeedsChoice(c, model.SlotGoalName, goalNames(goals)), false
	}

	exact, candidates := matchGoals(name, goals, d.opts.FuzzyThreshold)
	switch {
	case exact != nil:
		return *exact, model.HandlerResult{}, true
	case len(candidates) == 1:
		return candidates[0], model.HandlerResult{}, true
	case len(candidates) > 1:
		return model.Goal{}, model.NeedsChoice(c, model.SlotGoalName, goalNames(candidates)), false
	default:
		res := model.NeedsValid(c, model.SlotGoalName, DetailUnknown)
		res.Candidates = goalNames(goals)
		return model.Goal{}, res, false
	}
}

