package dispatch

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"gig-copilot/internal/model"
)

// Dispatch merges slots with a pending action of the same kind, validates
// and executes the action. A pending action of another kind is overwritten
// when this one needs clarification.
func (d *implDispatcher) Dispatch(ctx context.Context, kind model.ActionKind, slots model.ExtractedSlots, cc *model.ConversationContext) model.HandlerResult {
	if cc == nil {
		cc = model.NewConversationContext("")
	}
	now := d.now()

	merged := slots.Clone()
	var pendingID string
	if p := cc.LivePending(now); p != nil && p.Kind == kind {
		merged = p.Slots.Merge(slots)
		pendingID = p.ID
	}

	var res model.HandlerResult
	switch kind {
	case model.ActionTrip:
		res = d.dispatchTrip(ctx, cc, merged)
	case model.ActionVehicle:
		res = d.dispatchVehicle(ctx, cc, merged)
	case model.ActionGoal:
		res = d.dispatchGoal(ctx, cc, merged)
	default:
		d.l.Errorf(ctx, "%s: unknown action kind %q", LogPrefixDispatch, kind)
		return model.Failed(model.CategoryGeneral, model.FailInternal, model.ErrValidationFailed)
	}

	switch res.Outcome {
	case model.OutcomeCompleted:
		cc.Pending = nil
	case model.OutcomeNeedsClarification:
		d.setPending(cc, kind, pendingID, merged, res, now)
	}
	d.l.Infof(ctx, "%s: kind=%s outcome=%s reason=%s missing=%v", LogPrefixDispatch, kind, res.Outcome, res.Reason, res.Missing)
	return res
}

// setPending keeps the collected slots so a follow-up can complete the
// action. Fields being asked about again are dropped from the kept slots.
func (d *implDispatcher) setPending(cc *model.ConversationContext, kind model.ActionKind, id string, slots model.ExtractedSlots, res model.HandlerResult, now time.Time) {
	kept := slots.Clone()
	if res.Reason != model.ClarifyMissing {
		for _, f := range res.Missing {
			kept.Drop(f)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	created := now
	if cc.Pending != nil && cc.Pending.ID == id {
		created = cc.Pending.CreatedAt
	}
	cc.Pending = &model.PendingAction{
		ID:        id,
		Kind:      kind,
		Slots:     kept,
		Missing:   slices.Clone(res.Missing),
		CreatedAt: created,
		ExpiresAt: now.Add(d.opts.PendingTTL),
	}
}

func (d *implDispatcher) remember(cc *model.ConversationContext, refs ...model.EntityRef) {
	for _, ref := range refs {
		cc.PushEntity(ref, d.opts.RecentEntities)
	}
}
