package orchestrator

import (
	"context"

	"gig-copilot/internal/model"
)

func (o *Orchestrator) loadContext(ctx context.Context, userID string) *model.ConversationContext {
	lctx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancel()
	cc, err := o.deps.Contexts.Load(lctx, userID)
	if err != nil || cc == nil {
		o.l.Warnf(ctx, "%s: context unavailable, starting fresh: %v", LogPrefixHandleTurn, err)
		return model.NewConversationContext(userID)
	}
	return cc
}

// commit stores the context after a turn. A pending action survives only a
// turn that answered it, failed, or could not be understood.
func (o *Orchestrator) commit(ctx context.Context, cc *model.ConversationContext, ic model.IntentClassification, res model.HandlerResult, pendingBefore *model.PendingAction, u model.Utterance) {
	if !ic.Degraded {
		cc.LastIntent = ic.Category
	}
	if ic.Cancel && pendingBefore != nil {
		o.l.Infof(ctx, "%s: driver cancelled pending %s", LogPrefixCommit, pendingBefore.Kind)
		cc.Pending = nil
	}
	if pendingBefore != nil && cc.Pending == pendingBefore &&
		ic.Category != pendingBefore.Kind.Category() &&
		!ic.Degraded && res.Outcome != model.OutcomeFailed {
		o.l.Infof(ctx, "%s: dropping pending %s after unrelated turn", LogPrefixCommit, pendingBefore.Kind)
		cc.Pending = nil
	}
	cc.UpdatedAt = u.ReceivedAt

	// An acknowledged write must be reflected even if the turn was cancelled.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.opts.CallTimeout)
	defer cancel()
	if err := o.deps.Contexts.Save(sctx, cc); err != nil {
		o.l.Errorf(ctx, "%s: save context: %v", LogPrefixCommit, err)
	}
}
