package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"gig-copilot/internal/model"
	"gig-copilot/internal/observability"
	"gig-copilot/internal/slots"
	"gig-copilot/pkg/log"
)

// HandleTurn runs Idle -> Classifying -> Dispatching -> Responding -> Idle
// for one utterance. Turns of the same user run one at a time. The returned
// error is only set for invalid input or when ctx ends while queued.
func (o *Orchestrator) HandleTurn(ctx context.Context, u model.Utterance) (Reply, error) {
	u.UserID = strings.TrimSpace(u.UserID)
	if u.UserID == "" {
		return Reply{}, ErrEmptyUserID
	}
	if strings.TrimSpace(u.Text) == "" {
		return Reply{}, ErrEmptyText
	}
	if u.ReceivedAt.IsZero() {
		u.ReceivedAt = o.now()
	}

	start := o.now()
	turnID := uuid.NewString()
	ctx = log.WithUserID(log.WithTraceID(ctx, turnID), u.UserID)
	ctx, span := observability.StartSpan(ctx, observability.SpanTurn,
		attribute.String(observability.AttrTurnID, turnID),
		attribute.String(observability.AttrUserID, u.UserID))

	ln, err := o.enter(ctx, u.UserID)
	if err != nil {
		observability.EndSpan(span, err)
		return Reply{}, err
	}
	defer o.leave(u.UserID, ln, true)

	turnCtx, cancelTurn := context.WithCancelCause(ctx)
	defer cancelTurn(nil)
	o.started(ln, cancelTurn)
	turnCtx, cancelTimeout := context.WithTimeout(turnCtx, o.opts.TurnTimeout)
	defer cancelTimeout()

	reply, res := o.run(turnCtx, ln, u)
	reply.TurnID = turnID

	span.SetAttributes(
		attribute.String(observability.AttrCategory, string(reply.Category)),
		attribute.String(observability.AttrOutcome, string(res.Outcome)),
	)
	var spanErr error
	if res.Outcome == model.OutcomeFailed {
		spanErr = res.Err
		if spanErr == nil {
			spanErr = fmt.Errorf("%s", res.FailReason)
		}
	}
	observability.EndSpan(span, spanErr)
	o.deps.Metrics.ObserveTurn(string(reply.Category), string(res.Outcome), o.now().Sub(start))
	return reply, nil
}

func (o *Orchestrator) run(ctx context.Context, ln *lane, u model.Utterance) (Reply, model.HandlerResult) {
	cc := o.loadContext(ctx, u.UserID)
	if cc.Pending != nil && !cc.Pending.Live(u.ReceivedAt) {
		o.l.Infof(ctx, "%s: pending %s expired", LogPrefixHandleTurn, cc.Pending.Kind)
		cc.Pending = nil
	}
	pendingBefore := cc.Pending

	o.transition(ctx, ln, StateClassifying, false)
	cctx, cspan := observability.StartSpan(ctx, observability.SpanClassify)
	ic := o.deps.Classifier.Classify(cctx, u, cc)
	observability.EndSpan(cspan, nil)
	o.deps.Audit.Classification(ctx, len(u.Text), ic)
	o.deps.Metrics.ObserveClassification(string(ic.Category), ic.Degraded)

	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		return o.superseded(ctx, ic)
	}

	_, writes := ic.Category.ActionKind()
	o.transition(ctx, ln, StateDispatching, writes)
	hctx, hspan := observability.StartSpan(ctx, observability.SpanHandle,
		attribute.String(observability.AttrCategory, string(ic.Category)))
	res := o.handle(hctx, u, ic, cc)
	observability.EndSpan(hspan, res.Err)
	o.deps.Audit.Outcome(ctx, res)
	if res.Outcome == model.OutcomeFailed {
		o.deps.Metrics.ObserveFailure(string(res.Category), string(res.FailReason))
	}

	if res.Outcome == model.OutcomeFailed && res.FailReason == model.FailCancelled &&
		errors.Is(context.Cause(ctx), ErrSuperseded) {
		return o.superseded(ctx, ic)
	}

	o.transition(ctx, ln, StateResponding, false)
	reply := Reply{
		Text:     o.deps.Composer.Compose(ctx, res),
		Category: ic.Category,
		Degraded: ic.Degraded || isDegraded(res),
		Action:   summarise(res),
	}

	o.commit(ctx, cc, ic, res, pendingBefore, u)
	return reply, res
}

// handle routes the classified utterance to its handler. A panic becomes a
// Failed result.
func (o *Orchestrator) handle(ctx context.Context, u model.Utterance, ic model.IntentClassification, cc *model.ConversationContext) (res model.HandlerResult) {
	defer func() {
		if r := recover(); r != nil {
			o.l.Errorf(ctx, "%s: handler panic for %s: %v", LogPrefixHandleTurn, ic.Category, r)
			res = model.Failed(ic.Category, model.FailInternal, fmt.Errorf("%w: %v", errPanic, r))
		}
	}()

	if kind, ok := ic.Category.ActionKind(); ok {
		var focus []string
		if p := cc.LivePending(u.ReceivedAt); p != nil && p.Kind == kind {
			focus = p.Missing
		}
		ex := o.deps.Extractor.Extract(ctx, u.Text, slots.ForAction(kind), focus)
		if ex.Degraded {
			o.l.Warnf(ctx, "%s: %v for %s", LogPrefixHandleTurn, model.ErrExtractionIncomplete, kind)
			return model.Completed(model.CategoryGeneral, model.GeneralReply{Degraded: true})
		}
		return o.deps.Dispatcher.Dispatch(ctx, kind, ex.Slots, cc)
	}

	if kind, ok := ic.Category.AnalysisKind(); ok {
		ex := o.deps.Extractor.Extract(ctx, u.Text, slots.AdvisorSchema, nil)
		q := o.deps.Advisor.Query(kind, u.Text, ex.Slots)
		return o.deps.Advisor.Route(ctx, kind, q, cc)
	}

	reply := model.GeneralReply{Degraded: ic.Degraded, Guess: ic.Guess}
	if p := cc.LivePending(u.ReceivedAt); ic.Cancel && p != nil {
		reply.Cancelled = p.Kind
	}
	return model.Completed(model.CategoryGeneral, reply)
}

// superseded ends a turn that a newer utterance replaced. Nothing is committed.
func (o *Orchestrator) superseded(ctx context.Context, ic model.IntentClassification) (Reply, model.HandlerResult) {
	o.l.Infof(ctx, "%s: superseded during %s", LogPrefixHandleTurn, ic.Category)
	res := model.Failed(ic.Category, model.FailCancelled, ErrSuperseded)
	return Reply{
		Text:     o.deps.Composer.Compose(ctx, res),
		Category: ic.Category,
	}, res
}

func isDegraded(res model.HandlerResult) bool {
	g, ok := res.Payload.(model.GeneralReply)
	return ok && g.Degraded
}

func summarise(res model.HandlerResult) *ActionSummary {
	kind, ok := res.Category.ActionKind()
	if !ok {
		return nil
	}
	s := &ActionSummary{Kind: kind, Outcome: res.Outcome, Missing: res.Missing}
	switch p := res.Payload.(type) {
	case model.Trip:
		s.RecordID = p.ID
	case model.HealthCheck:
		s.RecordID = p.ID
	case model.GoalOutcome:
		s.RecordID = p.Goal.ID
	}
	return s
}
