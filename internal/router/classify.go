package router

import (
	"context"
	"fmt"
	"strings"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
	"gig-copilot/internal/nlu/rules"
	"gig-copilot/pkg/money"
)

type memoKey struct {
	text       string
	pending    model.ActionKind
	lastIntent model.Category
}

// Classify never fails: an unreachable capability routes to general with
// Degraded set.
func (r *IntentClassifier) Classify(ctx context.Context, u model.Utterance, cc *model.ConversationContext) model.IntentClassification {
	now := u.ReceivedAt
	if now.IsZero() {
		now = r.now()
	}

	key := memoKey{text: normaliseText(u.Text)}
	if cc != nil {
		key.lastIntent = cc.LastIntent
		if p := cc.LivePending(now); p != nil {
			key.pending = p.Kind
		}
	}

	if key.pending != "" && rules.Inspect(u.Text).Cancel {
		return model.IntentClassification{
			Category:   model.CategoryGeneral,
			Confidence: 1,
			Cancel:     true,
			Reason:     ReasonCancel,
		}
	}
	if key.pending != "" && isContinuation(u.Text, key.pending.Category()) {
		return model.IntentClassification{
			Category:     key.pending.Category(),
			Confidence:   1,
			Continuation: true,
			Reason:       ReasonContinuation,
		}
	}

	if cached, ok := r.memo.Get(key); ok {
		return cached
	}

	out, ok := r.ask(ctx, u.Text, key)
	if ok {
		r.memo.Add(key, out)
	}
	r.l.Infof(ctx, "%s: category=%s confidence=%.2f guess=%s degraded=%t", LogPrefixClassify, out.Category, out.Confidence, out.Guess, out.Degraded)
	return out
}

func (r *IntentClassifier) ask(ctx context.Context, text string, key memoKey) (model.IntentClassification, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	guess, err := r.capability.Understand(ctx, nlu.Request{
		Task:       nlu.TaskClassify,
		Text:       text,
		Labels:     model.Categories(),
		Pending:    key.pending,
		LastIntent: key.lastIntent,
	})
	if err != nil {
		r.l.Warnf(ctx, "%s: %v: capability %s: %v", LogPrefixClassify, model.ErrClassificationDegraded, r.capability.Name(), err)
		return model.IntentClassification{
			Category: model.CategoryGeneral,
			Degraded: true,
			Reason:   ReasonDegraded,
		}, false
	}

	conf := clamp(guess.Confidence)
	label, known := model.ParseCategory(strings.ToLower(strings.TrimSpace(guess.Label)))
	switch {
	case !known:
		return model.IntentClassification{
			Category:   model.CategoryGeneral,
			Confidence: conf,
			Reason:     fmt.Sprintf("%s: %q", ReasonUnknownLabel, guess.Label),
		}, true
	case conf < r.threshold && label != model.CategoryGeneral:
		return model.IntentClassification{
			Category:   model.CategoryGeneral,
			Confidence: conf,
			Guess:      label,
			Reason:     fmt.Sprintf("%s (%.2f < %.2f)", ReasonBelowThreshold, conf, r.threshold),
		}, true
	default:
		return model.IntentClassification{
			Category:   label,
			Confidence: conf,
			Guess:      label,
			Reason:     guess.Reason,
		}, true
	}
}

// isContinuation reports whether text reads as an answer to the pending
// question of category pending: a bare amount, a short statement that cues
// no other category, or a short statement with an amount that cues no other
// action.
func isContinuation(text string, pending model.Category) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := money.Parse(text); err == nil {
		return true
	}
	if len(strings.Fields(text)) > ContinuationMaxWords {
		return false
	}
	sig := rules.Inspect(text)
	if sig.Question {
		return false
	}
	if !sig.CuesOther(pending) {
		return true
	}
	if len(money.Find(text)) == 0 {
		return false
	}
	for _, c := range sig.Cued {
		if c != pending && c.IsAction() {
			return false
		}
	}
	return true
}

func normaliseText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
