package observability

import (
	"context"

	"go.uber.org/zap"

	"gig-copilot/internal/model"
	"gig-copilot/pkg/log"
)

// Audit writes one structured entry per routing decision so a turn can be
// reconstructed from logs. Utterance text is never logged, only its length.
type Audit struct {
	z *zap.Logger
}

// NewAudit wraps z. A nil z discards entries.
func NewAudit(z *zap.Logger) *Audit {
	if z == nil {
		z = zap.NewNop()
	}
	return &Audit{z: z.Named("audit")}
}

func (a *Audit) fields(ctx context.Context) []zap.Field {
	return []zap.Field{zap.String("trace_id", log.TraceID(ctx)), zap.String("user_id", log.UserID(ctx))}
}

// Classification records the intent decision of a turn.
func (a *Audit) Classification(ctx context.Context, textLen int, ic model.IntentClassification) {
	if a == nil {
		return
	}
	a.z.Info("classification", append(a.fields(ctx),
		zap.String("category", string(ic.Category)),
		zap.Float64("confidence", ic.Confidence),
		zap.Bool("continuation", ic.Continuation),
		zap.Bool("degraded", ic.Degraded),
		zap.String("guess", string(ic.Guess)),
		zap.String("reason", ic.Reason),
		zap.Int("text_len", textLen),
	)...)
}

// Outcome records the handler result of a turn. Failures are logged at
// warn level with the underlying error.
func (a *Audit) Outcome(ctx context.Context, res model.HandlerResult) {
	if a == nil {
		return
	}
	fields := append(a.fields(ctx),
		zap.String("category", string(res.Category)),
		zap.String("outcome", string(res.Outcome)),
	)
	switch res.Outcome {
	case model.OutcomeNeedsClarification:
		a.z.Info("dispatch", append(fields, zap.String("reason", string(res.Reason)), zap.Strings("missing", res.Missing))...)
	case model.OutcomeFailed:
		a.z.Warn("dispatch", append(fields, zap.String("fail_reason", string(res.FailReason)), zap.Error(res.Err))...)
	default:
		a.z.Info("dispatch", fields...)
	}
}
