package model

// Outcome tags a HandlerResult.
type Outcome string

const (
	OutcomeCompleted          Outcome = "completed"
	OutcomeNeedsClarification Outcome = "needs_clarification"
	OutcomeFailed             Outcome = "failed"
)

// ClarifyReason says why a follow-up question is needed.
type ClarifyReason string

const (
	ClarifyMissing   ClarifyReason = "missing"
	ClarifyInvalid   ClarifyReason = "invalid"
	ClarifyAmbiguous ClarifyReason = "ambiguous"
)

// FailReason classifies a failure for the composer. It never carries internals.
type FailReason string

const (
	FailUnavailable FailReason = "unavailable"
	FailTimeout     FailReason = "timeout"
	FailCancelled   FailReason = "cancelled"
	FailInternal    FailReason = "internal"
)

// HandlerResult is the outcome of dispatching an action or routing a question.
// Exactly one of the outcome specific field groups is meaningful.
type HandlerResult struct {
	Outcome  Outcome
	Category Category

	// Completed
	Payload any

	// NeedsClarification
	Reason     ClarifyReason
	Missing    []string
	Field      string
	Detail     string
	Candidates []string

	// Failed
	FailReason FailReason
	Err        error
}

// Completed builds a successful result.
func Completed(c Category, payload any) HandlerResult {
	return HandlerResult{Outcome: OutcomeCompleted, Category: c, Payload: payload}
}

// NeedsMissing asks for the listed absent fields.
func NeedsMissing(c Category, missing []string) HandlerResult {
	return HandlerResult{
		Outcome:  OutcomeNeedsClarification,
		Category: c,
		Reason:   ClarifyMissing,
		Missing:  append([]string(nil), missing...),
	}
}

// NeedsValid asks the driver to correct an invalid field. detail is a short
// machine key such as "negative" or "same_place".
func NeedsValid(c Category, field, detail string) HandlerResult {
	return HandlerResult{
		Outcome:  OutcomeNeedsClarification,
		Category: c,
		Reason:   ClarifyInvalid,
		Missing:  []string{field},
		Field:    field,
		Detail:   detail,
	}
}

// NeedsChoice asks the driver to pick one of several candidates.
func NeedsChoice(c Category, field string, candidates []string) HandlerResult {
	return HandlerResult{
		Outcome:    OutcomeNeedsClarification,
		Category:   c,
		Reason:     ClarifyAmbiguous,
		Missing:    []string{field},
		Field:      field,
		Candidates: append([]string(nil), candidates...),
	}
}

// Failed builds a failure result. err is kept for logs only.
func Failed(c Category, reason FailReason, err error) HandlerResult {
	return HandlerResult{Outcome: OutcomeFailed, Category: c, FailReason: reason, Err: err}
}
