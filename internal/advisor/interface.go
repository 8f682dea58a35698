package advisor

import (
	"context"

	"gig-copilot/internal/model"
)

// Router answers read-only analytical questions from stored history.
type Router interface {
	// Query turns the utterance and its extracted slots into an AdvisorQuery,
	// defaulting the range to the last DefaultRangeDays days.
	Query(kind model.AnalysisKind, text string, slots model.ExtractedSlots) model.AdvisorQuery
	Route(ctx context.Context, kind model.AnalysisKind, query model.AdvisorQuery, cc *model.ConversationContext) model.HandlerResult
}
