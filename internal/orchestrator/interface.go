package orchestrator

import (
	"context"

	"gig-copilot/internal/model"
	"gig-copilot/internal/slots"
)

// TurnHandler processes one utterance end to end.
type TurnHandler interface {
	HandleTurn(ctx context.Context, u model.Utterance) (Reply, error)
}

// SlotExtractor is the part of the slot extractor a turn needs.
type SlotExtractor interface {
	Extract(ctx context.Context, text string, schema slots.Schema, focus []string) slots.Result
}
