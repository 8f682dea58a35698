package convctx

import (
	"context"

	"gig-copilot/internal/model"
)

// Store keeps one ConversationContext per user. Load never returns nil for
// a valid user: an unknown user gets an empty context.
type Store interface {
	Load(ctx context.Context, userID string) (*model.ConversationContext, error)
	Save(ctx context.Context, cc *model.ConversationContext) error
	Clear(ctx context.Context, userID string) error
}
