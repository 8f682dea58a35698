package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"gig-copilot/internal/convctx"
	"gig-copilot/internal/model"
)

type implStore struct {
	cache *expirable.LRU[string, *model.ConversationContext]
}

// New creates a process-local Store. Contexts idle longer than ttl, or
// beyond maxUsers, are evicted.
func New(maxUsers int, ttl time.Duration) convctx.Store {
	if maxUsers <= 0 {
		maxUsers = convctx.DefaultMaxUsers
	}
	if ttl <= 0 {
		ttl = convctx.DefaultIdleTTL
	}
	return &implStore{cache: expirable.NewLRU[string, *model.ConversationContext](maxUsers, nil, ttl)}
}

func (s *implStore) Load(ctx context.Context, userID string) (*model.ConversationContext, error) {
	if userID == "" {
		return nil, convctx.ErrEmptyUserID
	}
	if cc, ok := s.cache.Get(userID); ok {
		return cc.Clone(), nil
	}
	return model.NewConversationContext(userID), nil
}

func (s *implStore) Save(ctx context.Context, cc *model.ConversationContext) error {
	if cc == nil || cc.UserID == "" {
		return convctx.ErrEmptyUserID
	}
	s.cache.Add(cc.UserID, cc.Clone())
	return nil
}

func (s *implStore) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return convctx.ErrEmptyUserID
	}
	s.cache.Remove(userID)
	return nil
}
