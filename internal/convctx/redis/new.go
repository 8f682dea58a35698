package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"gig-copilot/internal/convctx"
	"gig-copilot/internal/model"
	"gig-copilot/pkg/log"
)

const logPrefix = "internal.convctx.redis"

type implStore struct {
	client *goredis.Client
	ttl    time.Duration
	l      log.Logger
}

// New creates a Redis-backed Store. Each context is one JSON value whose
// expiry is refreshed on every save.
func New(client *goredis.Client, ttl time.Duration, l log.Logger) convctx.Store {
	if client == nil {
		panic("convctx/redis: client is required")
	}
	if ttl <= 0 {
		ttl = convctx.DefaultIdleTTL
	}
	return &implStore{client: client, ttl: ttl, l: l}
}

func (s *implStore) Load(ctx context.Context, userID string) (*model.ConversationContext, error) {
	if userID == "" {
		return nil, convctx.ErrEmptyUserID
	}
	data, err := s.client.Get(ctx, convctx.Key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.NewConversationContext(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", convctx.ErrFailedToLoad, err)
	}

	var cc model.ConversationContext
	if err := json.Unmarshal(data, &cc); err != nil {
		// A corrupt entry is dropped rather than blocking the user.
		s.l.Warnf(ctx, "%s: discarding unreadable context for %s: %v", logPrefix, userID, err)
		return model.NewConversationContext(userID), nil
	}
	cc.UserID = userID
	return &cc, nil
}

func (s *implStore) Save(ctx context.Context, cc *model.ConversationContext) error {
	if cc == nil || cc.UserID == "" {
		return convctx.ErrEmptyUserID
	}
	data, err := json.Marshal(cc)
	if err != nil {
		return fmt.Errorf("%w: %w", convctx.ErrFailedToSave, err)
	}
	if err := s.client.Set(ctx, convctx.Key(cc.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", convctx.ErrFailedToSave, err)
	}
	return nil
}

func (s *implStore) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return convctx.ErrEmptyUserID
	}
	return s.client.Del(ctx, convctx.Key(userID)).Err()
}
