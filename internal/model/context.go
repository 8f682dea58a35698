package model

import (
	"strings"
	"time"
)

// EntityKind classifies a recently mentioned entity.
type EntityKind string

const (
	EntityGoal      EntityKind = "goal"
	EntityPlace     EntityKind = "place"
	EntityComponent EntityKind = "component"
)

// EntityRef points at something the driver mentioned recently.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
	Name string     `json:"name"`
}

// PendingAction is an action waiting for more slots.
type PendingAction struct {
	ID        string         `json:"id"`
	Kind      ActionKind     `json:"kind"`
	Slots     ExtractedSlots `json:"slots"`
	Missing   []string       `json:"missing"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Live reports whether the pending action can still be resumed at now.
func (p *PendingAction) Live(now time.Time) bool {
	return p != nil && now.Before(p.ExpiresAt)
}

// ConversationContext is the per-user state carried between turns.
type ConversationContext struct {
	UserID         string         `json:"user_id"`
	LastIntent     Category       `json:"last_intent,omitempty"`
	Pending        *PendingAction `json:"pending,omitempty"`
	RecentEntities []EntityRef    `json:"recent_entities,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewConversationContext returns an empty context for userID.
func NewConversationContext(userID string) *ConversationContext {
	return &ConversationContext{UserID: userID}
}

// LivePending returns the pending action if it has not expired.
func (c *ConversationContext) LivePending(now time.Time) *PendingAction {
	if c == nil || !c.Pending.Live(now) {
		return nil
	}
	return c.Pending
}

// PushEntity records ref as most recent, dropping duplicates and keeping at most limit entries.
func (c *ConversationContext) PushEntity(ref EntityRef, limit int) {
	if strings.TrimSpace(ref.Name) == "" {
		return
	}
	out := []EntityRef{ref}
	for _, e := range c.RecentEntities {
		if e.Kind == ref.Kind && strings.EqualFold(e.Name, ref.Name) {
			continue
		}
		out = append(out, e)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	c.RecentEntities = out
}

// LatestEntity returns the most recent entity of kind.
func (c *ConversationContext) LatestEntity(kind EntityKind) (EntityRef, bool) {
	for _, e := range c.RecentEntities {
		if e.Kind == kind {
			return e, true
		}
	}
	return EntityRef{}, false
}

// Clone returns a deep copy that can be mutated during a turn.
func (c *ConversationContext) Clone() *ConversationContext {
	if c == nil {
		return nil
	}
	out := *c
	out.RecentEntities = append([]EntityRef(nil), c.RecentEntities...)
	if c.Pending != nil {
		p := *c.Pending
		p.Slots = c.Pending.Slots.Clone()
		p.Missing = append([]string(nil), c.Pending.Missing...)
		out.Pending = &p
	}
	return &out
}
