package http

import (
	"strings"
	"time"

	"gig-copilot/internal/model"
	"gig-copilot/internal/orchestrator"
)

// --- Request DTOs ---

type chatReq struct {
	UserID    string     `json:"userId"    binding:"required,max=128"`
	Query     string     `json:"query"     binding:"required,max=2000"`
	Timestamp *time.Time `json:"timestamp"`
	Locale    string     `json:"locale"    binding:"omitempty,max=16"`
}

func (r chatReq) validate() error {
	if strings.TrimSpace(r.UserID) == "" || strings.TrimSpace(r.Query) == "" {
		return errInvalidRequest
	}
	return nil
}

func (r chatReq) toUtterance(now time.Time) model.Utterance {
	u := model.Utterance{
		UserID:     strings.TrimSpace(r.UserID),
		Text:       r.Query,
		ReceivedAt: now,
		Locale:     r.Locale,
	}
	if r.Timestamp != nil && !r.Timestamp.IsZero() {
		u.ReceivedAt = *r.Timestamp
	}
	return u
}

// --- Response DTOs ---

type actionResp struct {
	Kind     string   `json:"kind"`
	Outcome  string   `json:"outcome"`
	RecordID string   `json:"recordId,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

type chatResp struct {
	TurnID   string      `json:"turnId"`
	Reply    string      `json:"reply"`
	Category string      `json:"category"`
	Degraded bool        `json:"degraded"`
	Action   *actionResp `json:"action,omitempty"`
}

func (h *handler) newChatResp(r orchestrator.Reply) chatResp {
	resp := chatResp{
		TurnID:   r.TurnID,
		Reply:    r.Text,
		Category: string(r.Category),
		Degraded: r.Degraded,
	}
	if r.Action != nil {
		resp.Action = &actionResp{
			Kind:     string(r.Action.Kind),
			Outcome:  string(r.Action.Outcome),
			RecordID: r.Action.RecordID,
			Missing:  r.Action.Missing,
		}
	}
	return resp
}
