package orchestrator

import "gig-copilot/internal/model"

// Reply is what the driver sees for one turn.
type Reply struct {
	TurnID   string         `json:"turn_id"`
	Text     string         `json:"reply"`
	Category model.Category `json:"category"`
	Degraded bool           `json:"degraded"`
	Action   *ActionSummary `json:"action,omitempty"`
}

// ActionSummary describes the action a turn worked on.
type ActionSummary struct {
	Kind     model.ActionKind `json:"kind"`
	Outcome  model.Outcome    `json:"outcome"`
	RecordID string           `json:"record_id,omitempty"`
	Missing  []string         `json:"missing,omitempty"`
}
