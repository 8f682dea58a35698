package rules

import (
	"context"
	"fmt"

	"gig-copilot/internal/nlu"
)

// Engine is a deterministic, lexicon driven Capability. It needs no network
// and is used as the offline driver and as the LLM fallback.
type Engine struct{}

var _ nlu.Capability = (*Engine)(nil)

// New creates a rules Engine.
func New() *Engine {
	return &Engine{}
}

// Name implements nlu.Capability.
func (e *Engine) Name() string {
	return Name
}

// Understand implements nlu.Capability.
func (e *Engine) Understand(ctx context.Context, req nlu.Request) (nlu.Guess, error) {
	if err := ctx.Err(); err != nil {
		return nlu.Guess{}, err
	}
	switch req.Task {
	case nlu.TaskClassify:
		return e.classify(req), nil
	case nlu.TaskExtract:
		return e.extract(req), nil
	default:
		return nlu.Guess{}, fmt.Errorf("%w: %s", nlu.ErrUnsupportedTask, req.Task)
	}
}
