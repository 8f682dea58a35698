package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gig-copilot/internal/advisor"
	"gig-copilot/internal/composer"
	"gig-copilot/internal/convctx"
	"gig-copilot/internal/dispatch"
	"gig-copilot/internal/observability"
	"gig-copilot/internal/router"
	"gig-copilot/pkg/log"
)

// Deps are the stages a turn runs through. Metrics and Audit are optional.
type Deps struct {
	Contexts   convctx.Store
	Classifier router.Classifier
	Extractor  SlotExtractor
	Dispatcher dispatch.Dispatcher
	Advisor    advisor.Router
	Composer   composer.Composer
	Metrics    *observability.Metrics
	Audit      *observability.Audit
}

// Options tunes an Orchestrator. Zero durations take the defaults.
type Options struct {
	TurnTimeout time.Duration
	CallTimeout time.Duration
	// CancelSuperseded lets a new utterance cancel the user's in-flight turn
	// while that turn has not started writing.
	CancelSuperseded bool
}

// lane serialises the turns of one user.
type lane struct {
	sem  chan struct{}
	refs int
	// Fields below are guarded by Orchestrator.mu and describe the running turn.
	cancel  context.CancelCauseFunc
	state   State
	writing bool
}

type Orchestrator struct {
	deps Deps
	opts Options
	l    log.Logger
	now  func() time.Time

	mu    sync.Mutex
	lanes map[string]*lane
}

var _ TurnHandler = (*Orchestrator)(nil)

// New creates an Orchestrator.
func New(deps Deps, opts Options, l log.Logger) (*Orchestrator, error) {
	if deps.Contexts == nil || deps.Classifier == nil || deps.Extractor == nil ||
		deps.Dispatcher == nil || deps.Advisor == nil || deps.Composer == nil {
		return nil, fmt.Errorf("orchestrator: missing dependency")
	}
	if opts.TurnTimeout <= 0 {
		opts.TurnTimeout = DefaultTurnTimeout
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	return &Orchestrator{
		deps:  deps,
		opts:  opts,
		l:     l,
		now:   time.Now,
		lanes: make(map[string]*lane),
	}, nil
}
