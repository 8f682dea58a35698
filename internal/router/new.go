package router

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
	"gig-copilot/pkg/log"
)

// Classifier routes an utterance onto the closed category set.
type Classifier interface {
	Classify(ctx context.Context, u model.Utterance, cc *model.ConversationContext) model.IntentClassification
}

// Options tunes an IntentClassifier. Zero values take the defaults.
type Options struct {
	Threshold float64
	Timeout   time.Duration
	MemoSize  int
}

// IntentClassifier classifies with an nlu.Capability and memoises the
// answers so the same inputs always get the same category.
type IntentClassifier struct {
	capability nlu.Capability
	l          log.Logger
	threshold  float64
	timeout    time.Duration
	memo       *lru.Cache[memoKey, model.IntentClassification]
	now        func() time.Time
}

var _ Classifier = (*IntentClassifier)(nil)

// New creates an IntentClassifier.
func New(capability nlu.Capability, l log.Logger, opts Options) (*IntentClassifier, error) {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MemoSize <= 0 {
		opts.MemoSize = DefaultMemoSize
	}
	memo, err := lru.New[memoKey, model.IntentClassification](opts.MemoSize)
	if err != nil {
		return nil, err
	}
	return &IntentClassifier{
		capability: capability,
		l:          l,
		threshold:  opts.Threshold,
		timeout:    opts.Timeout,
		memo:       memo,
		now:        time.Now,
	}, nil
}
