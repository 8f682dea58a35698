package nlu

import (
	"context"
	"errors"
	"strings"
)

// Chain asks each capability in order and returns the first answer. Later
// capabilities only run when an earlier one is unavailable or malformed.
type Chain struct {
	capabilities []Capability
}

var _ Capability = (*Chain)(nil)

// NewChain creates a Chain over capabilities.
func NewChain(capabilities ...Capability) *Chain {
	return &Chain{capabilities: capabilities}
}

// Name implements Capability.
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.capabilities))
	for _, capability := range c.capabilities {
		names = append(names, capability.Name())
	}
	return strings.Join(names, ">")
}

// Understand implements Capability.
func (c *Chain) Understand(ctx context.Context, req Request) (Guess, error) {
	errs := make([]error, 0, len(c.capabilities))
	for _, capability := range c.capabilities {
		guess, err := capability.Understand(ctx, req)
		if err == nil {
			return guess, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil || errors.Is(err, ErrUnsupportedTask) {
			break
		}
	}
	if len(errs) == 0 {
		return Guess{}, ErrUnavailable
	}
	return Guess{}, errors.Join(errs...)
}
