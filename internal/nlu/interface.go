package nlu

import "context"

// Capability is the language understanding collaborator. It proposes labels
// and raw slot spans; it never normalises values or applies thresholds.
type Capability interface {
	Understand(ctx context.Context, req Request) (Guess, error)
	Name() string
}
