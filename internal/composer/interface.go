package composer

import (
	"context"

	"gig-copilot/internal/model"
)

// Composer renders handler results as reply text. Output depends only on
// the result, so identical results always read the same.
type Composer interface {
	Compose(ctx context.Context, res model.HandlerResult) string
}
