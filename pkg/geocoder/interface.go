package geocoder

import (
	"context"

	"gig-copilot/internal/model"
)

// IGeocoder resolves free-text place names.
// Implementations are safe for concurrent use.
type IGeocoder interface {
	// Resolve returns the best match for place, or ErrNotFound.
	Resolve(ctx context.Context, place string) (model.GeoPoint, error)
}

// New creates a Nominatim-compatible geocoder with a result cache.
func New(cfg Config) (IGeocoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newNominatimImpl(cfg), nil
}
