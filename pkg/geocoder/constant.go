package geocoder

import "time"

const (
	// DefaultAPIURL is the public Nominatim endpoint.
	DefaultAPIURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies the client; Nominatim rejects anonymous callers.
	DefaultUserAgent = "gig-copilot/1.0"

	DefaultTimeout       = 5 * time.Second
	DefaultCacheSize     = 2048
	DefaultCacheTTL      = 24 * time.Hour
	DefaultRatePerSecond = 1.0

	earthRadiusKm = 6371.0
)
