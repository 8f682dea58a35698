package geocoder

import (
	"errors"
	"net/http"
	"time"
)

// Config configures a Nominatim-compatible client.
type Config struct {
	APIURL    string
	UserAgent string
	// Region is appended to bare place names, e.g. "Bengaluru".
	Region string
	// CountryCodes restricts matches, e.g. "in".
	CountryCodes  string
	RatePerSecond float64
	CacheSize     int
	CacheTTL      time.Duration
	HTTPClient    *http.Client
}

// Validate fills defaults and checks the configuration.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.RatePerSecond < 0 {
		return errors.New("geocoder: rate per second must not be negative")
	}
	if c.RatePerSecond == 0 {
		c.RatePerSecond = DefaultRatePerSecond
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type cacheEntry struct {
	found bool
	lat   float64
	lon   float64
	name  string
}
