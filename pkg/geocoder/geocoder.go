package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"gig-copilot/internal/model"
)

type nominatimImpl struct {
	cfg     Config
	limiter *rate.Limiter
	cache   *expirable.LRU[string, cacheEntry]
}

func newNominatimImpl(cfg Config) *nominatimImpl {
	return &nominatimImpl{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		cache:   expirable.NewLRU[string, cacheEntry](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Resolve looks place up, serving repeated names from the cache.
// Misses are cached too so an unknown name is not retried every turn.
func (n *nominatimImpl) Resolve(ctx context.Context, place string) (model.GeoPoint, error) {
	query := n.query(place)
	if query == "" {
		return model.GeoPoint{}, ErrEmptyPlace
	}
	key := strings.ToLower(query)
	if e, ok := n.cache.Get(key); ok {
		return e.point()
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return model.GeoPoint{}, fmt.Errorf("geocoder: rate limit wait: %w", err)
	}
	e, err := n.search(ctx, query)
	if err != nil {
		return model.GeoPoint{}, err
	}
	n.cache.Add(key, e)
	return e.point()
}

func (n *nominatimImpl) query(place string) string {
	place = strings.Join(strings.Fields(place), " ")
	if place == "" {
		return ""
	}
	if n.cfg.Region != "" && !strings.Contains(place, ",") {
		place += ", " + n.cfg.Region
	}
	return place
}

func (n *nominatimImpl) search(ctx context.Context, query string) (cacheEntry, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if n.cfg.CountryCodes != "" {
		params.Set("countrycodes", n.cfg.CountryCodes)
	}
	endpoint := strings.TrimRight(n.cfg.APIURL, "/") + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("geocoder: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", n.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.cfg.HTTPClient.Do(req)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("geocoder: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return cacheEntry{}, fmt.Errorf("geocoder: API error %d: %s", resp.StatusCode, string(raw))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return cacheEntry{}, fmt.Errorf("geocoder: failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return cacheEntry{}, nil
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return cacheEntry{}, fmt.Errorf("geocoder: bad coordinates %q,%q", results[0].Lat, results[0].Lon)
	}
	return cacheEntry{found: true, lat: lat, lon: lon, name: results[0].DisplayName}, nil
}

func (e cacheEntry) point() (model.GeoPoint, error) {
	if !e.found {
		return model.GeoPoint{}, ErrNotFound
	}
	return model.GeoPoint{Lat: e.lat, Lon: e.lon, DisplayName: e.name}, nil
}
