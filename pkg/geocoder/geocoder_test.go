package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) IGeocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := New(Config{APIURL: srv.URL, Region: "Bengaluru", CountryCodes: "in", RatePerSecond: 1000, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return g
}

func TestResolve(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Indiranagar, Bengaluru", r.URL.Query().Get("q"))
		assert.Equal(t, "in", r.URL.Query().Get("countrycodes"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"12.9719","lon":"77.6412","display_name":"Indiranagar, Bengaluru"}]`))
	})

	p, err := g.Resolve(context.Background(), "  Indiranagar ")
	require.NoError(t, err)
	assert.InDelta(t, 12.9719, p.Lat, 1e-9)
	assert.InDelta(t, 77.6412, p.Lon, 1e-9)

	_, err = g.Resolve(context.Background(), "indiranagar")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load(), "second lookup is cached")
}

func TestResolve_NotFoundIsCached(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := g.Resolve(context.Background(), "Nowhere Nagar")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = g.Resolve(context.Background(), "Nowhere Nagar")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 1, calls.Load())
}

func TestResolve_ServerError(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := g.Resolve(context.Background(), "HSR Layout")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestResolve_Empty(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := g.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPlace)
}

func TestDistance(t *testing.T) {
	indiranagar := model.GeoPoint{Lat: 12.9719, Lon: 77.6412}
	whitefield := model.GeoPoint{Lat: 12.9698, Lon: 77.7500}

	assert.InDelta(t, 11.8, RoundKm(Distance(indiranagar, whitefield)), 1e-9)
	assert.Zero(t, Distance(indiranagar, indiranagar))
}
