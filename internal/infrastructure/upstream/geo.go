package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// ErrGeoUnavailable is returned when no region could be resolved; callers
// surface a user-facing message but session flow is unaffected.
var ErrGeoUnavailable = errors.New("geolocation unavailable")

// GeoResolver resolves a client address to a region code.
type GeoResolver interface {
	Resolve(ctx context.Context, clientIP string) (string, error)
}

// HTTPGeoResolver queries an IP-geolocation endpoint expected to answer
// {"countryCode": "XX"}. An empty endpoint disables resolution.
type HTTPGeoResolver struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	logger   *logging.ChanneledLogger
}

// NewHTTPGeoResolver creates a resolver with the caller-supplied timeout.
func NewHTTPGeoResolver(endpoint string, timeout time.Duration, logger *logging.ChanneledLogger) *HTTPGeoResolver {
	return &HTTPGeoResolver{
		endpoint: endpoint,
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Resolve looks up the region for clientIP.
func (r *HTTPGeoResolver) Resolve(ctx context.Context, clientIP string) (string, error) {
	if r.endpoint == "" {
		return "", ErrGeoUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?ip="+url.QueryEscape(clientIP), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build geolocation request: %w", err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		r.logger.Upstream().Warn("Geolocation request failed", "error", err.Error())
		return "", ErrGeoUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrGeoUnavailable
	}

	var payload struct {
		CountryCode string `json:"countryCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.CountryCode == "" {
		return "", ErrGeoUnavailable
	}
	return payload.CountryCode, nil
}

// CachedGeoResolver wraps a resolver with per-IP result caching bounded by a
// maximum staleness.
type CachedGeoResolver struct {
	inner     GeoResolver
	staleness time.Duration
	mu        sync.Mutex
	results   map[string]geoResult
}

type geoResult struct {
	region     string
	resolvedAt time.Time
}

// NewCachedGeoResolver wraps inner with a staleness-bounded cache.
func NewCachedGeoResolver(inner GeoResolver, staleness time.Duration) *CachedGeoResolver {
	return &CachedGeoResolver{
		inner:     inner,
		staleness: staleness,
		results:   make(map[string]geoResult),
	}
}

// Resolve serves a cached region while within the staleness bound, otherwise
// delegates to the wrapped resolver.
func (r *CachedGeoResolver) Resolve(ctx context.Context, clientIP string) (string, error) {
	r.mu.Lock()
	cached, found := r.results[clientIP]
	r.mu.Unlock()

	if found && time.Since(cached.resolvedAt) < r.staleness {
		return cached.region, nil
	}

	region, err := r.inner.Resolve(ctx, clientIP)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.results[clientIP] = geoResult{region: region, resolvedAt: time.Now()}
	r.mu.Unlock()
	return region, nil
}
