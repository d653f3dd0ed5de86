// Package upstream holds the HTTP clients for external services: the
// SlotsLaunch game aggregator and the geolocation lookup.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// ErrMissingToken is returned when no API token is configured; callers fall
// back to cached or mock data.
var ErrMissingToken = errors.New("aggregator API token not configured")

// ErrThrottled is returned when a fetch lands inside the rate-limit window
// and no cached payload exists yet.
var ErrThrottled = errors.New("aggregator fetch throttled")

// slotsLaunchGame is the upstream wire shape of one game.
type slotsLaunchGame struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Provider    string      `json:"provider"`
	Thumb       string      `json:"thumb"`
	URL         string      `json:"url"`
	Published   int         `json:"published"`
	MinBet      string      `json:"min_bet"`
	MaxBet      string      `json:"max_bet"`
	RTP         float64     `json:"rtp"`
	Volatility  string      `json:"volatility"`
	Reels       int         `json:"reels"`
	Payline     int         `json:"payline"`
	Megaways    bool        `json:"megaways"`
	BonusBuy    bool        `json:"bonus_buy"`
	Progressive bool        `json:"progressive"`
	Autoplay    bool        `json:"autoplay"`
	Featured    bool        `json:"featured"`
	Type        string      `json:"type"`
	TypeSlug    string      `json:"type_slug"`
	Description string      `json:"description"`
	Themes      []string    `json:"themes"`
}

type slotsLaunchResponse struct {
	Data []slotsLaunchGame `json:"data"`
}

// SlotsLaunchConfig carries the aggregator parameters.
type SlotsLaunchConfig struct {
	APIURL       string
	Token        string
	PerPage      int
	GameType     string
	Origin       string
	MinInterval  time.Duration
	FetchTimeout time.Duration
}

// SlotsLaunchClient fetches and shapes the roulette game catalog. A built-in
// limiter allows at most one upstream call per MinInterval; concurrent
// callers inside that window must reuse cached data instead.
type SlotsLaunchClient struct {
	cfg       SlotsLaunchConfig
	http      *http.Client
	logger    *logging.ChanneledLogger
	mu        sync.Mutex
	lastFetch time.Time
}

// NewSlotsLaunchClient creates an aggregator client.
func NewSlotsLaunchClient(cfg SlotsLaunchConfig, logger *logging.ChanneledLogger) *SlotsLaunchClient {
	return &SlotsLaunchClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.FetchTimeout},
		logger: logger,
	}
}

// AllowFetch reserves the rate-limit slot. When it returns false the caller
// must serve cached data rather than going upstream.
func (c *SlotsLaunchClient) AllowFetch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastFetch) < c.cfg.MinInterval {
		return false
	}
	c.lastFetch = time.Now()
	return true
}

// FetchGames calls the aggregator and shapes the response into the domain
// catalog. Errors on missing token or non-2xx status.
func (c *SlotsLaunchClient) FetchGames(ctx context.Context) ([]catalog.RouletteGame, error) {
	if c.cfg.Token == "" {
		return nil, ErrMissingToken
	}

	apiURL, err := url.Parse(c.cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid aggregator URL: %w", err)
	}
	params := apiURL.Query()
	params.Set("token", c.cfg.Token)
	params.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	params.Set("published", "1")
	params.Set("type[]", c.cfg.GameType)
	apiURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build aggregator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", c.cfg.Origin)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Upstream().Error("Aggregator request failed", "error", err.Error(), "duration", time.Since(start))
		return nil, fmt.Errorf("aggregator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Upstream().Error("Aggregator returned non-2xx status", "status", resp.StatusCode)
		return nil, fmt.Errorf("aggregator responded with %d", resp.StatusCode)
	}

	var payload slotsLaunchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode aggregator response: %w", err)
	}

	games := make([]catalog.RouletteGame, 0, len(payload.Data))
	for _, g := range payload.Data {
		games = append(games, shapeGame(g))
	}

	c.logger.Upstream().Info("Aggregator catalog fetched", "games", len(games), "duration", time.Since(start))
	return games, nil
}

func shapeGame(g slotsLaunchGame) catalog.RouletteGame {
	minBet, err := strconv.ParseFloat(g.MinBet, 64)
	if err != nil {
		minBet = 1
	}
	maxBet, err := strconv.ParseFloat(g.MaxBet, 64)
	if err != nil {
		maxBet = 1000
	}

	var features []string
	if g.Megaways {
		features = append(features, "megaways")
	}
	if g.BonusBuy {
		features = append(features, "bonus_buy")
	}
	if g.Progressive {
		features = append(features, "progressive")
	}
	if g.Autoplay {
		features = append(features, "autoplay")
	}

	popularity := 50
	if g.Featured {
		popularity = 80
	}

	searchFields := append([]string{g.Name, g.Description, g.Type, g.TypeSlug}, g.Themes...)

	return catalog.RouletteGame{
		ID:          g.ID.String(),
		Name:        g.Name,
		Provider:    g.Provider,
		Variant:     catalog.DetectVariant(searchFields...),
		Thumbnail:   g.Thumb,
		IframeURL:   g.URL,
		IsAvailable: g.Published == 1,
		Metadata: catalog.GameMetadata{
			MinBet:     minBet,
			MaxBet:     maxBet,
			Features:   features,
			Popularity: popularity,
			RTP:        g.RTP,
			Volatility: g.Volatility,
			Reels:      g.Reels,
			Paylines:   g.Payline,
		},
		CacheTimestamp: time.Now().UnixMilli(),
	}
}
