package upstream

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

func newQuietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.IncludeSource = false
	cfg.DefaultLevel = slog.LevelError

	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func newTestClient(t *testing.T, url string) *SlotsLaunchClient {
	t.Helper()
	return NewSlotsLaunchClient(SlotsLaunchConfig{
		APIURL:       url,
		Token:        "test-token",
		PerPage:      150,
		GameType:     "22",
		Origin:       "https://roulettesim.app",
		MinInterval:  time.Second,
		FetchTimeout: 5 * time.Second,
	}, newQuietLogger(t))
}

func TestFetchGamesShapesResponse(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "https://roulettesim.app", r.Header.Get("Origin"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{
				"id": 101,
				"name": "Classic European Roulette",
				"provider": "Evolution Gaming",
				"thumb": "https://cdn.example.com/101.png",
				"url": "https://play.example.com/101",
				"published": 1,
				"min_bet": "0.50",
				"max_bet": "2500",
				"rtp": 97.3,
				"featured": true,
				"autoplay": true,
				"type": "Roulette",
				"type_slug": "roulette"
			},
			{
				"id": 102,
				"name": "Golden Wheel",
				"provider": "NetEnt",
				"published": 0,
				"min_bet": "",
				"max_bet": "",
				"description": "Double zero American style table"
			}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	games, err := client.FetchGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, []string{"test-token"}, gotQuery["token"])
	assert.Equal(t, []string{"150"}, gotQuery["per_page"])
	assert.Equal(t, []string{"1"}, gotQuery["published"])
	assert.Equal(t, []string{"22"}, gotQuery["type[]"])

	first := games[0]
	assert.Equal(t, "101", first.ID)
	assert.Equal(t, "european", first.Variant)
	assert.Equal(t, "https://cdn.example.com/101.png", first.Thumbnail)
	assert.Equal(t, "https://play.example.com/101", first.IframeURL)
	assert.True(t, first.IsAvailable)
	assert.Equal(t, 0.5, first.Metadata.MinBet)
	assert.Equal(t, 2500.0, first.Metadata.MaxBet)
	assert.Equal(t, 80, first.Metadata.Popularity)
	assert.Contains(t, first.Metadata.Features, "autoplay")

	second := games[1]
	assert.Equal(t, "american", second.Variant)
	assert.False(t, second.IsAvailable)
	// Unparseable bet limits fall back to defaults.
	assert.Equal(t, 1.0, second.Metadata.MinBet)
	assert.Equal(t, 1000.0, second.Metadata.MaxBet)
	assert.Equal(t, 50, second.Metadata.Popularity)
}

func TestFetchGamesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.FetchGames(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchGamesMissingToken(t *testing.T) {
	client := NewSlotsLaunchClient(SlotsLaunchConfig{APIURL: "https://example.com"}, newQuietLogger(t))

	_, err := client.FetchGames(context.Background())
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAllowFetchRateLimits(t *testing.T) {
	client := NewSlotsLaunchClient(SlotsLaunchConfig{MinInterval: time.Hour}, newQuietLogger(t))

	assert.True(t, client.AllowFetch())
	assert.False(t, client.AllowFetch())
}

func TestAllowFetchRecoversAfterInterval(t *testing.T) {
	client := NewSlotsLaunchClient(SlotsLaunchConfig{MinInterval: 10 * time.Millisecond}, newQuietLogger(t))

	assert.True(t, client.AllowFetch())
	assert.False(t, client.AllowFetch())
	time.Sleep(20 * time.Millisecond)
	assert.True(t, client.AllowFetch())
}
