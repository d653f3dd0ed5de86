package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/manager"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/upstream"
)

const aggregatorPayload = `{"data": [
	{"id": 1, "name": "European Roulette", "provider": "Evolution Gaming", "published": 1, "min_bet": "1", "max_bet": "1000"},
	{"id": 2, "name": "American Roulette", "provider": "NetEnt", "published": 1, "min_bet": "1", "max_bet": "500"}
]}`

func newGameFixture(t *testing.T, handler http.HandlerFunc, minInterval time.Duration) (*GameService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := newTestLogger(t)
	client := upstream.NewSlotsLaunchClient(upstream.SlotsLaunchConfig{
		APIURL:       server.URL,
		Token:        "test-token",
		PerPage:      150,
		GameType:     "22",
		MinInterval:  minInterval,
		FetchTimeout: 5 * time.Second,
	}, logger)

	return NewGameService(manager.NewManager(logger), client, logger), server
}

func TestGetGamesFetchesAndCaches(t *testing.T) {
	var calls atomic.Int32
	gs, _ := newGameFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(aggregatorPayload))
	}, 0)

	games, notice, err := gs.GetGames(context.Background(), catalog.GameFilters{})
	require.NoError(t, err)
	assert.Empty(t, notice)
	assert.Len(t, games, 2)

	// Second request is a fresh cache hit; the aggregator is not called again.
	games, notice, err = gs.GetGames(context.Background(), catalog.GameFilters{})
	require.NoError(t, err)
	assert.Empty(t, notice)
	assert.Len(t, games, 2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetGamesStaleCacheFallback(t *testing.T) {
	var fail atomic.Bool
	gs, _ := newGameFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(aggregatorPayload))
	}, 0)

	_, _, err := gs.GetGames(context.Background(), catalog.GameFilters{})
	require.NoError(t, err)

	// A differently filtered request misses the cache key; with the upstream
	// down it falls back to the newest cached payload, filtered.
	fail.Store(true)
	games, notice, err := gs.GetGames(context.Background(), catalog.GameFilters{Variant: "european"})
	require.NoError(t, err)
	assert.Equal(t, StaleDataNotice, notice)
	require.Len(t, games, 1)
	assert.Equal(t, "European Roulette", games[0].Name)
}

func TestGetGamesMockFallback(t *testing.T) {
	gs, _ := newGameFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 0)

	games, notice, err := gs.GetGames(context.Background(), catalog.GameFilters{})
	require.NoError(t, err)
	assert.Equal(t, StaleDataNotice, notice)
	require.NotEmpty(t, games)
	assert.Equal(t, "Classic European Roulette", games[0].Name)
}

func TestGetGamesThrottledWithoutCache(t *testing.T) {
	gs, _ := newGameFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(aggregatorPayload))
	}, time.Hour)

	// Consume the rate-limit slot so the service must serve without fetching.
	_, _, err := gs.GetGames(context.Background(), catalog.GameFilters{})
	require.NoError(t, err)

	games, notice, err := gs.GetGames(context.Background(), catalog.GameFilters{Variant: "american"})
	require.NoError(t, err)
	assert.Equal(t, StaleDataNotice, notice)
	require.Len(t, games, 1)
	assert.Equal(t, "American Roulette", games[0].Name)
}

func TestGetGame(t *testing.T) {
	gs, _ := newGameFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(aggregatorPayload))
	}, 0)

	game, _, err := gs.GetGame(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "American Roulette", game.Name)

	_, _, err = gs.GetGame(context.Background(), "999")
	assert.Error(t, err)
}
