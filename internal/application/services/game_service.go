package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/manager"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/content"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/upstream"
)

// StaleDataNotice accompanies a games payload served from an expired cache
// because the aggregator was unreachable.
const StaleDataNotice = "API unavailable, using cached data"

// ErrGamesUnavailable is returned when neither the aggregator, the cache,
// nor the built-in catalog can serve the request.
var ErrGamesUnavailable = errors.New("games temporarily unavailable")

// GameService serves the roulette game catalog with a layered fallback:
// fresh cache, then the aggregator, then any stale cache, then the built-in
// mock catalog. The aggregator is called at most once per rate-limit window.
type GameService struct {
	cache  *manager.Manager
	client *upstream.SlotsLaunchClient
	logger *logging.ChanneledLogger
}

// NewGameService creates the game catalog service.
func NewGameService(cache *manager.Manager, client *upstream.SlotsLaunchClient, logger *logging.ChanneledLogger) *GameService {
	return &GameService{
		cache:  cache,
		client: client,
		logger: logger,
	}
}

// GetGames returns the filtered game list plus an optional notice when the
// payload came from a degraded source.
func (gs *GameService) GetGames(ctx context.Context, filters catalog.GameFilters) ([]catalog.RouletteGame, string, error) {
	key := cacheKey(filters)

	if games, ok := gs.cache.Games.GetFresh(key); ok {
		return games, "", nil
	}

	err := upstream.ErrThrottled
	if gs.client.AllowFetch() {
		var games []catalog.RouletteGame
		if games, err = gs.client.FetchGames(ctx); err == nil {
			filtered := catalog.FilterGames(games, filters)
			gs.cache.Games.Set(key, filtered)
			return filtered, "", nil
		}
	}
	if errors.Is(err, upstream.ErrThrottled) {
		gs.logger.Catalog().Debug("Aggregator fetch throttled, serving cached data")
	} else {
		gs.logger.Catalog().Warn("Aggregator fetch failed, falling back", "error", err.Error())
	}

	if games, ok := gs.cache.Games.GetAny(); ok {
		return catalog.FilterGames(games, filters), StaleDataNotice, nil
	}

	if mock := catalog.FilterGames(content.MockGameCatalog(), filters); len(mock) > 0 {
		gs.logger.Catalog().Warn("Serving built-in game catalog")
		return mock, StaleDataNotice, nil
	}

	return nil, "", ErrGamesUnavailable
}

// GetGame resolves a single game by id, for the play-page embed.
func (gs *GameService) GetGame(ctx context.Context, gameID string) (*catalog.RouletteGame, string, error) {
	games, notice, err := gs.GetGames(ctx, catalog.GameFilters{})
	if err != nil {
		return nil, "", err
	}
	for i := range games {
		if games[i].ID == gameID {
			return &games[i], notice, nil
		}
	}
	return nil, notice, fmt.Errorf("game %s not found", gameID)
}

// cacheKey folds the filter set into the cache key so differently filtered
// payloads never collide.
func cacheKey(filters catalog.GameFilters) string {
	variant := filters.Variant
	if variant == "" {
		variant = "all"
	}
	provider := filters.Provider
	if provider == "" {
		provider = "all"
	}
	return fmt.Sprintf("%s-%s-%g-%g", variant, provider, filters.MinBet, filters.MaxBet)
}
