package stores

import (
	"sync"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// GamesEntry is one cached aggregator payload, keyed by filter set.
type GamesEntry struct {
	Games     []catalog.RouletteGame
	FetchedAt time.Time
}

// GamesStore caches shaped aggregator responses per filter key with a
// freshness window. Stale entries stay retrievable for fallback.
type GamesStore struct {
	entries map[string]*GamesEntry
	ttl     time.Duration
	mu      sync.RWMutex
	logger  *logging.ChanneledLogger
}

// NewGamesStore creates a games cache with the given freshness window.
func NewGamesStore(ttl time.Duration, logger *logging.ChanneledLogger) *GamesStore {
	if logger != nil {
		logger.Cache().Info("Initializing games cache store", "ttl", ttl)
	}
	return &GamesStore{
		entries: make(map[string]*GamesEntry),
		ttl:     ttl,
		logger:  logger,
	}
}

// GetFresh returns the cached payload for key only when within the
// freshness window.
func (gs *GamesStore) GetFresh(key string) ([]catalog.RouletteGame, bool) {
	start := time.Now()
	gs.mu.RLock()
	entry, found := gs.entries[key]
	gs.mu.RUnlock()

	fresh := found && time.Since(entry.FetchedAt) < gs.ttl
	if gs.logger != nil {
		gs.logger.LogCacheOperation("get_fresh", "games:"+key, fresh, time.Since(start))
	}
	if !fresh {
		return nil, false
	}
	return entry.Games, true
}

// GetAny returns any cached payload regardless of age. Used when the
// upstream is unavailable and stale data beats no data.
func (gs *GamesStore) GetAny() ([]catalog.RouletteGame, bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	var newest *GamesEntry
	for _, entry := range gs.entries {
		if newest == nil || entry.FetchedAt.After(newest.FetchedAt) {
			newest = entry
		}
	}
	if newest == nil {
		return nil, false
	}
	return newest.Games, true
}

// Set stores a freshly fetched payload under key.
func (gs *GamesStore) Set(key string, games []catalog.RouletteGame) {
	gs.mu.Lock()
	gs.entries[key] = &GamesEntry{Games: games, FetchedAt: time.Now().UTC()}
	gs.mu.Unlock()
}
