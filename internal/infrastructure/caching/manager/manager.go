// Package manager wires the cache stores into a single handle the services
// share.
package manager

import (
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/stores"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/pkg/config"
)

// Manager owns the in-memory cache stores.
type Manager struct {
	Sessions *stores.SessionsStore
	Games    *stores.GamesStore
}

// NewManager creates the cache stores with configured TTLs.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		Sessions: stores.NewSessionsStore(config.SessionTTL, logger),
		Games:    stores.NewGamesStore(config.GamesCacheTTL, logger),
	}
}
