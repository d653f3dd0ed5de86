package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// GameHandlers serves the roulette game catalog.
type GameHandlers struct {
	gameService *services.GameService
	logger      *logging.ChanneledLogger
}

// NewGameHandlers creates game handlers with injected dependencies.
func NewGameHandlers(gameService *services.GameService, logger *logging.ChanneledLogger) *GameHandlers {
	return &GameHandlers{
		gameService: gameService,
		logger:      logger,
	}
}

// GetGames returns the filtered game list. Degraded payloads carry a notice
// field instead of failing.
func (h *GameHandlers) GetGames(c *gin.Context) {
	start := time.Now()

	filters := catalog.GameFilters{
		Variant:  c.Query("variant"),
		Provider: c.Query("provider"),
	}
	if raw := c.Query("minBet"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinBet = value
		}
	}
	if raw := c.Query("maxBet"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxBet = value
		}
	}

	games, notice, err := h.gameService.GetGames(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, services.ErrGamesUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"games": []catalog.RouletteGame{},
				"error": "Games temporarily unavailable",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Catalog().Debug("Games request completed",
		"count", len(games), "variant", filters.Variant, "duration", time.Since(start))

	payload := gin.H{"games": games}
	if notice != "" {
		payload["notice"] = notice
	}
	c.JSON(http.StatusOK, payload)
}

// GetGame returns one game by id for the play-page embed.
func (h *GameHandlers) GetGame(c *gin.Context) {
	game, notice, err := h.gameService.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrGamesUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Games temporarily unavailable"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	payload := gin.H{"game": game}
	if notice != "" {
		payload["notice"] = notice
	}
	c.JSON(http.StatusOK, payload)
}

// GetVariants returns the display metadata for the known wheel types.
func (h *GameHandlers) GetVariants(c *gin.Context) {
	variants := []gin.H{}
	for _, variant := range []string{"european", "american", "french"} {
		variants = append(variants, gin.H{
			"variant":     variant,
			"displayName": catalog.VariantDisplayName(variant),
			"description": catalog.VariantDescription(variant),
		})
	}
	c.JSON(http.StatusOK, gin.H{"variants": variants})
}
