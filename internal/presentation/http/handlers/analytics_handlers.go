package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/domain/events"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/presentation/http/middleware"
)

// AnalyticsHandlers ingests frontend tracking events.
type AnalyticsHandlers struct {
	analyticsService  *services.AnalyticsService
	experimentService *services.ExperimentService
	logger            *logging.ChanneledLogger
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies.
func NewAnalyticsHandlers(analyticsService *services.AnalyticsService, experimentService *services.ExperimentService, logger *logging.ChanneledLogger) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService:  analyticsService,
		experimentService: experimentService,
		logger:            logger,
	}
}

// PostSessionEvent records one tracked interaction against the visitor
// session.
func (h *AnalyticsHandlers) PostSessionEvent(c *gin.Context) {
	var event events.SessionEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data"})
		return
	}

	if err := h.analyticsService.ProcessSessionEvent(c.Request.Context(), event); err != nil {
		if errors.Is(err, services.ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostExperimentEvent records one A/B-test interaction.
func (h *AnalyticsHandlers) PostExperimentEvent(c *gin.Context) {
	var event events.ExperimentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid experiment event data"})
		return
	}

	if err := h.experimentService.RecordEvent(event); err != nil {
		if errors.Is(err, services.ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid experiment event data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetExperimentVariant returns the visitor's sticky variant for an
// experiment, assigning one on first call. An empty variant means the
// visitor is outside the experiment.
func (h *AnalyticsHandlers) GetExperimentVariant(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	variant, err := h.experimentService.Assign(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"experimentId": c.Param("id"),
		"variantId":    variant,
		"included":     variant != "",
	})
}
