// Package handlers provides the HTTP handlers for the public API surface.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/presentation/http/middleware"
)

// VisitHandlers resolves visitor sessions at the start of a page visit.
type VisitHandlers struct {
	sessionService *services.SessionService
	logger         *logging.ChanneledLogger
}

// NewVisitHandlers creates visit handlers with injected dependencies.
func NewVisitHandlers(sessionService *services.SessionService, logger *logging.ChanneledLogger) *VisitHandlers {
	return &VisitHandlers{
		sessionService: sessionService,
		logger:         logger,
	}
}

// PostVisit returns the visitor's session, minting one when the supplied
// token is absent or unknown.
func (h *VisitHandlers) PostVisit(c *gin.Context) {
	start := time.Now()

	sess, err := h.sessionService.GetOrCreate(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Session().Debug("Visit resolved", "sessionId", sess.SessionID, "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sess.SessionID,
		"session":   sess,
	})
}
