package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/upstream"
	"github.com/roulettesim/roulettesim-go/internal/presentation/http/middleware"
)

// RecommendationRequest is the body for the recommendations endpoint. Both
// fields are optional: SessionID falls back to the session header, and an
// absent UserLocation triggers a best-effort geolocation of the client.
type RecommendationRequest struct {
	SessionID    string `json:"sessionId"`
	UserLocation string `json:"userLocation"`
}

// RecommendationMetadata describes how a recommendations payload was built.
type RecommendationMetadata struct {
	TotalAvailable int       `json:"totalAvailable"`
	UserLocation   string    `json:"userLocation"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// RecommendationHandlers serves ranked casino recommendations.
type RecommendationHandlers struct {
	recommendationService *services.RecommendationService
	sessionService        *services.SessionService
	geoResolver           upstream.GeoResolver
	logger                *logging.ChanneledLogger
}

// NewRecommendationHandlers creates recommendation handlers with injected
// dependencies. geoResolver may be nil when no geolocation endpoint is
// configured.
func NewRecommendationHandlers(
	recommendationService *services.RecommendationService,
	sessionService *services.SessionService,
	geoResolver upstream.GeoResolver,
	logger *logging.ChanneledLogger,
) *RecommendationHandlers {
	return &RecommendationHandlers{
		recommendationService: recommendationService,
		sessionService:        sessionService,
		geoResolver:           geoResolver,
		logger:                logger,
	}
}

// PostRecommendations returns the ranked casino list for the visitor plus a
// per-casino rationale record. New visitors without a session get the default
// promoted entries.
func (h *RecommendationHandlers) PostRecommendations(c *gin.Context) {
	start := time.Now()

	// An empty body is a valid "no preferences" request.
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	region := req.UserLocation
	if region == "" && h.geoResolver != nil {
		resolved, err := h.geoResolver.Resolve(c.Request.Context(), c.ClientIP())
		if err != nil {
			h.logger.Recommend().Warn("Geolocation failed, recommending without region filter", "error", err.Error())
		} else {
			region = resolved
		}
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = middleware.SessionID(c)
	}
	sess := h.sessionService.Get(c.Request.Context(), sessionID)

	recommendations := h.recommendationService.Recommend(sess, region)
	rationales := make(map[string][]string, len(recommendations))
	for i := range recommendations {
		rationales[recommendations[i].CasinoID] = h.recommendationService.Rationale(&recommendations[i], sess)
	}

	userLocation := region
	if userLocation == "" {
		userLocation = "unknown"
	}

	h.logger.Recommend().Debug("Recommendations request completed",
		"count", len(recommendations), "region", region, "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"rationales":      rationales,
		"metadata": RecommendationMetadata{
			TotalAvailable: len(recommendations),
			UserLocation:   userLocation,
			GeneratedAt:    time.Now().UTC(),
		},
	})
}
