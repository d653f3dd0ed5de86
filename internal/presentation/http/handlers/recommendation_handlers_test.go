package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/manager"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/content"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/database"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/visitorstate"
)

type recommendationsResponse struct {
	Recommendations []catalog.CasinoEntry  `json:"recommendations"`
	Rationales      map[string][]string    `json:"rationales"`
	Metadata        RecommendationMetadata `json:"metadata"`
}

func newRecommendationRouter(t *testing.T) (*gin.Engine, *services.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.IncludeSource = false
	cfg.DefaultLevel = slog.LevelError
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)

	db, err := database.NewConnection("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateSchema())

	store := visitorstate.NewStore(db)
	scorer := services.NewConversionScorer(24 * time.Hour)
	sessions := services.NewSessionService(manager.NewManager(logger), store, scorer, logger)
	recommendations := services.NewRecommendationService(content.DefaultCasinoCatalog(), scorer, logger)

	h := NewRecommendationHandlers(recommendations, sessions, nil, logger)
	r := gin.New()
	r.POST("/api/v1/recommendations", h.PostRecommendations)
	return r, sessions
}

func decodeRecommendations(t *testing.T, body []byte) recommendationsResponse {
	t.Helper()
	var resp recommendationsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestPostRecommendationsResponseShape(t *testing.T) {
	r, _ := newRecommendationRouter(t)

	w := postJSON(r, "/api/v1/recommendations", `{
		"sessionId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		"userLocation": "GB"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeRecommendations(t, w.Body.Bytes())
	require.NotEmpty(t, resp.Recommendations)

	for _, rec := range resp.Recommendations {
		assert.True(t, rec.AvailableIn("GB"), "casino %s not available in GB", rec.CasinoID)
		rationale, ok := resp.Rationales[rec.CasinoID]
		assert.True(t, ok, "missing rationale entry for %s", rec.CasinoID)
		assert.NotEmpty(t, rationale)
	}

	assert.Equal(t, len(resp.Recommendations), resp.Metadata.TotalAvailable)
	assert.Equal(t, "GB", resp.Metadata.UserLocation)
	assert.False(t, resp.Metadata.GeneratedAt.IsZero())
}

func TestPostRecommendationsEmptyBodyDefaults(t *testing.T) {
	r, _ := newRecommendationRouter(t)

	w := postJSON(r, "/api/v1/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeRecommendations(t, w.Body.Bytes())
	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, "royal-spin", resp.Recommendations[0].CasinoID)
	for _, rec := range resp.Recommendations {
		assert.InDelta(t, 0.5, rec.MatchingScore, 1e-9)
	}
	assert.Equal(t, "unknown", resp.Metadata.UserLocation)
	assert.Equal(t, 3, resp.Metadata.TotalAvailable)
}

func TestPostRecommendationsBodySessionID(t *testing.T) {
	r, sessions := newRecommendationRouter(t)

	ctx := context.Background()
	sess, err := sessions.GetOrCreate(ctx, "visitor-rec-1")
	require.NoError(t, err)
	require.NoError(t, sessions.RecordGameEngagement(ctx, sess.SessionID, "european", 200000))

	w := postJSON(r, "/api/v1/recommendations", `{"sessionId": "visitor-rec-1", "userLocation": "GB"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeRecommendations(t, w.Body.Bytes())
	require.NotEmpty(t, resp.Recommendations)

	top := resp.Recommendations[0]
	assert.Contains(t, resp.Rationales[top.CasinoID], "Offers your preferred european roulette")
	assert.NotEqual(t, 0.5, top.MatchingScore)
}
