// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/container"
	"github.com/roulettesim/roulettesim-go/internal/presentation/http/handlers"
	"github.com/roulettesim/roulettesim-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	visitHandlers := handlers.NewVisitHandlers(container.SessionService, container.Logger)
	gameHandlers := handlers.NewGameHandlers(container.GameService, container.Logger)
	recommendationHandlers := handlers.NewRecommendationHandlers(
		container.RecommendationService,
		container.SessionService,
		container.GeoResolver,
		container.Logger,
	)
	analyticsHandlers := handlers.NewAnalyticsHandlers(container.AnalyticsService, container.ExperimentService, container.Logger)
	safetyHandlers := handlers.NewSafetyHandlers(container.SafetyService, container.Logger)
	adminHandlers := handlers.NewAdminHandlers(container.AuthService, container.CacheManager, container.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/visit", visitHandlers.PostVisit)

		api.GET("/games", gameHandlers.GetGames)
		api.GET("/games/:id", gameHandlers.GetGame)
		api.GET("/variants", gameHandlers.GetVariants)

		api.POST("/recommendations", recommendationHandlers.PostRecommendations)

		api.POST("/analytics/session", analyticsHandlers.PostSessionEvent)
		api.POST("/analytics/experiment", analyticsHandlers.PostExperimentEvent)
		api.GET("/experiments/:id/variant", analyticsHandlers.GetExperimentVariant)

		api.GET("/assessments/questions", safetyHandlers.GetQuestions)
		api.POST("/assessments", safetyHandlers.PostAssessment)
		api.GET("/assessments/history", safetyHandlers.GetAssessmentHistory)
		api.GET("/limits", safetyHandlers.GetLimits)
		api.PUT("/limits", safetyHandlers.PutLimits)
		api.GET("/consent", safetyHandlers.GetConsent)
		api.POST("/consent", safetyHandlers.PostConsent)

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandlers.Login)
			admin.Use(adminHandlers.AuthMiddleware())
			{
				admin.GET("/metrics", adminHandlers.GetMetrics)
			}
		}
	}

	return r
}
