package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/manager"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// AdminLoginRequest is the operator login body.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminHandlers serves the operator surface: login and runtime metrics.
type AdminHandlers struct {
	authService *services.AuthService
	cache       *manager.Manager
	logger      *logging.ChanneledLogger
}

// NewAdminHandlers creates admin handlers with injected dependencies.
func NewAdminHandlers(authService *services.AuthService, cache *manager.Manager, logger *logging.ChanneledLogger) *AdminHandlers {
	return &AdminHandlers{
		authService: authService,
		cache:       cache,
		logger:      logger,
	}
}

// Login verifies the operator password and returns a bearer token.
func (h *AdminHandlers) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AuthMiddleware guards the operator endpoints with a bearer token check.
func (h *AdminHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if err := h.authService.Validate(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}

// GetMetrics reports live runtime counters for the operator dashboard.
func (h *AdminHandlers) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"activeSessions": h.cache.Sessions.Count(),
	})
}
