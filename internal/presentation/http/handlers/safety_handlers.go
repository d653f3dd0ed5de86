package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/domain/entities/safety"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/presentation/http/middleware"
)

// SubmitAssessmentRequest carries a completed answer sequence. Answers are
// the selected option values in question order.
type SubmitAssessmentRequest struct {
	Variant string `json:"variant"`
	Answers []int  `json:"answers" binding:"required"`
}

// SafetyHandlers serves the risk assessment, limits, and consent endpoints.
type SafetyHandlers struct {
	safetyService *services.SafetyService
	logger        *logging.ChanneledLogger
}

// NewSafetyHandlers creates safety handlers with injected dependencies.
func NewSafetyHandlers(safetyService *services.SafetyService, logger *logging.ChanneledLogger) *SafetyHandlers {
	return &SafetyHandlers{
		safetyService: safetyService,
		logger:        logger,
	}
}

// GetQuestions returns the question sequence for an assessment variant.
func (h *SafetyHandlers) GetQuestions(c *gin.Context) {
	variant := c.Query("variant")
	c.JSON(http.StatusOK, gin.H{
		"variant":   variant,
		"questions": h.safetyService.Questions(variant),
	})
}

// PostAssessment scores a completed assessment. The result is always
// returned; it is only stored when consent permits.
func (h *SafetyHandlers) PostAssessment(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, persisted, err := h.safetyService.SubmitAssessment(c.Request.Context(), sessionID, req.Variant, req.Answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"persisted": persisted,
	})
}

// GetAssessmentHistory returns the visitor's stored results, oldest first.
// Without consent the history is always empty.
func (h *SafetyHandlers) GetAssessmentHistory(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	history, err := h.safetyService.History(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if history == nil {
		history = []safety.AssessmentResult{}
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// GetLimits returns the visitor's personal limits or the defaults.
func (h *SafetyHandlers) GetLimits(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	limits, err := h.safetyService.GetLimits(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"limits": limits})
}

// PutLimits updates the visitor's personal limits.
func (h *SafetyHandlers) PutLimits(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	var limits safety.PersonalLimits
	if err := c.ShouldBindJSON(&limits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, persisted, err := h.safetyService.SetLimits(c.Request.Context(), sessionID, limits)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"limits":    updated,
		"persisted": persisted,
	})
}

// GetConsent returns the visitor's current consent preferences.
func (h *SafetyHandlers) GetConsent(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	consent, err := h.safetyService.GetConsent(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consent": consent})
}

// PostConsent updates consent preferences. Withdrawing consent wipes all
// stored visitor data.
func (h *SafetyHandlers) PostConsent(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
		return
	}

	var consent safety.ConsentPreferences
	if err := c.ShouldBindJSON(&consent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.safetyService.SetConsent(c.Request.Context(), sessionID, consent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
