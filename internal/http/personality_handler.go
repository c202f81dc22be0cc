package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creator-match/internal/service"
)

// PersonalityHandler mantiene dependencias para endpoints de personalidad.
type PersonalityHandler struct {
	logger  *zap.Logger
	quizSvc *service.QuizAnalysisService
}

func NewPersonalityHandler(logger *zap.Logger, quizSvc *service.QuizAnalysisService) *PersonalityHandler {
	return &PersonalityHandler{
		logger:  logger,
		quizSvc: quizSvc,
	}
}

// SubmitQuiz maneja POST /quiz/submit: analiza las respuestas y actualiza
// el perfil de rasgos del actor.
func (h *PersonalityHandler) SubmitQuiz(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		QuizType string                 `json:"quiz_type" binding:"required"`
		Answers  map[string]interface{} `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit quiz request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.quizSvc.AnalyzeAndPersist(c.Request.Context(), claims.ProfileID, req.QuizType, req.Answers)
	if err != nil {
		h.logger.Error("quiz analysis failed", zap.Error(err), zap.String("profile_id", claims.ProfileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"personality_profile": profile})
}

// GetPersonality maneja GET /personality y devuelve el perfil de rasgos
// del actor, creandolo con defaults en el primer acceso.
func (h *PersonalityHandler) GetPersonality(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	profile, err := h.quizSvc.GetOrDefault(c.Request.Context(), claims.ProfileID)
	if err != nil {
		h.logger.Error("get trait profile failed", zap.Error(err), zap.String("profile_id", claims.ProfileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch personality profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"personality_profile": profile})
}

// GetInsights maneja GET /personality/insights.
func (h *PersonalityHandler) GetInsights(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	profile, err := h.quizSvc.GetOrDefault(c.Request.Context(), claims.ProfileID)
	if err != nil {
		h.logger.Error("get trait profile failed", zap.Error(err), zap.String("profile_id", claims.ProfileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch personality profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": service.BuildInsights(profile)})
}
