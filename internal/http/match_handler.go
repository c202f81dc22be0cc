package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creator-match/internal/domain"
	"creator-match/internal/service"
)

// MatchHandler mantiene dependencias para endpoints de matching.
type MatchHandler struct {
	logger   *zap.Logger
	matchSvc *service.MatchService
	limiter  service.GenerationRateLimiter
}

func NewMatchHandler(logger *zap.Logger, matchSvc *service.MatchService, limiter service.GenerationRateLimiter) *MatchHandler {
	return &MatchHandler{
		logger:   logger,
		matchSvc: matchSvc,
		limiter:  limiter,
	}
}

// Generate maneja POST /matches/generate.
func (h *MatchHandler) Generate(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Limit int `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Limit <= 0 || req.Limit > 50 {
		req.Limit = 10
	}

	if h.limiter != nil && !h.limiter.Allow(claims.ProfileID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "match generation limit reached, try again later"})
		return
	}

	suggestions, err := h.matchSvc.GenerateMatches(c.Request.Context(), claims.ProfileID, req.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "creator profile not found"})
			return
		}
		h.logger.Error("generate matches failed", zap.Error(err), zap.String("profile_id", claims.ProfileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate matches"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"matches": suggestions})
}

// List maneja GET /matches.
func (h *MatchHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	status := domain.MatchStatus(c.Query("status"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	views, err := h.matchSvc.List(c.Request.Context(), claims.ProfileID, status, page, pageSize)
	if err != nil {
		h.logger.Error("list matches failed", zap.Error(err), zap.String("profile_id", claims.ProfileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":   views,
		"page":      page,
		"page_size": pageSize,
	})
}

// View maneja POST /matches/:id/view.
func (h *MatchHandler) View(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	record, err := h.matchSvc.MarkViewed(c.Request.Context(), claims.ProfileID, c.Param("id"))
	if err != nil {
		h.writeMatchError(c, err, claims.ProfileID)
		return
	}

	status, _ := record.StatusFor(claims.ProfileID)
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Respond maneja POST /matches/:id/respond.
func (h *MatchHandler) Respond(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=like pass"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid respond request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be like or pass"})
		return
	}

	result, err := h.matchSvc.Respond(c.Request.Context(), claims.ProfileID, c.Param("id"), domain.MatchAction(req.Action))
	if err != nil {
		h.writeMatchError(c, err, claims.ProfileID)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchHandler) writeMatchError(c *gin.Context, err error, profileID string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this match"})
	default:
		h.logger.Error("match action failed", zap.Error(err), zap.String("profile_id", profileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update match"})
	}
}
