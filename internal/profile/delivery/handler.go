package delivery

import (
	"errors"
	"net/http"

	"lifeos-backend/internal/profile/usecase"
	"lifeos-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles gamification-profile HTTP requests
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetProfile returns the user's XP, level, streak and achievements
// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	view, err := h.profileUsecase.GetProfile(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RecordFocusSession credits a finished focus session
// POST /api/profile/focus
func (h *ProfileHandler) RecordFocusSession(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Minutes int `json:"minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileUsecase.RecordFocusSession(userID, req.Minutes)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
