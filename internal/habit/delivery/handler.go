package delivery

import (
	"errors"
	"net/http"
	"time"

	"lifeos-backend/internal/habit/usecase"
	"lifeos-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// HabitHandler handles habit-related HTTP requests
type HabitHandler struct {
	habitUsecase usecase.HabitUsecase
}

// NewHabitHandler creates a new HabitHandler
func NewHabitHandler(habitUsecase usecase.HabitUsecase) *HabitHandler {
	return &HabitHandler{
		habitUsecase: habitUsecase,
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

// GetHabits returns the user's habits with streaks and today's state
// GET /api/habits
func (h *HabitHandler) GetHabits(c *gin.Context) {
	userID := c.GetString("userID")

	habits, err := h.habitUsecase.ListHabits(userID, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// CreateHabit creates a new habit
// POST /api/habits
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Title string `json:"title" binding:"required"`
		Emoji string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.habitUsecase.CreateHabit(userID, req.Title, req.Emoji)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit updates a habit's title or emoji
// PUT /api/habits/:id
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	var req struct {
		Title *string `json:"title"`
		Emoji *string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.habitUsecase.UpdateHabit(userID, habitID, req.Title, req.Emoji)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// DeleteHabit deletes a habit and its logs
// DELETE /api/habits/:id
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	if err := h.habitUsecase.DeleteHabit(userID, habitID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}

// GetStreak returns the current streak for one habit
// GET /api/habits/:id/streak
func (h *HabitHandler) GetStreak(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	view, err := h.habitUsecase.GetHabit(userID, habitID, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit_id": view.ID, "streak": view.Streak, "done_today": view.DoneToday})
}

// ToggleLog flips the completion state for one date
// POST /api/habits/:id/logs
func (h *HabitHandler) ToggleLog(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	var req struct {
		Date string `json:"date"`
	}
	// Body is optional; an empty body toggles today.
	_ = c.ShouldBindJSON(&req)

	view, err := h.habitUsecase.ToggleLog(userID, habitID, req.Date, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
