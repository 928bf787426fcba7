package delivery

import (
	"errors"
	"net/http"

	"lifeos-backend/internal/goal/usecase"
	"lifeos-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalUsecase usecase.GoalUsecase
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalUsecase usecase.GoalUsecase) *GoalHandler {
	return &GoalHandler{
		goalUsecase: goalUsecase,
	}
}

// CreateGoalRequest represents the request body for creating a goal
type CreateGoalRequest struct {
	Title      string  `json:"title" binding:"required"`
	Category   string  `json:"category"`
	TargetDate *string `json:"target_date"`
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

// GetGoals returns all goals for the authenticated user
// GET /api/goals
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID := c.GetString("userID")

	goals, err := h.goalUsecase.ListGoals(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalByID returns a goal with its linked task ids
// GET /api/goals/:id
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	userID := c.GetString("userID")
	goalID := c.Param("id")

	goal, err := h.goalUsecase.GetGoal(userID, goalID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// CreateGoal creates a new goal
// POST /api/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalUsecase.CreateGoal(userID, usecase.CreateGoalInput{
		Title:      req.Title,
		Category:   req.Category,
		TargetDate: req.TargetDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// UpdateGoal updates a goal's authored fields
// PUT /api/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID := c.GetString("userID")
	goalID := c.Param("id")

	var update usecase.GoalUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalUsecase.UpdateGoal(userID, goalID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal deletes a goal
// DELETE /api/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID := c.GetString("userID")
	goalID := c.Param("id")

	if err := h.goalUsecase.DeleteGoal(userID, goalID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
