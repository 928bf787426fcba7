package delivery

import (
	"errors"
	"net/http"

	"lifeos-backend/internal/workout/domain"
	"lifeos-backend/internal/workout/usecase"
	"lifeos-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler handles workout-log HTTP requests
type WorkoutHandler struct {
	workoutUsecase usecase.WorkoutUsecase
}

// NewWorkoutHandler creates a new WorkoutHandler
func NewWorkoutHandler(workoutUsecase usecase.WorkoutUsecase) *WorkoutHandler {
	return &WorkoutHandler{
		workoutUsecase: workoutUsecase,
	}
}

// CreateWorkoutRequest represents the request body for logging a workout
type CreateWorkoutRequest struct {
	Title           string            `json:"title" binding:"required"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"duration_minutes"`
	Notes           string            `json:"notes"`
	Exercises       []domain.Exercise `json:"exercises"`
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

// GetWorkouts returns the user's workout logs, most recent first
// GET /api/workouts
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	userID := c.GetString("userID")

	workouts, err := h.workoutUsecase.ListWorkouts(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

// GetWorkoutByID returns a specific workout
// GET /api/workouts/:id
func (h *WorkoutHandler) GetWorkoutByID(c *gin.Context) {
	userID := c.GetString("userID")
	workoutID := c.Param("id")

	workout, err := h.workoutUsecase.GetWorkout(userID, workoutID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

// CreateWorkout logs a new workout
// POST /api/workouts
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := h.workoutUsecase.CreateWorkout(userID, usecase.CreateWorkoutInput{
		Title:           req.Title,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Exercises:       req.Exercises,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// UpdateWorkout updates an existing workout
// PUT /api/workouts/:id
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID := c.GetString("userID")
	workoutID := c.Param("id")

	var update usecase.WorkoutUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := h.workoutUsecase.UpdateWorkout(userID, workoutID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout deletes a workout
// DELETE /api/workouts/:id
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID := c.GetString("userID")
	workoutID := c.Param("id")

	if err := h.workoutUsecase.DeleteWorkout(userID, workoutID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully"})
}
