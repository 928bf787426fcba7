package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"lifeos-backend/internal/task/domain"
	"lifeos-backend/internal/task/usecase"
	"lifeos-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Effort      string  `json:"effort"`
	IsUrgent    *bool   `json:"is_urgent"`
	IsImportant *bool   `json:"is_important"`
	DueDate     *string `json:"due_date"`
	GoalID      *string `json:"goal_id"`
}

// taskResponse decorates a task with its derived quadrant for the matrix view.
type taskResponse struct {
	*domain.Task
	Quadrant domain.Quadrant `json:"quadrant"`
}

func toResponse(t *domain.Task) taskResponse {
	return taskResponse{Task: t, Quadrant: domain.ClassifyTask(t, time.Now())}
}

func toResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t))
	}
	return out
}

// writeError maps the usecase error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// PersistenceError and everything else: surface the store's message
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetTasks returns the authenticated user's tasks
// GET /api/tasks?completed=true&limit=50&offset=0
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var completed *bool
	if v := c.Query("completed"); v != "" {
		b := v == "true"
		completed = &b
	}

	tasks, total, err := h.taskUsecase.ListTasks(userID, completed, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": toResponses(tasks),
		"total": total,
	})
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetTask(userID, taskID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(task))
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateTask(userID, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Effort:      req.Effort,
		IsUrgent:    req.IsUrgent,
		IsImportant: req.IsImportant,
		DueDate:     req.DueDate,
		GoalID:      req.GoalID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(task))
}

// UpdateTask updates an existing task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var update usecase.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(userID, taskID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(task))
}

// ToggleTask sets a task's completion state
// PATCH /api/tasks/:id/complete
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.ToggleTask(userID, taskID, *req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(task))
}

// DeleteTask deletes a task (idempotent)
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.DeleteTask(userID, taskID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetMatrix returns open tasks grouped by Eisenhower quadrant
// GET /api/tasks/matrix
func (h *TaskHandler) GetMatrix(c *gin.Context) {
	userID := c.GetString("userID")

	matrix, err := h.taskUsecase.MatrixView(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make(gin.H, len(matrix))
	for quadrant, tasks := range matrix {
		out[string(quadrant)] = toResponses(tasks)
	}
	c.JSON(http.StatusOK, out)
}

// SemanticSearch finds tasks by meaning
// POST /api/search/semantic
func (h *TaskHandler) SemanticSearch(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Query string `json:"query" binding:"required"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.taskUsecase.SemanticSearch(c.Request.Context(), userID, req.Query, req.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": toResponses(tasks),
		"count": len(tasks),
	})
}
