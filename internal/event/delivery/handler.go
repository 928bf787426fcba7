package delivery

import (
	"errors"
	"net/http"
	"time"

	"lifeos-backend/internal/event/usecase"
	"lifeos-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// EventHandler handles calendar-event HTTP requests
type EventHandler struct {
	eventUsecase usecase.EventUsecase
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventUsecase usecase.EventUsecase) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
	}
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	AllDay      bool   `json:"all_day"`
	Color       string `json:"color"`
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

// GetEvents returns the authenticated user's events, optionally scoped to
// one calendar day
// GET /api/events?date=2026-09-01
func (h *EventHandler) GetEvents(c *gin.Context) {
	userID := c.GetString("userID")

	if dateStr := c.Query("date"); dateStr != "" {
		day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		events, err := h.eventUsecase.EventsOnDay(userID, day)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
		return
	}

	events, err := h.eventUsecase.ListEvents(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEventByID returns a specific event
// GET /api/events/:id
func (h *EventHandler) GetEventByID(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	event, err := h.eventUsecase.GetEvent(userID, eventID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent creates a new event and mirrors it best-effort
// POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.CreateEvent(c.Request.Context(), userID, usecase.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.StartTime,
		End:         req.EndTime,
		AllDay:      req.AllDay,
		Color:       req.Color,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEvent updates an existing event
// PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	var update usecase.EventUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.UpdateEvent(c.Request.Context(), userID, eventID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent deletes an event (idempotent)
// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	if err := h.eventUsecase.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
