package usecase

import (
	"context"
	"time"

	"lifeos-backend/internal/event/domain"
)

// EventUsecase orchestrates calendar-event mutations across the primary
// store and the optional Google Calendar mirror. The primary store is the
// source of truth: a mirror failure is logged and never fails the
// operation.
type EventUsecase interface {
	CreateEvent(ctx context.Context, userID string, input CreateEventInput) (*domain.CalendarEvent, error)
	GetEvent(userID, eventID string) (*domain.CalendarEvent, error)
	ListEvents(userID string) ([]*domain.CalendarEvent, error)
	// EventsOnDay returns events whose start falls within the given local
	// calendar day.
	EventsOnDay(userID string, day time.Time) ([]*domain.CalendarEvent, error)
	// UpcomingEvents returns up to limit events starting at or after now.
	UpcomingEvents(userID string, now time.Time, limit int) ([]*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, userID, eventID string, update EventUpdate) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error
}

// CreateEventInput carries the fields accepted when creating an event.
// Start and End are RFC3339 timestamps.
type CreateEventInput struct {
	Title       string
	Description string
	Start       string
	End         string
	AllDay      bool
	Color       string
}

// EventUpdate is a tagged optional-field update. Nil pointers leave the
// corresponding field untouched.
type EventUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Start       *string `json:"start_time,omitempty"`
	End         *string `json:"end_time,omitempty"`
	AllDay      *bool   `json:"all_day,omitempty"`
	Status      *string `json:"status,omitempty"`
	Color       *string `json:"color,omitempty"`
}
