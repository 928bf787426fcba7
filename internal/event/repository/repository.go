package repository

import (
	"time"

	"lifeos-backend/internal/event/domain"
)

// EventStore defines the primary-store operations for calendar events.
// FindByID and lookups scope by owner; a missing or foreign record is
// (nil, nil), never an error.
type EventStore interface {
	Create(event *domain.CalendarEvent) error
	FindByID(userID, id string) (*domain.CalendarEvent, error)
	FindByUserID(userID string) ([]*domain.CalendarEvent, error)
	// FindByRange returns events whose start falls in [from, to), ordered
	// by start time ascending.
	FindByRange(userID string, from, to time.Time) ([]*domain.CalendarEvent, error)
	// FindUpcoming returns up to limit events starting at or after from,
	// soonest first.
	FindUpcoming(userID string, from time.Time, limit int) ([]*domain.CalendarEvent, error)
	Update(event *domain.CalendarEvent) error
	Delete(userID, id string) error
}
