package domain

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// CalendarEvent is a calendar entry owned by a user. GoogleEventID is a
// weak back-reference to the mirrored record in Google Calendar: it is
// set only after a successful mirror insert and absence simply means
// "not mirrored".
type CalendarEvent struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	AllDay        bool      `json:"all_day"`
	Status        string    `json:"status" gorm:"default:confirmed"`
	Color         string    `json:"color"`
	GoogleEventID string    `json:"google_event_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Mirrored reports whether the event has been propagated to Google Calendar.
func (e *CalendarEvent) Mirrored() bool {
	return e.GoogleEventID != ""
}

// TokenUpdateFunc persists refreshed OAuth tokens back to the user record.
type TokenUpdateFunc func(token *oauth2.Token) error

// CalendarProvider is the external calendar collaborator. All operations
// are best-effort from the caller's point of view: a failure here never
// fails the primary operation.
type CalendarProvider interface {
	InsertEvent(ctx context.Context, accessToken, refreshToken string, event *CalendarEvent, onTokenRefresh TokenUpdateFunc) (string, error)
	UpdateEvent(ctx context.Context, accessToken, refreshToken string, event *CalendarEvent, onTokenRefresh TokenUpdateFunc) error
	DeleteEvent(ctx context.Context, accessToken, refreshToken, googleEventID string, onTokenRefresh TokenUpdateFunc) error
}
