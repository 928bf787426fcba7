package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Never return password in JSON
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Provider  string    `json:"provider"` // "email" or "google"

	// Google Calendar OAuth tokens, present only after the user connects
	// their calendar. Empty means "not connected", which is a normal state
	// and never an error.
	GoogleAccessToken  string `json:"-"`
	GoogleRefreshToken string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalendarConnected reports whether the user has Google Calendar tokens
// stored. Mirroring is skipped silently when false.
func (u *User) CalendarConnected() bool {
	return u.GoogleAccessToken != "" || u.GoogleRefreshToken != ""
}

type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
