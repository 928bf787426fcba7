package usecase

import (
	"time"

	"lifeos-backend/internal/habit/domain"
)

// HabitView is a habit decorated with its derived streak and today's
// completion state.
type HabitView struct {
	*domain.Habit
	Streak      int      `json:"streak"`
	DoneToday   bool     `json:"done_today"`
	LoggedDates []string `json:"logged_dates"`
}

// HabitUsecase manages habits and their daily completion logs.
type HabitUsecase interface {
	CreateHabit(userID, title, emoji string) (*domain.Habit, error)
	ListHabits(userID string, now time.Time) ([]*HabitView, error)
	GetHabit(userID, habitID string, now time.Time) (*HabitView, error)
	UpdateHabit(userID, habitID string, title, emoji *string) (*domain.Habit, error)
	DeleteHabit(userID, habitID string) error
	// ToggleLog flips the completion state for the given date (YYYY-MM-DD,
	// empty means today) and returns the refreshed view.
	ToggleLog(userID, habitID, date string, now time.Time) (*HabitView, error)
}
