package repository

import "lifeos-backend/internal/habit/domain"

// HabitStore persists habits and their per-day completion logs.
type HabitStore interface {
	Create(habit *domain.Habit) error
	FindByID(userID, id string) (*domain.Habit, error)
	FindByUserID(userID string) ([]*domain.Habit, error)
	Update(habit *domain.Habit) error
	// Delete removes the habit and all of its logs.
	Delete(userID, id string) error

	// LogDates returns the set of day keys the habit was completed on.
	LogDates(habitID string) (map[string]bool, error)
	AddLog(log *domain.HabitLog) error
	RemoveLog(habitID, date string) error
	HasLog(habitID, date string) (bool, error)
}
