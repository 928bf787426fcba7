package repository

import "lifeos-backend/internal/workout/domain"

// WorkoutStore persists workout logs.
type WorkoutStore interface {
	Create(workout *domain.Workout) error
	FindByID(userID, id string) (*domain.Workout, error)
	// FindByUserID returns workouts most recent first.
	FindByUserID(userID string) ([]*domain.Workout, error)
	Update(workout *domain.Workout) error
	Delete(userID, id string) error
}
