package repository

import "lifeos-backend/internal/goal/domain"

// GoalStore defines the interface for goal persistence.
type GoalStore interface {
	Create(goal *domain.Goal) error
	FindByID(userID, id string) (*domain.Goal, error)
	FindByUserID(userID string) ([]*domain.Goal, error)
	Update(goal *domain.Goal) error
	Delete(userID, id string) error
}
