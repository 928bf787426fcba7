package repository

import (
	"errors"
	"time"

	"lifeos-backend/internal/goal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormGoalStore implements GoalStore using GORM
type gormGoalStore struct {
	db *gorm.DB
}

// NewGormGoalStore creates a new GORM-based GoalStore
func NewGormGoalStore(db *gorm.DB) GoalStore {
	return &gormGoalStore{db: db}
}

func (r *gormGoalStore) Create(goal *domain.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()
	return r.db.Create(goal).Error
}

func (r *gormGoalStore) FindByID(userID, id string) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *gormGoalStore) FindByUserID(userID string) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *gormGoalStore) Update(goal *domain.Goal) error {
	goal.UpdatedAt = time.Now()
	return r.db.Save(goal).Error
}

func (r *gormGoalStore) Delete(userID, id string) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Goal{}, "id = ?", id).Error
}
