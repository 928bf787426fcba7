package repository

import (
	"errors"
	"time"

	"lifeos-backend/internal/workout/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormWorkoutStore implements WorkoutStore using GORM
type gormWorkoutStore struct {
	db *gorm.DB
}

// NewGormWorkoutStore creates a new GORM-based WorkoutStore
func NewGormWorkoutStore(db *gorm.DB) WorkoutStore {
	return &gormWorkoutStore{db: db}
}

func (r *gormWorkoutStore) Create(workout *domain.Workout) error {
	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = time.Now()
	return r.db.Create(workout).Error
}

func (r *gormWorkoutStore) FindByID(userID, id string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &workout, nil
}

func (r *gormWorkoutStore) FindByUserID(userID string) ([]*domain.Workout, error) {
	var workouts []*domain.Workout
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&workouts).Error
	return workouts, err
}

func (r *gormWorkoutStore) Update(workout *domain.Workout) error {
	workout.UpdatedAt = time.Now()
	return r.db.Save(workout).Error
}

func (r *gormWorkoutStore) Delete(userID, id string) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Workout{}, "id = ?", id).Error
}
