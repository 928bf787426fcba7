package repository

import (
	"errors"
	"time"

	"lifeos-backend/internal/habit/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormHabitStore implements HabitStore using GORM
type gormHabitStore struct {
	db *gorm.DB
}

// NewGormHabitStore creates a new GORM-based HabitStore
func NewGormHabitStore(db *gorm.DB) HabitStore {
	return &gormHabitStore{db: db}
}

func (r *gormHabitStore) Create(habit *domain.Habit) error {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()
	return r.db.Create(habit).Error
}

func (r *gormHabitStore) FindByID(userID, id string) (*domain.Habit, error) {
	var habit domain.Habit
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

func (r *gormHabitStore) FindByUserID(userID string) ([]*domain.Habit, error) {
	var habits []*domain.Habit
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&habits).Error
	return habits, err
}

func (r *gormHabitStore) Update(habit *domain.Habit) error {
	habit.UpdatedAt = time.Now()
	return r.db.Save(habit).Error
}

func (r *gormHabitStore) Delete(userID, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&domain.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.Habit{}, "id = ?", id).Error
	})
}

func (r *gormHabitStore) LogDates(habitID string) (map[string]bool, error) {
	var dates []string
	err := r.db.Model(&domain.HabitLog{}).Where("habit_id = ?", habitID).Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	logged := make(map[string]bool, len(dates))
	for _, d := range dates {
		logged[d] = true
	}
	return logged, nil
}

func (r *gormHabitStore) AddLog(log *domain.HabitLog) error {
	log.LoggedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(log).Error
}

func (r *gormHabitStore) RemoveLog(habitID, date string) error {
	return r.db.Where("habit_id = ? AND date = ?", habitID, date).Delete(&domain.HabitLog{}).Error
}

func (r *gormHabitStore) HasLog(habitID, date string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.HabitLog{}).Where("habit_id = ? AND date = ?", habitID, date).Count(&count).Error
	return count > 0, err
}
