package repository

import (
	"errors"
	"time"

	"lifeos-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTaskStore implements TaskStore using GORM
type gormTaskStore struct {
	db *gorm.DB
}

// NewGormTaskStore creates a new GORM-based TaskStore
func NewGormTaskStore(db *gorm.DB) TaskStore {
	return &gormTaskStore{db: db}
}

func (r *gormTaskStore) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *gormTaskStore) FindByID(userID, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskStore) FindByUserID(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error) {
	var tasks []*domain.Task
	var total int64

	query := r.db.Model(&domain.Task{}).Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("is_completed = ?", *completed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	// A non-positive limit means "no limit"; passing it through would
	// render a literal LIMIT 0 and fetch nothing.
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&tasks).Error
	return tasks, total, err
}

func (r *gormTaskStore) FindByIDs(userID string, ids []string) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return []*domain.Task{}, nil
	}
	var tasks []*domain.Task
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskStore) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *gormTaskStore) Delete(userID, id string) error {
	// GORM reports no error for zero affected rows, which gives the
	// idempotent delete the task usecase relies on.
	return r.db.Where("user_id = ?", userID).Delete(&domain.Task{}, "id = ?", id).Error
}

func (r *gormTaskStore) CountByGoal(userID, goalID string) (int, int, error) {
	var total, completed int64

	base := r.db.Model(&domain.Task{}).Where("user_id = ? AND goal_id = ?", userID, goalID)
	if err := base.Count(&total).Error; err != nil {
		return 0, 0, err
	}

	err := r.db.Model(&domain.Task{}).
		Where("user_id = ? AND goal_id = ? AND is_completed = ?", userID, goalID, true).
		Count(&completed).Error
	if err != nil {
		return 0, 0, err
	}

	return int(total), int(completed), nil
}

func (r *gormTaskStore) FindIDsByGoal(userID, goalID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&domain.Task{}).
		Where("user_id = ? AND goal_id = ?", userID, goalID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *gormTaskStore) FindPendingReminders(now time.Time, window time.Duration) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where(
		"due_date IS NOT NULL AND due_date <= ? AND due_date >= ? AND reminder_sent = ? AND is_completed = ?",
		now.Add(window), now, false, false,
	).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskStore) MarkReminderSent(id string) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}
