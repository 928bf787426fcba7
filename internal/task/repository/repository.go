package repository

import (
	"time"

	"lifeos-backend/internal/task/domain"
)

// TaskStore defines the interface for task persistence. All lookups are
// scoped by owner; a missing row is reported as (nil, nil), never an error.
type TaskStore interface {
	// Create persists a new task, assigning id and timestamps.
	Create(task *domain.Task) error

	// FindByID finds a task by id for the given owner.
	FindByID(userID, id string) (*domain.Task, error)

	// FindByUserID returns the owner's tasks, most recent first.
	FindByUserID(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error)

	// FindByIDs returns the owner's tasks matching the given ids.
	FindByIDs(userID string, ids []string) ([]*domain.Task, error)

	// Update persists the full task record.
	Update(task *domain.Task) error

	// Delete removes a task by id for the given owner. Deleting an absent
	// id is a no-op success.
	Delete(userID, id string) error

	// CountByGoal counts the owner's tasks linked to a goal, total and completed.
	CountByGoal(userID, goalID string) (total, completed int, err error)

	// FindIDsByGoal returns ids of the owner's tasks linked to a goal.
	FindIDsByGoal(userID, goalID string) ([]string, error)

	// FindPendingReminders finds incomplete tasks due within the window
	// whose reminder has not been sent yet.
	FindPendingReminders(now time.Time, window time.Duration) ([]*domain.Task, error)

	// MarkReminderSent marks a task's reminder as sent.
	MarkReminderSent(id string) error
}
