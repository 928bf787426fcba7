package usecase

import (
	"context"

	"lifeos-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic. Every
// mutating operation requires an owner identity and keeps the in-memory
// view consistent with the primary store.
type TaskUsecase interface {
	// CreateTask validates input, applies defaults and persists a new task.
	CreateTask(userID string, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a task by id (with ownership check).
	GetTask(userID, taskID string) (*domain.Task, error)

	// ListTasks returns the owner's tasks, most recent first.
	ListTasks(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error)

	// UpdateTask writes only the explicitly provided fields.
	UpdateTask(userID, taskID string, update TaskUpdate) (*domain.Task, error)

	// ToggleTask sets is_completed. Completion transitions fire the
	// registered completion listener; the caller decides how to react.
	ToggleTask(userID, taskID string, completed bool) (*domain.Task, error)

	// DeleteTask removes a task. Deleting an absent id is a no-op success.
	DeleteTask(userID, taskID string) error

	// MatrixView partitions the owner's open tasks into Eisenhower quadrants.
	MatrixView(userID string) (map[domain.Quadrant][]*domain.Task, error)

	// SemanticSearch finds tasks by meaning via the vector index.
	SemanticSearch(ctx context.Context, userID, query string, limit int) ([]*domain.Task, error)

	// SetCompletionListener registers the hook fired when a task
	// transitions from incomplete to complete.
	SetCompletionListener(l CompletionListener)

	// SetGoalChangeListener registers the hook fired whenever a
	// goal-linked task is created, changed or deleted.
	SetGoalChangeListener(l GoalChangeListener)

	// SetVectorIndexer enables semantic indexing of task content.
	SetVectorIndexer(v VectorIndexer)
}

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Effort      string
	IsUrgent    *bool
	IsImportant *bool
	DueDate     *string // RFC3339
	GoalID      *string
}

// TaskUpdate is a tagged optional-field update: nil means "leave
// untouched"; the Clear flags are the explicit way to null out the
// nullable fields.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Effort      *string `json:"effort,omitempty"`
	IsUrgent    *bool   `json:"is_urgent,omitempty"`
	IsImportant *bool   `json:"is_important,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	ClearDue    bool    `json:"clear_due_date,omitempty"`
	GoalID      *string `json:"goal_id,omitempty"`
	ClearGoal   bool    `json:"clear_goal_id,omitempty"`
}

// CompletionListener observes incomplete-to-complete transitions. Wired
// by the application (XP award, profile counters).
type CompletionListener func(task *domain.Task)

// GoalChangeListener observes changes to the linked-task set of a goal so
// cached goal projections can be recomputed.
type GoalChangeListener func(userID, goalID string)

// VectorIndexer maintains the semantic index of task content.
type VectorIndexer interface {
	UpsertTask(ctx context.Context, taskID, userID, title, description string) error
	DeleteTask(ctx context.Context, taskID string) error
	Search(ctx context.Context, userID, query string, limit int) ([]string, []float64, error)
}
