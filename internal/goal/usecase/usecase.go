package usecase

import "lifeos-backend/internal/goal/domain"

// GoalUsecase defines the interface for goal business logic. Progress,
// status and task counts are derived; the update surface only accepts the
// independently authored fields.
type GoalUsecase interface {
	CreateGoal(userID string, input CreateGoalInput) (*domain.Goal, error)
	GetGoal(userID, goalID string) (*GoalWithTasks, error)
	ListGoals(userID string) ([]*domain.Goal, error)
	UpdateGoal(userID, goalID string, update GoalUpdate) (*domain.Goal, error)
	DeleteGoal(userID, goalID string) error

	// Recompute refreshes the cached progress projection from the current
	// linked-task set. Wired as the task usecase's goal-change listener.
	Recompute(userID, goalID string)
}

// CreateGoalInput carries the fields accepted when creating a goal.
type CreateGoalInput struct {
	Title      string
	Category   string
	TargetDate *string // RFC3339
}

// GoalUpdate is a tagged optional-field update for a goal's authored fields.
type GoalUpdate struct {
	Title       *string `json:"title,omitempty"`
	Category    *string `json:"category,omitempty"`
	TargetDate  *string `json:"target_date,omitempty"`
	ClearTarget bool    `json:"clear_target_date,omitempty"`
}

// GoalWithTasks is a goal plus the ids of its linked tasks.
type GoalWithTasks struct {
	*domain.Goal
	LinkedTaskIDs []string `json:"linked_task_ids"`
}
