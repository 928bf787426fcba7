package usecase

import (
	"log"
	"strings"
	"time"

	"lifeos-backend/internal/gamification"
	"lifeos-backend/internal/goal/domain"
	"lifeos-backend/internal/goal/repository"
	taskrepo "lifeos-backend/internal/task/repository"
	"lifeos-backend/pkg/apperr"
)

// goalUsecase implements GoalUsecase
type goalUsecase struct {
	store     repository.GoalStore
	taskStore taskrepo.TaskStore
}

// NewGoalUsecase creates a new instance of goalUsecase
func NewGoalUsecase(store repository.GoalStore, taskStore taskrepo.TaskStore) GoalUsecase {
	return &goalUsecase{
		store:     store,
		taskStore: taskStore,
	}
}

func (u *goalUsecase) CreateGoal(userID string, input CreateGoalInput) (*domain.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	goal := &domain.Goal{
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Category: input.Category,
		Status:   gamification.GoalOnTrack,
	}

	if input.TargetDate != nil && *input.TargetDate != "" {
		target, err := time.Parse(time.RFC3339, *input.TargetDate)
		if err != nil {
			return nil, apperr.Validation("target_date must be RFC3339, got %q", *input.TargetDate)
		}
		goal.TargetDate = &target
	}

	if err := u.store.Create(goal); err != nil {
		return nil, apperr.Persistence("create goal", err)
	}

	return goal, nil
}

func (u *goalUsecase) GetGoal(userID, goalID string) (*GoalWithTasks, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	goal, err := u.store.FindByID(userID, goalID)
	if err != nil {
		return nil, apperr.Persistence("find goal", err)
	}
	if goal == nil {
		return nil, apperr.ErrNotFound
	}

	ids, err := u.taskStore.FindIDsByGoal(userID, goalID)
	if err != nil {
		return nil, apperr.Persistence("list linked tasks", err)
	}
	if ids == nil {
		ids = []string{}
	}

	return &GoalWithTasks{Goal: goal, LinkedTaskIDs: ids}, nil
}

func (u *goalUsecase) ListGoals(userID string) ([]*domain.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	goals, err := u.store.FindByUserID(userID)
	if err != nil {
		return nil, apperr.Persistence("list goals", err)
	}
	return goals, nil
}

func (u *goalUsecase) UpdateGoal(userID, goalID string, update GoalUpdate) (*domain.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	goal, err := u.store.FindByID(userID, goalID)
	if err != nil {
		return nil, apperr.Persistence("find goal", err)
	}
	if goal == nil {
		return nil, apperr.ErrNotFound
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		goal.Title = strings.TrimSpace(*update.Title)
	}
	if update.Category != nil {
		goal.Category = *update.Category
	}
	if update.ClearTarget {
		goal.TargetDate = nil
	} else if update.TargetDate != nil && *update.TargetDate != "" {
		target, err := time.Parse(time.RFC3339, *update.TargetDate)
		if err != nil {
			return nil, apperr.Validation("target_date must be RFC3339, got %q", *update.TargetDate)
		}
		goal.TargetDate = &target
	}

	// Target date changes can flip the derived status
	goal.Status = gamification.GoalStatus(goal.Progress, goal.TargetDate, time.Now())

	if err := u.store.Update(goal); err != nil {
		return nil, apperr.Persistence("update goal", err)
	}

	return goal, nil
}

func (u *goalUsecase) DeleteGoal(userID, goalID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}
	if err := u.store.Delete(userID, goalID); err != nil {
		return apperr.Persistence("delete goal", err)
	}
	return nil
}

// Recompute refreshes the cached projection. Failures are logged, not
// returned: the projection is derivable and the next change retries it.
func (u *goalUsecase) Recompute(userID, goalID string) {
	goal, err := u.store.FindByID(userID, goalID)
	if err != nil || goal == nil {
		if err != nil {
			log.Printf("[GoalUsecase] Recompute: failed to load goal %s: %v", goalID, err)
		}
		return
	}

	total, completed, err := u.taskStore.CountByGoal(userID, goalID)
	if err != nil {
		log.Printf("[GoalUsecase] Recompute: failed to count tasks for goal %s: %v", goalID, err)
		return
	}

	progress, err := gamification.GoalProgress(completed, total)
	if err != nil {
		log.Printf("[GoalUsecase] Recompute: %v", err)
		return
	}

	goal.TotalTasks = total
	goal.CompletedTasks = completed
	goal.Progress = progress
	goal.Status = gamification.GoalStatus(progress, goal.TargetDate, time.Now())

	if err := u.store.Update(goal); err != nil {
		log.Printf("[GoalUsecase] Recompute: failed to persist goal %s: %v", goalID, err)
	}
}
