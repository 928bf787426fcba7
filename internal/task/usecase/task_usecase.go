package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"lifeos-backend/internal/task/domain"
	"lifeos-backend/internal/task/repository"
	"lifeos-backend/pkg/apperr"
)

// taskUsecase implements TaskUsecase
type taskUsecase struct {
	store              repository.TaskStore
	view               *localView
	completionListener CompletionListener
	goalListener       GoalChangeListener
	vectorIndexer      VectorIndexer
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(store repository.TaskStore) TaskUsecase {
	return &taskUsecase{
		store: store,
		view:  newLocalView(),
	}
}

func (u *taskUsecase) SetCompletionListener(l CompletionListener) {
	u.completionListener = l
}

func (u *taskUsecase) SetGoalChangeListener(l GoalChangeListener) {
	u.goalListener = l
}

func (u *taskUsecase) SetVectorIndexer(v VectorIndexer) {
	u.vectorIndexer = v
}

func (u *taskUsecase) CreateTask(userID string, input CreateTaskInput) (*domain.Task, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Priority:    domain.ParsePriority(input.Priority),
		IsUrgent:    input.IsUrgent,
		IsImportant: input.IsImportant,
		GoalID:      input.GoalID,
	}

	// Create defaults: explicit false flags, not "unset". Only legacy
	// rows carry nil flags.
	f := false
	if task.IsUrgent == nil {
		task.IsUrgent = &f
	}
	if task.IsImportant == nil {
		g := false
		task.IsImportant = &g
	}

	if input.Effort != "" {
		effort, err := parseEffort(input.Effort)
		if err != nil {
			return nil, err
		}
		task.Effort = effort
	}

	if input.DueDate != nil && *input.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *input.DueDate)
		if err != nil {
			return nil, apperr.Validation("due_date must be RFC3339, got %q", *input.DueDate)
		}
		task.DueDate = &due
	}

	if err := u.store.Create(task); err != nil {
		// No local mutation on failure.
		return nil, apperr.Persistence("create task", err)
	}

	u.view.prepend(task)
	u.notifyGoalChange(userID, task.GoalID)
	u.indexTask(task)

	return task, nil
}

func (u *taskUsecase) GetTask(userID, taskID string) (*domain.Task, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	task, err := u.store.FindByID(userID, taskID)
	if err != nil {
		return nil, apperr.Persistence("find task", err)
	}
	if task == nil {
		return nil, apperr.ErrNotFound
	}
	return task, nil
}

func (u *taskUsecase) ListTasks(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error) {
	if userID == "" {
		return nil, 0, apperr.ErrUnauthenticated
	}
	tasks, total, err := u.store.FindByUserID(userID, completed, limit, offset)
	if err != nil {
		return nil, 0, apperr.Persistence("list tasks", err)
	}
	if completed == nil && offset == 0 {
		u.view.reset(userID, tasks)
	}
	return tasks, total, nil
}

func (u *taskUsecase) UpdateTask(userID, taskID string, update TaskUpdate) (*domain.Task, error) {
	task, err := u.GetTask(userID, taskID)
	if err != nil {
		return nil, err
	}
	oldGoal := task.GoalID

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		task.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		task.Priority = domain.ParsePriority(*update.Priority)
	}
	if update.Effort != nil {
		effort, err := parseEffort(*update.Effort)
		if err != nil {
			return nil, err
		}
		task.Effort = effort
	}
	if update.IsUrgent != nil {
		task.IsUrgent = update.IsUrgent
	}
	if update.IsImportant != nil {
		task.IsImportant = update.IsImportant
	}
	if update.ClearDue {
		task.DueDate = nil
	} else if update.DueDate != nil && *update.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *update.DueDate)
		if err != nil {
			return nil, apperr.Validation("due_date must be RFC3339, got %q", *update.DueDate)
		}
		task.DueDate = &due
		task.ReminderSent = false // rescheduling re-arms the reminder
	}
	if update.ClearGoal {
		task.GoalID = nil
	} else if update.GoalID != nil {
		task.GoalID = update.GoalID
	}

	if err := u.store.Update(task); err != nil {
		return nil, apperr.Persistence("update task", err)
	}

	u.view.replace(task)
	u.notifyGoalChange(userID, oldGoal)
	if task.GoalID != nil && (oldGoal == nil || *oldGoal != *task.GoalID) {
		u.notifyGoalChange(userID, task.GoalID)
	}
	u.indexTask(task)

	return task, nil
}

func (u *taskUsecase) ToggleTask(userID, taskID string, completed bool) (*domain.Task, error) {
	task, err := u.GetTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	wasCompleted := task.IsCompleted
	task.IsCompleted = completed

	if err := u.store.Update(task); err != nil {
		return nil, apperr.Persistence("toggle task", err)
	}

	u.view.replace(task)

	// The completion hook fires only on the incomplete-to-complete
	// transition; the registered listener decides what to do with it.
	if !wasCompleted && completed && u.completionListener != nil {
		u.completionListener(task)
	}
	u.notifyGoalChange(userID, task.GoalID)

	return task, nil
}

func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}

	task, err := u.store.FindByID(userID, taskID)
	if err != nil {
		return apperr.Persistence("find task", err)
	}
	if task == nil {
		// Idempotent: deleting an already-absent id is a no-op success.
		return nil
	}

	if err := u.store.Delete(userID, taskID); err != nil {
		return apperr.Persistence("delete task", err)
	}

	u.view.remove(userID, taskID)
	u.notifyGoalChange(userID, task.GoalID)

	if u.vectorIndexer != nil {
		go func() {
			if err := u.vectorIndexer.DeleteTask(context.Background(), taskID); err != nil {
				log.Printf("[TaskUsecase] Failed to remove task %s from vector index: %v", taskID, err)
			}
		}()
	}

	return nil
}

func (u *taskUsecase) MatrixView(userID string) (map[domain.Quadrant][]*domain.Task, error) {
	open := false
	tasks, _, err := u.ListTasks(userID, &open, 0, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	matrix := map[domain.Quadrant][]*domain.Task{
		domain.QuadrantDoFirst:   {},
		domain.QuadrantSchedule:  {},
		domain.QuadrantDelegate:  {},
		domain.QuadrantEliminate: {},
	}
	for _, t := range tasks {
		q := domain.ClassifyTask(t, now)
		matrix[q] = append(matrix[q], t)
	}
	return matrix, nil
}

func (u *taskUsecase) SemanticSearch(ctx context.Context, userID, query string, limit int) ([]*domain.Task, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if u.vectorIndexer == nil {
		return nil, errors.New("semantic search not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	ids, _, err := u.vectorIndexer.Search(ctx, userID, query, limit)
	if err != nil {
		return nil, err
	}

	tasks, err := u.store.FindByIDs(userID, ids)
	if err != nil {
		return nil, apperr.Persistence("load search results", err)
	}

	// Preserve ranking order from the vector index
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	ordered := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

func (u *taskUsecase) notifyGoalChange(userID string, goalID *string) {
	if goalID != nil && *goalID != "" && u.goalListener != nil {
		u.goalListener(userID, *goalID)
	}
}

func (u *taskUsecase) indexTask(task *domain.Task) {
	if u.vectorIndexer == nil {
		return
	}
	t := *task
	go func() {
		if err := u.vectorIndexer.UpsertTask(context.Background(), t.ID, t.UserID, t.Title, t.Description); err != nil {
			log.Printf("[TaskUsecase] Failed to index task %s: %v", t.ID, err)
		}
	}()
}

func parseEffort(e string) (domain.Effort, error) {
	switch e {
	case "low":
		return domain.EffortLow, nil
	case "medium":
		return domain.EffortMedium, nil
	case "high":
		return domain.EffortHigh, nil
	default:
		return "", apperr.Validation("effort must be low, medium or high, got %q", e)
	}
}
