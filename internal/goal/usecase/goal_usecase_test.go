package usecase

import (
	"errors"
	"testing"
	"time"

	"lifeos-backend/internal/gamification"
	"lifeos-backend/internal/goal/repository"
	taskrepo "lifeos-backend/internal/task/repository"
	taskusecase "lifeos-backend/internal/task/usecase"
	"lifeos-backend/pkg/apperr"
)

const testUser = "user-1"

// newTestStack wires a goal usecase to a task usecase through the
// goal-change listener, the same shape the application uses.
func newTestStack() (GoalUsecase, taskusecase.TaskUsecase) {
	goalStore := repository.NewMemoryGoalStore()
	taskStore := taskrepo.NewMemoryTaskStore()

	goalUc := NewGoalUsecase(goalStore, taskStore)
	taskUc := taskusecase.NewTaskUsecase(taskStore)
	taskUc.SetGoalChangeListener(goalUc.Recompute)

	return goalUc, taskUc
}

func strPtr(s string) *string { return &s }

func TestCreateGoal_DefaultsAndValidation(t *testing.T) {
	goalUc, _ := newTestStack()

	goal, err := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "  run a marathon  ", Category: "health"})
	if err != nil {
		t.Fatalf("CreateGoal error: %v", err)
	}
	if goal.ID == "" {
		t.Error("expected generated id")
	}
	if goal.Title != "run a marathon" {
		t.Errorf("title = %q, want trimmed", goal.Title)
	}
	if goal.Status != gamification.GoalOnTrack {
		t.Errorf("status = %s, want on-track", goal.Status)
	}
	if goal.Progress != 0 || goal.TotalTasks != 0 {
		t.Errorf("new goal should start at zero progress, got %d%% of %d", goal.Progress, goal.TotalTasks)
	}

	if _, err := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "   "}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank title: got %v, want ErrValidation", err)
	}
	bad := "next tuesday"
	if _, err := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "x", TargetDate: &bad}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad target date: got %v, want ErrValidation", err)
	}
	if _, err := goalUc.CreateGoal("", CreateGoalInput{Title: "x"}); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("missing user: got %v, want ErrUnauthenticated", err)
	}
}

func TestRecompute_TracksLinkedTasks(t *testing.T) {
	goalUc, taskUc := newTestStack()

	goal, err := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "ship v1"})
	if err != nil {
		t.Fatalf("CreateGoal error: %v", err)
	}

	first, _ := taskUc.CreateTask(testUser, taskusecase.CreateTaskInput{Title: "write docs", GoalID: &goal.ID})
	second, _ := taskUc.CreateTask(testUser, taskusecase.CreateTaskInput{Title: "fix tests", GoalID: &goal.ID})

	got, err := goalUc.GetGoal(testUser, goal.ID)
	if err != nil {
		t.Fatalf("GetGoal error: %v", err)
	}
	if got.TotalTasks != 2 || got.CompletedTasks != 0 || got.Progress != 0 {
		t.Errorf("after linking: total=%d completed=%d progress=%d, want 2/0/0", got.TotalTasks, got.CompletedTasks, got.Progress)
	}
	if len(got.LinkedTaskIDs) != 2 {
		t.Errorf("linked ids = %v, want both tasks", got.LinkedTaskIDs)
	}

	if _, err := taskUc.ToggleTask(testUser, first.ID, true); err != nil {
		t.Fatalf("ToggleTask error: %v", err)
	}
	got, _ = goalUc.GetGoal(testUser, goal.ID)
	if got.Progress != 50 || got.Status != gamification.GoalOnTrack {
		t.Errorf("after one of two done: progress=%d status=%s, want 50 on-track", got.Progress, got.Status)
	}

	if _, err := taskUc.ToggleTask(testUser, second.ID, true); err != nil {
		t.Fatalf("ToggleTask error: %v", err)
	}
	got, _ = goalUc.GetGoal(testUser, goal.ID)
	if got.Progress != 100 || got.Status != gamification.GoalCompleted {
		t.Errorf("after all done: progress=%d status=%s, want 100 completed", got.Progress, got.Status)
	}

	// Deleting a completed task shrinks the denominator back down
	if err := taskUc.DeleteTask(testUser, second.ID); err != nil {
		t.Fatalf("DeleteTask error: %v", err)
	}
	got, _ = goalUc.GetGoal(testUser, goal.ID)
	if got.TotalTasks != 1 || got.Progress != 100 {
		t.Errorf("after delete: total=%d progress=%d, want 1/100", got.TotalTasks, got.Progress)
	}
}

func TestRecompute_RelinkMovesProgress(t *testing.T) {
	goalUc, taskUc := newTestStack()

	a, _ := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "goal a"})
	b, _ := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "goal b"})

	task, _ := taskUc.CreateTask(testUser, taskusecase.CreateTaskInput{Title: "shared work", GoalID: &a.ID})
	if _, err := taskUc.ToggleTask(testUser, task.ID, true); err != nil {
		t.Fatalf("ToggleTask error: %v", err)
	}

	// Moving the task refreshes both the old and the new goal
	if _, err := taskUc.UpdateTask(testUser, task.ID, taskusecase.TaskUpdate{GoalID: &b.ID}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}

	gotA, _ := goalUc.GetGoal(testUser, a.ID)
	if gotA.TotalTasks != 0 || gotA.Progress != 0 {
		t.Errorf("old goal: total=%d progress=%d, want 0/0", gotA.TotalTasks, gotA.Progress)
	}
	gotB, _ := goalUc.GetGoal(testUser, b.ID)
	if gotB.TotalTasks != 1 || gotB.Progress != 100 {
		t.Errorf("new goal: total=%d progress=%d, want 1/100", gotB.TotalTasks, gotB.Progress)
	}
}

func TestUpdateGoal_TargetDateDerivesStatus(t *testing.T) {
	goalUc, _ := newTestStack()

	goal, _ := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "read 12 books"})

	past := time.Now().AddDate(0, 0, -2).Format(time.RFC3339)
	updated, err := goalUc.UpdateGoal(testUser, goal.ID, GoalUpdate{TargetDate: &past})
	if err != nil {
		t.Fatalf("UpdateGoal error: %v", err)
	}
	if updated.Status != gamification.GoalBehind {
		t.Errorf("past target: status = %s, want behind", updated.Status)
	}

	// Clearing the target puts the goal back on track
	updated, err = goalUc.UpdateGoal(testUser, goal.ID, GoalUpdate{ClearTarget: true})
	if err != nil {
		t.Fatalf("UpdateGoal error: %v", err)
	}
	if updated.TargetDate != nil {
		t.Error("target date should be cleared")
	}
	if updated.Status != gamification.GoalOnTrack {
		t.Errorf("cleared target: status = %s, want on-track", updated.Status)
	}
}

func TestGoal_OwnershipAndIdempotentDelete(t *testing.T) {
	goalUc, _ := newTestStack()

	goal, _ := goalUc.CreateGoal(testUser, CreateGoalInput{Title: "mine"})

	if _, err := goalUc.GetGoal("someone-else", goal.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-owner read: got %v, want ErrNotFound", err)
	}
	if _, err := goalUc.UpdateGoal("someone-else", goal.ID, GoalUpdate{Title: strPtr("stolen")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-owner update: got %v, want ErrNotFound", err)
	}

	if err := goalUc.DeleteGoal(testUser, goal.ID); err != nil {
		t.Fatalf("DeleteGoal error: %v", err)
	}
	// Deleting an absent id is still a success
	if err := goalUc.DeleteGoal(testUser, goal.ID); err != nil {
		t.Fatalf("repeat DeleteGoal error: %v", err)
	}
	if _, err := goalUc.GetGoal(testUser, goal.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("read after delete: got %v, want ErrNotFound", err)
	}
}
