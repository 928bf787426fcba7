package usecase

import (
	"errors"
	"testing"
	"time"

	"lifeos-backend/internal/task/domain"
	"lifeos-backend/internal/task/repository"
	"lifeos-backend/pkg/apperr"
)

const testUser = "user-1"

func newTestUsecase() (*taskUsecase, repository.TaskStore) {
	store := repository.NewMemoryTaskStore()
	return NewTaskUsecase(store).(*taskUsecase), store
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestCreateTask_DefaultsAndView(t *testing.T) {
	uc, _ := newTestUsecase()

	task, err := uc.CreateTask(testUser, CreateTaskInput{Title: "  write report  "})
	if err != nil {
		t.Fatalf("CreateTask error: %v", err)
	}

	if task.ID == "" {
		t.Error("expected generated id")
	}
	if task.Title != "write report" {
		t.Errorf("title = %q, want trimmed", task.Title)
	}
	if task.Priority != domain.PriorityMedium {
		t.Errorf("priority = %s, want default medium", task.Priority)
	}
	if task.IsUrgent == nil || *task.IsUrgent {
		t.Error("is_urgent should default to explicit false")
	}
	if task.IsImportant == nil || *task.IsImportant {
		t.Error("is_important should default to explicit false")
	}
	if task.DueDate != nil || task.GoalID != nil {
		t.Error("due date and goal should default to null")
	}

	// Most-recent-first local view, reconciled with the stored record
	second, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "second"})
	view := uc.view.snapshot(testUser)
	if len(view) != 2 || view[0].ID != second.ID || view[1].ID != task.ID {
		t.Errorf("view not most-recent-first: %+v", view)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	uc, _ := newTestUsecase()

	if _, err := uc.CreateTask(testUser, CreateTaskInput{Title: "   "}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank title: got %v, want ErrValidation", err)
	}

	bad := "not-a-date"
	if _, err := uc.CreateTask(testUser, CreateTaskInput{Title: "x", DueDate: &bad}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad due date: got %v, want ErrValidation", err)
	}

	if _, err := uc.CreateTask(testUser, CreateTaskInput{Title: "x", Effort: "extreme"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad effort: got %v, want ErrValidation", err)
	}

	if _, err := uc.CreateTask("", CreateTaskInput{Title: "x"}); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("no user: got %v, want ErrUnauthenticated", err)
	}
}

func TestCreateTask_StoreFailureLeavesViewUntouched(t *testing.T) {
	uc, store := newTestUsecase()
	type failer interface{ FailNextWrite(error) }

	store.(failer).FailNextWrite(errors.New("connection reset"))

	_, err := uc.CreateTask(testUser, CreateTaskInput{Title: "doomed"})
	var perr *apperr.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want PersistenceError", err)
	}

	if view := uc.view.snapshot(testUser); len(view) != 0 {
		t.Errorf("view mutated on store failure: %+v", view)
	}
}

func TestUpdateTask_PartialAndClear(t *testing.T) {
	uc, _ := newTestUsecase()

	due := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	goal := "goal-1"
	task, err := uc.CreateTask(testUser, CreateTaskInput{
		Title:   "initial",
		DueDate: &due,
		GoalID:  &goal,
	})
	if err != nil {
		t.Fatalf("CreateTask error: %v", err)
	}

	// Only title provided: everything else untouched
	updated, err := uc.UpdateTask(testUser, task.ID, TaskUpdate{Title: strPtr("renamed")})
	if err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.DueDate == nil || updated.GoalID == nil {
		t.Error("untouched fields were modified")
	}

	// Explicit clears null out the nullable fields
	updated, err = uc.UpdateTask(testUser, task.ID, TaskUpdate{ClearDue: true, ClearGoal: true})
	if err != nil {
		t.Fatalf("UpdateTask clear error: %v", err)
	}
	if updated.DueDate != nil || updated.GoalID != nil {
		t.Error("clear flags did not null the fields")
	}

	// View reflects the last acked record
	view := uc.view.snapshot(testUser)
	if len(view) != 1 || view[0].DueDate != nil || view[0].Title != "renamed" {
		t.Errorf("view out of sync: %+v", view[0])
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	uc, _ := newTestUsecase()

	if _, err := uc.UpdateTask(testUser, "missing", TaskUpdate{Title: strPtr("x")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	// Owner mismatch is indistinguishable from absence
	task, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "mine"})
	if _, err := uc.UpdateTask("someone-else", task.ID, TaskUpdate{Title: strPtr("x")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-owner update: got %v, want ErrNotFound", err)
	}
}

func TestToggleTask_CompletionListenerFiresOnce(t *testing.T) {
	uc, _ := newTestUsecase()

	var fired []string
	uc.SetCompletionListener(func(task *domain.Task) {
		fired = append(fired, task.ID)
	})

	task, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "t"})

	if _, err := uc.ToggleTask(testUser, task.ID, true); err != nil {
		t.Fatalf("ToggleTask error: %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("listener fired %d times, want 1", len(fired))
	}

	// Already complete: no second event
	uc.ToggleTask(testUser, task.ID, true)
	if len(fired) != 1 {
		t.Errorf("listener re-fired on no-op toggle")
	}

	// Un-complete then re-complete fires again
	uc.ToggleTask(testUser, task.ID, false)
	uc.ToggleTask(testUser, task.ID, true)
	if len(fired) != 2 {
		t.Errorf("listener fired %d times after re-completion, want 2", len(fired))
	}
}

func TestToggleTask_NotifiesGoal(t *testing.T) {
	uc, _ := newTestUsecase()

	var recomputed []string
	uc.SetGoalChangeListener(func(userID, goalID string) {
		recomputed = append(recomputed, goalID)
	})

	goal := "goal-42"
	task, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "linked", GoalID: &goal})
	if len(recomputed) != 1 || recomputed[0] != goal {
		t.Fatalf("create should notify goal, got %v", recomputed)
	}

	uc.ToggleTask(testUser, task.ID, true)
	if len(recomputed) != 2 {
		t.Errorf("toggle should notify goal, got %v", recomputed)
	}

	uc.DeleteTask(testUser, task.ID)
	if len(recomputed) != 3 {
		t.Errorf("delete should notify goal, got %v", recomputed)
	}
}

func TestDeleteTask_Idempotent(t *testing.T) {
	uc, _ := newTestUsecase()

	task, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "gone soon"})

	if err := uc.DeleteTask(testUser, task.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := uc.DeleteTask(testUser, task.ID); err != nil {
		t.Fatalf("second delete should be no-op success, got %v", err)
	}

	if view := uc.view.snapshot(testUser); len(view) != 0 {
		t.Errorf("view still holds deleted task")
	}
}

func TestConcurrentUpdates_LastAckWins(t *testing.T) {
	// Two in-flight updates to the same record race last-write-wins at the
	// store; the view must match whichever write the store acked last, not
	// a merge of both.
	uc, store := newTestUsecase()

	task, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "contended"})

	if _, err := uc.UpdateTask(testUser, task.ID, TaskUpdate{Title: strPtr("from-a"), Priority: strPtr("high")}); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.UpdateTask(testUser, task.ID, TaskUpdate{Description: strPtr("from-b")}); err != nil {
		t.Fatal(err)
	}

	stored, err := store.FindByID(testUser, task.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored lookup: %v", err)
	}

	view := uc.view.snapshot(testUser)
	if len(view) != 1 {
		t.Fatalf("view size = %d", len(view))
	}
	got := view[0]
	if got.Title != stored.Title || got.Description != stored.Description || got.Priority != stored.Priority {
		t.Errorf("view %+v does not match store ack %+v", got, stored)
	}
}

func TestMatrixView_PartitionsOpenTasks(t *testing.T) {
	uc, _ := newTestUsecase()

	uc.CreateTask(testUser, CreateTaskInput{Title: "urgent important", IsUrgent: boolPtr(true), IsImportant: boolPtr(true)})
	uc.CreateTask(testUser, CreateTaskInput{Title: "important", IsUrgent: boolPtr(false), IsImportant: boolPtr(true)})
	uc.CreateTask(testUser, CreateTaskInput{Title: "nothing"})
	done, _ := uc.CreateTask(testUser, CreateTaskInput{Title: "done", IsUrgent: boolPtr(true), IsImportant: boolPtr(true)})
	uc.ToggleTask(testUser, done.ID, true)

	matrix, err := uc.MatrixView(testUser)
	if err != nil {
		t.Fatalf("MatrixView error: %v", err)
	}

	if len(matrix[domain.QuadrantDoFirst]) != 1 {
		t.Errorf("do_first = %d, want 1 (completed task excluded)", len(matrix[domain.QuadrantDoFirst]))
	}
	if len(matrix[domain.QuadrantSchedule]) != 1 {
		t.Errorf("schedule = %d, want 1", len(matrix[domain.QuadrantSchedule]))
	}
	if len(matrix[domain.QuadrantEliminate]) != 1 {
		t.Errorf("eliminate = %d, want 1", len(matrix[domain.QuadrantEliminate]))
	}
	if len(matrix[domain.QuadrantDelegate]) != 0 {
		t.Errorf("delegate = %d, want 0", len(matrix[domain.QuadrantDelegate]))
	}
}
