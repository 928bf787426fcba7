package usecase

import (
	"errors"
	"testing"
	"time"

	"lifeos-backend/internal/workout/domain"
	"lifeos-backend/internal/workout/repository"
	"lifeos-backend/pkg/apperr"
)

const testUser = "user-1"

func newTestUsecase() WorkoutUsecase {
	return NewWorkoutUsecase(repository.NewMemoryWorkoutStore())
}

func intPtr(n int) *int { return &n }

func TestCreateWorkout_DefaultsAndListener(t *testing.T) {
	uc := newTestUsecase()

	var gotUser string
	var gotMinutes int
	uc.SetLogListener(func(userID string, durationMinutes int) {
		gotUser = userID
		gotMinutes = durationMinutes
	})

	workout, err := uc.CreateWorkout(testUser, CreateWorkoutInput{
		Title:           "  morning run  ",
		DurationMinutes: 45,
		Exercises:       []domain.Exercise{{Name: "intervals", Sets: 4}},
	})
	if err != nil {
		t.Fatalf("CreateWorkout error: %v", err)
	}
	if workout.ID == "" {
		t.Error("expected generated id")
	}
	if workout.Title != "morning run" {
		t.Errorf("title = %q, want trimmed", workout.Title)
	}
	if workout.Date.IsZero() {
		t.Error("empty date should default to now")
	}
	if gotUser != testUser || gotMinutes != 45 {
		t.Errorf("listener got (%q, %d), want (%q, 45)", gotUser, gotMinutes, testUser)
	}

	// Zero-duration workouts do not fire the listener
	gotMinutes = 0
	if _, err := uc.CreateWorkout(testUser, CreateWorkoutInput{Title: "stretching"}); err != nil {
		t.Fatalf("CreateWorkout error: %v", err)
	}
	if gotMinutes != 0 {
		t.Errorf("zero-duration workout fired listener with %d minutes", gotMinutes)
	}
}

func TestCreateWorkout_Validation(t *testing.T) {
	uc := newTestUsecase()

	cases := []struct {
		name  string
		input CreateWorkoutInput
	}{
		{"blank title", CreateWorkoutInput{Title: "   "}},
		{"negative duration", CreateWorkoutInput{Title: "x", DurationMinutes: -10}},
		{"bad date", CreateWorkoutInput{Title: "x", Date: "yesterday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateWorkout(testUser, tc.input); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}

	if _, err := uc.CreateWorkout("", CreateWorkoutInput{Title: "x"}); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("missing user: got %v, want ErrUnauthenticated", err)
	}
}

func TestUpdateWorkout_PartialFields(t *testing.T) {
	uc := newTestUsecase()

	workout, _ := uc.CreateWorkout(testUser, CreateWorkoutInput{
		Title:           "leg day",
		DurationMinutes: 60,
		Notes:           "heavy",
	})

	newDate := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC).Format(time.RFC3339)
	updated, err := uc.UpdateWorkout(testUser, workout.ID, WorkoutUpdate{
		DurationMinutes: intPtr(75),
		Date:            &newDate,
	})
	if err != nil {
		t.Fatalf("UpdateWorkout error: %v", err)
	}
	if updated.DurationMinutes != 75 {
		t.Errorf("duration = %d, want 75", updated.DurationMinutes)
	}
	if updated.Title != "leg day" || updated.Notes != "heavy" {
		t.Error("untouched fields should survive a partial update")
	}
	if !updated.Date.Equal(time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want updated", updated.Date)
	}

	exercises := []domain.Exercise{{Name: "squat", Sets: 5, Reps: 5, Weight: 100}}
	updated, err = uc.UpdateWorkout(testUser, workout.ID, WorkoutUpdate{Exercises: &exercises})
	if err != nil {
		t.Fatalf("UpdateWorkout error: %v", err)
	}
	if len(updated.Exercises) != 1 || updated.Exercises[0].Name != "squat" {
		t.Errorf("exercises = %+v, want replaced", updated.Exercises)
	}
}

func TestWorkout_OwnershipAndDelete(t *testing.T) {
	uc := newTestUsecase()

	workout, _ := uc.CreateWorkout(testUser, CreateWorkoutInput{Title: "swim"})

	if _, err := uc.GetWorkout("someone-else", workout.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-owner read: got %v, want ErrNotFound", err)
	}

	if err := uc.DeleteWorkout(testUser, workout.ID); err != nil {
		t.Fatalf("DeleteWorkout error: %v", err)
	}
	if _, err := uc.GetWorkout(testUser, workout.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("read after delete: got %v, want ErrNotFound", err)
	}

	list, err := uc.ListWorkouts(testUser)
	if err != nil {
		t.Fatalf("ListWorkouts error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list after delete = %d items, want 0", len(list))
	}
}
