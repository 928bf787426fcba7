package usecase

import "lifeos-backend/internal/workout/domain"

// CreateWorkoutInput carries the fields accepted when logging a workout.
// Date is an RFC3339 timestamp; empty means now.
type CreateWorkoutInput struct {
	Title           string
	Date            string
	DurationMinutes int
	Notes           string
	Exercises       []domain.Exercise
}

// WorkoutUpdate is a tagged optional-field update.
type WorkoutUpdate struct {
	Title           *string            `json:"title,omitempty"`
	Date            *string            `json:"date,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	Exercises       *[]domain.Exercise `json:"exercises,omitempty"`
}

// WorkoutUsecase manages workout logs.
type WorkoutUsecase interface {
	CreateWorkout(userID string, input CreateWorkoutInput) (*domain.Workout, error)
	GetWorkout(userID, workoutID string) (*domain.Workout, error)
	ListWorkouts(userID string) ([]*domain.Workout, error)
	UpdateWorkout(userID, workoutID string, update WorkoutUpdate) (*domain.Workout, error)
	DeleteWorkout(userID, workoutID string) error

	// SetLogListener registers the hook fired when a workout is logged,
	// carrying its duration. Wired by the application (XP credit).
	SetLogListener(l LogListener)
}

// LogListener observes newly logged workouts.
type LogListener func(userID string, durationMinutes int)
