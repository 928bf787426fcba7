package usecase

import (
	"strings"
	"time"

	"lifeos-backend/internal/workout/domain"
	"lifeos-backend/internal/workout/repository"
	"lifeos-backend/pkg/apperr"
)

// workoutUsecase implements WorkoutUsecase
type workoutUsecase struct {
	store       repository.WorkoutStore
	logListener LogListener
}

// NewWorkoutUsecase creates a new instance of workoutUsecase
func NewWorkoutUsecase(store repository.WorkoutStore) WorkoutUsecase {
	return &workoutUsecase{store: store}
}

func (u *workoutUsecase) SetLogListener(l LogListener) {
	u.logListener = l
}

func (u *workoutUsecase) CreateWorkout(userID string, input CreateWorkoutInput) (*domain.Workout, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if input.DurationMinutes < 0 {
		return nil, apperr.Validation("duration_minutes cannot be negative, got %d", input.DurationMinutes)
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			return nil, apperr.Validation("date must be RFC3339, got %q", input.Date)
		}
		date = parsed
	}

	workout := &domain.Workout{
		UserID:          userID,
		Title:           strings.TrimSpace(input.Title),
		Date:            date,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		Exercises:       input.Exercises,
	}
	if err := u.store.Create(workout); err != nil {
		return nil, apperr.Persistence("create workout", err)
	}

	if u.logListener != nil && workout.DurationMinutes > 0 {
		u.logListener(userID, workout.DurationMinutes)
	}
	return workout, nil
}

func (u *workoutUsecase) GetWorkout(userID, workoutID string) (*domain.Workout, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	workout, err := u.store.FindByID(userID, workoutID)
	if err != nil {
		return nil, apperr.Persistence("find workout", err)
	}
	if workout == nil {
		return nil, apperr.ErrNotFound
	}
	return workout, nil
}

func (u *workoutUsecase) ListWorkouts(userID string) ([]*domain.Workout, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	workouts, err := u.store.FindByUserID(userID)
	if err != nil {
		return nil, apperr.Persistence("list workouts", err)
	}
	return workouts, nil
}

func (u *workoutUsecase) UpdateWorkout(userID, workoutID string, update WorkoutUpdate) (*domain.Workout, error) {
	workout, err := u.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		workout.Title = strings.TrimSpace(*update.Title)
	}
	if update.Date != nil {
		date, err := time.Parse(time.RFC3339, *update.Date)
		if err != nil {
			return nil, apperr.Validation("date must be RFC3339, got %q", *update.Date)
		}
		workout.Date = date
	}
	if update.DurationMinutes != nil {
		if *update.DurationMinutes < 0 {
			return nil, apperr.Validation("duration_minutes cannot be negative, got %d", *update.DurationMinutes)
		}
		workout.DurationMinutes = *update.DurationMinutes
	}
	if update.Notes != nil {
		workout.Notes = *update.Notes
	}
	if update.Exercises != nil {
		workout.Exercises = *update.Exercises
	}

	if err := u.store.Update(workout); err != nil {
		return nil, apperr.Persistence("update workout", err)
	}
	return workout, nil
}

func (u *workoutUsecase) DeleteWorkout(userID, workoutID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}
	if err := u.store.Delete(userID, workoutID); err != nil {
		return apperr.Persistence("delete workout", err)
	}
	return nil
}
