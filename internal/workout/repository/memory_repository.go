package repository

import (
	"sort"
	"sync"
	"time"

	"lifeos-backend/internal/workout/domain"

	"github.com/google/uuid"
)

// memoryWorkoutStore is an in-memory WorkoutStore used for guest mode and
// as a test double.
type memoryWorkoutStore struct {
	mu       sync.RWMutex
	workouts map[string][]*domain.Workout // userID -> workouts
}

// NewMemoryWorkoutStore creates an empty in-memory WorkoutStore.
func NewMemoryWorkoutStore() WorkoutStore {
	return &memoryWorkoutStore{workouts: make(map[string][]*domain.Workout)}
}

func (s *memoryWorkoutStore) Create(workout *domain.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = time.Now()

	clone := *workout
	s.workouts[workout.UserID] = append(s.workouts[workout.UserID], &clone)
	return nil
}

func (s *memoryWorkoutStore) FindByID(userID, id string) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.workouts[userID] {
		if w.ID == id {
			clone := *w
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryWorkoutStore) FindByUserID(userID string) ([]*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Workout, 0, len(s.workouts[userID]))
	for _, w := range s.workouts[userID] {
		clone := *w
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *memoryWorkoutStore) Update(workout *domain.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.workouts[workout.UserID] {
		if w.ID == workout.ID {
			workout.UpdatedAt = time.Now()
			clone := *workout
			s.workouts[workout.UserID][i] = &clone
			return nil
		}
	}
	return nil
}

func (s *memoryWorkoutStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workouts := s.workouts[userID]
	for i, w := range workouts {
		if w.ID == id {
			s.workouts[userID] = append(workouts[:i], workouts[i+1:]...)
			return nil
		}
	}
	return nil
}
