package repository

import (
	"sync"
	"time"

	"lifeos-backend/internal/goal/domain"

	"github.com/google/uuid"
)

// memoryGoalStore is an in-memory GoalStore for guest mode and tests.
type memoryGoalStore struct {
	mu    sync.RWMutex
	goals map[string][]*domain.Goal // userID -> goals
}

// NewMemoryGoalStore creates an empty in-memory GoalStore.
func NewMemoryGoalStore() GoalStore {
	return &memoryGoalStore{goals: make(map[string][]*domain.Goal)}
}

func (s *memoryGoalStore) Create(goal *domain.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	clone := *goal
	s.goals[goal.UserID] = append(s.goals[goal.UserID], &clone)
	return nil
}

func (s *memoryGoalStore) FindByID(userID, id string) (*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.goals[userID] {
		if g.ID == id {
			clone := *g
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryGoalStore) FindByUserID(userID string) ([]*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.goals[userID]
	out := make([]*domain.Goal, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		clone := *all[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memoryGoalStore) Update(goal *domain.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals[goal.UserID] {
		if g.ID == goal.ID {
			goal.UpdatedAt = time.Now()
			clone := *goal
			s.goals[goal.UserID][i] = &clone
			return nil
		}
	}
	return nil
}

func (s *memoryGoalStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := s.goals[userID]
	for i, g := range goals {
		if g.ID == id {
			s.goals[userID] = append(goals[:i], goals[i+1:]...)
			return nil
		}
	}
	return nil
}
