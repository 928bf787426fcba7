package repository

import (
	"sync"
	"time"

	"lifeos-backend/internal/habit/domain"

	"github.com/google/uuid"
)

// memoryHabitStore is an in-memory HabitStore used for guest mode and as
// a test double.
type memoryHabitStore struct {
	mu     sync.RWMutex
	habits map[string][]*domain.Habit // userID -> habits
	logs   map[string]map[string]bool // habitID -> date -> logged
}

// NewMemoryHabitStore creates an empty in-memory HabitStore.
func NewMemoryHabitStore() HabitStore {
	return &memoryHabitStore{
		habits: make(map[string][]*domain.Habit),
		logs:   make(map[string]map[string]bool),
	}
}

func (s *memoryHabitStore) Create(habit *domain.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()

	clone := *habit
	s.habits[habit.UserID] = append(s.habits[habit.UserID], &clone)
	return nil
}

func (s *memoryHabitStore) FindByID(userID, id string) (*domain.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.habits[userID] {
		if h.ID == id {
			clone := *h
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryHabitStore) FindByUserID(userID string) ([]*domain.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Habit, 0, len(s.habits[userID]))
	for _, h := range s.habits[userID] {
		clone := *h
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memoryHabitStore) Update(habit *domain.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.habits[habit.UserID] {
		if h.ID == habit.ID {
			habit.UpdatedAt = time.Now()
			clone := *habit
			s.habits[habit.UserID][i] = &clone
			return nil
		}
	}
	return nil
}

func (s *memoryHabitStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.habits[userID]
	for i, h := range habits {
		if h.ID == id {
			s.habits[userID] = append(habits[:i], habits[i+1:]...)
			delete(s.logs, id)
			return nil
		}
	}
	return nil
}

func (s *memoryHabitStore) LogDates(habitID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logged := make(map[string]bool, len(s.logs[habitID]))
	for d, v := range s.logs[habitID] {
		if v {
			logged[d] = true
		}
	}
	return logged, nil
}

func (s *memoryHabitStore) AddLog(log *domain.HabitLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logs[log.HabitID] == nil {
		s.logs[log.HabitID] = make(map[string]bool)
	}
	s.logs[log.HabitID][log.Date] = true
	return nil
}

func (s *memoryHabitStore) RemoveLog(habitID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.logs[habitID], date)
	return nil
}

func (s *memoryHabitStore) HasLog(habitID, date string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.logs[habitID][date], nil
}
