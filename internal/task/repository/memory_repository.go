package repository

import (
	"sync"
	"time"

	"lifeos-backend/internal/task/domain"

	"github.com/google/uuid"
)

// memoryTaskStore is an in-memory TaskStore used for guest mode and as a
// test double. Tasks are kept per user in insertion order.
type memoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string][]*domain.Task // userID -> tasks

	// failNext, when set, makes the next write fail with this error. Used
	// by tests to simulate primary-store failures.
	failNext error
}

// NewMemoryTaskStore creates an empty in-memory TaskStore.
func NewMemoryTaskStore() TaskStore {
	return &memoryTaskStore{tasks: make(map[string][]*domain.Task)}
}

// FailNextWrite arms a one-shot write failure. Only reachable from tests
// that construct the concrete type.
func (s *memoryTaskStore) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

func (s *memoryTaskStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *memoryTaskStore) Create(task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	clone := *task
	s.tasks[task.UserID] = append(s.tasks[task.UserID], &clone)
	return nil
}

func (s *memoryTaskStore) FindByID(userID, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks[userID] {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryTaskStore) FindByUserID(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.Task
	all := s.tasks[userID]
	// Most recent first
	for i := len(all) - 1; i >= 0; i-- {
		t := all[i]
		if completed != nil && t.IsCompleted != *completed {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*domain.Task{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *memoryTaskStore) FindByIDs(userID string, ids []string) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var matched []*domain.Task
	for _, t := range s.tasks[userID] {
		if want[t.ID] {
			clone := *t
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (s *memoryTaskStore) Update(task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	for i, t := range s.tasks[task.UserID] {
		if t.ID == task.ID {
			task.UpdatedAt = time.Now()
			clone := *task
			s.tasks[task.UserID][i] = &clone
			return nil
		}
	}
	return nil
}

func (s *memoryTaskStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	tasks := s.tasks[userID]
	for i, t := range tasks {
		if t.ID == id {
			s.tasks[userID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	// Absent id: no-op success
	return nil
}

func (s *memoryTaskStore) CountByGoal(userID, goalID string) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total, completed int
	for _, t := range s.tasks[userID] {
		if t.GoalID != nil && *t.GoalID == goalID {
			total++
			if t.IsCompleted {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (s *memoryTaskStore) FindIDsByGoal(userID, goalID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, t := range s.tasks[userID] {
		if t.GoalID != nil && *t.GoalID == goalID {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (s *memoryTaskStore) FindPendingReminders(now time.Time, window time.Duration) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*domain.Task
	for _, tasks := range s.tasks {
		for _, t := range tasks {
			if t.DueDate == nil || t.ReminderSent || t.IsCompleted {
				continue
			}
			if !t.DueDate.Before(now) && !t.DueDate.After(now.Add(window)) {
				clone := *t
				due = append(due, &clone)
			}
		}
	}
	return due, nil
}

func (s *memoryTaskStore) MarkReminderSent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tasks := range s.tasks {
		for _, t := range tasks {
			if t.ID == id {
				t.ReminderSent = true
				t.UpdatedAt = time.Now()
			}
		}
	}
	return nil
}
