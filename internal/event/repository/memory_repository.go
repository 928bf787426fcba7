package repository

import (
	"sort"
	"sync"
	"time"

	"lifeos-backend/internal/event/domain"

	"github.com/google/uuid"
)

// memoryEventStore is an in-memory EventStore used for guest mode and as
// a test double.
type memoryEventStore struct {
	mu     sync.RWMutex
	events map[string][]*domain.CalendarEvent // userID -> events

	// failNext, when set, makes the next write fail with this error. Used
	// by tests to simulate primary-store failures.
	failNext error
}

// NewMemoryEventStore creates an empty in-memory EventStore.
func NewMemoryEventStore() EventStore {
	return &memoryEventStore{events: make(map[string][]*domain.CalendarEvent)}
}

// FailNextWrite arms a one-shot write failure. Only reachable from tests
// that construct the concrete type.
func (s *memoryEventStore) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

func (s *memoryEventStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *memoryEventStore) Create(event *domain.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	clone := *event
	s.events[event.UserID] = append(s.events[event.UserID], &clone)
	return nil
}

func (s *memoryEventStore) FindByID(userID, id string) (*domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events[userID] {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryEventStore) FindByUserID(userID string) ([]*domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.CalendarEvent
	for _, e := range s.events[userID] {
		clone := *e
		matched = append(matched, &clone)
	}
	sortByStart(matched)
	return matched, nil
}

func (s *memoryEventStore) FindByRange(userID string, from, to time.Time) ([]*domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.CalendarEvent
	for _, e := range s.events[userID] {
		if e.StartTime.Before(from) || !e.StartTime.Before(to) {
			continue
		}
		clone := *e
		matched = append(matched, &clone)
	}
	sortByStart(matched)
	return matched, nil
}

func (s *memoryEventStore) FindUpcoming(userID string, from time.Time, limit int) ([]*domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.CalendarEvent
	for _, e := range s.events[userID] {
		if e.StartTime.Before(from) {
			continue
		}
		clone := *e
		matched = append(matched, &clone)
	}
	sortByStart(matched)
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memoryEventStore) Update(event *domain.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	for i, e := range s.events[event.UserID] {
		if e.ID == event.ID {
			event.UpdatedAt = time.Now()
			clone := *event
			s.events[event.UserID][i] = &clone
			return nil
		}
	}
	return nil
}

func (s *memoryEventStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	events := s.events[userID]
	for i, e := range events {
		if e.ID == id {
			s.events[userID] = append(events[:i], events[i+1:]...)
			return nil
		}
	}
	return nil
}

func sortByStart(events []*domain.CalendarEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
