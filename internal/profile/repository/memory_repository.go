package repository

import (
	"sync"
	"time"

	"lifeos-backend/internal/profile/domain"
)

// memoryProfileStore is an in-memory ProfileStore used for guest mode and
// as a test double.
type memoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*domain.UserProfile
	unlocked map[string]map[string]time.Time // userID -> achievementID -> unlockedAt
}

// NewMemoryProfileStore creates an empty in-memory ProfileStore.
func NewMemoryProfileStore() ProfileStore {
	return &memoryProfileStore{
		profiles: make(map[string]*domain.UserProfile),
		unlocked: make(map[string]map[string]time.Time),
	}
}

func (s *memoryProfileStore) GetOrCreate(userID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}

	p := &domain.UserProfile{
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.profiles[userID] = p
	clone := *p
	return &clone, nil
}

func (s *memoryProfileStore) Update(profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.UpdatedAt = time.Now()
	clone := *profile
	s.profiles[profile.UserID] = &clone
	return nil
}

func (s *memoryProfileStore) UnlockedByUserID(userID string) ([]domain.UnlockedAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []domain.UnlockedAchievement
	for id, at := range s.unlocked[userID] {
		rows = append(rows, domain.UnlockedAchievement{
			UserID:        userID,
			AchievementID: id,
			UnlockedAt:    at,
		})
	}
	return rows, nil
}

func (s *memoryProfileStore) Unlock(userID, achievementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unlocked[userID] == nil {
		s.unlocked[userID] = make(map[string]time.Time)
	}
	if _, ok := s.unlocked[userID][achievementID]; !ok {
		s.unlocked[userID][achievementID] = time.Now()
	}
	return nil
}
