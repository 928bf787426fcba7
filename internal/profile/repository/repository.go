package repository

import "lifeos-backend/internal/profile/domain"

// ProfileStore persists gamification profiles and unlocked achievements.
type ProfileStore interface {
	// GetOrCreate returns the user's profile, lazily creating an empty one
	// on first access.
	GetOrCreate(userID string) (*domain.UserProfile, error)
	Update(profile *domain.UserProfile) error

	UnlockedByUserID(userID string) ([]domain.UnlockedAchievement, error)
	// Unlock is idempotent: unlocking an already-unlocked achievement is a
	// no-op success.
	Unlock(userID, achievementID string) error
}
