package usecase

import (
	"lifeos-backend/internal/profile/domain"
	taskdomain "lifeos-backend/internal/task/domain"
)

// AchievementStatus pairs a catalogue entry with the user's unlock state.
type AchievementStatus struct {
	domain.Achievement
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
}

// ProfileView is the full gamification state returned to the client.
type ProfileView struct {
	*domain.UserProfile
	XPForNextLevel int                 `json:"xp_for_next_level"`
	Achievements   []AchievementStatus `json:"achievements"`
}

// ProfileUsecase maintains the per-user XP, level, streak and achievement
// state. XP is monotonic: completion awards are never reversed.
type ProfileUsecase interface {
	GetProfile(userID string) (*ProfileView, error)
	// AwardTaskXP credits the XP for a completed task. Wired as the task
	// usecase's completion listener.
	AwardTaskXP(task *taskdomain.Task) error
	// RecordFocusSession credits XP for a finished focus session of the
	// given length in minutes.
	RecordFocusSession(userID string, minutes int) (*domain.UserProfile, error)
}
