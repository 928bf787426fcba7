package usecase

import (
	"log"
	"sort"
	"time"

	"lifeos-backend/internal/gamification"
	"lifeos-backend/internal/profile/domain"
	"lifeos-backend/internal/profile/repository"
	taskdomain "lifeos-backend/internal/task/domain"
	"lifeos-backend/pkg/apperr"
)

// profileUsecase implements ProfileUsecase
type profileUsecase struct {
	store repository.ProfileStore
}

// NewProfileUsecase creates a new instance of profileUsecase
func NewProfileUsecase(store repository.ProfileStore) ProfileUsecase {
	return &profileUsecase{store: store}
}

func (u *profileUsecase) GetProfile(userID string) (*ProfileView, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	profile, err := u.store.GetOrCreate(userID)
	if err != nil {
		return nil, apperr.Persistence("load profile", err)
	}

	unlocked, err := u.store.UnlockedByUserID(userID)
	if err != nil {
		return nil, apperr.Persistence("load achievements", err)
	}
	unlockedAt := make(map[string]time.Time, len(unlocked))
	for _, row := range unlocked {
		unlockedAt[row.AchievementID] = row.UnlockedAt
	}

	statuses := make([]AchievementStatus, 0, len(domain.Achievements))
	for _, a := range domain.Achievements {
		status := AchievementStatus{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			status.Unlocked = true
			status.UnlockedAt = at.Format(time.RFC3339)
		}
		statuses = append(statuses, status)
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Unlocked && !statuses[j].Unlocked
	})

	return &ProfileView{
		UserProfile:    profile,
		XPForNextLevel: gamification.XPForNextLevel(profile.Level),
		Achievements:   statuses,
	}, nil
}

func (u *profileUsecase) AwardTaskXP(task *taskdomain.Task) error {
	profile, err := u.store.GetOrCreate(task.UserID)
	if err != nil {
		return apperr.Persistence("load profile", err)
	}

	profile.XP += gamification.TaskXP(task)
	profile.TasksCompleted++
	u.refresh(profile, time.Now())

	if err := u.store.Update(profile); err != nil {
		return apperr.Persistence("save profile", err)
	}

	u.checkAchievements(profile)
	return nil
}

func (u *profileUsecase) RecordFocusSession(userID string, minutes int) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	xp, err := gamification.FocusXP(minutes)
	if err != nil {
		return nil, err
	}

	profile, err := u.store.GetOrCreate(userID)
	if err != nil {
		return nil, apperr.Persistence("load profile", err)
	}

	profile.XP += xp
	profile.FocusMinutes += minutes
	u.refresh(profile, time.Now())

	if err := u.store.Update(profile); err != nil {
		return nil, apperr.Persistence("save profile", err)
	}

	u.checkAchievements(profile)
	return profile, nil
}

// refresh recomputes the level from the new XP total and advances the
// daily activity streak.
func (u *profileUsecase) refresh(profile *domain.UserProfile, now time.Time) {
	level, err := gamification.LevelFromXP(profile.XP)
	if err == nil {
		profile.Level = level
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case profile.LastActiveDate == nil:
		profile.StreakDays = 1
	case profile.LastActiveDate.Equal(today):
		// Already counted today.
	case profile.LastActiveDate.Equal(today.AddDate(0, 0, -1)):
		profile.StreakDays++
	default:
		profile.StreakDays = 1
	}
	profile.LastActiveDate = &today
}

func (u *profileUsecase) checkAchievements(profile *domain.UserProfile) {
	for _, a := range domain.Achievements {
		if a.MetricValue(profile) < a.Threshold {
			continue
		}
		if err := u.store.Unlock(profile.UserID, a.ID); err != nil {
			log.Printf("[ProfileUsecase] Failed to unlock achievement %s for user %s: %v", a.ID, profile.UserID, err)
		}
	}
}
