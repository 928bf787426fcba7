package usecase

import (
	"errors"
	"testing"
	"time"

	"lifeos-backend/internal/profile/repository"
	taskdomain "lifeos-backend/internal/task/domain"
	"lifeos-backend/pkg/apperr"
)

const testUserID = "user-1"

func TestGetProfile_LazyCreation(t *testing.T) {
	uc := NewProfileUsecase(repository.NewMemoryProfileStore())

	view, err := uc.GetProfile(testUserID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if view.XP != 0 || view.Level != 0 || view.StreakDays != 0 {
		t.Errorf("fresh profile not zeroed: xp=%d level=%d streak=%d", view.XP, view.Level, view.StreakDays)
	}
	if view.XPForNextLevel != 500 {
		t.Errorf("expected 500 XP to level 1, got %d", view.XPForNextLevel)
	}
	for _, a := range view.Achievements {
		if a.Unlocked {
			t.Errorf("achievement %s unlocked on fresh profile", a.ID)
		}
	}

	if _, err := uc.GetProfile(""); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated error, got %v", err)
	}
}

func TestAwardTaskXP(t *testing.T) {
	uc := NewProfileUsecase(repository.NewMemoryProfileStore())

	urgent, important := true, true
	task := &taskdomain.Task{
		UserID:      testUserID,
		Title:       "ship release",
		Priority:    taskdomain.PriorityHigh,
		Effort:      taskdomain.EffortHigh,
		IsUrgent:    &urgent,
		IsImportant: &important,
	}
	if err := uc.AwardTaskXP(task); err != nil {
		t.Fatalf("AwardTaskXP: %v", err)
	}

	view, err := uc.GetProfile(testUserID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	// 150 base * 1.5 multiplier + 25 per flag
	if view.XP != 275 {
		t.Errorf("expected 275 XP, got %d", view.XP)
	}
	if view.TasksCompleted != 1 {
		t.Errorf("expected 1 completed task, got %d", view.TasksCompleted)
	}
	if view.StreakDays != 1 {
		t.Errorf("first activity should start a 1-day streak, got %d", view.StreakDays)
	}

	var firstTask *AchievementStatus
	for i := range view.Achievements {
		if view.Achievements[i].ID == "first_task" {
			firstTask = &view.Achievements[i]
		}
	}
	if firstTask == nil || !firstTask.Unlocked {
		t.Error("first_task achievement should unlock after one completion")
	}
}

func TestRecordFocusSession(t *testing.T) {
	uc := NewProfileUsecase(repository.NewMemoryProfileStore())

	profile, err := uc.RecordFocusSession(testUserID, 30)
	if err != nil {
		t.Fatalf("RecordFocusSession: %v", err)
	}
	if profile.XP != 300 {
		t.Errorf("expected 300 XP for 30 minutes, got %d", profile.XP)
	}
	if profile.FocusMinutes != 30 {
		t.Errorf("expected 30 focus minutes, got %d", profile.FocusMinutes)
	}

	// 30 more minutes crosses 500 XP and level 1.
	profile, err = uc.RecordFocusSession(testUserID, 30)
	if err != nil {
		t.Fatalf("RecordFocusSession: %v", err)
	}
	if profile.XP != 600 || profile.Level != 1 {
		t.Errorf("expected 600 XP at level 1, got %d XP at level %d", profile.XP, profile.Level)
	}

	if _, err := uc.RecordFocusSession(testUserID, -5); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("negative minutes must fail validation, got %v", err)
	}
	if _, err := uc.RecordFocusSession("", 10); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated error, got %v", err)
	}
}

func TestStreakProgression(t *testing.T) {
	store := repository.NewMemoryProfileStore()
	uc := NewProfileUsecase(store)

	seed := func(lastActive time.Time, streak int) {
		t.Helper()
		profile, err := store.GetOrCreate(testUserID)
		if err != nil {
			t.Fatalf("GetOrCreate: %v", err)
		}
		day := time.Date(lastActive.Year(), lastActive.Month(), lastActive.Day(), 0, 0, 0, 0, lastActive.Location())
		profile.LastActiveDate = &day
		profile.StreakDays = streak
		if err := store.Update(profile); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	now := time.Now()

	// Active yesterday: streak continues.
	seed(now.AddDate(0, 0, -1), 3)
	profile, err := uc.RecordFocusSession(testUserID, 5)
	if err != nil {
		t.Fatalf("RecordFocusSession: %v", err)
	}
	if profile.StreakDays != 4 {
		t.Errorf("consecutive day should extend streak to 4, got %d", profile.StreakDays)
	}

	// Second activity the same day: no double count.
	profile, err = uc.RecordFocusSession(testUserID, 5)
	if err != nil {
		t.Fatalf("RecordFocusSession: %v", err)
	}
	if profile.StreakDays != 4 {
		t.Errorf("same-day activity must not extend streak, got %d", profile.StreakDays)
	}

	// A gap resets the streak.
	seed(now.AddDate(0, 0, -3), 9)
	profile, err = uc.RecordFocusSession(testUserID, 5)
	if err != nil {
		t.Fatalf("RecordFocusSession: %v", err)
	}
	if profile.StreakDays != 1 {
		t.Errorf("gap should reset streak to 1, got %d", profile.StreakDays)
	}
}

func TestXPIsMonotonic(t *testing.T) {
	uc := NewProfileUsecase(repository.NewMemoryProfileStore())

	task := &taskdomain.Task{UserID: testUserID, Title: "x", Priority: taskdomain.PriorityLow, Effort: taskdomain.EffortLow}
	if err := uc.AwardTaskXP(task); err != nil {
		t.Fatalf("AwardTaskXP: %v", err)
	}
	view, _ := uc.GetProfile(testUserID)
	before := view.XP

	// Re-completing after an un-complete awards again; nothing is ever
	// subtracted. The caller gates on the false-to-true transition.
	if err := uc.AwardTaskXP(task); err != nil {
		t.Fatalf("AwardTaskXP: %v", err)
	}
	view, _ = uc.GetProfile(testUserID)
	if view.XP <= before {
		t.Errorf("XP must only grow, went from %d to %d", before, view.XP)
	}
}
