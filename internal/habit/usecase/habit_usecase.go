package usecase

import (
	"sort"
	"strings"
	"time"

	"lifeos-backend/internal/habit/domain"
	"lifeos-backend/internal/habit/repository"
	"lifeos-backend/pkg/apperr"
)

// habitUsecase implements HabitUsecase
type habitUsecase struct {
	store repository.HabitStore
}

// NewHabitUsecase creates a new instance of habitUsecase
func NewHabitUsecase(store repository.HabitStore) HabitUsecase {
	return &habitUsecase{store: store}
}

func (u *habitUsecase) CreateHabit(userID, title, emoji string) (*domain.Habit, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title is required")
	}

	habit := &domain.Habit{
		UserID: userID,
		Title:  strings.TrimSpace(title),
		Emoji:  emoji,
	}
	if err := u.store.Create(habit); err != nil {
		return nil, apperr.Persistence("create habit", err)
	}
	return habit, nil
}

func (u *habitUsecase) ListHabits(userID string, now time.Time) ([]*HabitView, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	habits, err := u.store.FindByUserID(userID)
	if err != nil {
		return nil, apperr.Persistence("list habits", err)
	}

	views := make([]*HabitView, 0, len(habits))
	for _, h := range habits {
		view, err := u.buildView(h, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (u *habitUsecase) GetHabit(userID, habitID string, now time.Time) (*HabitView, error) {
	habit, err := u.getHabit(userID, habitID)
	if err != nil {
		return nil, err
	}
	return u.buildView(habit, now)
}

func (u *habitUsecase) UpdateHabit(userID, habitID string, title, emoji *string) (*domain.Habit, error) {
	habit, err := u.getHabit(userID, habitID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		habit.Title = strings.TrimSpace(*title)
	}
	if emoji != nil {
		habit.Emoji = *emoji
	}

	if err := u.store.Update(habit); err != nil {
		return nil, apperr.Persistence("update habit", err)
	}
	return habit, nil
}

func (u *habitUsecase) DeleteHabit(userID, habitID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}
	if err := u.store.Delete(userID, habitID); err != nil {
		return apperr.Persistence("delete habit", err)
	}
	return nil
}

func (u *habitUsecase) ToggleLog(userID, habitID, date string, now time.Time) (*HabitView, error) {
	habit, err := u.getHabit(userID, habitID)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = domain.DayKey(now)
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD, got %q", date)
	}

	logged, err := u.store.HasLog(habitID, date)
	if err != nil {
		return nil, apperr.Persistence("check habit log", err)
	}

	if logged {
		err = u.store.RemoveLog(habitID, date)
	} else {
		err = u.store.AddLog(&domain.HabitLog{HabitID: habitID, Date: date, UserID: userID})
	}
	if err != nil {
		return nil, apperr.Persistence("toggle habit log", err)
	}

	return u.buildView(habit, now)
}

func (u *habitUsecase) getHabit(userID, habitID string) (*domain.Habit, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	habit, err := u.store.FindByID(userID, habitID)
	if err != nil {
		return nil, apperr.Persistence("find habit", err)
	}
	if habit == nil {
		return nil, apperr.ErrNotFound
	}
	return habit, nil
}

func (u *habitUsecase) buildView(habit *domain.Habit, now time.Time) (*HabitView, error) {
	logged, err := u.store.LogDates(habit.ID)
	if err != nil {
		return nil, apperr.Persistence("load habit logs", err)
	}

	dates := make([]string, 0, len(logged))
	for d := range logged {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return &HabitView{
		Habit:       habit,
		Streak:      domain.Streak(logged, now),
		DoneToday:   logged[domain.DayKey(now)],
		LoggedDates: dates,
	}, nil
}
