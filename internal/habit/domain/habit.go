package domain

import "time"

// Habit is a daily recurring activity the user tracks.
type Habit struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	Title     string    `json:"title"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HabitLog marks one habit as done on one date. The row's existence is
// the completion; there is nothing else to store.
type HabitLog struct {
	HabitID  string    `json:"habit_id" gorm:"primaryKey"`
	Date     string    `json:"date" gorm:"primaryKey"` // YYYY-MM-DD
	UserID   string    `json:"user_id" gorm:"index"`
	LoggedAt time.Time `json:"logged_at"`
}

// DayKey formats t as the log-row date key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Streak counts consecutive logged days walking backward from today, or
// from yesterday when today is not yet logged. logged holds day keys.
func Streak(logged map[string]bool, now time.Time) int {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !logged[DayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for logged[DayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
