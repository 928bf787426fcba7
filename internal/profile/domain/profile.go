package domain

import "time"

// UserProfile is the per-user gamification record. XP only ever grows;
// un-completing a task does not claw anything back.
type UserProfile struct {
	UserID         string     `json:"user_id" gorm:"primaryKey"`
	XP             int        `json:"xp"`
	Level          int        `json:"level"`
	FocusMinutes   int        `json:"focus_minutes"`
	TasksCompleted int        `json:"tasks_completed"`
	StreakDays     int        `json:"streak_days"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Achievement metrics. Each achievement tracks one counter on the profile.
const (
	MetricTasksCompleted = "tasks_completed"
	MetricFocusMinutes   = "focus_minutes"
	MetricStreakDays     = "streak_days"
	MetricLevel          = "level"
)

// Achievement is a static definition; unlock state lives per user in
// UnlockedAchievement rows.
type Achievement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle"`
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
}

// Achievements is the fixed catalogue, checked in order after every
// XP-affecting operation.
var Achievements = []Achievement{
	{ID: "first_task", Name: "First Steps", Subtitle: "Complete your first task", Metric: MetricTasksCompleted, Threshold: 1},
	{ID: "task_10", Name: "Getting Things Done", Subtitle: "Complete 10 tasks", Metric: MetricTasksCompleted, Threshold: 10},
	{ID: "task_50", Name: "Task Master", Subtitle: "Complete 50 tasks", Metric: MetricTasksCompleted, Threshold: 50},
	{ID: "task_200", Name: "Unstoppable", Subtitle: "Complete 200 tasks", Metric: MetricTasksCompleted, Threshold: 200},
	{ID: "focus_60", Name: "Deep Diver", Subtitle: "Focus for a total of 1 hour", Metric: MetricFocusMinutes, Threshold: 60},
	{ID: "focus_600", Name: "Flow State", Subtitle: "Focus for a total of 10 hours", Metric: MetricFocusMinutes, Threshold: 600},
	{ID: "streak_7", Name: "Week Warrior", Subtitle: "Stay active 7 days in a row", Metric: MetricStreakDays, Threshold: 7},
	{ID: "streak_30", Name: "Habit Machine", Subtitle: "Stay active 30 days in a row", Metric: MetricStreakDays, Threshold: 30},
	{ID: "level_5", Name: "Rising Star", Subtitle: "Reach level 5", Metric: MetricLevel, Threshold: 5},
	{ID: "level_10", Name: "Veteran", Subtitle: "Reach level 10", Metric: MetricLevel, Threshold: 10},
}

// MetricValue returns the profile counter the achievement tracks.
func (a Achievement) MetricValue(p *UserProfile) int {
	switch a.Metric {
	case MetricTasksCompleted:
		return p.TasksCompleted
	case MetricFocusMinutes:
		return p.FocusMinutes
	case MetricStreakDays:
		return p.StreakDays
	case MetricLevel:
		return p.Level
	default:
		return 0
	}
}

// UnlockedAchievement records that a user unlocked one achievement.
type UnlockedAchievement struct {
	UserID        string    `json:"user_id" gorm:"primaryKey"`
	AchievementID string    `json:"achievement_id" gorm:"primaryKey"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
