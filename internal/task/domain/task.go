package domain

import "time"

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Effort represents the estimated effort of a task, used only for XP
type Effort string

const (
	EffortHigh   Effort = "high"
	EffortMedium Effort = "medium"
	EffortLow    Effort = "low"
)

// Task represents a to-do item. IsUrgent and IsImportant are pointers so
// that legacy records which never set them stay distinguishable from an
// explicit false.
type Task struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"index;not null"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description,omitempty"`
	Priority     Priority   `json:"priority" gorm:"default:medium"`
	Effort       Effort     `json:"effort,omitempty"`
	IsUrgent     *bool      `json:"is_urgent,omitempty"`
	IsImportant  *bool      `json:"is_important,omitempty"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	GoalID       *string    `json:"goal_id,omitempty" gorm:"index"`
	ReminderSent bool       `json:"reminder_sent" gorm:"default:false"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EffortOrDefault returns the task's effort, defaulting to medium when unset.
func (t *Task) EffortOrDefault() Effort {
	switch t.Effort {
	case EffortHigh, EffortMedium, EffortLow:
		return t.Effort
	default:
		return EffortMedium
	}
}

// ParsePriority maps a raw string onto a Priority, defaulting to medium.
func ParsePriority(p string) Priority {
	switch p {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}
