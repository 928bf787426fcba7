package domain

import (
	"time"

	"lifeos-backend/internal/gamification"
)

// Goal represents a longer-term objective tasks can be linked to.
// Progress, TotalTasks and CompletedTasks are cached projections over the
// linked-task set, always recomputable and never independently authored.
type Goal struct {
	ID             string                 `json:"id" gorm:"primaryKey"`
	UserID         string                 `json:"user_id" gorm:"index;not null"`
	Title          string                 `json:"title" gorm:"not null"`
	Category       string                 `json:"category"`
	Status         gamification.GoalState `json:"status" gorm:"default:on-track"`
	Progress       int                    `json:"progress" gorm:"default:0"`
	TotalTasks     int                    `json:"total_tasks" gorm:"default:0"`
	CompletedTasks int                    `json:"completed_tasks" gorm:"default:0"`
	TargetDate     *time.Time             `json:"target_date,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
