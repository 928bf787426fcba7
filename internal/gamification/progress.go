package gamification

import (
	"math"
	"time"

	"lifeos-backend/pkg/apperr"
)

// GoalState is the derived status of a goal; it is never independently
// settable.
type GoalState string

const (
	GoalOnTrack   GoalState = "on-track"
	GoalBehind    GoalState = "behind"
	GoalCompleted GoalState = "completed"
)

// behindProgressThreshold and behindDaysThreshold define the "behind"
// heuristic: under 30% done with under 7 days left.
const (
	behindProgressThreshold = 30
	behindDaysThreshold     = 7
)

// GoalProgress returns the completion percentage in [0,100], rounded to
// the nearest integer. A goal with no linked tasks is 0% done.
func GoalProgress(completed, total int) (int, error) {
	if completed < 0 || total < 0 {
		return 0, apperr.Validation("task counts must be non-negative, got %d/%d", completed, total)
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(100 * float64(completed) / float64(total))), nil
}

// GoalStatus derives the goal state from progress and an optional target
// date. Completion always takes precedence over deadline checks; a goal is
// behind when the target has passed, or when progress is low with the
// target close.
func GoalStatus(progress int, targetDate *time.Time, now time.Time) GoalState {
	if progress >= 100 {
		return GoalCompleted
	}
	if targetDate != nil {
		days := daysUntil(now, *targetDate)
		if days < 0 {
			return GoalBehind
		}
		if progress < behindProgressThreshold && days < behindDaysThreshold {
			return GoalBehind
		}
	}
	return GoalOnTrack
}

func daysUntil(now, target time.Time) int {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := target.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
