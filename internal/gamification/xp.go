// Package gamification holds the pure XP, level and goal-progress
// calculations. Every function here is total and side-effect free; the
// constants are part of the product contract and covered by table tests.
package gamification

import (
	"math"

	taskdomain "lifeos-backend/internal/task/domain"
	"lifeos-backend/pkg/apperr"
)

// xpPerLevel is the divisor in the level curve: level = floor(sqrt(xp/500)).
const xpPerLevel = 500

// FocusXPPerMinute is the XP granted per minute of a focus session.
const FocusXPPerMinute = 10

var effortBaseXP = map[taskdomain.Effort]int{
	taskdomain.EffortLow:    50,
	taskdomain.EffortMedium: 100,
	taskdomain.EffortHigh:   150,
}

var priorityMultiplier = map[taskdomain.Priority]float64{
	taskdomain.PriorityLow:    1.0,
	taskdomain.PriorityMedium: 1.2,
	taskdomain.PriorityHigh:   1.5,
}

// TaskXP computes the XP reward for completing a task:
// floor(base(effort) * multiplier(priority)) + 25 per explicit urgent /
// important flag. Effort defaults to medium, unknown priority to medium.
func TaskXP(t *taskdomain.Task) int {
	base := effortBaseXP[t.EffortOrDefault()]

	mult, ok := priorityMultiplier[t.Priority]
	if !ok {
		mult = priorityMultiplier[taskdomain.PriorityMedium]
	}

	bonus := 0
	if t.IsUrgent != nil && *t.IsUrgent {
		bonus += 25
	}
	if t.IsImportant != nil && *t.IsImportant {
		bonus += 25
	}

	return int(math.Floor(float64(base)*mult)) + bonus
}

// FocusXP converts focus minutes into XP. Negative minutes are a contract
// violation and fail fast rather than being clamped.
func FocusXP(minutes int) (int, error) {
	if minutes < 0 {
		return 0, apperr.Validation("focus minutes must be non-negative, got %d", minutes)
	}
	return minutes * FocusXPPerMinute, nil
}

// LevelFromXP derives the level for a cumulative XP total:
// floor(sqrt(xp/500)). Negative XP fails fast.
func LevelFromXP(xp int) (int, error) {
	if xp < 0 {
		return 0, apperr.Validation("xp must be non-negative, got %d", xp)
	}
	return int(math.Floor(math.Sqrt(float64(xp) / xpPerLevel))), nil
}

// XPForNextLevel returns the cumulative XP needed to reach level+1.
func XPForNextLevel(level int) int {
	next := level + 1
	return next * next * xpPerLevel
}
