package domain

import "time"

// Quadrant is one of the four Eisenhower urgency/importance classes.
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "do_first"  // urgent and important
	QuadrantSchedule  Quadrant = "schedule"  // important, not urgent
	QuadrantDelegate  Quadrant = "delegate"  // urgent, not important
	QuadrantEliminate Quadrant = "eliminate" // neither
)

// legacyUrgencyWindowDays is how close a due date must be (in whole days)
// for a legacy task without explicit flags to count as urgent.
const legacyUrgencyWindowDays = 3

// ClassifyTask maps a task to its Eisenhower quadrant.
//
// When both IsUrgent and IsImportant are explicitly set they are
// authoritative, regardless of priority or due date. For legacy records
// lacking the flags, urgency is derived from high priority or a due date
// within the next three calendar days, and importance from a priority of
// medium or above.
//
// Pure and total: identical input always yields the same quadrant.
func ClassifyTask(t *Task, now time.Time) Quadrant {
	var urgent, important bool

	if t.IsUrgent != nil && t.IsImportant != nil {
		urgent = *t.IsUrgent
		important = *t.IsImportant
	} else {
		urgent = t.Priority == PriorityHigh
		if !urgent && t.DueDate != nil {
			days := daysUntil(now, *t.DueDate)
			urgent = days >= 0 && days <= legacyUrgencyWindowDays
		}
		important = t.Priority == PriorityHigh || t.Priority == PriorityMedium
	}

	switch {
	case urgent && important:
		return QuadrantDoFirst
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// daysUntil counts whole calendar days from now's date to due's date,
// negative when due is in the past.
func daysUntil(now, due time.Time) int {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := due.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
