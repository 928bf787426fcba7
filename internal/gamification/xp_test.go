package gamification

import (
	"errors"
	"testing"

	taskdomain "lifeos-backend/internal/task/domain"
	"lifeos-backend/pkg/apperr"
)

func boolPtr(b bool) *bool { return &b }

func TestTaskXP(t *testing.T) {
	tests := []struct {
		name      string
		effort    taskdomain.Effort
		priority  taskdomain.Priority
		urgent    *bool
		important *bool
		want      int
	}{
		{"max everything", taskdomain.EffortHigh, taskdomain.PriorityHigh, boolPtr(true), boolPtr(true), 275},
		{"min everything", taskdomain.EffortLow, taskdomain.PriorityLow, boolPtr(false), boolPtr(false), 50},
		{"defaults", "", taskdomain.PriorityMedium, nil, nil, 120},
		{"low effort medium priority", taskdomain.EffortLow, taskdomain.PriorityMedium, nil, nil, 60},
		{"medium effort high priority", taskdomain.EffortMedium, taskdomain.PriorityHigh, nil, nil, 150},
		{"high effort low priority", taskdomain.EffortHigh, taskdomain.PriorityLow, nil, nil, 150},
		{"urgent bonus only", taskdomain.EffortLow, taskdomain.PriorityLow, boolPtr(true), nil, 75},
		{"important bonus only", taskdomain.EffortLow, taskdomain.PriorityLow, nil, boolPtr(true), 75},
		{"both bonuses", taskdomain.EffortMedium, taskdomain.PriorityMedium, boolPtr(true), boolPtr(true), 170},
		{"unset priority treated as medium", taskdomain.EffortMedium, "", nil, nil, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &taskdomain.Task{
				Effort:      tt.effort,
				Priority:    tt.priority,
				IsUrgent:    tt.urgent,
				IsImportant: tt.important,
			}
			if got := TaskXP(task); got != tt.want {
				t.Errorf("TaskXP() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFocusXP(t *testing.T) {
	got, err := FocusXP(25)
	if err != nil {
		t.Fatalf("FocusXP(25) error: %v", err)
	}
	if got != 250 {
		t.Errorf("FocusXP(25) = %d, want 250", got)
	}

	if _, err := FocusXP(0); err != nil {
		t.Errorf("FocusXP(0) should be valid, got %v", err)
	}

	if _, err := FocusXP(-1); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("FocusXP(-1) = %v, want ErrValidation", err)
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{499, 0},
		{500, 1},
		{1999, 1},
		{2000, 2},
		{4499, 2},
		{4500, 3},
	}

	for _, tt := range tests {
		got, err := LevelFromXP(tt.xp)
		if err != nil {
			t.Fatalf("LevelFromXP(%d) error: %v", tt.xp, err)
		}
		if got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}

	if _, err := LevelFromXP(-100); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("LevelFromXP(-100) = %v, want ErrValidation", err)
	}
}

func TestXPForNextLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 500},
		{1, 2000},
		{2, 4500},
		{3, 8000},
	}

	for _, tt := range tests {
		if got := XPForNextLevel(tt.level); got != tt.want {
			t.Errorf("XPForNextLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
