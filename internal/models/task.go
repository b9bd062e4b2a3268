package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Task is a unit of deadline-bound study work.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Deadline    time.Time `json:"deadline"`
	EffortHours float64   `json:"effort_hours"`
	Difficulty  int       `json:"difficulty"` // 1-5
	Importance  int       `json:"importance"` // 1-5
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EffortMinutes returns the estimated effort rounded to whole minutes.
func (t Task) EffortMinutes() int {
	return int(math.Round(t.EffortHours * 60))
}

// IsEligible reports whether the task can take part in a generation run at now.
// Ineligible tasks are skipped without a warning.
func (t Task) IsEligible(now time.Time) bool {
	return t.EffortMinutes() > 0 && t.Deadline.After(now)
}

// Validate checks the record-level invariants enforced when a task is created or edited.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if t.EffortHours <= 0 {
		return fmt.Errorf("effort must be greater than zero")
	}
	if t.Difficulty < 1 || t.Difficulty > 5 {
		return fmt.Errorf("difficulty must be between 1 and 5")
	}
	if t.Importance < 1 || t.Importance > 5 {
		return fmt.Errorf("importance must be between 1 and 5")
	}
	if t.Deadline.IsZero() {
		return fmt.Errorf("deadline is required")
	}
	return nil
}
