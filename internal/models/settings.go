package models

import "time"

// WorkHours is the wall-clock study window for one weekday, [StartHour:00, EndHour:00).
type WorkHours struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// Settings is the persisted form of the scheduling policy plus per-user runtime values.
type Settings struct {
	UserID   string `json:"user_id"`
	Timezone string `json:"timezone"` // IANA name or "Local"

	// WorkHours maps a weekday to its window. Missing weekdays are excluded from work.
	WorkHours map[time.Weekday]WorkHours `json:"work_hours"`

	MinSessionMin        int     `json:"min_session_min"`
	MaxSessionMin        int     `json:"max_session_min"`
	BreakMin             int     `json:"break_min"`
	MaxTaskMinPerDay     int     `json:"max_task_min_per_day"`
	MinSpacingDays       int     `json:"min_spacing_days"`
	MaxStudyMinPerDay    int     `json:"max_study_min_per_day"`
	SaturationThreshold  float64 `json:"saturation_threshold"`
	PreferredSessionMins []int   `json:"preferred_session_mins"`
	NominalSessionMin    int     `json:"nominal_session_min"`
	PriorityDifficultyWt float64 `json:"priority_difficulty_weight"`
	PriorityImportanceWt float64 `json:"priority_importance_weight"`
	PrioritySlackEpsilon float64 `json:"priority_slack_epsilon"`
}
