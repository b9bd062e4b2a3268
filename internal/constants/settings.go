package constants

const (
	// Settings keys
	SettingUserID               = "user_id"
	SettingTimezone             = "timezone"
	SettingWorkHours            = "work_hours"
	SettingMinSessionMin        = "min_session_min"
	SettingMaxSessionMin        = "max_session_min"
	SettingBreakMin             = "break_min"
	SettingMaxTaskMinPerDay     = "max_task_min_per_day"
	SettingMinSpacingDays       = "min_spacing_days"
	SettingMaxStudyMinPerDay    = "max_study_min_per_day"
	SettingSaturationThreshold  = "saturation_threshold"
	SettingPreferredSessionMins = "preferred_session_mins"
	SettingNominalSessionMin    = "nominal_session_min"
	SettingPriorityDifficultyWt = "priority_difficulty_weight"
	SettingPriorityImportanceWt = "priority_importance_weight"
	SettingPrioritySlackEpsilon = "priority_slack_epsilon"

	// Default Settings Values
	DefaultTimezone            = "Local" // Use system local timezone by default
	DefaultWorkStartHour       = 10
	DefaultWorkEndHour         = 18
	DefaultMinSessionMin       = 30
	DefaultMaxSessionMin       = 120
	DefaultBreakMin            = 15
	DefaultMaxTaskMinPerDay    = 180
	DefaultMinSpacingDays      = 1
	DefaultMaxStudyMinPerDay   = 360
	DefaultSaturationThreshold = 0.7
	DefaultNominalSessionMin   = 90

	// Priority weights. Importance outweighs difficulty.
	DefaultPriorityDifficultyWt = 1.0
	DefaultPriorityImportanceWt = 2.0
	DefaultPrioritySlackEpsilon = 0.5

	// Placement loop tuning
	MinHorizonDays = 30
	MaxHorizonDays = 120
	MaxStallRounds = 10
	MaxRounds      = 200
)

// DefaultPreferredSessionMins are the round lengths sessions snap down to.
var DefaultPreferredSessionMins = []int{120, 90, 60, 45, 30}
