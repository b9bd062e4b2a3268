package scheduler

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

// ErrInvalidConfig wraps every reason Validate rejects a Config.
var ErrInvalidConfig = errors.New("invalid scheduler config")

// PriorityWeights are the tuning constants of PriorityScore.
type PriorityWeights struct {
	Alpha   float64 // difficulty weight
	Beta    float64 // importance weight
	Epsilon float64 // added to slack days so zero slack does not divide by zero
}

// Config is the scheduling policy for one generation run. Treat it as a value: New
// takes a private copy and nothing reads it from package state.
type Config struct {
	// WorkHours maps a weekday to its study window. A missing weekday is a day off.
	WorkHours map[time.Weekday]models.WorkHours

	MinSessionMin    int
	MaxSessionMin    int
	BreakMin         int // inserted after every placed session
	MaxTaskMinPerDay int

	MinSpacingDays      int
	MaxStudyMinPerDay   int
	SaturationThreshold float64
	// PreferredSessionMins are round lengths a session snaps down to, any order.
	PreferredSessionMins []int
	// NominalSessionMin is only used to estimate how many sessions a task needs.
	NominalSessionMin int

	Priority PriorityWeights

	MinHorizonDays int
	MaxHorizonDays int
	MaxStallRounds int
	MaxRounds      int
}

// DefaultConfig returns a Monday to Saturday, 10:00-18:00 policy.
func DefaultConfig() Config {
	hours := make(map[time.Weekday]models.WorkHours)
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		hours[wd] = models.WorkHours{StartHour: constants.DefaultWorkStartHour, EndHour: constants.DefaultWorkEndHour}
	}
	return Config{
		WorkHours:            hours,
		MinSessionMin:        constants.DefaultMinSessionMin,
		MaxSessionMin:        constants.DefaultMaxSessionMin,
		BreakMin:             constants.DefaultBreakMin,
		MaxTaskMinPerDay:     constants.DefaultMaxTaskMinPerDay,
		MinSpacingDays:       constants.DefaultMinSpacingDays,
		MaxStudyMinPerDay:    constants.DefaultMaxStudyMinPerDay,
		SaturationThreshold:  constants.DefaultSaturationThreshold,
		PreferredSessionMins: slices.Clone(constants.DefaultPreferredSessionMins),
		NominalSessionMin:    constants.DefaultNominalSessionMin,
		Priority: PriorityWeights{
			Alpha:   constants.DefaultPriorityDifficultyWt,
			Beta:    constants.DefaultPriorityImportanceWt,
			Epsilon: constants.DefaultPrioritySlackEpsilon,
		},
		MinHorizonDays: constants.MinHorizonDays,
		MaxHorizonDays: constants.MaxHorizonDays,
		MaxStallRounds: constants.MaxStallRounds,
		MaxRounds:      constants.MaxRounds,
	}
}

// Validate reports the first inconsistency in the policy.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	for wd, wh := range c.WorkHours {
		if wd < time.Sunday || wd > time.Saturday {
			return invalid("unknown weekday %d", wd)
		}
		if wh.StartHour < 0 || wh.EndHour > 24 || wh.StartHour >= wh.EndHour {
			return invalid("%s work hours %d-%d must satisfy 0 <= start < end <= 24", wd, wh.StartHour, wh.EndHour)
		}
	}
	if c.MinSessionMin <= 0 {
		return invalid("minimum session length must be positive")
	}
	if c.MaxSessionMin < c.MinSessionMin {
		return invalid("minimum session length (%d) exceeds maximum (%d)", c.MinSessionMin, c.MaxSessionMin)
	}
	if c.BreakMin < 0 {
		return invalid("break duration cannot be negative")
	}
	if c.MaxTaskMinPerDay < c.MinSessionMin {
		return invalid("per-task daily cap (%d) is below the minimum session length (%d)", c.MaxTaskMinPerDay, c.MinSessionMin)
	}
	if c.MaxStudyMinPerDay < c.MinSessionMin {
		return invalid("daily study cap (%d) is below the minimum session length (%d)", c.MaxStudyMinPerDay, c.MinSessionMin)
	}
	if c.MinSpacingDays < 0 {
		return invalid("minimum spacing cannot be negative")
	}
	if c.SaturationThreshold <= 0 || c.SaturationThreshold > 1 {
		return invalid("saturation threshold must be in (0, 1]")
	}
	for _, p := range c.PreferredSessionMins {
		if p <= 0 {
			return invalid("preferred session length %d must be positive", p)
		}
	}
	if c.NominalSessionMin <= 0 {
		return invalid("nominal session length must be positive")
	}
	if c.Priority.Epsilon <= 0 {
		return invalid("priority epsilon must be positive")
	}
	if c.Priority.Alpha < 0 || c.Priority.Beta < 0 {
		return invalid("priority weights cannot be negative")
	}
	if c.MinHorizonDays <= 0 || c.MaxHorizonDays < c.MinHorizonDays {
		return invalid("horizon bounds %d-%d are inconsistent", c.MinHorizonDays, c.MaxHorizonDays)
	}
	if c.MaxStallRounds < 0 || c.MaxRounds <= 0 {
		return invalid("loop limits must be positive")
	}
	return nil
}

// clone copies the reference-typed fields and sorts the preferred lengths descending.
func (c Config) clone() Config {
	out := c
	out.WorkHours = make(map[time.Weekday]models.WorkHours, len(c.WorkHours))
	for wd, wh := range c.WorkHours {
		out.WorkHours[wd] = wh
	}
	out.PreferredSessionMins = slices.Clone(c.PreferredSessionMins)
	sort.Sort(sort.Reverse(sort.IntSlice(out.PreferredSessionMins)))
	return out
}

// FromSettings builds a validated Config from persisted settings. Zero-valued
// settings fall back to DefaultConfig.
func FromSettings(s models.Settings) (Config, error) {
	cfg := DefaultConfig()
	if s.WorkHours != nil {
		cfg.WorkHours = make(map[time.Weekday]models.WorkHours, len(s.WorkHours))
		for wd, wh := range s.WorkHours {
			cfg.WorkHours[wd] = wh
		}
	}
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setInt(&cfg.MinSessionMin, s.MinSessionMin)
	setInt(&cfg.MaxSessionMin, s.MaxSessionMin)
	setInt(&cfg.MaxTaskMinPerDay, s.MaxTaskMinPerDay)
	setInt(&cfg.MaxStudyMinPerDay, s.MaxStudyMinPerDay)
	setInt(&cfg.NominalSessionMin, s.NominalSessionMin)
	setFloat(&cfg.SaturationThreshold, s.SaturationThreshold)
	setFloat(&cfg.Priority.Alpha, s.PriorityDifficultyWt)
	setFloat(&cfg.Priority.Beta, s.PriorityImportanceWt)
	setFloat(&cfg.Priority.Epsilon, s.PrioritySlackEpsilon)
	// zero is meaningful for these two
	if s.BreakMin >= 0 {
		cfg.BreakMin = s.BreakMin
	}
	if s.MinSpacingDays >= 0 {
		cfg.MinSpacingDays = s.MinSpacingDays
	}
	if len(s.PreferredSessionMins) > 0 {
		cfg.PreferredSessionMins = slices.Clone(s.PreferredSessionMins)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultSettings returns the persisted form of DefaultConfig.
func DefaultSettings() models.Settings {
	cfg := DefaultConfig()
	return models.Settings{
		UserID:               constants.DefaultUserID,
		Timezone:             constants.DefaultTimezone,
		WorkHours:            cfg.WorkHours,
		MinSessionMin:        cfg.MinSessionMin,
		MaxSessionMin:        cfg.MaxSessionMin,
		BreakMin:             cfg.BreakMin,
		MaxTaskMinPerDay:     cfg.MaxTaskMinPerDay,
		MinSpacingDays:       cfg.MinSpacingDays,
		MaxStudyMinPerDay:    cfg.MaxStudyMinPerDay,
		SaturationThreshold:  cfg.SaturationThreshold,
		PreferredSessionMins: cfg.PreferredSessionMins,
		NominalSessionMin:    cfg.NominalSessionMin,
		PriorityDifficultyWt: cfg.Priority.Alpha,
		PriorityImportanceWt: cfg.Priority.Beta,
		PrioritySlackEpsilon: cfg.Priority.Epsilon,
	}
}
