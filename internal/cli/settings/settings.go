package settings

import (
	"fmt"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/scheduler"
	"github.com/lo3003/studyplanner/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone          *string  `help:"IANA timezone, or Local."`
	WorkHours         *string  `help:"Study windows, e.g. mon=10-18,tue=10-18,sun=off. Unnamed days are off." name:"work-hours"`
	MinSession        *int     `help:"Shortest session in minutes." name:"min-session"`
	MaxSession        *int     `help:"Longest session in minutes." name:"max-session"`
	Break             *int     `help:"Break after each session in minutes."`
	MaxTaskPerDay     *int     `help:"Most minutes one task may take in a day." name:"max-task-per-day"`
	MaxStudyPerDay    *int     `help:"Most minutes of study in a day." name:"max-study-per-day"`
	MinSpacingDays    *int     `help:"Days between sessions of the same task when it can be spread out." name:"min-spacing-days"`
	Saturation        *float64 `help:"Share of a day's capacity above which it counts as busy (0-1]."`
	PreferredSessions *string  `help:"Round session lengths in minutes, e.g. 120,90,60,45,30." name:"preferred-sessions"`
	NominalSession    *int     `help:"Session length used to estimate how many sessions a task needs." name:"nominal-session"`
	DifficultyWeight  *float64 `help:"Priority weight of difficulty." name:"difficulty-weight"`
	ImportanceWeight  *float64 `help:"Priority weight of importance." name:"importance-weight"`
	SlackEpsilon      *float64 `help:"Added to slack days in the priority score." name:"slack-epsilon"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Work Hours:            %s\n", cli.FormatWorkHours(settings.WorkHours))
		fmt.Printf("  Session Length:        %d-%d min\n", settings.MinSessionMin, settings.MaxSessionMin)
		fmt.Printf("  Preferred Lengths:     %v\n", settings.PreferredSessionMins)
		fmt.Printf("  Nominal Session:       %d min\n", settings.NominalSessionMin)
		fmt.Printf("  Break:                 %d min\n", settings.BreakMin)
		fmt.Printf("  Max Per Task Per Day:  %d min\n", settings.MaxTaskMinPerDay)
		fmt.Printf("  Max Study Per Day:     %d min\n", settings.MaxStudyMinPerDay)
		fmt.Printf("  Min Spacing:           %d days\n", settings.MinSpacingDays)
		fmt.Printf("  Saturation Threshold:  %.2f\n", settings.SaturationThreshold)
		fmt.Println("\nPriority Settings:")
		fmt.Printf("  Difficulty Weight:     %.2f\n", settings.PriorityDifficultyWt)
		fmt.Printf("  Importance Weight:     %.2f\n", settings.PriorityImportanceWt)
		fmt.Printf("  Slack Epsilon:         %.2f\n", settings.PrioritySlackEpsilon)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.WorkHours != nil {
		hours, err := cli.ParseWorkHours(*c.WorkHours)
		if err != nil {
			return err
		}
		settings.WorkHours = hours
		updated = true
	}
	if c.PreferredSessions != nil {
		mins, err := cli.ParseMinutesList(*c.PreferredSessions)
		if err != nil {
			return fmt.Errorf("invalid preferred sessions: %w", err)
		}
		settings.PreferredSessionMins = mins
		updated = true
	}
	// a stored zero means "use the default", so only break and spacing may be zero
	ints := []struct {
		name   string
		flag   *int
		dst    *int
		zeroOK bool
	}{
		{"min-session", c.MinSession, &settings.MinSessionMin, false},
		{"max-session", c.MaxSession, &settings.MaxSessionMin, false},
		{"break", c.Break, &settings.BreakMin, true},
		{"max-task-per-day", c.MaxTaskPerDay, &settings.MaxTaskMinPerDay, false},
		{"max-study-per-day", c.MaxStudyPerDay, &settings.MaxStudyMinPerDay, false},
		{"min-spacing-days", c.MinSpacingDays, &settings.MinSpacingDays, true},
		{"nominal-session", c.NominalSession, &settings.NominalSessionMin, false},
	}
	for _, f := range ints {
		if f.flag == nil {
			continue
		}
		if *f.flag < 0 || (*f.flag == 0 && !f.zeroOK) {
			return fmt.Errorf("--%s must be positive", f.name)
		}
		*f.dst = *f.flag
		updated = true
	}
	floats := []struct {
		name string
		flag *float64
		dst  *float64
	}{
		{"saturation", c.Saturation, &settings.SaturationThreshold},
		{"difficulty-weight", c.DifficultyWeight, &settings.PriorityDifficultyWt},
		{"importance-weight", c.ImportanceWeight, &settings.PriorityImportanceWt},
		{"slack-epsilon", c.SlackEpsilon, &settings.PrioritySlackEpsilon},
	}
	for _, f := range floats {
		if f.flag == nil {
			continue
		}
		if *f.flag <= 0 {
			return fmt.Errorf("--%s must be positive", f.name)
		}
		*f.dst = *f.flag
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	// the scheduler is the authority on what a usable policy is
	if _, err := scheduler.FromSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	fmt.Println("Run 'studyplan plan' to apply them to the schedule.")
	return nil
}
