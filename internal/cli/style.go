package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/scheduler"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
)

// Header renders a section title.
func Header(s string) string {
	return headerStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

func swatch(color, fallback string) string {
	if color == "" {
		color = fallback
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// BlockLine renders one schedule block as a single agenda line.
func BlockLine(b models.ScheduleBlock) string {
	span := fmt.Sprintf("%s-%s", b.Start.Format(constants.TimeFormat), b.End.Format(constants.TimeFormat))
	line := fmt.Sprintf("%s %s %s %s", timeStyle.Render(span), swatch(b.Color, constants.BlockPalette[0]), b.Title, Muted("("+FormatMinutes(b.DurationMin)+")"))
	if b.Locked {
		line += " " + lockedStyle.Render("[locked]")
	}
	return line
}

// EventLine renders one fixed event as a single agenda line.
func EventLine(e models.FixedEvent) string {
	span := fmt.Sprintf("%s-%s", e.Start.Format(constants.TimeFormat), e.End.Format(constants.TimeFormat))
	return fmt.Sprintf("%s %s %s %s", timeStyle.Render(span), swatch(e.Color, constants.DefaultEventColor), e.Title, Muted("[fixed]"))
}

// WarningLines renders the unplaced-work warnings of a run, one per line.
func WarningLines(warnings []scheduler.Warning) string {
	var b strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&b, "%s %s\n", warningStyle.Render("!"), w.Message)
	}
	return b.String()
}

// Confirm asks a yes/no question on the terminal.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
