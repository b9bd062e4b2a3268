package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/tui"
)

type TuiCmd struct {
	Days int `short:"n" help:"Number of agenda days to show." default:"7"`
}

func (c *TuiCmd) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	return nil
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p := tea.NewProgram(tui.NewModel(ctx, c.Days), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
