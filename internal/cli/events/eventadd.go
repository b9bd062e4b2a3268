package events

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/utils"
)

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Start       string `short:"s" help:"Start (YYYY-MM-DD HH:MM)." required:""`
	End         string `short:"e" help:"End (YYYY-MM-DD HH:MM)." required:""`
	Description string `help:"Free-form description."`
	Color       string `short:"c" help:"Display colour (hex)."`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	loc := ctx.CurrentTime().Location()
	start, err := utils.ParseDateTime(c.Start, loc)
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	end, err := utils.ParseDateTime(c.End, loc)
	if err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}

	event := models.FixedEvent{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Start:       start,
		End:         end,
		Description: c.Description,
		Color:       c.Color,
	}
	if err := event.Validate(); err != nil {
		return err
	}

	// an event may overlap other walls; the overlap is only reported
	res, err := ctx.CheckInterval(start, end, "")
	if err != nil {
		return err
	}

	if err := ctx.Store.AddFixedEvent(event); err != nil {
		return fmt.Errorf("failed to add fixed event: %w", err)
	}

	fmt.Printf("Added fixed event: %s (ID: %s)\n", event.Title, event.ID)
	if res.HasCollision {
		fmt.Printf("Warning: %s\n", res.Message)
	}
	fmt.Println("Run 'studyplan plan' to plan around it.")
	return nil
}
