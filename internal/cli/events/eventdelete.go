package events

import (
	"fmt"

	"github.com/lo3003/studyplanner/internal/cli"
)

type EventDeleteCmd struct {
	ID string `arg:"" help:"Fixed event ID to delete."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	event, err := ctx.Store.GetFixedEvent(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find fixed event with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteFixedEvent(c.ID); err != nil {
		return fmt.Errorf("failed to delete fixed event: %w", err)
	}
	fmt.Printf("Deleted fixed event: %s (ID: %s)\n", event.Title, c.ID)
	return nil
}
