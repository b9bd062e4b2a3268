package events

import (
	"fmt"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
)

type EventListCmd struct {
	All     bool `help:"Include events that have ended."`
	ShowIDs bool `help:"Show event IDs." name:"show-ids"`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllFixedEvents()
	if err != nil {
		return fmt.Errorf("failed to get fixed events: %w", err)
	}
	now := ctx.CurrentTime()

	shown := 0
	for _, e := range events {
		if !c.All && !e.End.After(now) {
			continue
		}
		if shown == 0 {
			fmt.Println(cli.Header("Fixed events:"))
		}
		shown++

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", e.ID)
		}
		fmt.Printf("  %s %s-%s  %s%s\n",
			e.Start.In(now.Location()).Format(constants.DateFormat),
			e.Start.In(now.Location()).Format(constants.TimeFormat),
			e.End.In(now.Location()).Format(constants.TimeFormat),
			e.Title, idStr)
		if e.Description != "" {
			fmt.Printf("      %s\n", cli.Muted(e.Description))
		}
	}
	if shown == 0 {
		fmt.Println("No fixed events found")
	}
	return nil
}
