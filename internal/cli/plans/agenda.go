package plans

import (
	"fmt"
	"sort"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/utils"
)

type AgendaCmd struct {
	Date string `arg:"" help:"First day to show (YYYY-MM-DD or 'today')." default:"today"`
	Days int    `short:"n" help:"Number of days to show." default:"7"`
}

func (c *AgendaCmd) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	return nil
}

// entry is one line of the agenda, either a fixed event or a block.
type entry struct {
	start time.Time
	line  string
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	now := ctx.CurrentTime()
	loc := now.Location()

	from := utils.StartOfDay(now)
	if c.Date != "today" {
		d, err := utils.ParseDateInLocation(c.Date, loc)
		if err != nil {
			return err
		}
		from = d
	}
	to := from.AddDate(0, 0, c.Days)

	events, err := ctx.Store.GetAllFixedEvents()
	if err != nil {
		return fmt.Errorf("failed to get fixed events: %w", err)
	}
	blocks, err := ctx.Store.GetBlocks(from, to)
	if err != nil {
		return fmt.Errorf("failed to get blocks: %w", err)
	}

	byDay := make(map[string][]entry)
	for _, e := range events {
		if !e.Start.Before(to) || !e.End.After(from) {
			continue
		}
		e.Start, e.End = e.Start.In(loc), e.End.In(loc)
		key := e.Start.Format(constants.DateFormat)
		byDay[key] = append(byDay[key], entry{start: e.Start, line: cli.EventLine(e)})
	}
	for _, b := range blocks {
		b.Start, b.End = b.Start.In(loc), b.End.In(loc)
		key := b.Start.Format(constants.DateFormat)
		byDay[key] = append(byDay[key], entry{start: b.Start, line: cli.BlockLine(b)})
	}

	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		fmt.Println(cli.Header(d.Format("Monday " + constants.DateFormat)))
		entries := byDay[d.Format(constants.DateFormat)]
		if len(entries) == 0 {
			fmt.Println("  " + cli.Muted("nothing planned"))
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].start.Before(entries[j].start)
		})
		for _, e := range entries {
			fmt.Printf("  %s\n", e.line)
		}
	}
	return nil
}
