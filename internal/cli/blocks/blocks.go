package blocks

import (
	"errors"
	"fmt"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/utils"
)

type BlockListCmd struct {
	Days int  `short:"n" help:"Number of days from today to list." default:"7"`
	All  bool `help:"List every stored block, past ones included."`
}

func (c *BlockListCmd) Run(ctx *cli.Context) error {
	now := ctx.CurrentTime()
	from := utils.StartOfDay(now)
	to := from.AddDate(0, 0, c.Days)

	var blocks []models.ScheduleBlock
	var err error
	if c.All {
		blocks, err = ctx.AllBlocks()
	} else {
		blocks, err = ctx.Store.GetBlocks(from, to)
	}
	if err != nil {
		return fmt.Errorf("failed to get blocks: %w", err)
	}
	if len(blocks) == 0 {
		fmt.Println("No blocks found")
		return nil
	}

	for _, b := range blocks {
		b.Start, b.End = b.Start.In(now.Location()), b.End.In(now.Location())
		fmt.Printf("  %s  %s  %s\n", b.Start.Format(constants.DateFormat), cli.BlockLine(b), cli.Muted(b.ID))
	}
	return nil
}

// interval reads a start/end pair in the display location.
func interval(ctx *cli.Context, start, end string) (time.Time, time.Time, error) {
	loc := ctx.CurrentTime().Location()
	s, err := utils.ParseDateTime(start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	e, err := utils.ParseDateTime(end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	if !e.After(s) {
		return time.Time{}, time.Time{}, errors.New("end time must be after start time")
	}
	return s, e, nil
}

type BlockCheckCmd struct {
	Start   string `short:"s" help:"Start (YYYY-MM-DD HH:MM)." required:""`
	End     string `short:"e" help:"End (YYYY-MM-DD HH:MM)." required:""`
	Exclude string `help:"Block ID to ignore, typically the block being moved."`
}

func (c *BlockCheckCmd) Run(ctx *cli.Context) error {
	start, end, err := interval(ctx, c.Start, c.End)
	if err != nil {
		return err
	}
	res, err := ctx.CheckInterval(start, end, c.Exclude)
	if err != nil {
		return err
	}
	if res.HasCollision {
		fmt.Printf("Collision (%s): %s\n", res.Type, res.Message)
		return nil
	}
	fmt.Println("✓ No collision")
	return nil
}

type BlockMoveCmd struct {
	ID    string `arg:"" help:"Block ID."`
	Start string `short:"s" help:"New start (YYYY-MM-DD HH:MM)." required:""`
	End   string `short:"e" help:"New end (YYYY-MM-DD HH:MM)." required:""`
}

func (c *BlockMoveCmd) Run(ctx *cli.Context) error {
	start, end, err := interval(ctx, c.Start, c.End)
	if err != nil {
		return err
	}
	block, err := ctx.MoveBlock(c.ID, start, end)
	if err != nil {
		return err
	}
	loc := ctx.CurrentTime().Location()
	fmt.Printf("✓ Moved %q to %s %s-%s and locked it\n", block.Title,
		block.Start.In(loc).Format(constants.DateFormat),
		block.Start.In(loc).Format(constants.TimeFormat),
		block.End.In(loc).Format(constants.TimeFormat))
	return nil
}

type BlockLockCmd struct {
	ID string `arg:"" help:"Block ID."`
}

func (c *BlockLockCmd) Run(ctx *cli.Context) error {
	block, err := ctx.SetLocked(c.ID, true)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Locked %q\n", block.Title)
	return nil
}

type BlockUnlockCmd struct {
	ID string `arg:"" help:"Block ID."`
}

func (c *BlockUnlockCmd) Run(ctx *cli.Context) error {
	block, err := ctx.SetLocked(c.ID, false)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Unlocked %q, the next plan may move it\n", block.Title)
	return nil
}
