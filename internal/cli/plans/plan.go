package plans

import (
	"fmt"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

type PlanCmd struct {
	Yes    bool `short:"y" help:"Save the plan without asking."`
	DryRun bool `help:"Show the plan without saving it." name:"dry-run"`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	now := ctx.CurrentTime()
	result, err := ctx.GeneratePlan(now)
	if err != nil {
		return err
	}

	fmt.Println(cli.Header("Proposed plan:"))
	if len(result.CreatedBlocks) == 0 {
		fmt.Println("  Nothing to schedule")
	} else {
		printByDay(result.CreatedBlocks, now)
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
		fmt.Print(cli.WarningLines(result.Warnings))
	}

	if report, err := ctx.ValidateStore(now); err == nil && report.HasConflicts() {
		fmt.Println()
		fmt.Print(report.FormatReport())
	}

	if c.DryRun {
		fmt.Println("\nDry run, nothing saved.")
		return nil
	}

	if !c.Yes {
		fmt.Println()
		ok, err := cli.Confirm("Save this plan?", "Future blocks that are not locked will be replaced.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Plan discarded. You can modify tasks and regenerate.")
			return nil
		}
	}

	if err := ctx.ApplyPlan(now, result); err != nil {
		return err
	}
	fmt.Printf("Plan saved: %d blocks.\n", len(result.CreatedBlocks))
	return nil
}

func printByDay(blocks []models.ScheduleBlock, now time.Time) {
	var day string
	for _, b := range blocks {
		start := b.Start.In(now.Location())
		if d := start.Format("Mon " + constants.DateFormat); d != day {
			day = d
			fmt.Printf("\n%s\n", day)
		}
		b.Start, b.End = start, b.End.In(now.Location())
		fmt.Printf("  %s\n", cli.BlockLine(b))
	}
}
