package tasks

import (
	"fmt"

	"github.com/lo3003/studyplanner/internal/cli"
)

type TaskDeleteCmd struct {
	ID  string `arg:"" help:"Task ID to delete."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	// Check if task exists first
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if !c.Yes {
		ok, err := cli.Confirm(fmt.Sprintf("Delete %q?", task.Title), "All of its blocks, locked or not, are removed too.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s (ID: %s)\n", task.Title, c.ID)
	return nil
}
