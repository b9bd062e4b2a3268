package tasks

import (
	"fmt"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/utils"
)

type TaskEditCmd struct {
	ID         string   `arg:"" help:"Task ID."`
	Title      *string  `help:"New title."`
	Deadline   *string  `short:"D" help:"New deadline (YYYY-MM-DD HH:MM)."`
	Effort     *float64 `short:"e" help:"New effort in hours."`
	Difficulty *int     `short:"d" help:"New difficulty (1-5)."`
	Importance *int     `short:"i" help:"New importance (1-5)."`
	Color      *string  `short:"c" help:"New display colour."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Title != nil {
		task.Title = *c.Title
	}
	if c.Deadline != nil {
		deadline, err := utils.ParseDateTime(*c.Deadline, ctx.CurrentTime().Location())
		if err != nil {
			return err
		}
		task.Deadline = deadline
	}
	if c.Effort != nil {
		task.EffortHours = *c.Effort
	}
	if c.Difficulty != nil {
		task.Difficulty = *c.Difficulty
	}
	if c.Importance != nil {
		task.Importance = *c.Importance
	}
	if c.Color != nil {
		task.Color = *c.Color
	}

	if err := task.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Updated task: %s\n", task.Title)
	fmt.Println("Run 'studyplan plan' to reschedule.")
	return nil
}
