package tasks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/utils"
)

type TaskAddCmd struct {
	Title      string  `arg:"" help:"Task title."`
	Deadline   string  `short:"D" help:"Deadline (YYYY-MM-DD HH:MM, or a date meaning the end of that day)." required:""`
	Effort     float64 `short:"e" help:"Estimated effort in hours." required:""`
	Difficulty int     `short:"d" help:"Difficulty (1-5)." default:"3"`
	Importance int     `short:"i" help:"Importance (1-5)." default:"3"`
	Color      string  `short:"c" help:"Display colour (hex, e.g. #7C9CF5)."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Effort <= 0 {
		return fmt.Errorf("effort must be greater than zero")
	}
	if c.Difficulty < 1 || c.Difficulty > 5 {
		return fmt.Errorf("difficulty must be between 1 and 5")
	}
	if c.Importance < 1 || c.Importance > 5 {
		return fmt.Errorf("importance must be between 1 and 5")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	now := ctx.CurrentTime()
	deadline, err := utils.ParseDateTime(c.Deadline, now.Location())
	if err != nil {
		return err
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Deadline:    deadline,
		EffortHours: c.Effort,
		Difficulty:  c.Difficulty,
		Importance:  c.Importance,
		Color:       c.Color,
		CreatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if !deadline.After(now) {
		fmt.Println(cli.Muted("Note: the deadline has already passed, so this task will not be planned."))
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	fmt.Println("Run 'studyplan plan' to schedule it.")
	return nil
}
