package tasks

import (
	"fmt"
	"sort"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

type TaskListCmd struct {
	All     bool `help:"Include tasks whose deadline has passed."`
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	now := ctx.CurrentTime()

	var shown []models.Task
	for _, t := range tasks {
		if c.All || t.Deadline.After(now) {
			shown = append(shown, t)
		}
	}
	if len(shown) == 0 {
		fmt.Println("No tasks found")
		return nil
	}
	sort.SliceStable(shown, func(i, j int) bool {
		return shown[i].Deadline.Before(shown[j].Deadline)
	})

	// minutes already placed, locked or not
	blocks, err := ctx.AllBlocks()
	if err != nil {
		return fmt.Errorf("failed to get blocks: %w", err)
	}
	planned := make(map[string]int)
	for _, b := range blocks {
		planned[b.TaskID] += b.DurationMin
	}

	fmt.Println(cli.Header("Tasks:"))
	for _, t := range shown {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", t.ID)
		}
		status := ""
		if !t.Deadline.After(now) {
			status = " " + cli.Muted("[past deadline]")
		}
		fmt.Printf("  %s%s%s\n", t.Title, idStr, status)
		fmt.Printf("      due %s, %s effort, %s planned, difficulty %d, importance %d\n",
			t.Deadline.In(now.Location()).Format(constants.DateTimeFormat),
			cli.FormatMinutes(t.EffortMinutes()),
			cli.FormatMinutes(planned[t.ID]),
			t.Difficulty, t.Importance)
	}
	return nil
}
