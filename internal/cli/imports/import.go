package imports

import (
	"fmt"
	"os"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/importer"
)

type ImportCmd struct {
	File   string `arg:"" help:"YAML file with tasks and fixed events." type:"existingfile"`
	DryRun bool   `help:"Validate the file without saving anything." name:"dry-run"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	now := ctx.CurrentTime()
	batch, err := importer.Parse(f, now.Location(), now)
	if err != nil {
		return err
	}

	if c.DryRun {
		fmt.Printf("%s is valid: %d tasks, %d fixed events\n", c.File, len(batch.Tasks), len(batch.Events))
		return nil
	}

	ctx.PerformAutomaticBackup()
	for _, task := range batch.Tasks {
		if err := ctx.Store.AddTask(task); err != nil {
			return fmt.Errorf("failed to add task %q: %w", task.Title, err)
		}
	}
	for _, event := range batch.Events {
		if err := ctx.Store.AddFixedEvent(event); err != nil {
			return fmt.Errorf("failed to add fixed event %q: %w", event.Title, err)
		}
	}

	fmt.Printf("Imported %d tasks and %d fixed events.\n", len(batch.Tasks), len(batch.Events))
	fmt.Println("Run 'studyplan plan' to schedule them.")
	return nil
}
