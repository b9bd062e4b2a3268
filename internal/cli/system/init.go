package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/storage"
	"github.com/lo3003/studyplanner/internal/storage/postgres"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if ctx.Remote {
			return errors.New("--force is only supported for sqlite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// close first so the file is not held open
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized studyplan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	var src storage.Provider
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		src = postgres.New(source, ctx.UserID)
	} else {
		src = sqlite.NewStore(source, ctx.UserID)
	}

	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying tasks...")
	tasks, err := src.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	for _, task := range tasks {
		if err := ctx.Store.AddTask(task); err != nil {
			return fmt.Errorf("failed to add task %s: %w", task.ID, err)
		}
	}
	fmt.Printf("    Copied %d tasks\n", len(tasks))

	fmt.Println("  Copying fixed events...")
	events, err := src.GetAllFixedEvents()
	if err != nil {
		return fmt.Errorf("failed to get fixed events from source: %w", err)
	}
	for _, event := range events {
		if err := ctx.Store.AddFixedEvent(event); err != nil {
			return fmt.Errorf("failed to add fixed event %s: %w", event.ID, err)
		}
	}
	fmt.Printf("    Copied %d fixed events\n", len(events))

	fmt.Println("  Copying blocks...")
	blocks, err := src.GetBlocks(time.Time{}, cli.EndOfTime)
	if err != nil {
		return fmt.Errorf("failed to get blocks from source: %w", err)
	}
	// the destination is empty, so replacing from the zero time only inserts
	if err := ctx.Store.ReplaceFutureUnlockedBlocks(time.Time{}, blocks); err != nil {
		return fmt.Errorf("failed to add blocks: %w", err)
	}
	fmt.Printf("    Copied %d blocks\n", len(blocks))
	return nil
}
