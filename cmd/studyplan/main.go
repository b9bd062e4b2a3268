package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/cli/backups"
	"github.com/lo3003/studyplanner/internal/cli/blocks"
	"github.com/lo3003/studyplanner/internal/cli/events"
	"github.com/lo3003/studyplanner/internal/cli/imports"
	"github.com/lo3003/studyplanner/internal/cli/plans"
	"github.com/lo3003/studyplanner/internal/cli/settings"
	"github.com/lo3003/studyplanner/internal/cli/system"
	"github.com/lo3003/studyplanner/internal/cli/tasks"
	"github.com/lo3003/studyplanner/internal/config"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/errors"
	"github.com/lo3003/studyplanner/internal/keyring"
	"github.com/lo3003/studyplanner/internal/logger"
	"github.com/lo3003/studyplanner/internal/storage"
	"github.com/lo3003/studyplanner/internal/storage/postgres"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `help:"SQLite file or PostgreSQL connection string. Defaults to $STUDYPLAN_DB, then the OS keyring, then ~/.config/studyplan/studyplan.db." name:"db"`
	Debug    bool   `help:"Log debug output to stderr as well as the log file."`
	User     string `help:"User whose data to use (default $STUDYPLAN_USER or 'local')."`
	Timezone string `help:"Override the stored timezone for this run."`

	Init     system.InitCmd       `cmd:"" help:"Initialize studyplan storage."`
	Plan     plans.PlanCmd        `cmd:"" help:"Regenerate the study plan."`
	Agenda   plans.AgendaCmd      `cmd:"" help:"Show fixed events and study blocks day by day."`
	Validate system.ValidateCmd   `cmd:"" help:"Check stored data for conflicts and infeasible tasks."`
	Import   imports.ImportCmd    `cmd:"" help:"Import tasks and fixed events from YAML."`
	Autoplan system.AutoplanCmd   `cmd:"" help:"Regenerate the plan every day at a fixed time."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage scheduling settings."`
	Tui      system.TuiCmd        `cmd:"" help:"Browse the agenda and tasks interactively."`
	Task     struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task and its blocks."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
	} `cmd:"" help:"Manage tasks."`
	Event struct {
		Add    events.EventAddCmd    `cmd:"" help:"Add a fixed event."`
		Delete events.EventDeleteCmd `cmd:"" help:"Delete a fixed event."`
		List   events.EventListCmd   `cmd:"" help:"List fixed events." default:"1"`
	} `cmd:"" help:"Manage fixed events."`
	Block struct {
		List   blocks.BlockListCmd   `cmd:"" help:"List study blocks with their IDs." default:"1"`
		Check  blocks.BlockCheckCmd  `cmd:"" help:"Check an interval against fixed events and locked blocks."`
		Move   blocks.BlockMoveCmd   `cmd:"" help:"Move a block and lock it."`
		Lock   blocks.BlockLockCmd   `cmd:"" help:"Lock a block so regeneration keeps it."`
		Unlock blocks.BlockUnlockCmd `cmd:"" help:"Unlock a block."`
	} `cmd:"" help:"Inspect and edit study blocks."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable." default:"1"`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

func main() {
	cfg := config.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Deadline-driven study planner"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if CLI.DB != "" {
		cfg.DB = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.User != "" {
		cfg.UserID = CLI.User
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}

	command := ctx.Command()
	if strings.HasPrefix(command, "keyring") {
		// keyring commands never touch the database
		errors.Fatal(ctx.Run(&cli.Context{}))
		return
	}

	target, err := cfg.ResolveDB(keyring.GetConnectionString)
	if err != nil {
		errors.Fatal(err)
	}
	remote := postgres.IsConnString(target)

	dir, err := config.Dir(target, remote)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: dir, Level: cfg.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	var store storage.Provider
	if remote {
		// a password is only tolerated when it came from the keyring
		if _, err := postgres.ValidateConnString(target); err != nil {
			if !stderrors.Is(err, postgres.ErrEmbeddedCredentials) || cfg.DB != "" {
				fmt.Fprintln(os.Stderr, errors.Format(err))
				fmt.Fprintln(os.Stderr, "       Keep passwords in ~/.pgpass, PGPASSWORD, or 'studyplan keyring set'.")
				os.Exit(1)
			}
		}
		store = postgres.New(target, cfg.UserID)
	} else {
		store = sqlite.NewStore(target, cfg.UserID)
	}

	appCtx := &cli.Context{
		Store:    store,
		UserID:   cfg.UserID,
		Remote:   remote,
		Timezone: cfg.Timezone,
	}

	// init creates the store itself; everything else needs it loaded
	if command != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		if err := appCtx.LoadSettings(); err != nil {
			_ = store.Close()
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	_ = store.Close()
	errors.Fatal(err)
}
