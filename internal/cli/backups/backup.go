package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lo3003/studyplanner/internal/backup"
	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
)

var errRemote = errors.New("backups are only available for sqlite databases; use pg_dump for PostgreSQL")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if ctx.Remote {
		return errRemote
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	if ctx.Remote {
		return errRemote
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

// resolve finds the backup as given, or by name inside the backup directory.
func resolve(mgr *backup.Manager, name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	if !filepath.IsAbs(name) {
		candidate := filepath.Join(mgr.BackupDir(), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("backup file not found: tried %s and %s", name, mgr.BackupDir())
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if ctx.Remote {
		return errRemote
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := resolve(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Restore from: %s\n", backupPath)
		ok, err := cli.Confirm("Replace the current database with this backup?",
			"Stop any running 'studyplan autoplan' first. The current database is backed up before restoring.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safety, err := mgr.Restore(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	if safety != "" {
		fmt.Printf("  Previous database saved as %s\n", filepath.Base(safety))
	}
	return nil
}
