package backups

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lo3003/studyplanner/internal/backup"
	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath, constants.DefaultUserID)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return &cli.Context{Store: store, Timezone: "UTC"}, store
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list with no backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	list, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(list))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store := setupTestDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	list, _ := backup.NewManager(store.GetConfigPath()).List()
	name := filepath.Base(list[0].Path)

	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	if err := store.AddTask(models.Task{
		ID: "after", Title: "Added after backup", Deadline: now.AddDate(0, 0, 3),
		EffortHours: 1, Difficulty: 1, Importance: 1, CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	// restore by bare file name, resolved inside the backup directory
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	tasks, err := store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to get tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected the task added after the backup to be gone, got %d tasks", len(tasks))
	}
}

func TestBackupRestore_Missing(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackupCommands_Remote(t *testing.T) {
	ctx, _ := setupTestDB(t)
	ctx.Remote = true

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected create to be refused for a remote database")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("expected list to be refused for a remote database")
	}
}
