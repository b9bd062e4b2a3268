package plans

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

// Monday 2025-03-03 08:00 UTC
var testNow = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath, constants.DefaultUserID)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:    store,
		Timezone: "UTC",
		Now:      func() time.Time { return testNow },
	}
	if err := ctx.LoadSettings(); err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func addTask(t *testing.T, ctx *cli.Context, id string, effortHours float64) {
	t.Helper()
	task := models.Task{
		ID:          id,
		Title:       "Task " + id,
		Deadline:    testNow.AddDate(0, 0, 10),
		EffortHours: effortHours,
		Difficulty:  3,
		Importance:  3,
		CreatedAt:   testNow,
	}
	if err := ctx.Store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
}
