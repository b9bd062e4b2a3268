package tasks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

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

func onlyTask(t *testing.T, ctx *cli.Context) models.Task {
	t.Helper()
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to get tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	return tasks[0]
}

func TestTaskAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &TaskAddCmd{
		Title:      "Thesis chapter",
		Deadline:   "2025-03-10 18:00",
		Effort:     6.5,
		Difficulty: 4,
		Importance: 5,
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	task := onlyTask(t, ctx)
	if task.Title != "Thesis chapter" {
		t.Errorf("expected title %q, got %q", "Thesis chapter", task.Title)
	}
	if !task.Deadline.Equal(time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected deadline %v", task.Deadline)
	}
	if task.EffortMinutes() != 390 {
		t.Errorf("expected 390 effort minutes, got %d", task.EffortMinutes())
	}
	if task.ID == "" {
		t.Error("expected an ID to be assigned")
	}
}

func TestTaskAddCmd_DateOnlyDeadline(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &TaskAddCmd{Title: "Essay", Deadline: "2025-03-10", Effort: 2, Difficulty: 3, Importance: 3}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	// a bare date means the whole of that day
	if want := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC); !onlyTask(t, ctx).Deadline.Equal(want) {
		t.Errorf("expected deadline %v", want)
	}
}

func TestTaskAddCmd_Validate(t *testing.T) {
	tests := []struct {
		name string
		cmd  TaskAddCmd
	}{
		{"zero effort", TaskAddCmd{Effort: 0, Difficulty: 3, Importance: 3}},
		{"difficulty too high", TaskAddCmd{Effort: 1, Difficulty: 6, Importance: 3}},
		{"importance too low", TaskAddCmd{Effort: 1, Difficulty: 3, Importance: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTaskAddCmd_BadDeadline(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &TaskAddCmd{Title: "Essay", Deadline: "next friday", Effort: 2, Difficulty: 3, Importance: 3}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for an unparseable deadline")
	}
}

func TestTaskEditCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &TaskAddCmd{Title: "Essay", Deadline: "2025-03-10 18:00", Effort: 2, Difficulty: 3, Importance: 3}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	task := onlyTask(t, ctx)

	title := "Long essay"
	effort := 4.0
	importance := 5
	edit := &TaskEditCmd{ID: task.ID, Title: &title, Effort: &effort, Importance: &importance}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("task edit failed: %v", err)
	}

	got := onlyTask(t, ctx)
	if got.Title != title || got.EffortHours != effort || got.Importance != importance {
		t.Errorf("edit not applied: %+v", got)
	}
	if got.Difficulty != 3 {
		t.Errorf("difficulty should be unchanged, got %d", got.Difficulty)
	}

	bad := 9
	if err := (&TaskEditCmd{ID: task.ID, Difficulty: &bad}).Run(ctx); err == nil {
		t.Error("expected an error for difficulty 9")
	}
	if err := (&TaskEditCmd{ID: "missing", Title: &title}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown task")
	}
}

func TestTaskDeleteCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &TaskAddCmd{Title: "Essay", Deadline: "2025-03-10 18:00", Effort: 2, Difficulty: 3, Importance: 3}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	task := onlyTask(t, ctx)

	result, err := ctx.GeneratePlan(ctx.CurrentTime())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := ctx.ApplyPlan(ctx.CurrentTime(), result); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if err := (&TaskDeleteCmd{ID: task.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("task delete failed: %v", err)
	}

	tasks, _ := ctx.Store.GetAllTasks()
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
	blocks, _ := ctx.AllBlocks()
	if len(blocks) != 0 {
		t.Errorf("expected the task's blocks to be deleted, got %d", len(blocks))
	}

	if err := (&TaskDeleteCmd{ID: task.ID, Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error deleting a missing task")
	}
}

func TestTaskListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&TaskListCmd{}).Run(ctx); err != nil {
		t.Errorf("task list on empty store failed: %v", err)
	}

	add := &TaskAddCmd{Title: "Essay", Deadline: "2025-03-10 18:00", Effort: 2, Difficulty: 3, Importance: 3}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if err := (&TaskListCmd{All: true, ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("task list failed: %v", err)
	}
}
