package blocks

import (
	"errors"
	"testing"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

func plannedBlock(t *testing.T, ctx *cli.Context) models.ScheduleBlock {
	t.Helper()
	addTask(t, ctx, "a", 1)
	result, err := ctx.GeneratePlan(ctx.CurrentTime())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := ctx.ApplyPlan(ctx.CurrentTime(), result); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(result.CreatedBlocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(result.CreatedBlocks))
	}
	return result.CreatedBlocks[0]
}

func TestBlockMoveCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	block := plannedBlock(t, ctx)

	if err := ctx.Store.AddFixedEvent(models.FixedEvent{
		ID:    "seminar",
		Title: "Seminar",
		Start: testNow.Add(26 * time.Hour), // Tue 10:00
		End:   testNow.Add(28 * time.Hour), // Tue 12:00
	}); err != nil {
		t.Fatalf("failed to add event: %v", err)
	}

	err := (&BlockMoveCmd{ID: block.ID, Start: "2025-03-04 11:00", End: "2025-03-04 12:00"}).Run(ctx)
	var collision *cli.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected a collision error, got %v", err)
	}
	if collision.Type != constants.CollisionFixedEvent {
		t.Errorf("expected fixed event collision, got %s", collision.Type)
	}

	if err := (&BlockMoveCmd{ID: block.ID, Start: "2025-03-04 12:00", End: "2025-03-04 13:00"}).Run(ctx); err != nil {
		t.Fatalf("adjacent move failed: %v", err)
	}
	moved, err := ctx.Store.GetBlock(block.ID)
	if err != nil {
		t.Fatalf("failed to get block: %v", err)
	}
	if !moved.Locked {
		t.Error("moved block should be locked")
	}
	if moved.DurationMin != 60 {
		t.Errorf("expected 60 minutes, got %d", moved.DurationMin)
	}

	if err := (&BlockMoveCmd{ID: block.ID, Start: "2025-03-04 13:00", End: "2025-03-04 12:00"}).Run(ctx); err == nil {
		t.Error("expected an error for a reversed interval")
	}
}

func TestBlockCheckCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	block := plannedBlock(t, ctx)
	if _, err := ctx.SetLocked(block.ID, true); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	start := block.Start.Format(constants.DateTimeFormat)
	end := block.End.Format(constants.DateTimeFormat)

	// a collision is a result, not a failure
	if err := (&BlockCheckCmd{Start: start, End: end}).Run(ctx); err != nil {
		t.Errorf("check failed: %v", err)
	}
	if err := (&BlockCheckCmd{Start: start, End: end, Exclude: block.ID}).Run(ctx); err != nil {
		t.Errorf("check with exclusion failed: %v", err)
	}
	if err := (&BlockCheckCmd{Start: "soon", End: end}).Run(ctx); err == nil {
		t.Error("expected an error for a malformed start")
	}
}

func TestBlockLockUnlockCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	block := plannedBlock(t, ctx)

	if err := (&BlockLockCmd{ID: block.ID}).Run(ctx); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	locked, _ := ctx.Store.GetLockedBlocks()
	if len(locked) != 1 {
		t.Fatalf("expected 1 locked block, got %d", len(locked))
	}

	if err := (&BlockUnlockCmd{ID: block.ID}).Run(ctx); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	locked, _ = ctx.Store.GetLockedBlocks()
	if len(locked) != 0 {
		t.Errorf("expected no locked blocks, got %d", len(locked))
	}

	if err := (&BlockLockCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown block")
	}
}

func TestBlockListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BlockListCmd{Days: 7}).Run(ctx); err != nil {
		t.Errorf("list on empty store failed: %v", err)
	}
	plannedBlock(t, ctx)
	if err := (&BlockListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
