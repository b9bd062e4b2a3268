package cli

import (
	"fmt"
	"time"

	"github.com/lo3003/studyplanner/internal/backup"
	"github.com/lo3003/studyplanner/internal/logger"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/scheduler"
	"github.com/lo3003/studyplanner/internal/storage"
	"github.com/lo3003/studyplanner/internal/utils"
	"github.com/lo3003/studyplanner/internal/validation"
)

// EndOfTime bounds queries that should see every stored block.
var EndOfTime = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Settings  models.Settings
	Location  *time.Location

	// UserID scopes every stored row.
	UserID string
	// Remote is set for PostgreSQL targets, which have no file to back up.
	Remote bool
	// Timezone overrides the stored setting when non-empty.
	Timezone string
	// Now is time.Now unless a test replaces it.
	Now func() time.Time
}

// LoadSettings reads the stored policy and builds the scheduler from it. Commands other
// than init run after this.
func (c *Context) LoadSettings() error {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cfg, err := scheduler.FromSettings(settings)
	if err != nil {
		return fmt.Errorf("stored settings are invalid: %w", err)
	}

	tz := settings.Timezone
	if c.Timezone != "" {
		tz = c.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return err
	}

	c.Settings = settings
	c.Scheduler = scheduler.New(cfg)
	c.Location = loc
	return nil
}

// AllBlocks returns every stored block ordered by start.
func (c *Context) AllBlocks() ([]models.ScheduleBlock, error) {
	return c.Store.GetBlocks(time.Time{}, EndOfTime)
}

// CurrentTime returns now in the configured location, which decides calendar days.
func (c *Context) CurrentTime() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location == nil {
		return now()
	}
	return now().In(c.Location)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Remote {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// GeneratePlan runs the scheduler over the stored tasks. Fixed events, locked blocks and
// blocks already under way are walls; nothing is written.
func (c *Context) GeneratePlan(now time.Time) (scheduler.Result, error) {
	tasks, err := c.Store.GetAllTasks()
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("failed to get tasks: %w", err)
	}
	events, err := c.Store.GetAllFixedEvents()
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("failed to get fixed events: %w", err)
	}
	walls, err := c.Store.GetLockedBlocks()
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("failed to get locked blocks: %w", err)
	}
	past, err := c.Store.GetPastBlocks(now)
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("failed to get past blocks: %w", err)
	}
	walls = append(walls, past...)

	logger.Debug("Generating plan",
		"tasks", len(tasks),
		"events", len(events),
		"walls", len(walls),
	)
	return c.Scheduler.Generate(now, tasks, events, walls), nil
}

// ApplyPlan swaps the future unlocked blocks for result's blocks in one transaction,
// taking a backup first.
func (c *Context) ApplyPlan(now time.Time, result scheduler.Result) error {
	c.PerformAutomaticBackup()
	if err := c.Store.ReplaceFutureUnlockedBlocks(now, result.CreatedBlocks); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	logger.Info("Plan saved", "blocks", len(result.CreatedBlocks), "warnings", len(result.Warnings))
	return nil
}

// CollisionError is returned when a block cannot move to the requested interval.
type CollisionError struct {
	scheduler.CollisionResult
}

func (e *CollisionError) Error() string {
	return e.Message
}

// CheckInterval tests [start, end) against the stored fixed events and locked blocks.
func (c *Context) CheckInterval(start, end time.Time, excludeID string) (scheduler.CollisionResult, error) {
	if !end.After(start) {
		return scheduler.CollisionResult{}, fmt.Errorf("end time must be after start time")
	}
	events, err := c.Store.GetAllFixedEvents()
	if err != nil {
		return scheduler.CollisionResult{}, fmt.Errorf("failed to get fixed events: %w", err)
	}
	locked, err := c.Store.GetLockedBlocks()
	if err != nil {
		return scheduler.CollisionResult{}, fmt.Errorf("failed to get locked blocks: %w", err)
	}
	return scheduler.CheckCollision(start, end, events, locked, excludeID), nil
}

// MoveBlock reschedules a block by hand. A block moved this way is locked so that the
// next plan works around it. On a collision nothing is saved.
func (c *Context) MoveBlock(id string, start, end time.Time) (models.ScheduleBlock, error) {
	block, err := c.Store.GetBlock(id)
	if err != nil {
		return models.ScheduleBlock{}, fmt.Errorf("failed to get block: %w", err)
	}

	res, err := c.CheckInterval(start, end, id)
	if err != nil {
		return block, err
	}
	if res.HasCollision {
		return block, &CollisionError{res}
	}

	moved := block
	if err := moved.Reschedule(start, end); err != nil {
		return block, err
	}
	moved.Locked = true
	if err := c.Store.UpdateBlock(moved); err != nil {
		return block, fmt.Errorf("failed to save block: %w", err)
	}
	return moved, nil
}

// SetLocked toggles the locked flag of a block.
func (c *Context) SetLocked(id string, locked bool) (models.ScheduleBlock, error) {
	block, err := c.Store.GetBlock(id)
	if err != nil {
		return models.ScheduleBlock{}, fmt.Errorf("failed to get block: %w", err)
	}
	if locked {
		// a block may not be locked on top of another wall
		res, err := c.CheckInterval(block.Start, block.End, id)
		if err != nil {
			return block, err
		}
		if res.HasCollision {
			return block, &CollisionError{res}
		}
	}
	block.Locked = locked
	if err := c.Store.UpdateBlock(block); err != nil {
		return block, fmt.Errorf("failed to save block: %w", err)
	}
	return block, nil
}

// ValidateStore checks the stored tasks, events and every block against the policy.
func (c *Context) ValidateStore(now time.Time) (validation.ValidationResult, error) {
	tasks, err := c.Store.GetAllTasks()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get tasks: %w", err)
	}
	events, err := c.Store.GetAllFixedEvents()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get fixed events: %w", err)
	}
	blocks, err := c.AllBlocks()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get blocks: %w", err)
	}
	return validation.New(c.Scheduler.Config()).Validate(now, tasks, events, blocks), nil
}
