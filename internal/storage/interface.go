package storage

import (
	"errors"
	"time"

	"github.com/lo3003/studyplanner/internal/models"
)

// ErrNotFound is returned when a record does not exist for the current user.
var ErrNotFound = errors.New("not found")

// ErrNotInitialized is returned by Load before init has created the database.
var ErrNotInitialized = errors.New("storage not initialized, run 'studyplan init' first")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	// DeleteTask removes the task and every block that belongs to it.
	DeleteTask(id string) error

	// Fixed events
	AddFixedEvent(models.FixedEvent) error
	GetFixedEvent(id string) (models.FixedEvent, error)
	GetAllFixedEvents() ([]models.FixedEvent, error)
	DeleteFixedEvent(id string) error

	// Schedule blocks
	GetBlock(id string) (models.ScheduleBlock, error)
	// GetBlocks returns blocks overlapping [from, to), ordered by start.
	GetBlocks(from, to time.Time) ([]models.ScheduleBlock, error)
	GetLockedBlocks() ([]models.ScheduleBlock, error)
	// GetPastBlocks returns unlocked blocks that started before now.
	GetPastBlocks(now time.Time) ([]models.ScheduleBlock, error)
	UpdateBlock(models.ScheduleBlock) error
	DeleteFutureUnlockedBlocks(now time.Time) (int, error)
	// ReplaceFutureUnlockedBlocks deletes unlocked blocks starting at or after now and
	// inserts blocks, in one transaction.
	ReplaceFutureUnlockedBlocks(now time.Time, blocks []models.ScheduleBlock) error

	// Utils
	GetConfigPath() string
}
