package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/logger"
	"github.com/lo3003/studyplanner/internal/models"
)

// Warning reports work that could not be placed before a task's deadline.
type Warning struct {
	TaskID           string  `json:"task_id"`
	TaskTitle        string  `json:"task_title"`
	Message          string  `json:"message"`
	UnscheduledHours float64 `json:"unscheduled_hours"`
}

// Result is the outcome of one generation run. Success is true iff there are no warnings;
// CreatedBlocks holds everything that was placed either way.
type Result struct {
	Success       bool                   `json:"success"`
	CreatedBlocks []models.ScheduleBlock `json:"created_blocks"`
	Warnings      []Warning              `json:"warnings"`
}

// Scheduler places study sessions for deadline-bound tasks around fixed events and
// locked blocks. It holds only its policy, so one instance may serve concurrent calls.
type Scheduler struct {
	cfg   Config
	newID func() string
}

// New returns a Scheduler for cfg. An invalid cfg is a programming error and panics.
func New(cfg Config) *Scheduler {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return &Scheduler{
		cfg:   cfg.clone(),
		newID: func() string { return uuid.New().String() },
	}
}

// Config returns a copy of the scheduler's policy.
func (s *Scheduler) Config() Config {
	return s.cfg.clone()
}

// Generate computes new work sessions for tasks. events and locked are walls; locked
// blocks also count toward their task's effort. Inputs are never modified.
//
// Tasks with no effort or a deadline at or before now are skipped silently.
func (s *Scheduler) Generate(now time.Time, tasks []models.Task, events []models.FixedEvent, locked []models.ScheduleBlock) Result {
	result := Result{
		Success:       true,
		CreatedBlocks: []models.ScheduleBlock{},
		Warnings:      []Warning{},
	}

	var eligible []models.Task
	for _, t := range tasks {
		if t.IsEligible(now) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return result
	}

	lockedMin := make(map[string]int)
	walls := make([]Interval, 0, len(events)+len(locked))
	for _, e := range events {
		walls = append(walls, Interval{Start: e.Start, End: e.End})
	}
	for _, b := range locked {
		walls = append(walls, Interval{Start: b.Start, End: b.End})
		lockedMin[b.TaskID] += b.Minutes()
	}

	inv := BuildInventory(now, HorizonDays(now, eligible, s.cfg), walls, s.cfg)
	p := newPlacement(s.cfg, inv, now, rankTasks(eligible, now, s.cfg), lockedMin)
	reason := p.run()

	for _, st := range p.states {
		block := func(iv Interval) models.ScheduleBlock {
			return models.ScheduleBlock{
				ID:          s.newID(),
				UserID:      st.task.UserID,
				TaskID:      st.task.ID,
				Title:       st.task.Title,
				Start:       iv.Start,
				End:         iv.End,
				DurationMin: iv.Minutes(),
				Color:       st.color,
			}
		}
		for _, iv := range st.sessions {
			result.CreatedBlocks = append(result.CreatedBlocks, block(iv))
		}
		if st.remaining > 0 {
			result.Warnings = append(result.Warnings, newWarning(st))
		}
	}

	sort.SliceStable(result.CreatedBlocks, func(i, j int) bool {
		return result.CreatedBlocks[i].Start.Before(result.CreatedBlocks[j].Start)
	})
	result.Success = len(result.Warnings) == 0

	logger.Debug("Schedule generated",
		"tasks", len(eligible),
		"horizon_days", inv.Len(),
		"rounds", p.round,
		"stop", reason,
		"blocks", len(result.CreatedBlocks),
		"warnings", len(result.Warnings),
	)
	return result
}

func newWarning(st *taskState) Warning {
	hours := float64(st.remaining) / 60
	return Warning{
		TaskID:    st.task.ID,
		TaskTitle: st.task.Title,
		Message: fmt.Sprintf("Could not fit %.1fh of %q before its deadline (%s)",
			hours, st.task.Title, st.task.Deadline.Format(constants.DateTimeFormat)),
		UnscheduledHours: hours,
	}
}
