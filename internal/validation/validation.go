package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/scheduler"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingEvents  ConflictType = "overlapping_fixed_events"
	ConflictLockedOnEvent      ConflictType = "locked_block_on_event"
	ConflictOverlappingLocked  ConflictType = "overlapping_locked_blocks"
	ConflictOrphanBlock        ConflictType = "orphan_block"
	ConflictTaskPastDeadline   ConflictType = "task_past_deadline"
	ConflictTaskInfeasible     ConflictType = "task_infeasible"
	ConflictDuplicateTaskTitle ConflictType = "duplicate_task_title"
)

// Conflict represents a detected conflict in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // titles involved
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks a snapshot of the user's data against the scheduling policy.
type Validator struct {
	cfg scheduler.Config
}

func New(cfg scheduler.Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs every check. blocks may include both locked and unlocked blocks.
func (v *Validator) Validate(now time.Time, tasks []models.Task, events []models.FixedEvent, blocks []models.ScheduleBlock) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var locked []models.ScheduleBlock
	for _, b := range blocks {
		if b.Locked {
			locked = append(locked, b)
		}
	}

	v.checkEvents(&result, events)
	v.checkLocked(&result, events, locked)
	v.checkBlocks(&result, tasks, blocks)
	v.checkTasks(&result, now, tasks, events, locked)
	return result
}

func fmtRange(start, end time.Time) string {
	return fmt.Sprintf("%s %s-%s", start.Format(constants.DateFormat), start.Format(constants.TimeFormat), end.Format(constants.TimeFormat))
}

func (v *Validator) checkEvents(result *ValidationResult, events []models.FixedEvent) {
	sorted := append([]models.FixedEvent(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted) && sorted[j].Start.Before(sorted[i].End); j++ {
			a, b := sorted[i], sorted[j]
			result.add(Conflict{
				Type:        ConflictOverlappingEvents,
				Description: fmt.Sprintf("Fixed events %q and %q overlap (%s)", a.Title, b.Title, fmtRange(b.Start, minTime(a.End, b.End))),
				Items:       []string{a.Title, b.Title},
				IDs:         []string{a.ID, b.ID},
			})
		}
	}
}

func (v *Validator) checkLocked(result *ValidationResult, events []models.FixedEvent, locked []models.ScheduleBlock) {
	for i, b := range locked {
		// only later blocks, so each overlapping pair is reported once
		res := scheduler.CheckCollision(b.Start, b.End, events, locked[i+1:], "")
		if !res.HasCollision {
			continue
		}
		kind := ConflictOverlappingLocked
		if res.Type == constants.CollisionFixedEvent {
			kind = ConflictLockedOnEvent
		}
		result.add(Conflict{
			Type:        kind,
			Description: fmt.Sprintf("Locked block %q (%s): %s", b.Title, fmtRange(b.Start, b.End), res.Message),
			Items:       []string{b.Title},
			IDs:         []string{b.ID},
		})
	}
}

func (v *Validator) checkBlocks(result *ValidationResult, tasks []models.Task, blocks []models.ScheduleBlock) {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	for _, b := range blocks {
		if !known[b.TaskID] {
			result.add(Conflict{
				Type:        ConflictOrphanBlock,
				Description: fmt.Sprintf("Block %q (%s) references missing task %s", b.Title, fmtRange(b.Start, b.End), b.TaskID),
				Items:       []string{b.Title},
				IDs:         []string{b.ID},
			})
		}
	}
}

func (v *Validator) checkTasks(result *ValidationResult, now time.Time, tasks []models.Task, events []models.FixedEvent, locked []models.ScheduleBlock) {
	titles := make(map[string][]string)
	for _, t := range tasks {
		key := strings.ToLower(strings.TrimSpace(t.Title))
		titles[key] = append(titles[key], t.ID)
	}
	keys := make([]string, 0, len(titles))
	for k := range titles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if ids := titles[k]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateTaskTitle,
				Description: fmt.Sprintf("Duplicate task title %q (IDs: %s)", k, strings.Join(ids, ", ")),
				Items:       []string{k},
				IDs:         ids,
			})
		}
	}

	var walls []scheduler.Interval
	for _, e := range events {
		walls = append(walls, scheduler.Interval{Start: e.Start, End: e.End})
	}
	lockedMin := make(map[string]int)
	for _, b := range locked {
		walls = append(walls, scheduler.Interval{Start: b.Start, End: b.End})
		lockedMin[b.TaskID] += b.Minutes()
	}

	var active []models.Task
	for _, t := range tasks {
		if !t.Deadline.After(now) {
			result.add(Conflict{
				Type:        ConflictTaskPastDeadline,
				Description: fmt.Sprintf("Task %q is past its deadline (%s) and will not be scheduled", t.Title, t.Deadline.Format(constants.DateTimeFormat)),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
			continue
		}
		active = append(active, t)
	}
	if len(active) == 0 {
		return
	}

	inv := scheduler.BuildInventory(now, scheduler.HorizonDays(now, active, v.cfg), walls, v.cfg)
	for _, t := range active {
		need := t.EffortMinutes() - lockedMin[t.ID]
		if need <= 0 {
			continue
		}
		if capacity := v.capacityBefore(inv, t.Deadline); capacity < need {
			result.add(Conflict{
				Type: ConflictTaskInfeasible,
				Description: fmt.Sprintf("Task %q needs %.1fh but at most %.1fh of study time is free before %s",
					t.Title, float64(need)/60, float64(capacity)/60, t.Deadline.Format(constants.DateTimeFormat)),
				Items: []string{t.Title},
				IDs:   []string{t.ID},
			})
		}
	}
}

// capacityBefore is an upper bound on the minutes a single task could get before
// deadline, honouring the per-task and per-day caps but ignoring other tasks.
func (v *Validator) capacityBefore(inv *scheduler.Inventory, deadline time.Time) int {
	total := 0
	for _, day := range inv.Days {
		if !day.Date.Before(deadline) {
			break
		}
		free := 0
		for _, s := range day.Slots {
			if !s.Start.Before(deadline) {
				break
			}
			if s.End.After(deadline) {
				s.End = deadline
			}
			free += s.Minutes()
		}
		total += min(free, v.cfg.MaxTaskMinPerDay, v.cfg.MaxStudyMinPerDay)
	}
	return total
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
