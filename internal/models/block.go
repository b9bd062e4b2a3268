package models

import (
	"fmt"
	"time"
)

// ScheduleBlock is a placed work session for one task.
type ScheduleBlock struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TaskID      string    `json:"task_id"`
	Title       string    `json:"title"` // copy of the task title at creation time
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
	Locked      bool      `json:"locked"`
	Color       string    `json:"color,omitempty"`
}

// Minutes returns the length of the block's interval in whole minutes.
func (b ScheduleBlock) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// Reschedule moves the block and keeps DurationMin in step with the new interval.
func (b *ScheduleBlock) Reschedule(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}
	b.Start = start
	b.End = end
	b.DurationMin = b.Minutes()
	return nil
}

func (b ScheduleBlock) Validate() error {
	if !b.End.After(b.Start) {
		return fmt.Errorf("end time must be after start time")
	}
	if b.DurationMin != b.Minutes() {
		return fmt.Errorf("duration %d does not match interval length %d", b.DurationMin, b.Minutes())
	}
	if b.TaskID == "" {
		return fmt.Errorf("block must reference a task")
	}
	return nil
}
