// Package importer reads tasks and fixed events in bulk from YAML.
package importer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/utils"
)

// File is the document layout:
//
//	tasks:
//	  - title: Essay
//	    deadline: 2025-03-10 18:00
//	    effort_hours: 6
//	    difficulty: 3
//	    importance: 4
//	events:
//	  - title: Lecture
//	    start: 2025-03-04 10:00
//	    end: 2025-03-04 12:00
type File struct {
	Tasks  []TaskEntry  `yaml:"tasks"`
	Events []EventEntry `yaml:"events"`
}

type TaskEntry struct {
	Title       string  `yaml:"title"`
	Deadline    string  `yaml:"deadline"`
	EffortHours float64 `yaml:"effort_hours"`
	Difficulty  int     `yaml:"difficulty"`
	Importance  int     `yaml:"importance"`
	Color       string  `yaml:"color"`
}

type EventEntry struct {
	Title       string `yaml:"title"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// Batch is a fully validated import, ready to persist.
type Batch struct {
	Tasks  []models.Task
	Events []models.FixedEvent
}

// Parse decodes r and validates every entry. Times are read in loc. All problems are
// reported together; nothing is returned unless the whole file is valid.
func Parse(r io.Reader, loc *time.Location, now time.Time) (Batch, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Batch{}, fmt.Errorf("invalid YAML: %w", err)
	}

	var (
		batch Batch
		errs  []error
	)
	for i, e := range doc.Tasks {
		task, err := e.toTask(loc, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("tasks[%d] (%q): %w", i, e.Title, err))
			continue
		}
		batch.Tasks = append(batch.Tasks, task)
	}
	for i, e := range doc.Events {
		event, err := e.toEvent(loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("events[%d] (%q): %w", i, e.Title, err))
			continue
		}
		batch.Events = append(batch.Events, event)
	}

	if len(errs) > 0 {
		return Batch{}, errors.Join(errs...)
	}
	return batch, nil
}

func (e TaskEntry) toTask(loc *time.Location, now time.Time) (models.Task, error) {
	deadline, err := utils.ParseDateTime(e.Deadline, loc)
	if err != nil {
		return models.Task{}, err
	}
	task := models.Task{
		ID:          uuid.New().String(),
		Title:       e.Title,
		Deadline:    deadline,
		EffortHours: e.EffortHours,
		Difficulty:  e.Difficulty,
		Importance:  e.Importance,
		Color:       e.Color,
		CreatedAt:   now,
	}
	return task, task.Validate()
}

func (e EventEntry) toEvent(loc *time.Location) (models.FixedEvent, error) {
	start, err := utils.ParseDateTime(e.Start, loc)
	if err != nil {
		return models.FixedEvent{}, fmt.Errorf("start: %w", err)
	}
	end, err := utils.ParseDateTime(e.End, loc)
	if err != nil {
		return models.FixedEvent{}, fmt.Errorf("end: %w", err)
	}
	event := models.FixedEvent{
		ID:          uuid.New().String(),
		Title:       e.Title,
		Start:       start,
		End:         end,
		Description: e.Description,
		Color:       e.Color,
	}
	return event, event.Validate()
}
