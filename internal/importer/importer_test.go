package importer

import (
	"strings"
	"testing"
	"time"
)

var now = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	doc := `
tasks:
  - title: Essay
    deadline: 2025-03-10 18:00
    effort_hours: 6
    difficulty: 3
    importance: 4
  - title: Reading
    deadline: 2025-03-12
    effort_hours: 1.5
    difficulty: 1
    importance: 2
    color: "#A6DA95"
events:
  - title: Lecture
    start: 2025-03-04 10:00
    end: 2025-03-04 12:00
    description: Room 101
`
	batch, err := Parse(strings.NewReader(doc), time.UTC, now)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(batch.Tasks) != 2 || len(batch.Events) != 1 {
		t.Fatalf("Parse() = %d tasks, %d events", len(batch.Tasks), len(batch.Events))
	}

	essay := batch.Tasks[0]
	if !essay.Deadline.Equal(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)) || essay.EffortHours != 6 {
		t.Errorf("essay = %+v", essay)
	}
	if essay.ID == "" || essay.ID == batch.Tasks[1].ID {
		t.Error("tasks need distinct ids")
	}
	if !essay.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", essay.CreatedAt, now)
	}
	// a bare date means the end of that day
	if want := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC); !batch.Tasks[1].Deadline.Equal(want) {
		t.Errorf("reading deadline = %v, want %v", batch.Tasks[1].Deadline, want)
	}
	if batch.Events[0].Description != "Room 101" {
		t.Errorf("event = %+v", batch.Events[0])
	}
}

func TestParseReportsEveryError(t *testing.T) {
	doc := `
tasks:
  - title: ""
    deadline: 2025-03-10 18:00
    effort_hours: 2
    difficulty: 3
    importance: 3
  - title: Bad difficulty
    deadline: 2025-03-10 18:00
    effort_hours: 2
    difficulty: 9
    importance: 3
events:
  - title: Backwards
    start: 2025-03-04 12:00
    end: 2025-03-04 10:00
  - title: Unparseable
    start: next tuesday
    end: 2025-03-04 10:00
`
	_, err := Parse(strings.NewReader(doc), time.UTC, now)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"tasks[0]", "tasks[1]", "events[0]", "events[1]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	doc := `
tasks:
  - title: Essay
    due: 2025-03-10
`
	if _, err := Parse(strings.NewReader(doc), time.UTC, now); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestParseEmpty(t *testing.T) {
	batch, err := Parse(strings.NewReader(""), time.UTC, now)
	if err != nil {
		t.Fatalf("Parse(empty) failed: %v", err)
	}
	if len(batch.Tasks) != 0 || len(batch.Events) != 0 {
		t.Errorf("Parse(empty) = %+v", batch)
	}
}
