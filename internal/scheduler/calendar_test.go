package scheduler

import (
	"testing"
	"time"

	"github.com/lo3003/studyplanner/internal/models"
)

func TestWorkWindow(t *testing.T) {
	cfg := DefaultConfig()

	monday := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	window, ok := WorkWindow(monday, cfg)
	if !ok {
		t.Fatal("expected a work window on Monday")
	}
	if !window.Start.Equal(at(10, 0)) || !window.End.Equal(at(18, 0)) {
		t.Errorf("WorkWindow() = %v, want 10:00-18:00", window)
	}

	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if _, ok := WorkWindow(sunday, cfg); ok {
		t.Error("expected no work window on Sunday")
	}

	cfg.WorkHours[time.Sunday] = models.WorkHours{StartHour: 20, EndHour: 24}
	window, ok = WorkWindow(sunday, cfg)
	if !ok {
		t.Fatal("expected a work window once Sunday is configured")
	}
	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC); !window.End.Equal(want) {
		t.Errorf("window end = %v, want midnight %v", window.End, want)
	}
}

func TestWorkWindowUsesDayLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, loc)

	window, ok := WorkWindow(day, DefaultConfig())
	if !ok {
		t.Fatal("expected a work window")
	}
	if window.Start.Hour() != 10 || window.Start.Location() != loc {
		t.Errorf("window start = %v, want 10:00 local", window.Start)
	}
}

func TestFreeSlots(t *testing.T) {
	cfg := DefaultConfig()
	day := at(0, 0)

	tests := []struct {
		name    string
		blocked []Interval
		want    []Interval
	}{
		{
			name: "nothing blocked",
			want: []Interval{{Start: at(10, 0), End: at(18, 0)}},
		},
		{
			name:    "block in the middle",
			blocked: []Interval{{Start: at(12, 0), End: at(13, 0)}},
			want: []Interval{
				{Start: at(10, 0), End: at(12, 0)},
				{Start: at(13, 0), End: at(18, 0)},
			},
		},
		{
			name:    "block covering window start",
			blocked: []Interval{{Start: at(8, 0), End: at(11, 0)}},
			want:    []Interval{{Start: at(11, 0), End: at(18, 0)}},
		},
		{
			name: "overlapping blocks",
			blocked: []Interval{
				{Start: at(11, 0), End: at(13, 0)},
				{Start: at(12, 0), End: at(12, 30)},
				{Start: at(12, 45), End: at(14, 0)},
			},
			want: []Interval{
				{Start: at(10, 0), End: at(11, 0)},
				{Start: at(14, 0), End: at(18, 0)},
			},
		},
		{
			name: "short gap dropped",
			blocked: []Interval{
				{Start: at(10, 0), End: at(12, 0)},
				{Start: at(12, 20), End: at(17, 0)},
			},
			want: []Interval{{Start: at(17, 0), End: at(18, 0)}},
		},
		{
			name: "blocks outside window ignored",
			blocked: []Interval{
				{Start: at(6, 0), End: at(7, 0)},
				{Start: at(18, 0), End: at(20, 0)},
			},
			want: []Interval{{Start: at(10, 0), End: at(18, 0)}},
		},
		{
			name:    "whole window blocked",
			blocked: []Interval{{Start: at(9, 0), End: at(19, 0)}},
			want:    nil,
		},
		{
			name:    "block running past window end",
			blocked: []Interval{{Start: at(16, 0), End: at(20, 0)}},
			want:    []Interval{{Start: at(10, 0), End: at(16, 0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSlots(day, tt.blocked, cfg)
			if len(got) != len(tt.want) {
				t.Fatalf("FreeSlots() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("slot %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFreeSlotsNoWindow(t *testing.T) {
	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := FreeSlots(sunday, nil, DefaultConfig()); len(got) != 0 {
		t.Errorf("FreeSlots() on a day off = %v, want none", got)
	}
}
