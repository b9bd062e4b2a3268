package scheduler

import "time"

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addDays moves a midnight forward by whole calendar days, DST-safe.
func addDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

// WorkWindow returns the study window for day's weekday, or false if that weekday is
// a day off. Hours are wall-clock hours on day's own calendar date.
func WorkWindow(day time.Time, cfg Config) (Interval, bool) {
	wh, ok := cfg.WorkHours[day.Weekday()]
	if !ok {
		return Interval{}, false
	}
	return Interval{
		Start: time.Date(day.Year(), day.Month(), day.Day(), wh.StartHour, 0, 0, 0, day.Location()),
		End:   time.Date(day.Year(), day.Month(), day.Day(), wh.EndHour, 0, 0, 0, day.Location()),
	}, true
}

// FreeSlots subtracts blocked from day's work window and returns the uncovered
// sub-intervals left to right. blocked must be sorted by start. Slots shorter than
// the minimum session length are dropped.
func FreeSlots(day time.Time, blocked []Interval, cfg Config) []Interval {
	window, ok := WorkWindow(day, cfg)
	if !ok {
		return nil
	}

	var raw []Interval
	cursor := window.Start
	for _, b := range blocked {
		if !b.Overlaps(window) {
			continue
		}
		if b.Start.After(cursor) {
			end := b.Start
			if end.After(window.End) {
				end = window.End
			}
			if end.After(cursor) {
				raw = append(raw, Interval{Start: cursor, End: end})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		raw = append(raw, Interval{Start: cursor, End: window.End})
	}

	minLen := time.Duration(cfg.MinSessionMin) * time.Minute
	slots := make([]Interval, 0, len(raw))
	for _, s := range raw {
		if s.Duration() >= minLen {
			slots = append(slots, s)
		}
	}
	return slots
}
