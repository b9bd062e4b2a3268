package scheduler

import (
	"math"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

// DayInventory is the free capacity of one calendar day in the horizon.
type DayInventory struct {
	Index     int
	Date      time.Time // midnight, in the location of the generation's now
	HasWindow bool
	// Slots shrink from the left as sessions are placed. Owned by the placement loop.
	Slots []Interval
	// TotalAvailableMin is the free time before any placement.
	TotalAvailableMin int
	// UsedStudyMin accumulates across all tasks.
	UsedStudyMin int
}

// AvailableMinutes is the day's remaining free time, never negative.
func (d *DayInventory) AvailableMinutes() int {
	return max(d.TotalAvailableMin-d.UsedStudyMin, 0)
}

// Saturation is the fraction of the day's capacity already used. A day with no
// capacity counts as fully saturated.
func (d *DayInventory) Saturation() float64 {
	if d.TotalAvailableMin == 0 {
		return 1
	}
	return float64(d.UsedStudyMin) / float64(d.TotalAvailableMin)
}

// largestSlotMin returns the longest contiguous free run that ends no later than limit.
func (d *DayInventory) largestSlotMin(limit time.Time) int {
	best := 0
	for _, s := range d.Slots {
		best = max(best, clip(s, limit).Minutes())
	}
	return best
}

// carve takes the first slot that fits length minutes before limit, returns the
// session interval and advances that slot's start past the session and the break.
func (d *DayInventory) carve(length int, limit time.Time, breakMin int) (Interval, bool) {
	need := time.Duration(length) * time.Minute
	for i := range d.Slots {
		if clip(d.Slots[i], limit).Duration() < need {
			continue
		}
		session := Interval{Start: d.Slots[i].Start, End: d.Slots[i].Start.Add(need)}
		d.Slots[i].Start = session.End.Add(time.Duration(breakMin) * time.Minute)
		if !d.Slots[i].Start.Before(d.Slots[i].End) {
			d.Slots = append(d.Slots[:i], d.Slots[i+1:]...)
		}
		d.UsedStudyMin += length
		return session, true
	}
	return Interval{}, false
}

func clip(s Interval, limit time.Time) Interval {
	if s.End.After(limit) {
		s.End = limit
	}
	return s
}

// Inventory is the forward-looking table of free time, indexed by day number from today.
type Inventory struct {
	Days []*DayInventory
}

func (inv *Inventory) Len() int { return len(inv.Days) }

// HorizonDays sizes the look-ahead to cover the furthest deadline plus one day,
// clamped to the configured bounds.
func HorizonDays(now time.Time, tasks []models.Task, cfg Config) int {
	today := startOfDay(now)
	days := 0
	for _, t := range tasks {
		d := int(math.Ceil(daysUntil(today, t.Deadline))) + 1
		days = max(days, d)
	}
	return min(max(days, cfg.MinHorizonDays), cfg.MaxHorizonDays)
}

// BuildInventory computes free slots for horizon days starting with now's day.
// The part of today before now is treated as blocked.
func BuildInventory(now time.Time, horizon int, walls []Interval, cfg Config) *Inventory {
	today := startOfDay(now)
	start := roundUpLocal(now, constants.StartRounding)

	blocked := MergeIntervals(append(append([]Interval(nil), walls...), Interval{Start: today, End: start}))

	inv := &Inventory{Days: make([]*DayInventory, 0, horizon)}
	for i := 0; i < horizon; i++ {
		date := addDays(today, i)
		_, hasWindow := WorkWindow(date, cfg)
		slots := FreeSlots(date, blocked, cfg)
		total := 0
		for _, s := range slots {
			total += s.Minutes()
		}
		inv.Days = append(inv.Days, &DayInventory{
			Index:             i,
			Date:              date,
			HasWindow:         hasWindow,
			Slots:             slots,
			TotalAvailableMin: total,
		})
	}
	return inv
}

// roundUpLocal rounds t up to the next multiple of step on its own wall clock, so
// zones with a non-hour offset still start on round local minutes.
func roundUpLocal(t time.Time, step time.Duration) time.Time {
	stepMin := int(step / time.Minute)
	mins := t.Hour()*60 + t.Minute()
	if mins%stepMin == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	mins = (mins/stepMin + 1) * stepMin
	return time.Date(t.Year(), t.Month(), t.Day(), 0, mins, 0, 0, t.Location())
}
