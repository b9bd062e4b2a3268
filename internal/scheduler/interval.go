package scheduler

import (
	"sort"
	"time"
)

// Interval is a span of time [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only share an endpoint are adjacent, not overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Minutes returns the interval length in whole minutes, never negative.
func (i Interval) Minutes() int {
	if !i.End.After(i.Start) {
		return 0
	}
	return int(i.End.Sub(i.Start) / time.Minute)
}

// SortIntervals sorts in place by start time, then end time.
func SortIntervals(intervals []Interval) {
	sort.SliceStable(intervals, func(a, b int) bool {
		if !intervals[a].Start.Equal(intervals[b].Start) {
			return intervals[a].Start.Before(intervals[b].Start)
		}
		return intervals[a].End.Before(intervals[b].End)
	})
}

// MergeIntervals returns a sorted copy where overlapping or touching intervals are joined.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	SortIntervals(sorted)

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
