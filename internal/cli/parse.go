package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lo3003/studyplanner/internal/models"
)

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts a day name, its three letter prefix, or 0-6 with 0 as Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[s]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(s); err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ParseWorkHours reads "mon=10-18,tue=9-17,sun=off" into a window per weekday. Days not
// named keep no window; "off" is accepted for readability.
func ParseWorkHours(s string) (map[time.Weekday]models.WorkHours, error) {
	hours := make(map[time.Weekday]models.WorkHours)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, window, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid work hours entry %q (expected day=start-end)", part)
		}
		wd, err := ParseWeekday(day)
		if err != nil {
			return nil, err
		}
		if _, dup := hours[wd]; dup {
			return nil, fmt.Errorf("work hours for %s given twice", wd)
		}
		window = strings.TrimSpace(strings.ToLower(window))
		if window == "off" {
			continue
		}
		startStr, endStr, ok := strings.Cut(window, "-")
		if !ok {
			return nil, fmt.Errorf("invalid window %q for %s (expected start-end)", window, wd)
		}
		start, err := strconv.Atoi(strings.TrimSpace(startStr))
		if err != nil {
			return nil, fmt.Errorf("invalid start hour for %s: %w", wd, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil {
			return nil, fmt.Errorf("invalid end hour for %s: %w", wd, err)
		}
		if start < 0 || end > 24 || start >= end {
			return nil, fmt.Errorf("invalid window %d-%d for %s (hours must satisfy 0 <= start < end <= 24)", start, end, wd)
		}
		hours[wd] = models.WorkHours{StartHour: start, EndHour: end}
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("at least one weekday needs work hours")
	}
	return hours, nil
}

// FormatWorkHours renders hours Monday first, in the form ParseWorkHours reads.
func FormatWorkHours(hours map[time.Weekday]models.WorkHours) string {
	days := make([]time.Weekday, 0, len(hours))
	for wd := range hours {
		days = append(days, wd)
	}
	sort.Slice(days, func(i, j int) bool {
		return (days[i]+6)%7 < (days[j]+6)%7
	})
	parts := make([]string, 0, len(days))
	for _, wd := range days {
		wh := hours[wd]
		parts = append(parts, fmt.Sprintf("%s=%d-%d", strings.ToLower(wd.String()[:3]), wh.StartHour, wh.EndHour))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseMinutesList reads a comma separated list of positive minute counts.
func ParseMinutesList(s string) ([]int, error) {
	var mins []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid minute value %q", part)
		}
		mins = append(mins, n)
	}
	if len(mins) == 0 {
		return nil, fmt.Errorf("list cannot be empty")
	}
	return mins, nil
}

// FormatMinutes renders a duration in minutes as "1h30m", "2h" or "45m".
func FormatMinutes(m int) string {
	h, rem := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, rem)
	}
}
