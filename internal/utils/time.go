package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) to midnight in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// ParseDateTime accepts "YYYY-MM-DD HH:MM", "YYYY-MM-DDTHH:MM" or a bare date, which
// means the end of that day (midnight of the next), the natural reading of a deadline.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{constants.DateTimeFormat, "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	if d, err := time.ParseInLocation(constants.DateFormat, value, loc); err == nil {
		return d.AddDate(0, 0, 1), nil
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q (expected YYYY-MM-DD HH:MM)", value)
}

// ParseClock parses HH:MM into hour and minute.
func ParseClock(value string) (int, int, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
