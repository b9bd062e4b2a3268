package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lo3003/studyplanner/internal/models"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"mon", time.Monday, false},
		{"Sunday", time.Sunday, false},
		{" FRI ", time.Friday, false},
		{"6", time.Saturday, false},
		{"0", time.Sunday, false},
		{"7", 0, true},
		{"someday", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWorkHours(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		hours, err := ParseWorkHours("mon=10-18, tue=9-17,sun=off,sat=20-24")
		require.NoError(t, err)
		assert.Equal(t, map[time.Weekday]models.WorkHours{
			time.Monday:   {StartHour: 10, EndHour: 18},
			time.Tuesday:  {StartHour: 9, EndHour: 17},
			time.Saturday: {StartHour: 20, EndHour: 24},
		}, hours)
	})

	bad := map[string]string{
		"missing window": "mon",
		"no dash":        "mon=10",
		"reversed":       "mon=18-10",
		"empty window":   "mon=10-10",
		"past midnight":  "mon=20-25",
		"unknown day":    "funday=10-18",
		"duplicate":      "mon=10-18,monday=9-12",
		"not a number":   "mon=ten-18",
		"everything off": "mon=off,tue=off",
		"nothing at all": "",
	}
	for name, in := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWorkHours(in)
			assert.Error(t, err)
		})
	}
}

func TestFormatWorkHoursRoundTrip(t *testing.T) {
	hours := map[time.Weekday]models.WorkHours{
		time.Sunday:    {StartHour: 20, EndHour: 24},
		time.Monday:    {StartHour: 10, EndHour: 18},
		time.Wednesday: {StartHour: 8, EndHour: 12},
	}
	s := FormatWorkHours(hours)
	assert.Equal(t, "mon=10-18,wed=8-12,sun=20-24", s)

	parsed, err := ParseWorkHours(s)
	require.NoError(t, err)
	assert.Equal(t, hours, parsed)

	assert.Equal(t, "none", FormatWorkHours(nil))
}

func TestParseMinutesList(t *testing.T) {
	mins, err := ParseMinutesList("120, 90,60")
	require.NoError(t, err)
	assert.Equal(t, []int{120, 90, 60}, mins)

	for _, in := range []string{"", "90,-30", "90,abc", "0"} {
		_, err := ParseMinutesList(in)
		assert.Error(t, err, in)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h30m", FormatMinutes(90))
	assert.Equal(t, "0m", FormatMinutes(0))
}
