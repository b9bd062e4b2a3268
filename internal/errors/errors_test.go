package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to load tasks: %w", errors.New("database is locked")),
			expected: "Error: failed to load tasks: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("block %s collides with %q", "abc", "Lecture")
	want := `Error: block abc collides with "Lecture"`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}
