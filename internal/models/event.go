package models

import (
	"fmt"
	"strings"
	"time"
)

// FixedEvent is an immovable commitment. Generation never places work over it.
type FixedEvent struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
}

func (e FixedEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}
