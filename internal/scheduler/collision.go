package scheduler

import (
	"fmt"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

// CollisionResult is the outcome of CheckCollision. Type and Message are empty when
// HasCollision is false.
type CollisionResult struct {
	HasCollision bool                    `json:"has_collision"`
	Type         constants.CollisionType `json:"type,omitempty"`
	Message      string                  `json:"message,omitempty"`
}

// CheckCollision tests [start, end) against every fixed event, then every locked block
// except the one with excludeID, and reports the first conflict. Fixed events win when
// both would conflict. Touching endpoints are not a collision.
func CheckCollision(start, end time.Time, events []models.FixedEvent, locked []models.ScheduleBlock, excludeID string) CollisionResult {
	for _, e := range events {
		if Overlaps(start, end, e.Start, e.End) {
			return CollisionResult{
				HasCollision: true,
				Type:         constants.CollisionFixedEvent,
				Message: fmt.Sprintf("Conflicts with fixed event %q (%s–%s)",
					e.Title, e.Start.Format(constants.TimeFormat), e.End.Format(constants.TimeFormat)),
			}
		}
	}
	for _, b := range locked {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return CollisionResult{
				HasCollision: true,
				Type:         constants.CollisionLockedBlock,
				Message: fmt.Sprintf("Conflicts with locked block %q (%s–%s)",
					b.Title, b.Start.Format(constants.TimeFormat), b.End.Format(constants.TimeFormat)),
			}
		}
	}
	return CollisionResult{}
}
