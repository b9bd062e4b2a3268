package scheduler

import (
	"math"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

// stopReason names why the placement loop ended.
type stopReason string

const (
	stopComplete  stopReason = "complete"
	stopRoundCap  stopReason = "round_cap"
	stopStalled   stopReason = "stalled"
	stopExhausted stopReason = "horizon_exhausted"
)

// taskState is the per-task bookkeeping of one generation run.
type taskState struct {
	task  models.Task
	score float64
	color string

	remaining      int
	targetSessions int
	targetSpacing  int // days; 0 when one session is enough
	lastDay        int // -1 until the first session
	usedByDay      map[int]int
	sessions       []Interval
}

// placement is the round-robin state machine. The day cursor only moves forward.
type placement struct {
	cfg    Config
	inv    *Inventory
	states []*taskState

	round  int
	cursor int
	stalls int
}

func newPlacement(cfg Config, inv *Inventory, now time.Time, ranked []rankedTask, lockedMin map[string]int) *placement {
	p := &placement{cfg: cfg, inv: inv}
	for i, r := range ranked {
		remaining := max(r.task.EffortMinutes()-lockedMin[r.task.ID], 0)
		if remaining == 0 {
			continue
		}
		color := r.task.Color
		if color == "" {
			color = constants.BlockPalette[i%len(constants.BlockPalette)]
		}

		sessions := int(math.Ceil(float64(r.task.EffortMinutes()) / float64(cfg.NominalSessionMin)))
		spacing := 0
		if sessions > 1 {
			spacing = max(1, int(math.Floor(daysUntil(now, r.task.Deadline)/float64(sessions))))
		}

		p.states = append(p.states, &taskState{
			task:           r.task,
			score:          r.score,
			color:          color,
			remaining:      remaining,
			targetSessions: sessions,
			targetSpacing:  spacing,
			lastDay:        -1,
			usedByDay:      make(map[int]int),
		})
	}
	return p
}

// Termination predicates, checked in this order before every round.

func (p *placement) allPlaced() bool {
	for _, st := range p.states {
		if st.remaining > 0 {
			return false
		}
	}
	return true
}

func (p *placement) roundCapReached() bool { return p.round >= p.cfg.MaxRounds }

func (p *placement) stalled() bool { return p.stalls > p.cfg.MaxStallRounds }

func (p *placement) horizonExhausted() bool { return p.cursor >= p.inv.Len() }

func (p *placement) run() stopReason {
	for {
		switch {
		case p.allPlaced():
			return stopComplete
		case p.roundCapReached():
			return stopRoundCap
		case p.stalled():
			return stopStalled
		case p.horizonExhausted():
			return stopExhausted
		}

		if p.runRound() == 0 {
			p.cursor++
			p.stalls++
		}
		p.round++
	}
}

// runRound gives every unfinished task, in priority order, one chance at a session.
func (p *placement) runRound() int {
	placed := 0
	for _, st := range p.states {
		if st.remaining == 0 {
			continue
		}
		day := p.findDay(st, true)
		if day == nil {
			day = p.findDay(st, false)
		}
		if day == nil {
			continue
		}
		if p.place(st, day) {
			placed++
		}
	}
	return placed
}

// ceiling is the longest session st could get on day.
func (p *placement) ceiling(st *taskState, day *DayInventory) int {
	return min(
		st.remaining,
		p.cfg.MaxTaskMinPerDay-st.usedByDay[day.Index],
		day.largestSlotMin(st.task.Deadline),
		day.AvailableMinutes(),
		p.cfg.MaxStudyMinPerDay-day.UsedStudyMin,
		p.cfg.MaxSessionMin,
	)
}

// findDay returns the earliest day at or after the cursor that satisfies every hard
// constraint for st. When preferred is set the day must also be under the saturation
// threshold and respect the task's target spacing.
func (p *placement) findDay(st *taskState, preferred bool) *DayInventory {
	for i := p.cursor; i < p.inv.Len(); i++ {
		day := p.inv.Days[i]
		if !day.HasWindow || !day.Date.Before(st.task.Deadline) {
			continue
		}
		if st.lastDay >= 0 && i-st.lastDay < p.cfg.MinSpacingDays {
			continue
		}
		if day.UsedStudyMin >= p.cfg.MaxStudyMinPerDay || st.usedByDay[i] >= p.cfg.MaxTaskMinPerDay {
			continue
		}
		if p.ceiling(st, day) < p.cfg.MinSessionMin {
			continue
		}
		if preferred {
			if day.Saturation() >= p.cfg.SaturationThreshold {
				continue
			}
			if st.lastDay >= 0 && i-st.lastDay < st.targetSpacing {
				continue
			}
		}
		return day
	}
	return nil
}

// sessionLength snaps the ceiling down to the largest preferred length that still
// reaches the minimum session. The ceiling itself is used when none fits.
func (p *placement) sessionLength(ceiling int) int {
	for _, pref := range p.cfg.PreferredSessionMins {
		if pref <= ceiling && pref >= p.cfg.MinSessionMin {
			return pref
		}
	}
	return ceiling
}

func (p *placement) place(st *taskState, day *DayInventory) bool {
	ceiling := p.ceiling(st, day)
	if ceiling < p.cfg.MinSessionMin {
		return false
	}
	length := p.sessionLength(ceiling)

	session, ok := day.carve(length, st.task.Deadline, p.cfg.BreakMin)
	if !ok {
		return false
	}

	st.sessions = append(st.sessions, session)
	st.remaining -= length
	st.lastDay = day.Index
	st.usedByDay[day.Index] += length
	return true
}
