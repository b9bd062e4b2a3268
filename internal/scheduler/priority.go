package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/lo3003/studyplanner/internal/models"
)

// daysUntil returns the fractional number of days from now to t.
func daysUntil(now, t time.Time) float64 {
	return t.Sub(now).Hours() / 24
}

// PriorityScore ranks a task for greedy placement; higher is scheduled sooner.
//
//	(importance*Beta + difficulty*Alpha) / (max(slack, 0) + Epsilon) / effortHours
//
// Slack is days until the deadline minus the days of work the effort needs at the
// per-task daily cap. Dividing by effort lets small tasks win ties and fill small gaps.
func PriorityScore(task models.Task, now time.Time, cfg Config) float64 {
	effortHours := task.EffortHours
	if effortHours <= 0 {
		return 0
	}

	effortDays := float64(task.EffortMinutes()) / float64(cfg.MaxTaskMinPerDay)
	slack := math.Max(daysUntil(now, task.Deadline)-effortDays, 0)

	weight := float64(task.Importance)*cfg.Priority.Beta + float64(task.Difficulty)*cfg.Priority.Alpha
	return weight / (slack + cfg.Priority.Epsilon) * (1 / effortHours)
}

type rankedTask struct {
	task  models.Task
	score float64
}

// rankTasks orders tasks by descending score. Ties go to the earlier deadline, then id,
// so the order is deterministic for a given input.
func rankTasks(tasks []models.Task, now time.Time, cfg Config) []rankedTask {
	ranked := make([]rankedTask, 0, len(tasks))
	for _, t := range tasks {
		ranked = append(ranked, rankedTask{task: t, score: PriorityScore(t, now, cfg)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if !ranked[i].task.Deadline.Equal(ranked[j].task.Deadline) {
			return ranked[i].task.Deadline.Before(ranked[j].task.Deadline)
		}
		return ranked[i].task.ID < ranked[j].task.ID
	})
	return ranked
}
