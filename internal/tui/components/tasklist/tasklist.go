package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

type Item struct {
	Task models.Task
	// PlannedMin is the minutes of blocks currently stored for the task.
	PlannedMin int
	Overdue    bool
}

func (i Item) Title() string {
	if i.Overdue {
		return i.Task.Title + " (overdue)"
	}
	return i.Task.Title
}

func (i Item) Description() string {
	return fmt.Sprintf("due %s | %s of %s planned | d%d i%d",
		i.Task.Deadline.Format(constants.DateTimeFormat),
		cli.FormatMinutes(i.PlannedMin),
		cli.FormatMinutes(i.Task.EffortMinutes()),
		i.Task.Difficulty,
		i.Task.Importance,
	)
}

func (i Item) FilterValue() string { return i.Task.Title }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is drawn by the parent
	return Model{list: l}
}

// Items builds one item per task, soonest deadline first as the store returns them.
func Items(now time.Time, tasks []models.Task, blocks []models.ScheduleBlock) []Item {
	planned := make(map[string]int)
	for _, b := range blocks {
		planned[b.TaskID] += b.Minutes()
	}
	items := make([]Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t, PlannedMin: planned[t.ID], Overdue: !t.Deadline.After(now)}
	}
	return items
}

func (m *Model) SetItems(items []Item) {
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}
	m.list.SetItems(li)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Add one with 'studyplan task add'."
	}
	return m.list.View()
}
