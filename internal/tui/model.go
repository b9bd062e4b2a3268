package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/tui/components/agenda"
	"github.com/lo3003/studyplanner/internal/tui/components/tasklist"
	"github.com/lo3003/studyplanner/internal/utils"
)

type SessionState int

const (
	StateAgenda SessionState = iota
	StateTasks
)

var tabTitles = []string{"Agenda", "Tasks"}

// dataMsg carries a fresh snapshot of the store.
type dataMsg struct {
	now       time.Time
	tasks     []models.Task
	events    []models.FixedEvent
	blocks    []models.ScheduleBlock
	conflicts int
	err       error
}

// generatedMsg reports a plan regeneration.
type generatedMsg struct {
	blocks   int
	warnings int
	err      error
}

type Model struct {
	ctx      *cli.Context
	days     int
	state    SessionState
	keys     KeyMap
	help     help.Model
	agenda   agenda.Model
	taskList tasklist.Model
	status   string
	warning  string
	quitting bool
	width    int
	height   int
}

// NewModel returns a browser over ctx's store showing days days of agenda.
func NewModel(ctx *cli.Context, days int) Model {
	if days < 1 {
		days = 7
	}
	return Model{
		ctx:      ctx,
		days:     days,
		state:    StateAgenda,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		agenda:   agenda.New(0, 0),
		taskList: tasklist.New(0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Generate, m.keys.Refresh, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down},
		{m.keys.Generate, m.keys.Refresh},
	}
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	msg := dataMsg{now: m.ctx.CurrentTime()}
	var err error
	if msg.tasks, err = m.ctx.Store.GetAllTasks(); err != nil {
		msg.err = fmt.Errorf("failed to get tasks: %w", err)
		return msg
	}
	if msg.events, err = m.ctx.Store.GetAllFixedEvents(); err != nil {
		msg.err = fmt.Errorf("failed to get fixed events: %w", err)
		return msg
	}
	if msg.blocks, err = m.ctx.AllBlocks(); err != nil {
		msg.err = fmt.Errorf("failed to get blocks: %w", err)
		return msg
	}
	result, err := m.ctx.ValidateStore(msg.now)
	if err != nil {
		msg.err = err
		return msg
	}
	msg.conflicts = len(result.Conflicts)
	return msg
}

func (m Model) generate() tea.Msg {
	now := m.ctx.CurrentTime()
	result, err := m.ctx.GeneratePlan(now)
	if err != nil {
		return generatedMsg{err: err}
	}
	if err := m.ctx.ApplyPlan(now, result); err != nil {
		return generatedMsg{err: err}
	}
	return generatedMsg{blocks: len(result.CreatedBlocks), warnings: len(result.Warnings)}
}

func (m *Model) setData(msg dataMsg) {
	m.agenda.SetData(utils.StartOfDay(msg.now), m.days, msg.events, msg.blocks)
	m.taskList.SetItems(tasklist.Items(msg.now, msg.tasks, msg.blocks))
	m.warning = ""
	if msg.conflicts > 0 {
		m.warning = fmt.Sprintf("⚠ %d validation warning(s), run 'studyplan validate'", msg.conflicts)
	}
}
