package agenda

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
)

// Model shows the events and blocks of a run of days in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	content  string
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

// Content is the rendered agenda without viewport clipping.
func (m Model) Content() string {
	return m.content
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

type line struct {
	start time.Time
	text  string
}

// SetData renders days calendar days starting at from. Times are shown in from's location.
func (m *Model) SetData(from time.Time, days int, events []models.FixedEvent, blocks []models.ScheduleBlock) {
	loc := from.Location()
	to := from.AddDate(0, 0, days)

	byDay := make(map[string][]line)
	for _, e := range events {
		if !e.Start.Before(to) || !e.End.After(from) {
			continue
		}
		e.Start, e.End = e.Start.In(loc), e.End.In(loc)
		key := e.Start.Format(constants.DateFormat)
		byDay[key] = append(byDay[key], line{start: e.Start, text: cli.EventLine(e)})
	}
	for _, b := range blocks {
		if !b.Start.Before(to) || !b.End.After(from) {
			continue
		}
		b.Start, b.End = b.Start.In(loc), b.End.In(loc)
		key := b.Start.Format(constants.DateFormat)
		byDay[key] = append(byDay[key], line{start: b.Start, text: cli.BlockLine(b)})
	}

	var sb strings.Builder
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		sb.WriteString(cli.Header(d.Format("Monday " + constants.DateFormat)))
		sb.WriteString("\n")
		lines := byDay[d.Format(constants.DateFormat)]
		if len(lines) == 0 {
			sb.WriteString("  " + cli.Muted("nothing planned") + "\n")
			continue
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].start.Before(lines[j].start)
		})
		for _, l := range lines {
			sb.WriteString("  " + l.text + "\n")
		}
	}
	m.content = sb.String()
	m.viewport.SetContent(m.content)
	m.viewport.GotoTop()
}
