package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// chrome is the number of rows taken by the tabs, status line and help.
const chrome = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := msg.Width-4, max(msg.Height-chrome, 1)
		m.agenda.SetSize(w, h)
		m.taskList.SetSize(w, h)
		return m, nil

	case dataMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.setData(msg)
		return m, nil

	case generatedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Plan regenerated: %d blocks, %d warnings", msg.blocks, msg.warnings)
		return m, m.load

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Generate):
			m.status = "Generating..."
			return m, m.generate
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.load
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateAgenda:
		m.agenda, cmd = m.agenda.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}
