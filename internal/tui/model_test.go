package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

// Monday 2025-03-03 08:00 UTC
var testNow = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

func newTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"), constants.DefaultUserID)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	ctx := &cli.Context{
		Store:    store,
		Timezone: "UTC",
		Remote:   true, // no backups inside the temp dir
		Now:      func() time.Time { return testNow },
	}
	require.NoError(t, ctx.LoadSettings())

	require.NoError(t, store.AddTask(models.Task{
		ID: "t1", Title: "Linear algebra", Deadline: testNow.AddDate(0, 0, 5),
		EffortHours: 2, Difficulty: 3, Importance: 4, CreatedAt: testNow,
	}))
	require.NoError(t, store.AddFixedEvent(models.FixedEvent{
		ID: "e1", Title: "Lecture", Start: testNow.Add(2 * time.Hour), End: testNow.Add(4 * time.Hour),
	}))
	return ctx
}

func TestModel_LoadFillsTabs(t *testing.T) {
	m := NewModel(newTestContext(t), 3)

	msg := m.load()
	data, ok := msg.(dataMsg)
	require.True(t, ok)
	require.NoError(t, data.err)
	assert.Len(t, data.tasks, 1)
	assert.Len(t, data.events, 1)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.agenda.Content(), "Lecture")
	assert.Equal(t, 3, strings.Count(m.agenda.Content(), "2025-03-0"))
	assert.Equal(t, 1, m.taskList.Len())
	assert.Empty(t, m.warning)
}

func TestModel_TabCycles(t *testing.T) {
	m := NewModel(newTestContext(t), 7)
	assert.Equal(t, StateAgenda, m.state)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, StateTasks, m.state)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, StateAgenda, m.state)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	assert.Equal(t, StateTasks, m.state)
}

func TestModel_GenerateWritesPlan(t *testing.T) {
	ctx := newTestContext(t)
	m := NewModel(ctx, 7)

	msg := m.generate()
	gen, ok := msg.(generatedMsg)
	require.True(t, ok)
	require.NoError(t, gen.err)
	assert.Positive(t, gen.blocks)

	blocks, err := ctx.AllBlocks()
	require.NoError(t, err)
	assert.Len(t, blocks, gen.blocks)

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.status, "Plan regenerated")
	assert.NotNil(t, cmd)
}

func TestModel_QuitClearsView(t *testing.T) {
	m := NewModel(newTestContext(t), 7)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
