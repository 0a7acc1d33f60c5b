package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

// endGame finishes with a fixed score on its first step.
type endGame struct {
	score int
	steps int
}

func (g *endGame) ID() string               { return "endgame" }
func (g *endGame) Title() string            { return "End Game" }
func (g *endGame) Reset(core.RuntimeConfig) { g.steps = 0 }
func (g *endGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "end") }
func (g *endGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}
func (g *endGame) State() core.GameState {
	return core.GameState{Score: g.score, Level: 3, GameOver: g.steps > 0}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{Loop: m.loop, At: time.Now()})
	return next.(Model)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "ANNA", SanitizeName("anna"))
	assert.Equal(t, "JO BO", SanitizeName("jo_ b1o"))
	assert.Equal(t, "ABCDEFGHIJKL", SanitizeName("abcdefghijklmnop"))
	assert.Equal(t, "", SanitizeName("1234!"))
}

func TestGameKeyMap(t *testing.T) {
	keys := DefaultGameKeyMap()
	assert.Equal(t, core.ActionSelect, keys.MapKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.Equal(t, core.ActionLeft, keys.MapKey(tea.KeyMsg{Type: tea.KeyLeft}))
	assert.Equal(t, core.ActionPause, keys.MapKey(keyRunes("p")))
	assert.Equal(t, core.ActionCancel, keys.MapKey(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, core.ActionQuit, keys.MapKey(keyRunes("q")))
	assert.Equal(t, core.ActionNone, keys.MapKey(keyRunes("z")))
}

func TestMenuPracticePickerWraps(t *testing.T) {
	m := NewMenuModel([]string{"Level 01 - A", "Level 02 - B", "Level 03 - C"}, core.DefaultConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	assert.Equal(t, 3, m.PracticeLevel())
	assert.Contains(t, m.View(), "Level 03 - C")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	assert.Equal(t, 1, m.PracticeLevel())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.Equal(t, ChoicePractice, m.Selected())
}

func TestMenuPickerIgnoredOffPractice(t *testing.T) {
	m := NewMenuModel([]string{"Level 01 - A", "Level 02 - B"}, core.DefaultConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	assert.Equal(t, 1, m.PracticeLevel())
}

func TestScoreRows(t *testing.T) {
	records := storage.EmptyTable()
	records[0] = storage.Record{Rank: 1, Name: "ANNA", Score: 420, Level: 4, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	rows := ScoreRows(records)
	require.Len(t, rows, storage.TableSize)
	assert.Equal(t, []string{"1", "ANNA", "420", "4", "Mar 01 2026"}, []string(rows[0]))
	assert.Equal(t, storage.EmptyName, rows[1][1])
	assert.Equal(t, "-", rows[1][2])
}

func TestQualifyingRunPromptsForName(t *testing.T) {
	store := openStore(t)
	m := NewModel(&endGame{score: 50}, store, core.DefaultConfig(), RunOptions{})

	m = tick(t, m)
	require.True(t, m.naming)

	for _, k := range []tea.KeyMsg{keyRunes("z"), keyRunes("o"), keyRunes("1"), keyRunes("e")} {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	assert.Equal(t, "ZOE", m.nameInput.Value())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.False(t, m.naming)

	entries, err := store.TopScores("endgame", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ZOE", entries[0].Name)
	assert.Equal(t, 50, entries[0].Score)
	assert.Equal(t, 3, entries[0].Level)
	assert.Equal(t, m.runID, entries[0].RunID)
}

func TestZeroScoreIsNotSaved(t *testing.T) {
	store := openStore(t)
	m := NewModel(&endGame{}, store, core.DefaultConfig(), RunOptions{})
	m = tick(t, m)
	assert.False(t, m.naming)
	assert.True(t, m.scoreSaved)

	entries, err := store.TopScores("endgame", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStaleTicksAreIgnored(t *testing.T) {
	g := &endGame{score: 10}
	m := NewModel(g, nil, core.DefaultConfig(), RunOptions{})
	next, cmd := m.Update(TickMsg{Loop: m.loop + 1000})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, next.(Model).game.(*endGame).steps)
}

func TestSessionCancelReturnsToMenu(t *testing.T) {
	m := NewModel(&endGame{}, nil, core.DefaultConfig(), RunOptions{Session: true})
	m = tick(t, m)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.True(t, m.Done())
	assert.False(t, m.Quitting())
}
