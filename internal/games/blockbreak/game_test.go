package blockbreak

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/core"
	bbcore "github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/levels"
	"github.com/vovakirdan/blockbreak/internal/registry"
)

const pairCatalog = `name: pairs
levels:
  - id: one
    name: Pair
    grid: { w: 2, h: 1 }
    generator: { type: csv, layout: pair.csv }
  - id: two
    name: Pair Again
    grid: { w: 2, h: 1 }
    generator: { type: csv, layout: pair.csv }
`

const shortCatalog = `name: short
levels:
  - id: brief
    name: Brief
    energy_max_ms: 100
    grid: { w: 2, h: 1 }
    generator: { type: csv, layout: pair.csv }
`

func quietOptions() registry.Options {
	return registry.Options{Logger: log.New(io.Discard)}
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: seed}
}

// isolate keeps user and working-directory config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

// writeContent writes a level catalog with its layout and a config file
// pointing at it, and returns the config path.
func writeContent(t *testing.T, catalog string, extra string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pair.csv"), []byte("0,0\n"), 0o644))
	levelsPath := filepath.Join(dir, "levels.yaml")
	require.NoError(t, os.WriteFile(levelsPath, []byte(catalog), 0o644))

	cfg := "content:\n  standard_levels: " + levelsPath + "\n" + extra
	cfgPath := filepath.Join(dir, "blockbreak.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

// stepUntil steps with no input until the game leaves the loading states.
func stepUntil(t *testing.T, g *Game, want bbcore.LoadState) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for g.LoadState() != want {
		require.NoError(t, g.Err())
		require.True(t, time.Now().Before(deadline), "stuck in %s", g.LoadState())
		g.Step(core.NewInputFrame())
		time.Sleep(time.Millisecond)
	}
}

func press(actions ...core.Action) core.InputFrame {
	return core.FrameOf(actions...)
}

func TestRegisteredModes(t *testing.T) {
	assert.True(t, registry.Exists(IDStandard))
	assert.True(t, registry.Exists(IDPuzzle))

	g, err := registry.Create(IDPuzzle, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, IDPuzzle, g.ID())
	assert.Equal(t, "Block Break (Puzzle)", g.Title())

	practice := New(registry.Options{Practice: true})
	assert.Equal(t, IDStandard, practice.ID())
	assert.Equal(t, "Block Break (Practice)", practice.Title())
}

func TestLoadsFirstLevel(t *testing.T) {
	isolate(t)
	g := New(quietOptions())
	g.Reset(runtimeConfig(42))
	assert.Equal(t, bbcore.NotLoaded, g.LoadState())

	stepUntil(t, g, bbcore.Ready)

	snap := g.Snapshot()
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, snap.EnergyMax, snap.Energy)
	assert.Equal(t, 100, snap.Blocks)
	assert.Equal(t, -1, snap.ClearsLeft)
	assert.Equal(t, bbcore.P(5, 5), snap.Cursor)
	assert.Len(t, strings.Split(snap.Grid, "\n"), 10)
	assert.Equal(t, 7, g.Catalog().Len())
}

func TestSameSeedSameBoard(t *testing.T) {
	isolate(t)
	a := New(quietOptions())
	b := New(quietOptions())
	a.Reset(runtimeConfig(7))
	b.Reset(runtimeConfig(7))
	stepUntil(t, a, bbcore.Ready)
	stepUntil(t, b, bbcore.Ready)

	assert.Equal(t, a.Snapshot().Grid, b.Snapshot().Grid)

	for range 5 {
		a.Step(press(core.ActionSelect))
		b.Step(press(core.ActionSelect))
	}
	assert.Equal(t, a.Snapshot().Grid, b.Snapshot().Grid)
	assert.Equal(t, a.Snapshot().Score, b.Snapshot().Score)
}

func TestRunAdvancesThroughLevels(t *testing.T) {
	isolate(t)
	opts := quietOptions()
	opts.ConfigPath = writeContent(t, pairCatalog, "")
	g := New(opts)
	g.Reset(runtimeConfig(1))
	stepUntil(t, g, bbcore.Ready)
	require.Equal(t, 2, g.Level().BlocksRemaining())

	g.Step(press(core.ActionSelect))
	assert.Equal(t, 1, g.State().Score)
	assert.True(t, g.Level().LevelComplete())

	res := g.Step(core.NewInputFrame())
	assert.Contains(t, res.Events, "level complete")
	assert.Equal(t, StateLevelComplete, g.Snapshot().State)
	assert.True(t, res.State.Paused)
	assert.Equal(t, 2, res.State.Level)

	for range 10 {
		res = g.Step(core.NewInputFrame())
	}
	assert.Contains(t, res.Events, "level 2")
	require.NotNil(t, g.Level())
	assert.Equal(t, 1, g.Level().Score(), "score carries into the next level")

	g.Step(press(core.ActionSelect))
	res = g.Step(core.NewInputFrame())
	assert.Contains(t, res.Events, "run won")
	assert.True(t, res.State.GameOver)
	assert.True(t, res.State.Won)
	assert.Equal(t, 2, res.State.Score)

	g.Step(core.NewInputFrame())
	assert.Equal(t, bbcore.Finalized, g.LoadState())
	assert.Nil(t, g.Level())
	assert.Equal(t, StateWon, g.Snapshot().State)
	assert.NotEmpty(t, g.Snapshot().Grid, "final board stays visible")
}

func TestPracticeEndsAfterOneLevel(t *testing.T) {
	isolate(t)
	opts := quietOptions()
	opts.ConfigPath = writeContent(t, pairCatalog, "")
	opts.Practice = true
	g := New(opts)
	g.Reset(runtimeConfig(1))
	stepUntil(t, g, bbcore.Ready)

	g.Step(press(core.ActionSelect))
	res := g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.True(t, res.State.Practice)
	assert.Equal(t, 1, res.State.Level)
}

func TestCancelEndsRun(t *testing.T) {
	isolate(t)
	opts := quietOptions()
	opts.StartLevel = 6
	opts.Practice = true
	g := New(opts)
	g.Reset(runtimeConfig(3))
	stepUntil(t, g, bbcore.Ready)
	assert.Equal(t, 6, g.Snapshot().Level)

	res := g.Step(press(core.ActionCancel))
	assert.Contains(t, res.Events, "game over")
	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Won)

	g.Step(core.NewInputFrame())
	assert.Equal(t, bbcore.Finalized, g.LoadState())
}

func TestEnergyRunsOut(t *testing.T) {
	isolate(t)
	opts := quietOptions()
	opts.ConfigPath = writeContent(t, shortCatalog, "")
	g := New(opts)
	g.Reset(runtimeConfig(1))
	stepUntil(t, g, bbcore.Ready)

	g.Step(core.NewInputFrame())
	assert.True(t, g.Level().GameOver())
	assert.False(t, g.State().GameOver, "the run ends on the following frame")

	res := g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.Equal(t, StateGameOver, g.Snapshot().State)
}

func TestIdleEnergyDrain(t *testing.T) {
	idle := func(difficulty string) int64 {
		opts := quietOptions()
		opts.Difficulty = difficulty
		g := New(opts)
		g.Reset(runtimeConfig(3))
		stepUntil(t, g, bbcore.Ready)

		before := g.Snapshot().Energy
		for range 10 {
			g.Step(core.NewInputFrame())
		}
		return before - g.Snapshot().Energy
	}

	isolate(t)
	frame := runtimeConfig(3).FrameMillis()
	assert.Equal(t, 10*frame, idle(""), "default config drains one to one")
	assert.Greater(t, idle("hard"), 10*frame)
}

func TestPauseFreezesEnergy(t *testing.T) {
	isolate(t)
	g := New(quietOptions())
	g.Reset(runtimeConfig(5))
	stepUntil(t, g, bbcore.Ready)

	g.Step(press(core.ActionPause))
	require.True(t, g.State().Paused)
	energy := g.Snapshot().Energy
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, energy, g.Snapshot().Energy)
	assert.Equal(t, StatePaused, g.Snapshot().State)
}

func TestUnknownStartLevelFails(t *testing.T) {
	isolate(t)
	opts := quietOptions()
	opts.StartLevel = 99
	g := New(opts)
	g.Reset(runtimeConfig(1))

	deadline := time.Now().Add(5 * time.Second)
	for g.Err() == nil && time.Now().Before(deadline) {
		g.Step(core.NewInputFrame())
		time.Sleep(time.Millisecond)
	}
	require.ErrorIs(t, g.Err(), bbcore.ErrUnknownLevel)
	assert.Equal(t, StateFailed, g.Snapshot().State)
	assert.False(t, g.State().GameOver)
}

func TestMissingGlyphFailsLoad(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	sheet := filepath.Join(dir, "glyphs.yaml")
	require.NoError(t, os.WriteFile(sheet, []byte(`name: partial
glyphs:
  empty: { text: "  ", color: default }
  cursor: { text: "[]", color: white }
`), 0o644))
	cfg := filepath.Join(dir, "blockbreak.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("content:\n  glyph_sheet: "+sheet+"\n"), 0o644))

	opts := quietOptions()
	opts.ConfigPath = cfg
	g := New(opts)
	g.Reset(runtimeConfig(1))

	deadline := time.Now().Add(5 * time.Second)
	for g.Err() == nil && time.Now().Before(deadline) {
		g.Step(core.NewInputFrame())
		time.Sleep(time.Millisecond)
	}
	require.ErrorIs(t, g.Err(), bbcore.ErrAssetMissing)
	assert.Equal(t, bbcore.LoadingAssets, g.LoadState())
	assert.Nil(t, g.Level())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "CANNOT START")
}

func TestPuzzleMode(t *testing.T) {
	isolate(t)
	g := NewPuzzle(registry.Options{Practice: true, Logger: log.New(io.Discard)})
	g.Reset(runtimeConfig(9))
	stepUntil(t, g, bbcore.Ready)

	snap := g.Snapshot()
	assert.Equal(t, ModePuzzle, snap.Mode)
	assert.Equal(t, 31, snap.ClearsLeft)
	assert.Len(t, strings.Split(snap.Grid, "\n"), 16)
	assert.False(t, g.State().Practice, "puzzle runs are always recorded")
}

func TestRender(t *testing.T) {
	isolate(t)
	g := New(quietOptions())
	g.Reset(runtimeConfig(2))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Loading...")

	stepUntil(t, g, bbcore.Ready)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Block Break - Level 01: First Steps")
	assert.Contains(t, out, "Score 0")
	assert.Contains(t, out, "Energy [")
	assert.Contains(t, out, "[]", "cursor is drawn")

	g.Step(press(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	small := core.NewScreen(20, 5)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}

func TestControlsOf(t *testing.T) {
	cs := ControlsOf(press(core.ActionUp, core.ActionSelect, core.ActionQuit))
	assert.True(t, cs.Active(bbcore.ControlUp))
	assert.True(t, cs.Active(bbcore.ControlSelect))
	assert.False(t, cs.Active(bbcore.ControlDown))
	assert.False(t, cs.Active(bbcore.ControlCancel))
}

func TestRequiredGlyphs(t *testing.T) {
	cat, err := levels.Load(levels.SetStandard)
	require.NoError(t, err)

	keys := RequiredGlyphs(cat)
	assert.Contains(t, keys, bbcore.SpriteCursor)
	assert.Contains(t, keys, bbcore.SpriteHeart)
	assert.Contains(t, keys, "block_0")
	assert.Contains(t, keys, "block_3")
}

func TestLoadingReportsUntilReady(t *testing.T) {
	isolate(t)
	g := New(quietOptions())
	g.Reset(runtimeConfig(4))
	assert.True(t, g.Loading())

	stepUntil(t, g, bbcore.Ready)
	assert.False(t, g.Loading())
}
