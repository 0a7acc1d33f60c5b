// Package blockbreak is the Block Break mode controller. It owns the load
// lifecycle, builds levels from a catalog and strings them into runs:
// the standard campaign, single-level practice and the puzzle board.
package blockbreak

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/assets"
	bbcore "github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/levels"
	"github.com/vovakirdan/blockbreak/internal/registry"
)

// Mode selects the level catalog a game plays.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModePuzzle   Mode = "puzzle"
)

// Registry IDs.
const (
	IDStandard = "blockbreak"
	IDPuzzle   = "blockbreak_puzzle"
)

// Game implements registry.Game for Block Break.
type Game struct {
	mode Mode
	opts registry.Options
	log  *log.Logger

	runtime core.RuntimeConfig
	rng     *rand.Rand
	tick    uint64

	lifecycle *bbcore.Lifecycle
	cancel    context.CancelFunc
	pending   *content // written by the loader worker until LoadingDone
	content   *content

	level      *bbcore.Level
	levelIndex int // 1-based
	board      *bbcore.Grid
	score      int
	medals     int
	interlude  int // ticks left on the level-complete banner

	gameOver bool
	won      bool
	err      error
}

// content is everything the loader produces.
type content struct {
	cfg        config.BlockBreakConfig
	catalog    *levels.Catalog
	sheet      *assets.Sheet
	difficulty *config.DifficultyManager
}

func init() {
	registry.Register(IDStandard, func(opts registry.Options) registry.Game {
		return New(opts)
	})
	registry.Register(IDPuzzle, func(opts registry.Options) registry.Game {
		return NewPuzzle(opts)
	})
}

// New creates a standard-mode game. opts.Practice limits the run to
// opts.StartLevel.
func New(opts registry.Options) *Game {
	return newGame(ModeStandard, opts)
}

// NewPuzzle creates a puzzle-mode game.
func NewPuzzle(opts registry.Options) *Game {
	opts.Practice = false
	return newGame(ModePuzzle, opts)
}

func newGame(mode Mode, opts registry.Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{mode: mode, opts: opts, log: logger.WithPrefix(string(mode))}
}

// ID returns the registry id; puzzle scores are kept apart.
func (g *Game) ID() string {
	if g.mode == ModePuzzle {
		return IDPuzzle
	}
	return IDStandard
}

// Title returns the display name.
func (g *Game) Title() string {
	switch {
	case g.mode == ModePuzzle:
		return "Block Break (Puzzle)"
	case g.opts.Practice:
		return "Block Break (Practice)"
	default:
		return "Block Break"
	}
}

// Reset starts a new run. Content is loaded again on the next Step.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.cancel != nil {
		g.cancel()
	}
	if g.level != nil {
		g.level.Cleanup()
	}
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.lifecycle = bbcore.NewLifecycle(g.log)
	g.cancel = nil
	g.pending = nil
	g.content = nil
	g.level = nil
	g.levelIndex = max(g.opts.StartLevel, 1)
	g.board = nil
	g.score = 0
	g.medals = 0
	g.interlude = 0
	g.gameOver = false
	g.won = false
	g.err = nil
}

// Err reports an unrecoverable failure: content that could not be loaded
// or a level that could not be built.
func (g *Game) Err() error { return g.err }

// Step advances the mode by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.lifecycle == nil {
		g.Reset(core.DefaultConfig())
	}
	g.tick++
	var events []string

	switch g.lifecycle.State() {
	case bbcore.NotLoaded:
		ctx, cancel := context.WithCancel(context.Background())
		g.cancel = cancel
		res := &content{}
		g.pending = res
		g.lifecycle.Begin(ctx, g.loader(res))

	case bbcore.LoadingAssets:
		if g.lifecycle.Poll() != bbcore.LoadingDone {
			if err := g.lifecycle.Err(); err != nil && g.err == nil {
				g.err = err
				events = append(events, "load failed")
			}
			break
		}
		g.content, g.pending = g.pending, nil
		if err := g.startLevel(); err != nil {
			g.fail(err)
			events = append(events, "level failed")
			break
		}
		g.lifecycle.MarkReady()
		events = append(events, fmt.Sprintf("level %d", g.levelIndex))

	case bbcore.Ready:
		events = g.play(in)

	case bbcore.Unloading:
		g.unload()
	}

	return core.StepResult{State: g.State(), Events: events}
}

// loader returns the lifecycle worker. It fills res and touches nothing
// else on the game.
func (g *Game) loader(res *content) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cfg, err := config.LoadBlockBreak(g.opts.ConfigPath)
		if err != nil {
			return err
		}
		if g.opts.Difficulty != "" {
			preset, err := config.ParsePreset(g.opts.Difficulty)
			if err != nil {
				return err
			}
			config.ApplyPreset(&cfg, preset)
		}

		cat, err := loadCatalog(g.mode, cfg.Content)
		if err != nil {
			return err
		}
		var sheet *assets.Sheet
		if err := assets.Loader(cfg.Content.GlyphSheet, RequiredGlyphs(cat), &sheet)(ctx); err != nil {
			return err
		}

		res.cfg = cfg
		res.catalog = cat
		res.sheet = sheet
		res.difficulty = config.NewDifficultyManager(cfg.Difficulty)
		return nil
	}
}

// LoadCatalog reads the catalog a mode plays under the config at
// configPath. Menus and listings use it without starting a game.
func LoadCatalog(mode Mode, configPath string) (*levels.Catalog, error) {
	cfg, err := config.LoadBlockBreak(configPath)
	if err != nil {
		return nil, err
	}
	return loadCatalog(mode, cfg.Content)
}

func loadCatalog(mode Mode, paths config.ContentConfig) (*levels.Catalog, error) {
	path, name := paths.StandardLevels, levels.SetStandard
	if mode == ModePuzzle {
		path, name = paths.PuzzleLevels, levels.SetPuzzle
	}
	if path != "" {
		return levels.LoadFile(path)
	}
	return levels.Load(name)
}

// RequiredGlyphs lists the sprite keys a catalog can display.
func RequiredGlyphs(cat *levels.Catalog) []string {
	keys := []string{bbcore.SpriteEmpty, bbcore.SpriteCursor, bbcore.SpriteHeart, bbcore.SpriteWedge, bbcore.SpriteTrash}
	variants := 0
	for i := range cat.Levels {
		variants = max(variants, cat.Levels[i].Params(i+1).Variants)
	}
	for v := range variants {
		keys = append(keys, bbcore.SpriteKey(bbcore.Normal(v)))
	}
	return keys
}

// startLevel builds the level at levelIndex, carrying the run score.
func (g *Game) startLevel() error {
	spec, err := g.content.catalog.Level(g.levelIndex)
	if err != nil {
		return err
	}
	params := g.levelParams(spec)
	policy := levels.Builder{Log: g.log}.Policy(g.content.catalog, spec)
	lvl, err := bbcore.NewLevel(params, policy, g.rng, g.content.sheet)
	if err != nil {
		return err
	}
	g.level = lvl
	g.board = nil
	g.log.Info("level started", "level", g.levelIndex, "name", spec.Name,
		"grid", fmt.Sprintf("%dx%d", spec.Grid.W, spec.Grid.H), "score", g.score)
	return nil
}

func (g *Game) levelParams(spec levels.Spec) bbcore.Params {
	cfg := g.content.cfg
	p := spec.Params(g.levelIndex)
	p.InputDelay = cfg.Timing.InputDelayMs
	p.PauseDelay = cfg.Timing.PauseDelayMs
	p.PerScorePointMs = cfg.Energy.PerScorePointMs
	if p.EnergyMax <= 0 {
		p.EnergyMax = cfg.Energy.DefaultMaxMs
	}
	if p.MinMatch <= 0 {
		p.MinMatch = cfg.Scoring.MinMatch
	}
	p.HeartBonus = cfg.Scoring.HeartBonus
	p.StartScore = g.score
	p.Practice = g.opts.Practice
	p.Drain = g.content.difficulty.Drain
	return p
}

// play runs one level frame, or counts down the banner between levels.
func (g *Game) play(in core.InputFrame) []string {
	if g.interlude > 0 {
		g.interlude--
		if g.interlude > 0 {
			return nil
		}
		if err := g.startLevel(); err != nil {
			g.fail(err)
			return []string{"level failed"}
		}
		return []string{fmt.Sprintf("level %d", g.levelIndex)}
	}

	g.level.RunFrame(g.runtime.FrameMillis(), ControlsOf(in))
	g.score = g.level.Score()
	if !g.level.LevelFinished() {
		return nil
	}
	return g.finishLevel()
}

// finishLevel decides what follows a finished level: the next level, a
// won run or a lost one.
func (g *Game) finishLevel() []string {
	lvl := g.level
	g.medals = lvl.Medals()
	g.board = lvl.Grid().Clone()

	switch {
	case lvl.GameOver():
		g.gameOver = true
		g.log.Info("run over", "level", g.levelIndex, "score", g.score)
		g.endRun()
		return []string{"game over"}
	case g.opts.Practice:
		g.won = true
		g.log.Info("practice level cleared", "level", g.levelIndex, "score", g.score)
		g.endRun()
		return []string{"level complete"}
	case g.levelIndex >= g.content.catalog.Len():
		g.won = true
		g.log.Info("run won", "score", g.score, "medals", g.medals)
		g.endRun()
		return []string{"run won"}
	}

	g.log.Debug("level complete", "level", g.levelIndex, "score", g.score)
	lvl.Cleanup()
	g.level = nil
	g.levelIndex++
	g.interlude = max(g.runtime.TickRate, 1)
	return []string{"level complete"}
}

func (g *Game) endRun() {
	g.lifecycle.RequestUnload()
}

// unload releases the level once the run is over.
func (g *Game) unload() {
	if g.level != nil {
		g.level.Cleanup()
		g.level = nil
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.lifecycle.Finalize()
}

func (g *Game) fail(err error) {
	g.err = err
	g.log.Error("cannot start level", "level", g.levelIndex, "err", err)
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	paused := g.interlude > 0
	if g.level != nil && g.level.Paused() {
		paused = true
	}
	return core.GameState{
		Score:    g.score,
		Level:    g.levelIndex,
		GameOver: g.gameOver || g.won,
		Paused:   paused,
		Won:      g.won,
		Practice: g.opts.Practice,
	}
}

// Level returns the live level, or nil between levels and outside Ready.
func (g *Game) Level() *bbcore.Level { return g.level }

// LoadState returns the lifecycle state.
func (g *Game) LoadState() bbcore.LoadState {
	if g.lifecycle == nil {
		return bbcore.NotLoaded
	}
	return g.lifecycle.State()
}

// Loading reports whether content is still being loaded. No level frames
// run while loading.
func (g *Game) Loading() bool {
	return g.err == nil && g.LoadState() < bbcore.Ready
}

// Catalog returns the loaded level catalog, or nil before loading ends.
func (g *Game) Catalog() *levels.Catalog {
	if g.content == nil {
		return nil
	}
	return g.content.catalog
}

var actionControls = map[core.Action]bbcore.Control{
	core.ActionUp:     bbcore.ControlUp,
	core.ActionDown:   bbcore.ControlDown,
	core.ActionLeft:   bbcore.ControlLeft,
	core.ActionRight:  bbcore.ControlRight,
	core.ActionSelect: bbcore.ControlSelect,
	core.ActionCancel: bbcore.ControlCancel,
	core.ActionPause:  bbcore.ControlPause,
}

// ControlsOf maps a platform input frame onto level controls.
func ControlsOf(in core.InputFrame) bbcore.Controls {
	var cs []bbcore.Control
	for a, c := range actionControls {
		if in.Has(a) {
			cs = append(cs, c)
		}
	}
	return bbcore.Press(cs...)
}
