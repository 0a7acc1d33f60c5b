package core

import (
	"fmt"
	"math/rand"
	"sort"
)

// DefaultEnergyMax is the energy cap used when a level does not set one.
const DefaultEnergyMax = 60000

// Params is the static configuration of one level.
type Params struct {
	Index      int // 1-based position in the campaign
	Title      string
	Multiplier float64 // score multiplier
	EnergyGain float64 // energy gain multiplier
	EnergyMax  int64   // milliseconds
	MinMatch   int     // smallest component that clears
	Variants   int     // number of normal block variants the level uses
	ShiftDir   int     // wedge row shift: -1 left, +1 right
	HeartBonus int
	Clears     int   // activation budget, 0 for unlimited
	Medals     []int // ascending score thresholds

	InputDelay      int64 // debounce for movement and activation, ms
	PauseDelay      int64 // debounce for the pause toggle, ms
	PerScorePointMs int64 // energy granted per point of score

	StartScore int // run score carried from earlier levels
	Practice   bool

	// Drain maps elapsed frame time to energy loss. Nil drains 1:1.
	Drain func(dt int64, score int, elapsed int64) int64
}

func (p *Params) applyDefaults() {
	if p.Multiplier == 0 {
		p.Multiplier = 1
	}
	if p.EnergyGain == 0 {
		p.EnergyGain = 1
	}
	if p.EnergyMax <= 0 {
		p.EnergyMax = DefaultEnergyMax
	}
	if p.MinMatch < 1 {
		p.MinMatch = 2
	}
	if p.Variants < 1 {
		p.Variants = 3
	}
	if p.Title == "" {
		p.Title = fmt.Sprintf("Level %02d", p.Index)
	}
}

// Level owns a grid and runs the per-frame play state machine.
type Level struct {
	params  Params
	policy  Policy
	rng     *rand.Rand
	grid    *Grid
	cursor  Cursor
	tracker *Tracker
	sprites map[string]Handle

	move     Debounce
	activate Debounce
	pause    Debounce

	blocksRemaining int
	clearsUsed      int
	elapsed         int64

	paused        bool
	gameOver      bool
	levelComplete bool
	levelFinished bool
}

// NewLevel builds the level grid through the policy and resolves every
// sprite the level can display. A nil asset source skips sprite lookup.
func NewLevel(params Params, policy Policy, rng *rand.Rand, assets AssetSource) (*Level, error) {
	params.applyDefaults()
	grid, err := policy.BuildGrid(rng)
	if err != nil {
		return nil, fmt.Errorf("build grid for %s: %w", params.Title, err)
	}
	sprites, err := resolveSprites(assets, spriteKeys(grid, params.Variants))
	if err != nil {
		return nil, err
	}
	return &Level{
		params:          params,
		policy:          policy,
		rng:             rng,
		grid:            grid,
		cursor:          NewCursor(grid.Width(), grid.Height()),
		tracker:         NewTracker(params.StartScore, params.EnergyMax, params.Multiplier, params.EnergyGain, params.PerScorePointMs),
		sprites:         sprites,
		move:            NewDebounce(params.InputDelay),
		activate:        NewDebounce(params.InputDelay),
		pause:           NewDebounce(params.PauseDelay),
		blocksRemaining: grid.Count(KindNormal),
	}, nil
}

func spriteKeys(g *Grid, variants int) []string {
	seen := map[string]bool{
		SpriteEmpty: true, SpriteCursor: true,
		SpriteHeart: true, SpriteWedge: true, SpriteTrash: true,
	}
	for v := 0; v < variants; v++ {
		seen[SpriteKey(Normal(v))] = true
	}
	for c := 0; c < g.Width(); c++ {
		for r := 0; r < g.Height(); r++ {
			seen[SpriteKey(g.At(P(c, r)))] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RunFrame advances the level by one tick of dt milliseconds.
//
// Order: pause toggle, then nothing else while paused or after game over;
// otherwise energy drains, and if the level is not complete the cursor
// moves and activation runs. levelFinished follows gameOver or
// levelComplete as they stood at the start of the frame.
func (l *Level) RunFrame(dt int64, in Input) {
	if dt < 0 {
		dt = 0
	}
	wasDone := l.gameOver || l.levelComplete

	l.handlePause(dt, in)
	switch {
	case l.paused, l.gameOver:
	default:
		l.elapsed += dt
		l.drain(dt)
		l.handleCancel(dt, in)
		if !l.levelComplete && !l.gameOver {
			l.handleMovement(dt, in)
			l.handleActivation(in)
		}
	}

	if wasDone {
		l.levelFinished = true
	}
}

func (l *Level) handlePause(dt int64, in Input) {
	ready := l.pause.Tick(dt)
	if !ready || l.gameOver || !in.Active(ControlPause) {
		return
	}
	l.paused = !l.paused
	l.pause.Reset()
}

func (l *Level) drain(dt int64) {
	loss := dt
	if l.params.Drain != nil {
		loss = l.params.Drain(dt, l.tracker.Score(), l.elapsed)
	}
	l.tracker.Drain(loss)
	if l.tracker.Depleted() && !l.levelComplete {
		l.gameOver = true
	}
}

// handleCancel shares the activation gate with select. It ticks the gate
// for the frame.
func (l *Level) handleCancel(dt int64, in Input) {
	if !l.activate.Tick(dt) || !in.Active(ControlCancel) {
		return
	}
	l.gameOver = true
	l.levelFinished = true
	l.activate.Reset()
}

func (l *Level) handleMovement(dt int64, in Input) {
	if !l.move.Tick(dt) {
		return
	}
	dc, dr := 0, 0
	if in.Active(ControlUp) {
		dr--
	}
	if in.Active(ControlDown) {
		dr++
	}
	if in.Active(ControlLeft) {
		dc--
	}
	if in.Active(ControlRight) {
		dc++
	}
	if dc == 0 && dr == 0 {
		return
	}
	l.cursor.Move(dc, dr)
	l.move.Reset()
}

func (l *Level) handleActivation(in Input) {
	if !l.activate.Ready() || !in.Active(ControlSelect) {
		return
	}
	l.Activate(l.cursor.Pos())
	l.activate.Reset()
}

// Activate resolves an activation at p: specials go to the policy, normal
// blocks run the match detector and clear when the component is large
// enough.
func (l *Level) Activate(p Pos) Outcome {
	b := l.grid.At(p)
	var out Outcome
	switch {
	case b.Kind.IsSpecial():
		out = l.policy.ActivateSpecial(l, p)
	case b.Kind == KindNormal:
		cells := Match(l.grid, p)
		out.MatchSize = len(cells)
		if len(cells) < l.params.MinMatch {
			return out
		}
		out.ScoreDelta = l.tracker.AddMatch(len(cells))
		l.ClearCells(cells)
		out.Cleared = true
	default:
		return out
	}

	if out.Cleared && l.params.Clears > 0 {
		l.clearsUsed++
	}
	if l.blocksRemaining <= 0 {
		l.levelComplete = true
	} else if l.params.Clears > 0 && l.clearsUsed >= l.params.Clears {
		l.gameOver = true
	}
	return out
}

// ClearCells empties the given cells, decrements blocksRemaining for each
// normal block removed, then collapses and refills the touched columns.
// It returns the number of normal blocks removed.
func (l *Level) ClearCells(cells []Pos) int {
	normals := 0
	cols := make([]int, 0, len(cells))
	for _, p := range cells {
		if !l.grid.InBounds(p) {
			continue
		}
		if l.grid.At(p).Kind == KindNormal {
			normals++
		}
		l.grid.Set(p, Empty())
		cols = append(cols, p.Col)
	}
	l.blocksRemaining -= normals
	Collapse(l.grid, cols, func() Block { return l.policy.QueueBlock(l.rng) })
	return normals
}

// Cleanup drops the references the level holds. The level must not be
// used afterwards.
func (l *Level) Cleanup() {
	l.grid = nil
	l.sprites = nil
	l.policy = nil
}

// Grid returns the live grid for policy hooks and read-only rendering.
func (l *Level) Grid() *Grid { return l.grid }

// Tracker returns the score and energy tracker.
func (l *Level) Tracker() *Tracker { return l.tracker }

// Params returns the level configuration.
func (l *Level) Params() Params { return l.params }

// Cursor returns the cursor position.
func (l *Level) Cursor() Pos { return l.cursor.Pos() }

// MoveCursor places the cursor, wrapping into bounds.
func (l *Level) MoveCursor(p Pos) { l.cursor.MoveTo(p) }

// Sprite returns the handle for a sprite key, or nil when assets were not
// supplied.
func (l *Level) Sprite(key string) Handle { return l.sprites[key] }

// Score returns the points earned on this level.
func (l *Level) Score() int { return l.tracker.Score() }

// Index returns the 1-based position of the level in its catalog.
func (l *Level) Index() int { return l.params.Index }

// Title returns the display name of the level.
func (l *Level) Title() string { return l.params.Title }

// BlocksRemaining returns how many normal blocks are left to clear.
func (l *Level) BlocksRemaining() int { return l.blocksRemaining }

// Elapsed returns the unpaused play time in milliseconds.
func (l *Level) Elapsed() int64 { return l.elapsed }

// Paused reports whether the level is paused.
func (l *Level) Paused() bool { return l.paused }

// GameOver reports whether the level was lost: energy ran out, the clear
// budget was spent or the player cancelled.
func (l *Level) GameOver() bool { return l.gameOver }

// LevelComplete reports whether every block was cleared.
func (l *Level) LevelComplete() bool { return l.levelComplete }

// LevelFinished reports whether the level has ended, won or lost, and the
// mode should move on.
func (l *Level) LevelFinished() bool { return l.levelFinished }

// Practice reports whether the level is played outside a scored run.
func (l *Level) Practice() bool { return l.params.Practice }

// ClearsLeft returns the remaining activation budget, or -1 when unlimited.
func (l *Level) ClearsLeft() int {
	if l.params.Clears <= 0 {
		return -1
	}
	return max(l.params.Clears-l.clearsUsed, 0)
}

// Medals returns how many medal thresholds the current score has reached.
func (l *Level) Medals() int {
	n := 0
	for _, m := range l.params.Medals {
		if l.tracker.Score() >= m {
			n++
		}
	}
	return n
}
