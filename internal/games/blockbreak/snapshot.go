package blockbreak

import (
	bbcore "github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

// RunState is the coarse state of a run.
type RunState string

const (
	StateLoading       RunState = "loading"
	StatePlaying       RunState = "playing"
	StatePaused        RunState = "paused"
	StateLevelComplete RunState = "level_complete"
	StateGameOver      RunState = "game_over"
	StateWon           RunState = "won"
	StateFailed        RunState = "failed"
)

// Snapshot captures the observable run state for determinism tests and
// replay verification.
type Snapshot struct {
	Tick       uint64
	Mode       Mode
	Load       bbcore.LoadState
	Level      int // 1-based
	Score      int
	Energy     int64
	EnergyMax  int64
	Blocks     int // normal blocks left to clear
	ClearsLeft int // -1 when unlimited
	Medals     int
	Cursor     bbcore.Pos
	Grid       string // rows top to bottom, see Grid.String
	State      RunState
}

// Snapshot returns the current run snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Mode:       g.mode,
		Load:       g.LoadState(),
		Level:      g.levelIndex,
		Score:      g.score,
		Medals:     g.medals,
		ClearsLeft: -1,
		State:      g.runState(),
	}
	switch {
	case g.level != nil:
		t := g.level.Tracker()
		s.Energy, s.EnergyMax = t.Energy(), t.EnergyMax()
		s.Blocks = g.level.BlocksRemaining()
		s.ClearsLeft = g.level.ClearsLeft()
		s.Medals = g.level.Medals()
		s.Cursor = g.level.Cursor()
		s.Grid = g.level.Grid().String()
	case g.board != nil:
		s.Grid = g.board.String()
	}
	return s
}

func (g *Game) runState() RunState {
	switch {
	case g.err != nil:
		return StateFailed
	case g.won:
		return StateWon
	case g.gameOver:
		return StateGameOver
	case g.interlude > 0:
		return StateLevelComplete
	case g.level == nil:
		return StateLoading
	case g.level.Paused():
		return StatePaused
	default:
		return StatePlaying
	}
}
