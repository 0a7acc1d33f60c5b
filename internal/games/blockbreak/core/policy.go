package core

import (
	"math"
	"math/rand"
)

// Outcome describes what a single activation did.
type Outcome struct {
	Cleared    bool // cells were removed and refilled
	Shifted    bool // a row was rotated
	MatchSize  int  // size of the matched component, even when too small to clear
	ScoreDelta int
}

// Policy customizes a level: how its grid is built, what falls in during
// refill, and how special blocks react to activation.
type Policy interface {
	BuildGrid(rng *rand.Rand) (*Grid, error)
	QueueBlock(rng *rand.Rand) Block
	ActivateSpecial(l *Level, p Pos) Outcome
}

// ResolveSpecial applies the stock behavior of special blocks. Policies
// that do not customize specials delegate here.
//
//   - heart: bonus score, full energy, then the heart is cleared.
//   - wedge: rotates its row one step in the level's shift direction.
//   - trash: nothing.
func ResolveSpecial(l *Level, p Pos) Outcome {
	switch l.grid.At(p).Kind {
	case KindHeart:
		bonus := int(math.Round(l.params.Multiplier * float64(l.params.HeartBonus)))
		l.tracker.AddScore(bonus)
		l.tracker.Refill()
		l.ClearCells([]Pos{p})
		return Outcome{Cleared: true, MatchSize: 1, ScoreDelta: bonus}
	case KindWedge:
		dir := l.params.ShiftDir
		if dir == 0 {
			dir = -1
		}
		l.grid.ShiftRow(p.Row, dir)
		return Outcome{Shifted: true}
	default:
		return Outcome{}
	}
}
