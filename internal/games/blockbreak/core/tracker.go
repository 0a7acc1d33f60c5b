package core

import "math"

// Tracker accumulates score and manages the energy budget of a level.
// Energy is measured in milliseconds of play time.
type Tracker struct {
	score      int
	energy     int64
	energyMax  int64
	multiplier float64
	gain       float64
	perPointMs int64
}

// NewTracker starts with full energy. startScore carries the run score
// from previous levels.
func NewTracker(startScore int, energyMax int64, multiplier, gain float64, perPointMs int64) *Tracker {
	if energyMax < 0 {
		energyMax = 0
	}
	return &Tracker{
		score:      max(startScore, 0),
		energy:     energyMax,
		energyMax:  energyMax,
		multiplier: multiplier,
		gain:       gain,
		perPointMs: perPointMs,
	}
}

// Score returns the accumulated score.
func (t *Tracker) Score() int { return t.score }

// Energy returns the remaining energy.
func (t *Tracker) Energy() int64 { return t.energy }

// EnergyMax returns the energy cap.
func (t *Tracker) EnergyMax() int64 { return t.energyMax }

// Depleted reports whether energy has run out.
func (t *Tracker) Depleted() bool { return t.energy <= 0 }

// ScoreDelta returns the multiplied score for clearing n blocks.
func (t *Tracker) ScoreDelta(n int) int {
	return int(math.Round(t.multiplier * float64(ScoreFunction(n))))
}

// AddMatch credits a clear of n blocks and returns the score added.
// Energy grows in proportion to the score delta.
func (t *Tracker) AddMatch(n int) int {
	delta := t.ScoreDelta(n)
	t.AddScore(delta)
	t.addEnergy(int64(math.Round(t.gain * float64(delta) * float64(t.perPointMs))))
	return delta
}

// AddScore adds a non-negative amount to the score. Negative amounts are
// ignored so the score never decreases.
func (t *Tracker) AddScore(delta int) {
	if delta > 0 {
		t.score += delta
	}
}

// Drain removes dt milliseconds of energy, stopping at zero.
func (t *Tracker) Drain(dt int64) {
	if dt > 0 {
		t.addEnergy(-dt)
	}
}

// Refill restores energy to the cap.
func (t *Tracker) Refill() {
	t.energy = t.energyMax
}

// EnergyRatio is energy/energyMax in [0, 1].
func (t *Tracker) EnergyRatio() float64 {
	if t.energyMax == 0 {
		return 0
	}
	return float64(t.energy) / float64(t.energyMax)
}

func (t *Tracker) addEnergy(d int64) {
	t.energy = min(max(t.energy+d, 0), t.energyMax)
}
