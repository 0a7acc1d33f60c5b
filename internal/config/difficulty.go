package config

import "math"

// DifficultyManager turns run progress into an energy drain rate. The
// difficulty level runs from the configured initial level up to 1 as the
// score or the elapsed play time approaches progression.max_at.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: unit(cfg.InitialLevel)}
}

// Level returns the difficulty in [0, 1] for a score and the elapsed play
// time in milliseconds.
func (d *DifficultyManager) Level(score int, elapsedMs int64) float64 {
	if !d.cfg.Enabled {
		return d.floor
	}
	var done float64
	switch d.cfg.Progression.Type {
	case "score":
		done = float64(score)
	case "time":
		done = float64(elapsedMs)
	default:
		return d.floor
	}
	span := float64(max(d.cfg.Progression.MaxAt, 1))
	return d.floor + unit(done/span)*(1-d.floor)
}

// Drain is the energy, in milliseconds, lost over dt milliseconds of play:
// dt * (1 + level * drain_multiplier). Energy drains one to one with play
// time while difficulty is disabled. It plugs into the level's drain hook.
func (d *DifficultyManager) Drain(dt int64, score int, elapsedMs int64) int64 {
	if dt <= 0 {
		return 0
	}
	if !d.cfg.Enabled {
		return dt
	}
	rate := 1 + d.Level(score, elapsedMs)*d.cfg.Scaling.DrainMultiplier
	return int64(math.Round(float64(dt) * rate))
}

// unit clamps v to [0, 1].
func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
