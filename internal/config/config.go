// Package config provides YAML-based game configuration loading and
// difficulty management for Block Break.
package config

import "fmt"

// BlockBreakConfig contains all tunables of the game.
type BlockBreakConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Energy     EnergyConfig     `yaml:"energy"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Content    ContentConfig    `yaml:"content"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TimingConfig holds input debounce periods in milliseconds.
type TimingConfig struct {
	InputDelayMs int64 `yaml:"input_delay_ms"` // movement and activation
	PauseDelayMs int64 `yaml:"pause_delay_ms"`
}

// EnergyConfig defines the energy budget.
type EnergyConfig struct {
	DefaultMaxMs    int64 `yaml:"default_max_ms"`     // used when a level sets none
	PerScorePointMs int64 `yaml:"per_score_point_ms"` // energy gained per point scored
}

// ScoringConfig defines match and bonus rules.
type ScoringConfig struct {
	MinMatch   int `yaml:"min_match"`
	HeartBonus int `yaml:"heart_bonus"`
}

// ContentConfig points at replacement content files. Empty paths use the
// built-in content.
type ContentConfig struct {
	GlyphSheet     string `yaml:"glyph_sheet"`
	StandardLevels string `yaml:"standard_levels"`
	PuzzleLevels   string `yaml:"puzzle_levels"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or elapsed ms at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DrainMultiplier float64 `yaml:"drain_multiplier"` // extra energy drain at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset holds the difficulty level constant.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
