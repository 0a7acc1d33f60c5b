package config

import (
	_ "embed"
)

//go:embed defaults/blockbreak.yaml
var defaultBlockBreakYAML []byte

// DefaultBlockBreakConfig returns the hard-coded defaults. They match the
// embedded YAML and are used when it cannot be decoded.
func DefaultBlockBreakConfig() BlockBreakConfig {
	return BlockBreakConfig{
		Timing: TimingConfig{
			InputDelayMs: 150,
			PauseDelayMs: 300,
		},
		Energy: EnergyConfig{
			DefaultMaxMs:    60000,
			PerScorePointMs: 100,
		},
		Scoring: ScoringConfig{
			MinMatch:   2,
			HeartBonus: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120000,
			},
			Scaling: ScalingConfig{
				DrainMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blockbreak", "blockbreak_puzzle":
		return defaultBlockBreakYAML
	default:
		return nil
	}
}
