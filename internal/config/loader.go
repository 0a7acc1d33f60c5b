package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "blockbreak.yaml"

// LoadBlockBreak loads the game configuration.
// Search order: customPath -> ~/.blockbreak/configs/blockbreak.yaml ->
// ./configs/blockbreak.yaml -> embedded default -> hard-coded defaults.
// Files are decoded over the defaults, so they only need the keys they change.
// Only an explicit customPath can produce an error.
func LoadBlockBreak(customPath string) (BlockBreakConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlockBreakConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return DefaultBlockBreakConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultBlockBreakYAML)
	if err != nil {
		return DefaultBlockBreakConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode(data []byte) (BlockBreakConfig, error) {
	cfg := DefaultBlockBreakConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserDir returns ~/.blockbreak, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockbreak")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset. Every
// preset turns difficulty on; fixed holds the configured initial level for
// the whole run.
func ApplyPreset(cfg *BlockBreakConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	d.Enabled = true
	if d.Scaling.DrainMultiplier <= 0 {
		d.Scaling.DrainMultiplier = 1.0
	}
	if IsFixedPreset(preset) {
		d.Progression.Type = "none"
		return
	}
	d.InitialLevel = InitialLevelForPreset(preset)
	if d.Progression.Type == "" || d.Progression.Type == "none" {
		d.Progression.Type = "time"
	}
	if d.Progression.MaxAt <= 0 {
		d.Progression.MaxAt = 120000
	}
}
