package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultTickRate is the simulation rate when none is configured.
const DefaultTickRate = 60

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameMillis is the fixed simulation timestep derived from TickRate.
func (c RuntimeConfig) FrameMillis() int64 {
	if c.TickRate <= 0 {
		return 1000 / DefaultTickRate
	}
	return int64(1000 / c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current run score
	Level    int  // 1-based level index the run is on
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
	Won      bool // Run ended by clearing the last level
	Practice bool // Practice runs are never recorded
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Events are short human-readable notes about what happened this tick
	// (level advanced, medal earned). The platform may log them.
	Events []string
}
