// Package replay records the input of a run and plays it back. Given the
// same seed, options and per-frame input, a game reproduces the run
// exactly, so a recording is only the input plus what is needed to rebuild
// the game.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/registry"
)

// FormatVersion changes whenever a saved recording would replay differently.
const FormatVersion = 1

// ErrVersion is returned when loading a recording of another format version.
var ErrVersion = errors.New("replay: unsupported format version")

// Frame lists the actions active on one played tick. Ticks without input
// are not stored.
type Frame struct {
	Tick    uint64   `yaml:"t"`
	Actions []string `yaml:"a,flow"`
}

// Recording is everything needed to re-simulate a run.
type Recording struct {
	Version    int     `yaml:"version"`
	ID         string  `yaml:"id"`
	GameID     string  `yaml:"game"`
	Seed       int64   `yaml:"seed"`
	TickRate   int     `yaml:"tick_rate"`
	StartLevel int     `yaml:"start_level,omitempty"`
	Practice   bool    `yaml:"practice,omitempty"`
	Difficulty string  `yaml:"difficulty,omitempty"`
	ConfigPath string  `yaml:"config,omitempty"`
	Ticks      uint64  `yaml:"ticks"`
	Frames     []Frame `yaml:"frames"`

	// Result as observed while recording.
	Score int  `yaml:"score"`
	Level int  `yaml:"level"`
	Won   bool `yaml:"won,omitempty"`
}

// Options rebuilds the registry options the run was created with.
func (r *Recording) Options() registry.Options {
	return registry.Options{
		StartLevel: r.StartLevel,
		Practice:   r.Practice,
		ConfigPath: r.ConfigPath,
		Difficulty: r.Difficulty,
	}
}

// RuntimeConfig returns the simulation settings of the run. Screen size
// does not affect simulation.
func (r *Recording) RuntimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = r.Seed
	cfg.TickRate = r.TickRate
	return cfg
}

// Loader is implemented by games whose content loads in the background.
// Ticks spent loading run no frames and are not recorded.
type Loader interface {
	Loading() bool
}

func loading(g registry.Game) bool {
	l, ok := g.(Loader)
	return ok && l.Loading()
}

// Recorder captures the input a game sees.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a run of gameID.
func NewRecorder(gameID string, cfg core.RuntimeConfig, opts registry.Options) *Recorder {
	return &Recorder{rec: Recording{
		Version:    FormatVersion,
		ID:         uuid.New().String(),
		GameID:     gameID,
		Seed:       cfg.Seed,
		TickRate:   cfg.TickRate,
		StartLevel: opts.StartLevel,
		Practice:   opts.Practice,
		Difficulty: opts.Difficulty,
		ConfigPath: opts.ConfigPath,
	}}
}

// Step records in and steps g with it. Use it in place of g.Step.
func (r *Recorder) Step(g registry.Game, in core.InputFrame) core.StepResult {
	if !loading(g) {
		if !in.Empty() {
			names := make([]string, 0, len(in.Actions))
			for _, a := range in.List() {
				names = append(names, a.String())
			}
			r.rec.Frames = append(r.rec.Frames, Frame{Tick: r.rec.Ticks, Actions: names})
		}
		r.rec.Ticks++
	}
	res := g.Step(in)
	r.rec.Score = res.State.Score
	r.rec.Level = res.State.Level
	r.rec.Won = res.State.Won
	return res
}

// ID returns the recording id.
func (r *Recorder) ID() string { return r.rec.ID }

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() *Recording {
	rec := r.rec
	rec.Frames = slices.Clone(r.rec.Frames)
	return &rec
}

// Marshal encodes a recording as YAML.
func Marshal(r *Recording) ([]byte, error) {
	return yaml.Marshal(r)
}

// Unmarshal decodes and validates a recording.
func Unmarshal(data []byte) (*Recording, error) {
	var r Recording
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: parse recording: %w", err)
	}
	if r.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrVersion, r.Version, FormatVersion)
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return nil, fmt.Errorf("replay: recording id: %w", err)
	}
	if r.GameID == "" {
		return nil, errors.New("replay: recording has no game id")
	}
	var last uint64
	for i, f := range r.Frames {
		if f.Tick >= r.Ticks || (i > 0 && f.Tick <= last) {
			return nil, fmt.Errorf("replay: frame %d has tick %d out of order", i, f.Tick)
		}
		for _, name := range f.Actions {
			if _, ok := core.ParseAction(name); !ok {
				return nil, fmt.Errorf("replay: frame %d: unknown action %q", i, name)
			}
		}
		last = f.Tick
	}
	return &r, nil
}

// Save writes a recording to path.
func Save(path string, r *Recording) error {
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("replay: encode recording: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// Play resets g with the recording's settings and feeds it the recorded
// input, waiting out any background loading first. It returns the final
// game state. The start level, practice flag and difficulty are fixed when a
// game is created, so g must be built from r.Options().
func Play(ctx context.Context, g registry.Game, r *Recording) (core.GameState, error) {
	g.Reset(r.RuntimeConfig())

	frames := make(map[uint64]core.InputFrame, len(r.Frames))
	for _, f := range r.Frames {
		in := core.NewInputFrame()
		for _, name := range f.Actions {
			if a, ok := core.ParseAction(name); ok {
				in.Set(a)
			}
		}
		frames[f.Tick] = in
	}

	var state core.GameState
	for tick := uint64(0); tick < r.Ticks; {
		if err := gameErr(g); err != nil {
			return state, err
		}
		if loading(g) {
			g.Step(core.NewInputFrame())
			select {
			case <-ctx.Done():
				return state, ctx.Err()
			case <-time.After(time.Millisecond):
			}
			continue
		}
		in, ok := frames[tick]
		if !ok {
			in = core.NewInputFrame()
		}
		state = g.Step(in).State
		tick++
	}
	return state, gameErr(g)
}

func gameErr(g registry.Game) error {
	if f, ok := g.(registry.Faulter); ok {
		return f.Err()
	}
	return nil
}
