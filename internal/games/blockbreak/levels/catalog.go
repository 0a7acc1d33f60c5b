// Package levels defines the level catalogs of Block Break and builds the
// policies that generate their grids. It depends on core; core does not
// depend on it.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

//go:embed defaults/*.yaml defaults/layouts/*.csv
var defaultFS embed.FS

// Catalog names.
const (
	SetStandard = "standard"
	SetPuzzle   = "puzzle"
)

// GridSize is the play field dimension of a level.
type GridSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Generator selects how the initial grid is built.
type Generator struct {
	Type     string `yaml:"type"`               // random, striped or csv
	Variants int    `yaml:"variants,omitempty"` // random: number of colors
	Layout   string `yaml:"layout,omitempty"`   // csv: layout file
}

// Region restricts where a special block may be placed.
type Region struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// QueueSpec configures the refill queue.
type QueueSpec struct {
	Variants int `yaml:"variants"`
}

// SpecialPlacement places Count blocks of Kind at random cells.
type SpecialPlacement struct {
	Kind   string  `yaml:"kind"` // heart, wedge or trash
	Count  int     `yaml:"count"`
	Region *Region `yaml:"region,omitempty"`
}

// Spec is one level as declared in a catalog file.
type Spec struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Multiplier  float64            `yaml:"multiplier,omitempty"`
	EnergyGain  float64            `yaml:"energy_gain,omitempty"`
	EnergyMaxMs int64              `yaml:"energy_max_ms,omitempty"`
	Grid        GridSize           `yaml:"grid"`
	Generator   Generator          `yaml:"generator"`
	Queue       QueueSpec          `yaml:"queue"`
	Specials    []SpecialPlacement `yaml:"specials,omitempty"`
	ShiftDir    int                `yaml:"shift_dir,omitempty"`
	MinMatch    int                `yaml:"min_match,omitempty"`
	Clears      int                `yaml:"clears,omitempty"`
	Medals      []int              `yaml:"medals,omitempty"`
}

// QueueVariants returns the number of colors the refill queue draws from.
func (s Spec) QueueVariants() int {
	if s.Queue.Variants > 0 {
		return s.Queue.Variants
	}
	if s.Generator.Variants > 0 {
		return s.Generator.Variants
	}
	return 3
}

// Params converts the static part of a level Spec into engine parameters.
// Timing and energy rates are filled in by the caller.
func (s Spec) Params(index int) core.Params {
	return core.Params{
		Index:      index,
		Title:      fmt.Sprintf("Level %02d", index),
		Multiplier: s.Multiplier,
		EnergyGain: s.EnergyGain,
		EnergyMax:  s.EnergyMaxMs,
		MinMatch:   s.MinMatch,
		Variants:   max(s.QueueVariants(), s.Generator.Variants),
		ShiftDir:   s.ShiftDir,
		Clears:     s.Clears,
		Medals:     append([]int(nil), s.Medals...),
	}
}

// Catalog is an ordered list of levels. Level indices are 1-based.
type Catalog struct {
	Name   string `yaml:"name"`
	Levels []Spec `yaml:"levels"`

	fsys fs.FS // where layout files are resolved
}

// ParseCatalog decodes and validates a catalog. Layout files are looked up
// in fsys.
func ParseCatalog(data []byte, fsys fs.FS) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("levels: parse catalog: %w", err)
	}
	if len(c.Levels) == 0 {
		return nil, fmt.Errorf("levels: catalog %q has no levels", c.Name)
	}
	for i, s := range c.Levels {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("levels: %s level %d (%s): %w", c.Name, i+1, s.ID, err)
		}
	}
	c.fsys = fsys
	return &c, nil
}

func (s Spec) validate() error {
	if err := core.ValidateSize(s.Grid.W, s.Grid.H); err != nil {
		return err
	}
	switch s.Generator.Type {
	case GenRandom, GenStriped:
	case GenCSV:
		if s.Generator.Layout == "" {
			return fmt.Errorf("csv generator needs a layout file")
		}
	default:
		return fmt.Errorf("unknown generator %q", s.Generator.Type)
	}
	for _, sp := range s.Specials {
		if _, ok := specialKinds[sp.Kind]; !ok {
			return fmt.Errorf("unknown special %q", sp.Kind)
		}
	}
	if s.ShiftDir < -1 || s.ShiftDir > 1 {
		return fmt.Errorf("shift_dir must be -1, 0 or 1")
	}
	return nil
}

// Load returns a built-in catalog by name.
func Load(name string) (*Catalog, error) {
	data, err := defaultFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: no catalog %q", core.ErrUnknownLevel, name)
	}
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data, sub)
}

// LoadFile reads a catalog from disk. Layout paths are relative to the
// catalog's directory.
func LoadFile(path string) (*Catalog, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read catalog %s: %w", path, err)
	}
	return ParseCatalog(data, os.DirFS(filepath.Dir(path)))
}

// Len returns the number of levels.
func (c *Catalog) Len() int { return len(c.Levels) }

// Level returns the level Spec at a 1-based index.
func (c *Catalog) Level(index int) (Spec, error) {
	if index < 1 || index > len(c.Levels) {
		return Spec{}, fmt.Errorf("%w: %s has no level %d", core.ErrUnknownLevel, c.Name, index)
	}
	return c.Levels[index-1], nil
}

// Titles lists "Level NN - name" for each level.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.Levels))
	for i, s := range c.Levels {
		out[i] = fmt.Sprintf("Level %02d - %s", i+1, s.Name)
	}
	return out
}

// WrapIndex maps any integer onto 1..n, wrapping in both directions.
// The practice picker steps through levels with it.
func WrapIndex(i, n int) int {
	if n <= 0 {
		return 1
	}
	i = (i - 1) % n
	if i < 0 {
		i += n
	}
	return i + 1
}
