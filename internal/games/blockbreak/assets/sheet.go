// Package assets provides the terminal asset source of Block Break: a glyph
// sheet that maps sprite keys to colored two-cell glyphs.
package assets

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockbreak/internal/core"
	bbcore "github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

//go:embed defaults/glyphs.yaml
var defaultSheet []byte

// GlyphWidth is the number of screen cells one grid cell occupies.
const GlyphWidth = 2

// Glyph is the drawable handle for one sprite key.
type Glyph struct {
	Text  string
	Color core.Color
}

type yamlGlyph struct {
	Text  string `yaml:"text"`
	Color string `yaml:"color"`
}

type yamlSheet struct {
	Name   string               `yaml:"name"`
	Glyphs map[string]yamlGlyph `yaml:"glyphs"`
}

// Sheet is a loaded glyph sheet. It implements core.AssetSource and is
// read-only after loading.
type Sheet struct {
	name   string
	glyphs map[string]Glyph
}

// Parse decodes a glyph sheet.
func Parse(data []byte) (*Sheet, error) {
	var ys yamlSheet
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("assets: parse glyph sheet: %w", err)
	}
	s := &Sheet{name: ys.Name, glyphs: make(map[string]Glyph, len(ys.Glyphs))}
	for key, g := range ys.Glyphs {
		if n := utf8.RuneCountInString(g.Text); n != GlyphWidth {
			return nil, fmt.Errorf("assets: glyph %q is %d cells wide, want %d", key, n, GlyphWidth)
		}
		c, ok := core.ParseColor(g.Color)
		if !ok && g.Color != "" {
			return nil, fmt.Errorf("assets: glyph %q has unknown color %q", key, g.Color)
		}
		s.glyphs[key] = Glyph{Text: g.Text, Color: c}
	}
	return s, nil
}

// Default returns the built-in sheet.
func Default() (*Sheet, error) {
	return Parse(defaultSheet)
}

// Open reads a sheet from path, or returns the built-in sheet when path is
// empty.
func Open(path string) (*Sheet, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read glyph sheet: %w", err)
	}
	return Parse(data)
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Get implements core.AssetSource.
func (s *Sheet) Get(key string) (bbcore.Handle, bool) {
	g, ok := s.glyphs[key]
	if !ok {
		return nil, false
	}
	return g, true
}

// Lookup returns the glyph for key.
func (s *Sheet) Lookup(key string) (Glyph, bool) {
	g, ok := s.glyphs[key]
	return g, ok
}

// Keys returns the sprite keys in sorted order.
func (s *Sheet) Keys() []string {
	keys := make([]string, 0, len(s.glyphs))
	for k := range s.glyphs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Require fails with ErrAssetMissing naming the first absent key.
func (s *Sheet) Require(keys ...string) error {
	for _, k := range keys {
		if _, ok := s.glyphs[k]; !ok {
			return fmt.Errorf("%w: glyph %q", bbcore.ErrAssetMissing, k)
		}
	}
	return nil
}

// Loader returns a load function for core.Lifecycle that opens the sheet
// at path, checks the required keys and stores the result in dst.
func Loader(path string, required []string, dst **Sheet) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := Open(path)
		if err != nil {
			return err
		}
		if err := s.Require(required...); err != nil {
			return err
		}
		*dst = s
		return nil
	}
}

// GlyphOf extracts a glyph from a level handle. Nil or foreign handles
// yield the zero glyph.
func GlyphOf(h bbcore.Handle) Glyph {
	g, _ := h.(Glyph)
	return g
}
