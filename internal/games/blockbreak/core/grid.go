package core

import (
	"fmt"
	"strings"
)

// Grid dimension limits.
const (
	MaxWidth  = 64
	MaxHeight = 40
)

// SizePreset pairs a sprite block size in pixels with the number of cells
// that fit along one axis of the play field.
type SizePreset struct {
	BlockSize int
	Cells     int
}

// SizePresets lists the supported block sizes.
var SizePresets = []SizePreset{
	{BlockSize: 16, Cells: 40},
	{BlockSize: 32, Cells: 20},
	{BlockSize: 64, Cells: 10},
}

// CellsForBlockSize returns the grid dimension for a block size.
func CellsForBlockSize(blockSize int) (int, bool) {
	for _, p := range SizePresets {
		if p.BlockSize == blockSize {
			return p.Cells, true
		}
	}
	return 0, false
}

// ValidateSize checks grid dimensions against the supported limits.
func ValidateSize(w, h int) error {
	if w < 1 || w > MaxWidth || h < 1 || h > MaxHeight {
		return fmt.Errorf("%w: %dx%d (want 1..%d x 1..%d)", ErrInvalidGridSize, w, h, MaxWidth, MaxHeight)
	}
	return nil
}

// GridColumn is a fixed-height vertical stack of blocks.
type GridColumn struct {
	blocks []Block
}

// Len returns the column height.
func (c GridColumn) Len() int { return len(c.blocks) }

// At returns the block at row, or Empty when out of range.
func (c GridColumn) At(row int) Block {
	if row < 0 || row >= len(c.blocks) {
		return Empty()
	}
	return c.blocks[row]
}

// Grid is the play field: Width columns of Height blocks each.
type Grid struct {
	cols []GridColumn
	h    int
}

// NewGrid returns an empty grid of the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if err := ValidateSize(w, h); err != nil {
		return nil, err
	}
	g := &Grid{cols: make([]GridColumn, w), h: h}
	for i := range g.cols {
		g.cols[i] = GridColumn{blocks: make([]Block, h)}
	}
	return g, nil
}

// NewGridFunc builds a grid and fills every cell from fn, column by column.
func NewGridFunc(w, h int, fn func(p Pos) Block) (*Grid, error) {
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	for c := 0; c < w; c++ {
		for r := 0; r < h; r++ {
			g.cols[c].blocks[r] = fn(P(c, r))
		}
	}
	return g, nil
}

// ParseGrid builds a grid from rows of block symbols (see Block.Symbol),
// first row on top. Whitespace inside a row is ignored.
func ParseGrid(rows ...string) (*Grid, error) {
	parsed := make([][]Block, 0, len(rows))
	for i, row := range rows {
		var line []Block
		for _, r := range row {
			if r == ' ' || r == '\t' {
				continue
			}
			b, ok := ParseSymbol(r)
			if !ok {
				return nil, &LayoutError{Line: i + 1, Column: len(line) + 1, Reason: fmt.Sprintf("unknown symbol %q", r)}
			}
			line = append(line, b)
		}
		if len(parsed) > 0 && len(line) != len(parsed[0]) {
			return nil, &LayoutError{Line: i + 1, Column: len(line), Reason: "ragged row"}
		}
		parsed = append(parsed, line)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGridSize)
	}
	return NewGridFunc(len(parsed[0]), len(parsed), func(p Pos) Block {
		return parsed[p.Row][p.Col]
	})
}

// Width returns the number of columns.
func (g *Grid) Width() int { return len(g.cols) }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Column returns column c. The returned value shares storage with the grid
// and must be treated as read-only.
func (g *Grid) Column(c int) GridColumn {
	if c < 0 || c >= len(g.cols) {
		return GridColumn{}
	}
	return g.cols[c]
}

// InBounds reports whether p addresses a cell.
func (g *Grid) InBounds(p Pos) bool {
	return p.Col >= 0 && p.Col < len(g.cols) && p.Row >= 0 && p.Row < g.h
}

// At returns the block at p, or Empty when out of bounds.
func (g *Grid) At(p Pos) Block {
	if !g.InBounds(p) {
		return Empty()
	}
	return g.cols[p.Col].blocks[p.Row]
}

// Set replaces the block at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Pos, b Block) {
	if g.InBounds(p) {
		g.cols[p.Col].blocks[p.Row] = b
	}
}

// index flattens p for visited sets.
func (g *Grid) index(p Pos) int {
	return p.Col*g.h + p.Row
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, col := range g.cols {
		for _, b := range col.blocks {
			if b.Kind == k {
				n++
			}
		}
	}
	return n
}

// ShiftRow rotates row by one cell. dir < 0 moves blocks left, dir > 0
// right. The block leaving one edge enters at the other.
func (g *Grid) ShiftRow(row, dir int) {
	w := len(g.cols)
	if w < 2 || row < 0 || row >= g.h || dir == 0 {
		return
	}
	if dir < 0 {
		first := g.cols[0].blocks[row]
		for c := 0; c < w-1; c++ {
			g.cols[c].blocks[row] = g.cols[c+1].blocks[row]
		}
		g.cols[w-1].blocks[row] = first
		return
	}
	last := g.cols[w-1].blocks[row]
	for c := w - 1; c > 0; c-- {
		g.cols[c].blocks[row] = g.cols[c-1].blocks[row]
	}
	g.cols[0].blocks[row] = last
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{cols: make([]GridColumn, len(g.cols)), h: g.h}
	for i, col := range g.cols {
		blocks := make([]Block, len(col.blocks))
		copy(blocks, col.blocks)
		out.cols[i] = GridColumn{blocks: blocks}
	}
	return out
}

// Equal reports whether two grids have the same shape and contents.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || len(g.cols) != len(o.cols) || g.h != o.h {
		return false
	}
	for c := range g.cols {
		for r := range g.cols[c].blocks {
			if g.cols[c].blocks[r] != o.cols[c].blocks[r] {
				return false
			}
		}
	}
	return true
}

// String renders the grid as rows of symbols, top row first.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.h; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.cols {
			sb.WriteRune(g.cols[c].blocks[r].Symbol())
		}
	}
	return sb.String()
}
