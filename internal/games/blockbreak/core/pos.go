package core

import "fmt"

// Pos addresses a grid cell. Row 0 is the top row; gravity pulls toward
// the last row.
type Pos struct {
	Col int
	Row int
}

// P is a convenience constructor for Pos.
func P(col, row int) Pos {
	return Pos{Col: col, Row: row}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Add returns p offset by (dc, dr).
func (p Pos) Add(dc, dr int) Pos {
	return Pos{Col: p.Col + dc, Row: p.Row + dr}
}

// neighbors are the four orthogonal offsets, in a fixed order so traversal
// results are deterministic.
var neighbors = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
