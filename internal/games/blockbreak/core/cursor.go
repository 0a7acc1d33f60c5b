package core

// Cursor is the player's selection on the grid. Movement wraps at every edge.
type Cursor struct {
	pos  Pos
	w, h int
}

// NewCursor places a cursor at the center of a w x h grid.
func NewCursor(w, h int) Cursor {
	return Cursor{pos: P(w/2, h/2), w: w, h: h}
}

// Pos returns the current position.
func (c Cursor) Pos() Pos { return c.pos }

// Move steps the cursor by (dc, dr) with wrap-around.
func (c *Cursor) Move(dc, dr int) {
	c.pos = P(wrap(c.pos.Col+dc, c.w), wrap(c.pos.Row+dr, c.h))
}

// MoveTo places the cursor at p, wrapped into bounds.
func (c *Cursor) MoveTo(p Pos) {
	c.pos = P(wrap(p.Col, c.w), wrap(p.Row, c.h))
}

func wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
