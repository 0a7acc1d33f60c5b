package levels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

// Layout cell codes for special blocks. Non-negative values are colors.
const (
	codeHeart = -1
	codeWedge = -2
	codeTrash = -3
)

// ParseLayout reads a CSV grid: one grid row per line, first line on top,
// each field an integer cell code. Every row must have the same number of
// fields. Malformed input returns a *core.LayoutError.
func ParseLayout(r io.Reader) (*core.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows [][]core.Block
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &core.LayoutError{Line: pe.Line, Column: pe.Column, Reason: pe.Err.Error()}
			}
			return nil, fmt.Errorf("%w: %v", core.ErrLevelDataCorrupt, err)
		}
		line, _ := cr.FieldPos(0)

		if len(rows) > 0 && len(record) != len(rows[0]) {
			return nil, &core.LayoutError{
				Line:   line,
				Column: len(record),
				Reason: fmt.Sprintf("row has %d cells, want %d", len(record), len(rows[0])),
			}
		}

		row := make([]core.Block, len(record))
		for i, field := range record {
			b, err := parseCell(field)
			if err != nil {
				return nil, &core.LayoutError{Line: line, Column: i + 1, Reason: err.Error()}
			}
			row[i] = b
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &core.LayoutError{Line: 1, Column: 1, Reason: "empty layout"}
	}
	g, err := core.NewGridFunc(len(rows[0]), len(rows), func(p core.Pos) core.Block {
		return rows[p.Row][p.Col]
	})
	if err != nil {
		return nil, &core.LayoutError{Line: 1, Column: len(rows[0]), Reason: err.Error()}
	}
	return g, nil
}

func parseCell(field string) (core.Block, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return core.Block{}, fmt.Errorf("not an integer: %q", field)
	}
	switch {
	case v >= 0:
		return core.Normal(v), nil
	case v == codeHeart:
		return core.Special(core.KindHeart), nil
	case v == codeWedge:
		return core.Special(core.KindWedge), nil
	case v == codeTrash:
		return core.Special(core.KindTrash), nil
	}
	return core.Block{}, fmt.Errorf("unknown cell code %d", v)
}
