package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

func TestNewGridValidatesSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		ok   bool
	}{
		{"smallest", 1, 1, true},
		{"largest", core.MaxWidth, core.MaxHeight, true},
		{"zero width", 0, 5, false},
		{"too wide", core.MaxWidth + 1, 5, false},
		{"too tall", 5, core.MaxHeight + 1, false},
		{"negative", -1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := core.NewGrid(tt.w, tt.h)
			if !tt.ok {
				assert.ErrorIs(t, err, core.ErrInvalidGridSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, g.Width())
			assert.Equal(t, tt.h, g.Height())
			for c := 0; c < g.Width(); c++ {
				assert.Equal(t, tt.h, g.Column(c).Len())
			}
		})
	}
}

func TestSizePresets(t *testing.T) {
	for _, p := range core.SizePresets {
		cells, ok := core.CellsForBlockSize(p.BlockSize)
		require.True(t, ok)
		assert.NoError(t, core.ValidateSize(cells, cells), "preset %d", p.BlockSize)
	}
	_, ok := core.CellsForBlockSize(24)
	assert.False(t, ok)
}

func TestParseGrid(t *testing.T) {
	g, err := core.ParseGrid(
		"0 1 H",
		"W T .",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, core.Normal(1), g.At(core.P(1, 0)))
	assert.Equal(t, core.KindHeart, g.At(core.P(2, 0)).Kind)
	assert.Equal(t, core.KindWedge, g.At(core.P(0, 1)).Kind)
	assert.Equal(t, core.KindTrash, g.At(core.P(1, 1)).Kind)
	assert.True(t, g.At(core.P(2, 1)).IsEmpty())
	assert.Equal(t, "01H\nWT.", g.String())
}

func TestParseGridErrors(t *testing.T) {
	_, err := core.ParseGrid("12", "1!")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrLevelDataCorrupt)

	var layoutErr *core.LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, 2, layoutErr.Line)
	assert.Equal(t, 2, layoutErr.Column)

	_, err = core.ParseGrid("123", "12")
	assert.ErrorIs(t, err, core.ErrLevelDataCorrupt)

	_, err = core.ParseGrid()
	assert.ErrorIs(t, err, core.ErrInvalidGridSize)
}

func TestGridOutOfBounds(t *testing.T) {
	g := mustGrid("12", "34")
	assert.True(t, g.At(core.P(-1, 0)).IsEmpty())
	assert.True(t, g.At(core.P(0, 2)).IsEmpty())

	g.Set(core.P(5, 5), core.Normal(7))
	assert.Equal(t, "12\n34", g.String())
}

func TestShiftRow(t *testing.T) {
	g := mustGrid("W12", "345")

	g.ShiftRow(0, -1)
	assert.Equal(t, "12W\n345", g.String())

	g.ShiftRow(0, 1)
	assert.Equal(t, "W12\n345", g.String())

	g.ShiftRow(1, 1)
	assert.Equal(t, "W12\n534", g.String())

	g.ShiftRow(9, 1)
	assert.Equal(t, "W12\n534", g.String(), "out of range row is ignored")
}

func TestCloneEqual(t *testing.T) {
	g := mustGrid("12", "34")
	c := g.Clone()
	assert.True(t, g.Equal(c))

	c.Set(core.P(0, 0), core.Normal(5))
	assert.False(t, g.Equal(c))
	assert.Equal(t, core.Normal(1), g.At(core.P(0, 0)), "clone must not alias")
	assert.False(t, g.Equal(mustGrid("12")))
	assert.False(t, g.Equal(nil))
}

func TestCount(t *testing.T) {
	g := mustGrid("1H1", "T.2")
	assert.Equal(t, 3, g.Count(core.KindNormal))
	assert.Equal(t, 1, g.Count(core.KindHeart))
	assert.Equal(t, 1, g.Count(core.KindEmpty))
}

func TestBlockSymbols(t *testing.T) {
	for _, b := range []core.Block{core.Empty(), core.Normal(0), core.Normal(9), core.Normal(12), core.Special(core.KindHeart), core.Special(core.KindWedge), core.Special(core.KindTrash)} {
		got, ok := core.ParseSymbol(b.Symbol())
		require.True(t, ok, "symbol %q", b.Symbol())
		assert.Equal(t, b, got)
	}
	assert.True(t, core.KindWedge.IsSpecial())
	assert.False(t, core.KindNormal.IsSpecial())
	assert.False(t, core.Special(core.KindHeart).Matches(core.Special(core.KindHeart)))
}
