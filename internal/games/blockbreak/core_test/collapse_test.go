package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

func sequence(blocks ...core.Block) core.QueueFunc {
	i := 0
	return func() core.Block {
		b := blocks[i%len(blocks)]
		i++
		return b
	}
}

func TestCollapseCompactsAndRefills(t *testing.T) {
	g := mustGrid(
		"1.",
		".2",
		"3.",
	)

	moved := core.Collapse(g, []int{1, 0, 1}, sequence(core.Normal(5), core.Normal(6), core.Normal(7)))

	assert.True(t, moved)
	assert.Equal(t, "57\n16\n32", g.String())
}

func TestCollapseWithoutGaps(t *testing.T) {
	g := mustGrid("12", "34")
	moved := core.Collapse(g, []int{0, 1}, sequence(core.Normal(9)))
	assert.False(t, moved)
	assert.Equal(t, "12\n34", g.String())
}

func TestCollapseTopClearDoesNotMove(t *testing.T) {
	g := mustGrid("..", "34")
	moved := core.Collapse(g, []int{0}, sequence(core.Normal(9)))
	assert.False(t, moved, "refill alone is not movement")
	assert.Equal(t, "9.\n34", g.String(), "only listed columns are refilled")
}

func TestCollapseSpecialsFall(t *testing.T) {
	g := mustGrid("T", ".", "H", ".")
	core.Collapse(g, []int{0}, sequence(core.Normal(1)))
	assert.Equal(t, "1\n1\nT\nH", g.String())
}

func TestCollapseIgnoresBadColumns(t *testing.T) {
	g := mustGrid("1.")
	assert.NotPanics(t, func() {
		core.Collapse(g, []int{-1, 4}, sequence(core.Normal(9)))
	})
	assert.Equal(t, "1.", g.String())
}

func TestCollapseInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 40; trial++ {
		w, h := 1+rng.Intn(10), 1+rng.Intn(10)
		g, err := core.NewGridFunc(w, h, func(core.Pos) core.Block {
			if rng.Intn(3) == 0 {
				return core.Empty()
			}
			return core.Normal(rng.Intn(4))
		})
		require.NoError(t, err)

		// survivors per column, bottom-up, before collapse
		before := make([][]core.Block, w)
		cols := make([]int, w)
		for c := 0; c < w; c++ {
			cols[c] = c
			for r := h - 1; r >= 0; r-- {
				if b := g.At(core.P(c, r)); !b.IsEmpty() {
					before[c] = append(before[c], b)
				}
			}
		}

		core.Collapse(g, cols, sequence(core.Special(core.KindTrash)))

		for c := 0; c < w; c++ {
			require.Equal(t, h, g.Column(c).Len(), "column height")
			for r := 0; r < h; r++ {
				assert.False(t, g.At(core.P(c, r)).IsEmpty(), "no gaps after refill")
			}
			// survivors keep their order at the bottom
			for i, b := range before[c] {
				assert.Equal(t, b, g.At(core.P(c, h-1-i)))
			}
			// everything above them came from the queue
			for r := h - 1 - len(before[c]); r >= 0; r-- {
				assert.Equal(t, core.KindTrash, g.At(core.P(c, r)).Kind)
			}
		}
	}
}
