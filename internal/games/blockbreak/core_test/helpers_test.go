package core_test

import (
	"math/rand"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

// fixedPolicy builds a grid from symbol rows and refills from a cycling queue.
type fixedPolicy struct {
	rows  []string
	queue []core.Block
	next  int
}

func (p *fixedPolicy) BuildGrid(*rand.Rand) (*core.Grid, error) {
	return core.ParseGrid(p.rows...)
}

func (p *fixedPolicy) QueueBlock(*rand.Rand) core.Block {
	if len(p.queue) == 0 {
		return core.Normal(9)
	}
	b := p.queue[p.next%len(p.queue)]
	p.next++
	return b
}

func (p *fixedPolicy) ActivateSpecial(l *core.Level, pos core.Pos) core.Outcome {
	return core.ResolveSpecial(l, pos)
}

// randomPolicy fills a w x h grid with seeded variants.
type randomPolicy struct {
	w, h, variants int
}

func (p randomPolicy) BuildGrid(rng *rand.Rand) (*core.Grid, error) {
	return core.NewGridFunc(p.w, p.h, func(core.Pos) core.Block {
		return core.Normal(rng.Intn(p.variants))
	})
}

func (p randomPolicy) QueueBlock(rng *rand.Rand) core.Block {
	return core.Normal(rng.Intn(p.variants))
}

func (p randomPolicy) ActivateSpecial(l *core.Level, pos core.Pos) core.Outcome {
	return core.ResolveSpecial(l, pos)
}

// mapAssets is an in-memory asset source.
type mapAssets map[string]core.Handle

func (m mapAssets) Get(key string) (core.Handle, bool) {
	h, ok := m[key]
	return h, ok
}

func mustGrid(rows ...string) *core.Grid {
	g, err := core.ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

func newFixedLevel(params core.Params, rows ...string) (*core.Level, error) {
	return core.NewLevel(params, &fixedPolicy{rows: rows}, rand.New(rand.NewSource(1)), nil)
}
