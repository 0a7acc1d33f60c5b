package core

import "github.com/kamstrup/intmap"

// Match returns the 4-connected component of blocks matching the block at
// start, in breadth-first order beginning with start. Non-normal or
// out-of-bounds starts yield nil.
func Match(g *Grid, start Pos) []Pos {
	origin := g.At(start)
	if !g.InBounds(start) || origin.Kind != KindNormal {
		return nil
	}

	visited := intmap.New[int, struct{}](16)
	visited.Put(g.index(start), struct{}{})
	component := []Pos{start}

	for head := 0; head < len(component); head++ {
		cur := component[head]
		for _, d := range neighbors {
			next := cur.Add(d[0], d[1])
			if !g.InBounds(next) || !g.At(next).Matches(origin) {
				continue
			}
			if _, seen := visited.Get(g.index(next)); seen {
				continue
			}
			visited.Put(g.index(next), struct{}{})
			component = append(component, next)
		}
	}
	return component
}

// ScoreFunction is the base score of clearing n blocks: (n-1)^2.
func ScoreFunction(n int) int {
	if n < 1 {
		return 0
	}
	return (n - 1) * (n - 1)
}
