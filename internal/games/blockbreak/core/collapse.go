package core

import "sort"

// QueueFunc supplies replacement blocks during refill. It must always
// return a block.
type QueueFunc func() Block

// Collapse applies gravity to the given columns and refills the vacated
// top slots from queue. Columns are processed in ascending order and each
// column is refilled bottom-up, so the queue is consumed deterministically.
// It reports whether any surviving block dropped, which presentation may
// use to animate; the grid is playable as soon as Collapse returns.
func Collapse(g *Grid, cols []int, queue QueueFunc) bool {
	ordered := append([]int(nil), cols...)
	sort.Ints(ordered)

	moved := false
	last := -1
	for _, c := range ordered {
		if c == last || c < 0 || c >= g.Width() {
			continue
		}
		last = c
		if compactColumn(g.cols[c].blocks) {
			moved = true
		}
		blocks := g.cols[c].blocks
		for r := len(blocks) - 1; r >= 0; r-- {
			if blocks[r].IsEmpty() {
				blocks[r] = queue()
			}
		}
	}
	return moved
}

// compactColumn moves non-empty blocks toward the last row, preserving
// their order, and leaves empties on top.
func compactColumn(blocks []Block) bool {
	moved := false
	write := len(blocks) - 1
	for read := len(blocks) - 1; read >= 0; read-- {
		if blocks[read].IsEmpty() {
			continue
		}
		if read != write {
			blocks[write] = blocks[read]
			blocks[read] = Empty()
			moved = true
		}
		write--
	}
	return moved
}
