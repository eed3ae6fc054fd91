package heuristic

import "github.com/hailam/tilesolver/internal/puzzle"

// values holds the cached figures for one configuration.
type values struct {
	md    int
	lc    int
	total int
}

// Analytic combines the variant-aware Manhattan distance with a linear
// conflicts correction. A per-solve cache keyed on the packed board
// makes sibling successors at the same depth reuse the parent's figures,
// and the Successor path updates the Manhattan distance incrementally
// from the parent instead of recomputing it.
type Analytic struct {
	variant puzzle.Variant
	cache   map[uint64]values
}

// NewAnalytic creates an analytic heuristic for the given variant.
func NewAnalytic(variant puzzle.Variant) *Analytic {
	return &Analytic{
		variant: variant,
		cache:   make(map[uint64]values),
	}
}

// Reset clears the cache. Cached figures depend only on the board, but
// growth is bounded by the solve that produced them, so every solve
// starts fresh.
func (a *Analytic) Reset() {
	a.cache = make(map[uint64]values)
}

// Evaluate returns manhattan + linear conflicts for b, from the cache
// when possible.
func (a *Analytic) Evaluate(b *puzzle.Board) int {
	k := b.Key()
	if v, ok := a.cache[k]; ok {
		return v.total
	}
	tiles := b.Tiles()
	v := values{
		md: Manhattan(tiles, a.variant),
		lc: LinearConflicts(tiles),
	}
	v.total = v.md + v.lc
	a.cache[k] = v
	return v.total
}

// Successor returns the estimate for child. The Manhattan part is the
// parent's figure plus the per-tile deltas of the cells the move
// touched; linear conflicts are recomputed for the child (at most four
// tiles per line change, the full pass is cheap).
func (a *Analytic) Successor(parentTiles [puzzle.NumCells]puzzle.Tile, _ puzzle.Move, child *puzzle.Board) int {
	childKey := child.Key()
	if v, ok := a.cache[childKey]; ok {
		return v.total
	}

	parent, ok := a.cache[key(parentTiles)]
	if !ok {
		return a.Evaluate(child)
	}

	childTiles := child.Tiles()
	md := parent.md
	for i := 0; i < puzzle.NumCells; i++ {
		t := childTiles[i]
		if t == puzzle.Blank || t == parentTiles[i] {
			continue
		}
		// Tile t landed on cell i; its previous cell is the one the
		// move also touched and that held t before.
		for j := 0; j < puzzle.NumCells; j++ {
			if parentTiles[j] == t {
				md += tileDistance(t, puzzle.Cell(i), a.variant) - tileDistance(t, puzzle.Cell(j), a.variant)
				break
			}
		}
	}

	v := values{md: md, lc: LinearConflicts(childTiles)}
	v.total = v.md + v.lc
	a.cache[childKey] = v
	return v.total
}

// Manhattan returns the variant-aware Manhattan distance of a
// configuration: per tile, the vertical distance to the goal cell plus
// the horizontal distance, the latter divided by 3 (rounded up) under
// variant 2 because one action carries a tile up to three cells
// horizontally.
func Manhattan(tiles [puzzle.NumCells]puzzle.Tile, variant puzzle.Variant) int {
	sum := 0
	for i, t := range tiles {
		if t == puzzle.Blank {
			continue
		}
		sum += tileDistance(t, puzzle.Cell(i), variant)
	}
	return sum
}

// tileDistance returns one tile's contribution at the given cell.
func tileDistance(t puzzle.Tile, at puzzle.Cell, variant puzzle.Variant) int {
	goal := puzzle.GoalCell(t)
	dv := at.Row() - goal.Row()
	if dv < 0 {
		dv = -dv
	}
	dh := at.Col() - goal.Col()
	if dh < 0 {
		dh = -dh
	}
	if variant == puzzle.VariantTwo {
		dh = (dh + 2) / 3
	}
	return dv + dh
}

// LinearConflicts returns twice the number of linear conflicts: pairs of
// tiles that sit in their goal row (or column) but in swapped order
// relative to the goal. Each such pair needs at least two moves beyond
// Manhattan to resolve.
func LinearConflicts(tiles [puzzle.NumCells]puzzle.Tile) int {
	conflicts := 0

	for row := 0; row < puzzle.Size; row++ {
		var cur, goal [puzzle.Size]int
		n := 0
		for col := 0; col < puzzle.Size; col++ {
			t := tiles[row*puzzle.Size+col]
			if t == puzzle.Blank || puzzle.GoalCell(t).Row() != row {
				continue
			}
			cur[n], goal[n] = col, puzzle.GoalCell(t).Col()
			n++
		}
		conflicts += countSwapped(cur[:n], goal[:n])
	}

	for col := 0; col < puzzle.Size; col++ {
		var cur, goal [puzzle.Size]int
		n := 0
		for row := 0; row < puzzle.Size; row++ {
			t := tiles[row*puzzle.Size+col]
			if t == puzzle.Blank || puzzle.GoalCell(t).Col() != col {
				continue
			}
			cur[n], goal[n] = row, puzzle.GoalCell(t).Row()
			n++
		}
		conflicts += countSwapped(cur[:n], goal[:n])
	}

	return conflicts * 2
}

// countSwapped counts pairs whose current order disagrees with their
// goal order along one line.
func countSwapped(cur, goal []int) int {
	n := 0
	for i := 0; i < len(cur); i++ {
		for j := i + 1; j < len(cur); j++ {
			if (goal[i] > goal[j] && cur[i] < cur[j]) ||
				(goal[i] < goal[j] && cur[i] > cur[j]) {
				n++
			}
		}
	}
	return n
}
