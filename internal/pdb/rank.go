// Package pdb builds and queries additive pattern databases for the
// sliding puzzle: byte tables indexed by a lexicographic ranking of
// partial tile placements.
package pdb

import (
	"math/bits"
	"sort"

	"github.com/hailam/tilesolver/internal/puzzle"
)

// Ranker maps abstract states of one pattern to dense ranks. The rank
// of a placement <a0,...,ak-1> is the mixed-radix sum of each position's
// index among the slots still unused, weighted by falling factorials, a
// bijection into [0, 16*15*...*(16-k+1)).
type Ranker struct {
	pattern []puzzle.Tile // sorted ascending
	mult    []uint64
	size    uint64
}

// NewRanker creates a ranker for the given pattern tiles. The pattern
// is copied and sorted; ranking order always follows the sorted tiles.
func NewRanker(pattern []puzzle.Tile) *Ranker {
	p := make([]puzzle.Tile, len(pattern))
	copy(p, pattern)
	sort.Slice(p, func(i, j int) bool { return p[i] < p[j] })

	k := len(p)
	mult := make([]uint64, k)
	for i := 0; i < k; i++ {
		mult[i] = 1
		for j := 0; j < k-i-1; j++ {
			mult[i] *= uint64(puzzle.NumCells - i - 1 - j)
		}
	}

	size := uint64(1)
	for i := 0; i < k; i++ {
		size *= uint64(puzzle.NumCells - i)
	}

	return &Ranker{pattern: p, mult: mult, size: size}
}

// Pattern returns the sorted pattern tiles backing this ranker.
func (r *Ranker) Pattern() []puzzle.Tile {
	return r.pattern
}

// Size returns the number of distinct ranks: 16!/(16-k)!.
func (r *Ranker) Size() uint64 {
	return r.size
}

// Rank returns the rank of an abstract state: the cell of each pattern
// tile in sorted-pattern order. All cells must be distinct.
func (r *Ranker) Rank(positions []puzzle.Cell) uint64 {
	var (
		rank uint64
		used uint16
	)
	for i, pos := range positions {
		below := bits.OnesCount16(used & (1<<pos - 1))
		rank += uint64(int(pos)-below) * r.mult[i]
		used |= 1 << pos
	}
	return rank
}

// Unrank fills out with the abstract state for the given rank, the
// inverse of Rank. out must have length len(pattern).
func (r *Ranker) Unrank(rank uint64, out []puzzle.Cell) {
	var used uint16
	for i := range r.mult {
		count := rank / r.mult[i]
		rank %= r.mult[i]

		// Find the count-th unused cell, scanning from cell 0.
		pos := puzzle.Cell(0)
		remaining := int(count) + 1
		for {
			if used&(1<<pos) == 0 {
				remaining--
				if remaining == 0 {
					break
				}
			}
			pos++
		}

		out[i] = pos
		used |= 1 << pos
	}
}

// Dual fills out with the cells occupied by the pattern tiles of a full
// configuration, in sorted-pattern order. out must have length
// len(pattern).
func (r *Ranker) Dual(tiles [puzzle.NumCells]puzzle.Tile, out []puzzle.Cell) {
	for i, t := range r.pattern {
		for pos := 0; pos < puzzle.NumCells; pos++ {
			if tiles[pos] == t {
				out[i] = puzzle.Cell(pos)
				break
			}
		}
	}
}
