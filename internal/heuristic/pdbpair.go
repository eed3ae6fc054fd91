package heuristic

import (
	"github.com/hailam/tilesolver/internal/pdb"
	"github.com/hailam/tilesolver/internal/puzzle"
)

// PDBPair sums the lookups of two additive pattern databases over
// complementary tile sets (for example {1..7} and {8..15}). The tables
// are immutable after construction and may be shared across solves and
// across workers.
type PDBPair struct {
	first  *pdb.Table
	second *pdb.Table
}

// NewPDBPair creates the pair heuristic from two tables.
func NewPDBPair(first, second *pdb.Table) *PDBPair {
	return &PDBPair{first: first, second: second}
}

// Evaluate returns the sum of the two table lookups.
func (p *PDBPair) Evaluate(b *puzzle.Board) int {
	tiles := b.Tiles()
	return p.first.Lookup(tiles) + p.second.Lookup(tiles)
}

// Successor ignores the parent context; PDB lookups are already O(k).
func (p *PDBPair) Successor(_ [puzzle.NumCells]puzzle.Tile, _ puzzle.Move, child *puzzle.Board) int {
	return p.Evaluate(child)
}

// Reset is a no-op; the tables carry no per-solve state.
func (p *PDBPair) Reset() {}
