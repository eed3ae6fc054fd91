// Package heuristic provides admissible cost estimates for the sliding
// puzzle: an analytic Manhattan-plus-linear-conflicts estimate and a
// pattern-database pair.
package heuristic

import "github.com/hailam/tilesolver/internal/puzzle"

// Provider is the capability set the search engine needs from a
// heuristic. Evaluate never overestimates the true remaining cost.
type Provider interface {
	// Evaluate returns the estimate for b.
	Evaluate(b *puzzle.Board) int

	// Successor returns the estimate for child, which was produced by
	// applying m to the position whose tiles were parentTiles.
	// Implementations may use the parent context for incremental
	// updates; the result always equals Evaluate(child).
	Successor(parentTiles [puzzle.NumCells]puzzle.Tile, m puzzle.Move, child *puzzle.Board) int

	// Reset discards per-solve state. Called once at the start of
	// every solve.
	Reset()
}

// key packs a tile array into 64 bits, 4 bits per cell, matching
// Board.Key for the same configuration.
func key(tiles [puzzle.NumCells]puzzle.Tile) uint64 {
	var k uint64
	for i, t := range tiles {
		k |= uint64(t) << (i * 4)
	}
	return k
}
