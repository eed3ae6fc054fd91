package pdb

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/tilesolver/internal/puzzle"
)

func TestRankerSize(t *testing.T) {
	cases := []struct {
		pattern []puzzle.Tile
		size    uint64
	}{
		{[]puzzle.Tile{1}, 16},
		{[]puzzle.Tile{1, 2}, 16 * 15},
		{[]puzzle.Tile{1, 2, 3}, 16 * 15 * 14},
		{[]puzzle.Tile{1, 2, 3, 4, 5, 6, 7}, 57657600},
		{[]puzzle.Tile{8, 9, 10, 11, 12, 13, 14, 15}, 518918400},
	}
	for _, tc := range cases {
		require.Equal(t, tc.size, NewRanker(tc.pattern).Size())
	}
}

func TestRankerSortsPattern(t *testing.T) {
	r := NewRanker([]puzzle.Tile{7, 3, 5})
	require.Equal(t, []puzzle.Tile{3, 5, 7}, r.Pattern())
}

func TestGoalPlacementRank(t *testing.T) {
	// The pattern {0,1,...,k-1} placed at its own cells is the
	// lexicographically first placement, rank 0.
	r := NewRanker([]puzzle.Tile{0, 1, 2, 3})
	require.Equal(t, uint64(0), r.Rank([]puzzle.Cell{0, 1, 2, 3}))

	// The lexicographically last placement maps to Size()-1.
	require.Equal(t, r.Size()-1, r.Rank([]puzzle.Cell{15, 14, 13, 12}))
}

// TestRankBijectionSmall enumerates every placement of a 2-tile pattern
// and confirms each rank in [0, 240) appears exactly once.
func TestRankBijectionSmall(t *testing.T) {
	r := NewRanker([]puzzle.Tile{3, 9})
	seen := make([]bool, r.Size())

	for a := 0; a < puzzle.NumCells; a++ {
		for b := 0; b < puzzle.NumCells; b++ {
			if a == b {
				continue
			}
			rank := r.Rank([]puzzle.Cell{puzzle.Cell(a), puzzle.Cell(b)})
			require.Less(t, rank, r.Size())
			require.False(t, seen[rank], "rank %d hit twice", rank)
			seen[rank] = true
		}
	}
	for rank, ok := range seen {
		require.True(t, ok, "rank %d never produced", rank)
	}
}

// TestUnrankRoundTrip checks unrank(rank(a)) == a on random placements
// of patterns of several sizes.
func TestUnrankRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	patterns := [][]puzzle.Tile{
		{5},
		{1, 2, 3},
		{0, 1, 2, 3, 4, 5, 6, 7},
	}

	for _, p := range patterns {
		r := NewRanker(p)
		k := len(p)
		out := make([]puzzle.Cell, k)

		for trial := 0; trial < 200; trial++ {
			cells := rng.Perm(puzzle.NumCells)[:k]
			placement := make([]puzzle.Cell, k)
			for i, c := range cells {
				placement[i] = puzzle.Cell(c)
			}

			rank := r.Rank(placement)
			r.Unrank(rank, out)
			require.Equal(t, placement, out, "pattern %v", p)
		}
	}
}

// TestUnrankEnumerates runs the other direction for a small pattern:
// every rank unranks to distinct cells and ranks back to itself.
func TestUnrankEnumerates(t *testing.T) {
	r := NewRanker([]puzzle.Tile{1, 2, 3})
	out := make([]puzzle.Cell, 3)

	for rank := uint64(0); rank < r.Size(); rank++ {
		r.Unrank(rank, out)
		require.NotEqual(t, out[0], out[1])
		require.NotEqual(t, out[0], out[2])
		require.NotEqual(t, out[1], out[2])
		require.Equal(t, rank, r.Rank(out))
	}
}

func TestDual(t *testing.T) {
	var tiles [puzzle.NumCells]puzzle.Tile
	for i := range tiles {
		tiles[i] = puzzle.Tile(i)
	}
	// Move tile 2 to cell 14 and tile 14 to cell 2.
	tiles[2], tiles[14] = tiles[14], tiles[2]

	r := NewRanker([]puzzle.Tile{1, 2, 3})
	out := make([]puzzle.Cell, 3)
	r.Dual(tiles, out)
	require.Equal(t, []puzzle.Cell{1, 14, 3}, out)
}
