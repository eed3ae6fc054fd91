package pdb

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hailam/tilesolver/internal/puzzle"
)

// Sentinel errors for table construction and file handling.
var (
	ErrEmptyPattern = errors.New("pdb: pattern must contain at least one non-blank tile")
	ErrSizeMismatch = errors.New("pdb: table size does not match pattern")
)

// unvisited marks a table entry the builder never reached.
const unvisited = 0xFF

// Table is an in-memory pattern database: one byte per rank holding the
// minimum cost to place the pattern tiles into their goal cells. Tables
// are built (or loaded) once and are safe for concurrent readers.
type Table struct {
	ranker *Ranker
	data   []byte
}

// normalizePattern sorts a copy of the pattern with the blank stripped.
func normalizePattern(pattern []puzzle.Tile) ([]puzzle.Tile, error) {
	p := make([]puzzle.Tile, 0, len(pattern))
	for _, t := range pattern {
		if t != puzzle.Blank {
			p = append(p, t)
		}
	}
	if len(p) == 0 {
		return nil, ErrEmptyPattern
	}
	sort.Slice(p, func(i, j int) bool { return p[i] < p[j] })
	return p, nil
}

// NewTable wraps raw table bytes for the given pattern. The blank is
// stripped from the pattern; the data length must equal the rank space.
func NewTable(pattern []puzzle.Tile, data []byte) (*Table, error) {
	p, err := normalizePattern(pattern)
	if err != nil {
		return nil, err
	}
	r := NewRanker(p)
	if uint64(len(data)) != r.Size() {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrSizeMismatch, len(data), r.Size())
	}
	return &Table{ranker: r, data: data}, nil
}

// Pattern returns the sorted pattern tiles of the table.
func (t *Table) Pattern() []puzzle.Tile {
	return t.ranker.Pattern()
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.data)
}

// Entry returns the raw byte at a rank.
func (t *Table) Entry(rank uint64) byte {
	return t.data[rank]
}

// Lookup returns the cost-to-goal for the pattern placement of a full
// configuration.
func (t *Table) Lookup(tiles [puzzle.NumCells]puzzle.Tile) int {
	var dual [puzzle.NumCells]puzzle.Cell
	d := dual[:len(t.ranker.pattern)]
	t.ranker.Dual(tiles, d)
	return int(t.data[t.ranker.Rank(d)])
}

// Save writes the table as a flat sequence of single-byte entries in
// rank order: no header, no length prefix. The rank bijection is fixed
// by the pattern, which the reader supplies separately.
func (t *Table) Save(path string) error {
	if err := os.WriteFile(path, t.data, 0644); err != nil {
		return fmt.Errorf("pdb: save %s: %w", path, err)
	}
	return nil
}

// Load reads a table from disk and validates its size against the
// pattern's rank space.
func Load(path string, pattern []puzzle.Tile) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdb: load %s: %w", path, err)
	}
	t, err := NewTable(pattern, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
