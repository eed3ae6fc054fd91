package pdb

import (
	"log"

	"github.com/hailam/tilesolver/internal/puzzle"
)

// sentinel fills the cells of an abstract board that hold neither a
// pattern tile nor the blank.
const sentinel puzzle.Tile = 0xFF

// Build enumerates the abstract state space of the pattern breadth-first
// from the goal placement and returns the finished table. The closed set
// keys on the pattern plus the blank, because the blank position shapes
// the successor structure; the table itself keys on the pattern alone,
// and the first arrival at a pattern rank fixes its cost. Every action
// that repositions at least one pattern tile costs 1 under both
// variants; blank-only actions cost nothing and never write an entry.
func Build(pattern []puzzle.Tile, variant puzzle.Variant) (*Table, error) {
	if variant != puzzle.VariantOne && variant != puzzle.VariantTwo {
		return nil, puzzle.ErrBadVariant
	}
	p, err := normalizePattern(pattern)
	if err != nil {
		return nil, err
	}

	// Two ranking contexts: the pattern addresses the table, the
	// pattern plus blank addresses the closed set.
	withBlank := append([]puzzle.Tile{puzzle.Blank}, p...)
	tableRanker := NewRanker(p)
	closedRanker := NewRanker(withBlank)

	data := make([]byte, tableRanker.Size())
	for i := range data {
		data[i] = unvisited
	}
	closed := newBitset(closedRanker.Size())

	ab := goalAbstract(withBlank, variant)

	k := len(withBlank)
	var (
		dualBuf   [puzzle.NumCells]puzzle.Cell
		placement [puzzle.NumCells]puzzle.Cell
	)
	dual := dualBuf[:k]

	ab.dual(tableRanker, dual[:k-1])
	data[tableRanker.Rank(dual[:k-1])] = 0

	ab.dual(closedRanker, dual)
	root := closedRanker.Rank(dual)
	closed.set(root)

	var (
		frontier fifo
		expanded int64
		ml       moveList
	)
	frontier.push(root)

	for {
		rank, ok := frontier.pop()
		if !ok {
			break
		}

		closedRanker.Unrank(rank, placement[:k])
		ab.place(withBlank, placement[:k])

		ab.dual(tableRanker, dual[:k-1])
		cost := data[tableRanker.Rank(dual[:k-1])]

		expanded++
		if expanded%10000 == 0 {
			log.Printf("[Build] %d states expanded", expanded)
		}

		ab.legalMoves(&ml)
		for i := 0; i < ml.count; i++ {
			m := ml.moves[i]
			ab.apply(m)

			ab.dual(closedRanker, dual)
			childRank := closedRanker.Rank(dual)
			if !closed.test(childRank) {
				if ml.movedPattern[i] > 0 {
					ab.dual(tableRanker, dual[:k-1])
					r := tableRanker.Rank(dual[:k-1])
					if data[r] == unvisited {
						data[r] = cost + 1
					}
				}
				closed.set(childRank)
				frontier.push(childRank)
			}

			ab.undo(m)
		}
	}

	log.Printf("[Build] done: %d states expanded, %d table entries", expanded, len(data))

	return &Table{ranker: tableRanker, data: data}, nil
}

// abstract is a partial board: pattern tiles and the blank sit at known
// cells, every other cell holds the sentinel. It mirrors the move
// semantics of puzzle.Board.
type abstract struct {
	tiles     [puzzle.NumCells]puzzle.Tile
	blankRow  int
	blankCol  int
	variant   puzzle.Variant
	inPattern uint16 // bit per tile value, blank excluded
}

// goalAbstract builds the abstract goal: each tracked tile at its goal
// cell, the blank at cell 0, sentinels elsewhere.
func goalAbstract(withBlank []puzzle.Tile, variant puzzle.Variant) *abstract {
	ab := &abstract{variant: variant}
	for i := range ab.tiles {
		ab.tiles[i] = sentinel
	}
	for _, t := range withBlank {
		ab.tiles[puzzle.GoalCell(t)] = t
		if t != puzzle.Blank {
			ab.inPattern |= 1 << t
		}
	}
	return ab
}

// place resets the abstract board to the given placement of the tracked
// tiles (blank included, in sorted order).
func (ab *abstract) place(withBlank []puzzle.Tile, cells []puzzle.Cell) {
	for i := range ab.tiles {
		ab.tiles[i] = sentinel
	}
	for i, t := range withBlank {
		ab.tiles[cells[i]] = t
		if t == puzzle.Blank {
			ab.blankRow = cells[i].Row()
			ab.blankCol = cells[i].Col()
		}
	}
}

// dual extracts the cells of the ranker's tiles in sorted order.
func (ab *abstract) dual(r *Ranker, out []puzzle.Cell) {
	r.Dual(ab.tiles, out)
}

// moveList pairs each legal move with the number of pattern tiles it
// repositions.
type moveList struct {
	moves        [8]puzzle.Move
	movedPattern [8]int
	count        int
}

func (ml *moveList) add(m puzzle.Move, moved int) {
	ml.moves[ml.count] = m
	ml.movedPattern[ml.count] = moved
	ml.count++
}

// legalMoves enumerates the moves of the abstract board under the same
// variant rules as the concrete board, counting for each one how many
// pattern tiles it would shift.
func (ab *abstract) legalMoves(ml *moveList) {
	ml.count = 0
	row := ab.blankRow * puzzle.Size

	if ab.blankCol > 0 {
		ml.add(puzzle.NewMove(puzzle.Left, 1), ab.patternAt(row+ab.blankCol-1))
	}
	if ab.blankCol < puzzle.Size-1 {
		ml.add(puzzle.NewMove(puzzle.Right, 1), ab.patternAt(row+ab.blankCol+1))
	}
	if ab.blankRow > 0 {
		ml.add(puzzle.NewMove(puzzle.Up, 1), ab.patternAt(row-puzzle.Size+ab.blankCol))
	}
	if ab.blankRow < puzzle.Size-1 {
		ml.add(puzzle.NewMove(puzzle.Down, 1), ab.patternAt(row+puzzle.Size+ab.blankCol))
	}

	if ab.variant != puzzle.VariantTwo {
		return
	}
	for s := 2; s <= ab.blankCol && s <= 3; s++ {
		moved := 0
		for d := 1; d <= s; d++ {
			moved += ab.patternAt(row + ab.blankCol - d)
		}
		ml.add(puzzle.NewMove(puzzle.Left, s), moved)
	}
	for s := 2; s <= puzzle.Size-1-ab.blankCol && s <= 3; s++ {
		moved := 0
		for d := 1; d <= s; d++ {
			moved += ab.patternAt(row + ab.blankCol + d)
		}
		ml.add(puzzle.NewMove(puzzle.Right, s), moved)
	}
}

// patternAt returns 1 if the cell holds a pattern tile.
func (ab *abstract) patternAt(idx int) int {
	t := ab.tiles[idx]
	if t == sentinel {
		return 0
	}
	return int(ab.inPattern >> t & 1)
}

// apply mirrors Board.apply on the partial tile array.
func (ab *abstract) apply(m puzzle.Move) {
	row := ab.blankRow * puzzle.Size
	switch m.Dir() {
	case puzzle.Left:
		target := ab.blankCol - m.Steps()
		for c := ab.blankCol; c > target; c-- {
			ab.tiles[row+c] = ab.tiles[row+c-1]
		}
		ab.tiles[row+target] = puzzle.Blank
		ab.blankCol = target
	case puzzle.Right:
		target := ab.blankCol + m.Steps()
		for c := ab.blankCol; c < target; c++ {
			ab.tiles[row+c] = ab.tiles[row+c+1]
		}
		ab.tiles[row+target] = puzzle.Blank
		ab.blankCol = target
	case puzzle.Up:
		target := ab.blankRow - 1
		ab.tiles[row+ab.blankCol] = ab.tiles[target*puzzle.Size+ab.blankCol]
		ab.tiles[target*puzzle.Size+ab.blankCol] = puzzle.Blank
		ab.blankRow = target
	case puzzle.Down:
		target := ab.blankRow + 1
		ab.tiles[row+ab.blankCol] = ab.tiles[target*puzzle.Size+ab.blankCol]
		ab.tiles[target*puzzle.Size+ab.blankCol] = puzzle.Blank
		ab.blankRow = target
	}
}

// undo reverses a previously applied move.
func (ab *abstract) undo(m puzzle.Move) {
	ab.apply(m.Reverse())
}
