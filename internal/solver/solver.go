// Package solver implements cost-bounded iterative deepening A* over
// the sliding-tile board.
package solver

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/hailam/tilesolver/internal/heuristic"
	"github.com/hailam/tilesolver/internal/puzzle"
)

// Unbounded is the sentinel a bounded search returns when it exhausted
// every successor without finding either the goal or a candidate above
// the bound. Solve maps it to an unsolvable result.
const Unbounded = math.MaxInt

// solved is the internal sentinel for "goal reached below the bound".
const solved = -1

// maxDepth bounds the search stack. Optimal 15-puzzle solutions never
// exceed 80 moves; the slack covers variant-2 experiments.
const maxDepth = 128

// IterationFunc is invoked on every bound transition with the bound
// that just finished and the node counters so far.
type IterationFunc func(bound int, expanded, generated int64)

// Result is what one solve reports.
type Result struct {
	Path      []puzzle.Move
	Length    int // -1 when unsolvable or stopped
	Elapsed   time.Duration
	Expanded  int64
	Generated int64
	Final     [puzzle.NumCells]puzzle.Tile
}

// Solver runs IDA* for one puzzle at a time. It owns the per-solve
// visited set, path stack, and node counters; the heuristic provider is
// the strategy between the analytic estimate and a PDB pair. A Solver
// must not be shared between concurrent solves.
type Solver struct {
	heur heuristic.Provider

	// Per-solve state
	visited   map[uint64]struct{}
	path      []puzzle.Move
	expanded  int64
	generated int64
	stopFlag  atomic.Bool

	// OnIteration, when set, is called at each bound transition.
	OnIteration IterationFunc
}

// New creates a solver backed by the given heuristic provider.
func New(h heuristic.Provider) *Solver {
	return &Solver{heur: h}
}

// Stop asks a running solve to unwind. The flag is polled between
// successor expansions; the solve then reports Length -1.
func (s *Solver) Stop() {
	s.stopFlag.Store(true)
}

// Solve runs iterative deepening from b's current configuration. The
// board is mutated in place: on success it ends at the goal
// configuration, otherwise every move has been undone.
func (s *Solver) Solve(b *puzzle.Board) Result {
	start := time.Now()

	s.heur.Reset()
	s.stopFlag.Store(false)
	s.path = s.path[:0]
	s.expanded = 0
	s.generated = 0

	bound := s.heur.Evaluate(b)

	for {
		// The visited set tracks the current path only; each
		// iteration starts from the bare root.
		s.visited = make(map[uint64]struct{})

		t := s.search(b, 0, bound)
		if t == solved {
			path := make([]puzzle.Move, len(s.path))
			copy(path, s.path)
			return Result{
				Path:      path,
				Length:    len(path),
				Elapsed:   time.Since(start),
				Expanded:  s.expanded,
				Generated: s.generated,
				Final:     b.Tiles(),
			}
		}
		if t == Unbounded {
			return Result{
				Length:    -1,
				Elapsed:   time.Since(start),
				Expanded:  s.expanded,
				Generated: s.generated,
				Final:     b.Tiles(),
			}
		}

		if s.OnIteration != nil {
			s.OnIteration(bound, s.expanded, s.generated)
		}
		bound = t
	}
}

// candidate pairs a move with the heuristic of the state it leads to.
type candidate struct {
	move puzzle.Move
	h    int
}

// search is the cost-bounded depth-first pass. It returns solved when
// the goal was reached, Unbounded when no successor exists below or
// above the bound, and otherwise the minimum f-value that exceeded the
// bound (the next iteration's bound).
func (s *Solver) search(b *puzzle.Board, g, bound int) int {
	key := b.Key()
	s.visited[key] = struct{}{}

	if b.IsGoal() {
		delete(s.visited, key)
		return solved
	}
	if len(s.path) >= maxDepth {
		delete(s.visited, key)
		return Unbounded
	}
	if s.stopFlag.Load() {
		delete(s.visited, key)
		return Unbounded
	}

	var ml puzzle.MoveList
	b.LegalMoves(&ml)

	// Parent-move pruning: never generate the literal undo of the
	// move that led here. Longer cycles fall to the visited check.
	skipDir := puzzle.Direction(4)
	if len(s.path) > 0 {
		skipDir = s.path[len(s.path)-1].Dir().Reverse()
	}

	parentTiles := b.Tiles()

	var (
		cands  [8]candidate
		ncands int
	)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.Dir() == skipDir {
			continue
		}
		s.generated++

		b.Apply(m)
		if _, seen := s.visited[b.Key()]; seen {
			b.Undo(m)
			continue
		}
		h := s.heur.Successor(parentTiles, m, b)
		b.Undo(m)

		// Insertion sort ascending by f = g + 1 + h; with equal g
		// across siblings, h order suffices.
		j := ncands
		for j > 0 && cands[j-1].h > h {
			cands[j] = cands[j-1]
			j--
		}
		cands[j] = candidate{move: m, h: h}
		ncands++
	}

	minExcess := Unbounded
	for i := 0; i < ncands; i++ {
		m, h := cands[i].move, cands[i].h
		f := g + 1 + h
		if f > bound {
			if f < minExcess {
				minExcess = f
			}
			continue
		}

		b.Apply(m)
		s.path = append(s.path, m)

		t := s.search(b, g+1, bound)
		s.expanded++

		if t == solved {
			delete(s.visited, key)
			return solved
		}
		if t < minExcess {
			minExcess = t
		}

		s.path = s.path[:len(s.path)-1]
		b.Undo(m)
	}

	delete(s.visited, key)
	return minExcess
}
