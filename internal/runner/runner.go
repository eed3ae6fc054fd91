// Package runner reads benchmark files and drives one solve per worker
// over the puzzle set.
package runner

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hailam/tilesolver/internal/heuristic"
	"github.com/hailam/tilesolver/internal/pdb"
	"github.com/hailam/tilesolver/internal/puzzle"
	"github.com/hailam/tilesolver/internal/solver"
	"github.com/hailam/tilesolver/internal/storage"
)

// Instance is one benchmark entry.
type Instance struct {
	Index int
	Tiles [puzzle.NumCells]puzzle.Tile
}

// ReadPuzzles parses a benchmark file: one puzzle per line, an integer
// index followed by 16 tiles, whitespace-separated.
func ReadPuzzles(path string) ([]Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("runner: open %s: %w", path, err)
	}
	defer f.Close()

	var puzzles []Instance
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		index, tiles, err := puzzle.ParseBenchmarkLine(line)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, Instance{Index: index, Tiles: tiles})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("runner: read %s: %w", path, err)
	}

	log.Printf("[Runner] read %d puzzles from %s", len(puzzles), path)
	return puzzles, nil
}

// Config selects the variant, the heuristic, and the run layout.
type Config struct {
	Variant   puzzle.Variant
	Workers   int    // concurrent solves; at least 1
	OutDir    string // per-puzzle result files land here; empty disables
	Resume    bool   // skip puzzles already archived with the same key
	PDBFirst  *pdb.Table
	PDBSecond *pdb.Table
	Store     *storage.Storage // optional archive
}

// heuristicKind returns the archive tag for the configured heuristic.
func (c *Config) heuristicKind() storage.HeuristicKind {
	if c.PDBFirst != nil {
		return storage.HeuristicPDB
	}
	return storage.HeuristicAnalytic
}

// newProvider builds the per-worker heuristic. PDB tables are read-only
// and shared by reference; the analytic cache is worker-private.
func (c *Config) newProvider() heuristic.Provider {
	if c.PDBFirst != nil {
		return heuristic.NewPDBPair(c.PDBFirst, c.PDBSecond)
	}
	return heuristic.NewAnalytic(c.Variant)
}

// Runner fans the puzzle set out over a bounded worker pool. Progress
// printing and archive writes are serialized on the runner's mutex; the
// solvers themselves share nothing but the PDB tables.
type Runner struct {
	cfg Config
	mu  sync.Mutex
}

// New creates a runner for the given configuration.
func New(cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{cfg: cfg}
}

// Run solves every instance and returns the number of failures.
// A failure is a puzzle that was rejected, unsolvable, or whose result
// file could not be written; the remaining puzzles still run.
func (r *Runner) Run(puzzles []Instance) int {
	jobs := make(chan int)
	failures := 0

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := range jobs {
				if !r.solveOne(worker, puzzles[i]) {
					r.mu.Lock()
					failures++
					r.mu.Unlock()
				}
			}
		}(w)
	}

	for i := range puzzles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return failures
}

// solveOne runs a single puzzle end to end on one worker.
func (r *Runner) solveOne(worker int, inst Instance) bool {
	if r.cfg.Resume && r.cfg.Store != nil {
		rec, err := r.cfg.Store.LoadRecord(inst.Index, int(r.cfg.Variant), r.cfg.heuristicKind())
		if err != nil {
			r.printf("Worker_%d: puzzle %d: archive read failed: %v", worker, inst.Index, err)
		} else if rec != nil {
			r.printf("Worker_%d: puzzle %d already solved (length %d), skipping", worker, inst.Index, rec.Length)
			return true
		}
	}

	b, err := puzzle.New(inst.Tiles, r.cfg.Variant)
	if err != nil {
		r.printf("Worker_%d: puzzle %d rejected: %v", worker, inst.Index, err)
		return false
	}
	if !b.Solvable() {
		r.printf("Worker_%d: puzzle %d is unsolvable", worker, inst.Index)
		r.archive(inst, solver.Result{Length: -1, Final: inst.Tiles})
		return false
	}

	s := solver.New(r.cfg.newProvider())
	s.OnIteration = func(bound int, expanded, generated int64) {
		r.printf("Worker_%d: puzzle %d: iteration with bound %d done; %d expanded, %d generated",
			worker, inst.Index, bound, expanded, generated)
	}

	res := s.Solve(b)
	r.printf("Worker_%d: puzzle %d: %.2fs elapsed; %d expanded; %d generated; solution length %d",
		worker, inst.Index, res.Elapsed.Seconds(), res.Expanded, res.Generated, res.Length)

	r.archive(inst, res)

	if r.cfg.OutDir != "" {
		path := filepath.Join(r.cfg.OutDir, fmt.Sprintf("result_Puzzle_%d.txt", inst.Index))
		if err := WriteResultFile(path, inst, res); err != nil {
			r.printf("Worker_%d: puzzle %d: %v", worker, inst.Index, err)
			return false
		}
	}

	return res.Length >= 0
}

// archive stores the outcome when an archive is configured.
func (r *Runner) archive(inst Instance, res solver.Result) {
	if r.cfg.Store == nil {
		return
	}

	path := make([]string, len(res.Path))
	for i, m := range res.Path {
		path[i] = m.String()
	}

	rec := &storage.SolveRecord{
		Index:     inst.Index,
		Variant:   int(r.cfg.Variant),
		Heuristic: r.cfg.heuristicKind(),
		Length:    res.Length,
		Elapsed:   res.Elapsed,
		Expanded:  res.Expanded,
		Generated: res.Generated,
		Path:      path,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.cfg.Store.RecordSolve(rec); err != nil {
		log.Printf("[Runner] archive write failed for puzzle %d: %v", inst.Index, err)
	}
}

// printf serializes progress output across workers.
func (r *Runner) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Printf(format+"\n", args...)
}
