package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage key for the aggregate run statistics.
const keyStats = "stats"

// HeuristicKind names the heuristic a record was produced with.
type HeuristicKind string

const (
	HeuristicAnalytic HeuristicKind = "analytic"
	HeuristicPDB      HeuristicKind = "pdb"
)

// SolveRecord is the archived outcome of one puzzle.
type SolveRecord struct {
	Index     int           `json:"index"`
	Variant   int           `json:"variant"`
	Heuristic HeuristicKind `json:"heuristic"`
	Length    int           `json:"length"`
	Elapsed   time.Duration `json:"elapsed"`
	Expanded  int64         `json:"expanded"`
	Generated int64         `json:"generated"`
	Path      []string      `json:"path"`
	SolvedAt  time.Time     `json:"solved_at"`
}

// RunStats accumulates over every recorded solve.
type RunStats struct {
	PuzzlesSolved  int           `json:"puzzles_solved"`
	PuzzlesFailed  int           `json:"puzzles_failed"`
	TotalExpanded  int64         `json:"total_expanded"`
	TotalGenerated int64         `json:"total_generated"`
	TotalElapsed   time.Duration `json:"total_elapsed"`
	LongestPath    int           `json:"longest_path"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorageAt(dbDir)
}

// NewStorageAt opens the database in the given directory.
func NewStorageAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// recordKey addresses one puzzle's record: the same puzzle solved under
// another variant or heuristic gets its own entry.
func recordKey(index, variant int, h HeuristicKind) []byte {
	return []byte(fmt.Sprintf("result/v%d/%s/%d", variant, h, index))
}

// SaveRecord archives a solve outcome.
func (s *Storage) SaveRecord(rec *SolveRecord) error {
	rec.SolvedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.Index, rec.Variant, rec.Heuristic), data)
	})
}

// LoadRecord returns the archived record for a puzzle, or (nil, nil)
// when none exists.
func (s *Storage) LoadRecord(index, variant int, h HeuristicKind) (*SolveRecord, error) {
	var rec *SolveRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(index, variant, h))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec = &SolveRecord{}
			return json.Unmarshal(val, rec)
		})
	})

	return rec, err
}

// LoadStats loads the aggregate statistics, empty if none recorded yet.
func (s *Storage) LoadStats() (*RunStats, error) {
	stats := &RunStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// SaveStats stores the aggregate statistics.
func (s *Storage) SaveStats(stats *RunStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// RecordSolve archives the record and folds it into the statistics.
func (s *Storage) RecordSolve(rec *SolveRecord) error {
	if err := s.SaveRecord(rec); err != nil {
		return err
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	if rec.Length < 0 {
		stats.PuzzlesFailed++
	} else {
		stats.PuzzlesSolved++
		if rec.Length > stats.LongestPath {
			stats.LongestPath = rec.Length
		}
	}
	stats.TotalExpanded += rec.Expanded
	stats.TotalGenerated += rec.Generated
	stats.TotalElapsed += rec.Elapsed

	return s.SaveStats(stats)
}

// AvgExpanded returns the mean expansions per completed puzzle.
func (st *RunStats) AvgExpanded() float64 {
	n := st.PuzzlesSolved + st.PuzzlesFailed
	if n == 0 {
		return 0
	}
	return float64(st.TotalExpanded) / float64(n)
}
