// Command tilesolver solves 15-puzzle benchmark files optimally with
// IDA*, using either the analytic heuristic or a pair of additive
// pattern databases.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/hailam/tilesolver/internal/pdb"
	"github.com/hailam/tilesolver/internal/puzzle"
	"github.com/hailam/tilesolver/internal/runner"
	"github.com/hailam/tilesolver/internal/storage"
)

var (
	input      = flag.String("input", "", "benchmark file: one puzzle per line, index plus 16 tiles")
	variant    = flag.Int("variant", 1, "move model: 1 = unit moves, 2 = horizontal slides up to 3")
	pdb1Path   = flag.String("pdb1", "", "first pattern database file")
	pattern1   = flag.String("pattern1", "", "first pattern, e.g. {1,2,3,4,5,6,7}")
	pdb2Path   = flag.String("pdb2", "", "second pattern database file")
	pattern2   = flag.String("pattern2", "", "second pattern, e.g. {8,9,10,11,12,13,14,15}")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "concurrent solves")
	outDir     = flag.String("out", "", "directory for per-puzzle result files")
	resume     = flag.Bool("resume", false, "skip puzzles already in the archive")
	noArchive  = flag.Bool("no-archive", false, "do not record results in the archive")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if *input == "" {
		log.Fatal("missing -input benchmark file")
	}
	if *variant != 1 && *variant != 2 {
		log.Fatalf("invalid -variant %d: must be 1 or 2", *variant)
	}

	cfg := runner.Config{
		Variant: puzzle.Variant(*variant),
		Workers: *workers,
		OutDir:  *outDir,
		Resume:  *resume,
	}

	if (*pdb1Path != "") != (*pdb2Path != "") {
		log.Fatal("-pdb1 and -pdb2 must be given together")
	}
	if *pdb1Path != "" {
		cfg.PDBFirst = loadTable(*pdb1Path, *pattern1)
		cfg.PDBSecond = loadTable(*pdb2Path, *pattern2)
		log.Printf("[Main] PDBs loaded: %d + %d entries", cfg.PDBFirst.Len(), cfg.PDBSecond.Len())
	}

	if !*noArchive {
		store, err := storage.NewStorage()
		if err != nil {
			log.Printf("Warning: archive unavailable: %v", err)
		} else {
			defer store.Close()
			cfg.Store = store
		}
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatalf("could not create output directory: %v", err)
		}
	}

	puzzles, err := runner.ReadPuzzles(*input)
	if err != nil {
		log.Fatal(err)
	}

	failures := runner.New(cfg).Run(puzzles)
	log.Printf("[Main] %d puzzles processed, %d failures", len(puzzles), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// loadTable reads one PDB and its pattern specification.
func loadTable(path, patternSpec string) *pdb.Table {
	if patternSpec == "" {
		log.Fatalf("missing pattern specification for %s", path)
	}
	pattern, err := puzzle.ParsePattern(patternSpec)
	if err != nil {
		log.Fatal(err)
	}
	t, err := pdb.Load(path, pattern)
	if err != nil {
		log.Fatal(err)
	}
	return t
}
