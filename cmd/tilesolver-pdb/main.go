// Command tilesolver-pdb builds one additive pattern database and
// writes it as a flat byte file.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hailam/tilesolver/internal/pdb"
	"github.com/hailam/tilesolver/internal/puzzle"
	"github.com/hailam/tilesolver/internal/storage"
)

var (
	patternSpec = flag.String("pattern", "", "pattern tiles, e.g. {1,2,3,4,5,6,7}")
	variant     = flag.Int("variant", 1, "move model: 1 = unit moves, 2 = horizontal slides up to 3")
	out         = flag.String("out", "", "output file for the table bytes (default: a pattern-derived file in the data directory's pdb folder)")
)

func main() {
	flag.Parse()

	if *patternSpec == "" {
		log.Fatal("missing -pattern")
	}
	if *variant != 1 && *variant != 2 {
		log.Fatalf("invalid -variant %d: must be 1 or 2", *variant)
	}

	pattern, err := puzzle.ParsePattern(*patternSpec)
	if err != nil {
		log.Fatal(err)
	}

	outPath := *out
	if outPath == "" {
		pdbDir, err := storage.GetPDBDir()
		if err != nil {
			log.Fatalf("could not resolve PDB directory: %v", err)
		}
		outPath = filepath.Join(pdbDir, defaultFileName(pattern, *variant))
	}

	table, err := pdb.Build(pattern, puzzle.Variant(*variant))
	if err != nil {
		log.Fatal(err)
	}

	if err := table.Save(outPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("[Main] PDB with %d entries saved to %s", table.Len(), outPath)
}

// defaultFileName derives a file name like pdb_v1_1-2-3.bin from the
// pattern and variant.
func defaultFileName(pattern []puzzle.Tile, variant int) string {
	parts := make([]string, len(pattern))
	for i, t := range pattern {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return fmt.Sprintf("pdb_v%d_%s.bin", variant, strings.Join(parts, "-"))
}
