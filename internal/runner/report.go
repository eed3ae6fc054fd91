package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hailam/tilesolver/internal/puzzle"
	"github.com/hailam/tilesolver/internal/solver"
)

// WriteResultFile renders one puzzle's outcome to path.
func WriteResultFile(path string, inst Instance, res solver.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runner: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	WriteResult(w, inst, res)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("runner: write %s: %w", path, err)
	}
	return nil
}

// WriteResult renders the human-readable report: initial grid, stats
// line, goal grid, then one line per move of the path.
func WriteResult(w io.Writer, inst Instance, res solver.Result) {
	fmt.Fprintf(w, "IDA* working to solve Puzzle %d:\n", inst.Index)
	fmt.Fprintf(w, "################################\n")
	fmt.Fprintf(w, "\nInitial State:\n===============\n")
	writeGrid(w, inst.Tiles)

	fmt.Fprintf(w, "\nIDA*: %.2fs elapsed; %d expanded; %d generated; solution length %d\n",
		res.Elapsed.Seconds(), res.Expanded, res.Generated, res.Length)

	fmt.Fprintf(w, "\nGoal State:\n===============\n")
	writeGrid(w, res.Final)

	fmt.Fprintf(w, "\nPath: \n===============\n")
	for _, m := range res.Path {
		fmt.Fprintf(w, "Direction: %s, Steps: %d\n", m.Dir(), m.Steps())
	}
}

// writeGrid prints 16 tiles as four space-separated rows.
func writeGrid(w io.Writer, tiles [puzzle.NumCells]puzzle.Tile) {
	for i, t := range tiles {
		fmt.Fprintf(w, "%d ", t)
		if (i+1)%puzzle.Size == 0 {
			fmt.Fprintln(w)
		}
	}
}
