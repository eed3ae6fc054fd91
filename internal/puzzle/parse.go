package puzzle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors reported by the text parsers.
var (
	ErrBadBenchmarkLine = errors.New("puzzle: malformed benchmark line")
	ErrBadPattern       = errors.New("puzzle: malformed pattern string")
)

// ParseBenchmarkLine parses one benchmark line: an integer puzzle index
// followed by 16 tile values in row-major order, whitespace-separated.
// The blank is written as 0.
func ParseBenchmarkLine(line string) (int, [NumCells]Tile, error) {
	var tiles [NumCells]Tile

	fields := strings.Fields(line)
	if len(fields) != NumCells+1 {
		return 0, tiles, fmt.Errorf("%w: need index plus 16 tiles, got %d fields", ErrBadBenchmarkLine, len(fields))
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, tiles, fmt.Errorf("%w: bad index %q", ErrBadBenchmarkLine, fields[0])
	}

	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v >= NumCells {
			return 0, tiles, fmt.Errorf("%w: bad tile %q", ErrBadBenchmarkLine, f)
		}
		tiles[i] = Tile(v)
	}
	return index, tiles, nil
}

// ParsePattern parses a pattern specification of the form {v1,v2,...,vk}:
// curly braces around comma-separated decimals, no spaces. Duplicates
// and values outside 0..15 are rejected. The returned tiles keep the
// written order; callers sort as needed.
func ParsePattern(s string) ([]Tile, error) {
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, s)
	}

	var (
		tiles []Tile
		seen  uint16
	)
	for _, tok := range strings.Split(s[1:len(s)-1], ",") {
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v >= NumCells {
			return nil, fmt.Errorf("%w: bad tile %q", ErrBadPattern, tok)
		}
		if seen&(1<<v) != 0 {
			return nil, fmt.Errorf("%w: duplicate tile %d", ErrBadPattern, v)
		}
		seen |= 1 << v
		tiles = append(tiles, Tile(v))
	}
	return tiles, nil
}
