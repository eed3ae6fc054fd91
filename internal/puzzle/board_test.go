package puzzle

import (
	"errors"
	"math/rand"
	"testing"
)

// goalTiles returns the canonical goal configuration.
func goalTiles() [NumCells]Tile {
	var tiles [NumCells]Tile
	for i := range tiles {
		tiles[i] = Tile(i)
	}
	return tiles
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*[NumCells]Tile)
		variant Variant
		wantErr error
	}{
		{"Goal", func(*[NumCells]Tile) {}, VariantOne, nil},
		{"Duplicate", func(ts *[NumCells]Tile) { ts[3] = ts[5] }, VariantOne, ErrNotPermutation},
		{"OutOfRange", func(ts *[NumCells]Tile) { ts[3] = 16 }, VariantOne, ErrNotPermutation},
		{"BadVariant", func(*[NumCells]Tile) {}, Variant(3), ErrBadVariant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tiles := goalTiles()
			tc.mutate(&tiles)
			_, err := New(tiles, tc.variant)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("New() error = %v; want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBlankTracking(t *testing.T) {
	tiles := goalTiles()
	tiles[0], tiles[9] = tiles[9], tiles[0] // blank to cell 9 = (2, 1)
	b, err := New(tiles, VariantOne)
	if err != nil {
		t.Fatal(err)
	}
	row, col := b.Blank()
	if row != 2 || col != 1 {
		t.Errorf("Blank() = (%d, %d); want (2, 1)", row, col)
	}
}

func TestIsGoal(t *testing.T) {
	if !Goal(VariantOne).IsGoal() {
		t.Error("goal board should pass IsGoal")
	}

	b := Goal(VariantOne)
	b.Apply(NewMove(Right, 1))
	if b.IsGoal() {
		t.Error("moved board should fail IsGoal")
	}
	b.Undo(NewMove(Right, 1))
	if !b.IsGoal() {
		t.Error("undone board should pass IsGoal again")
	}
}

func TestApplySemantics(t *testing.T) {
	// Right from the goal slides tile 1 onto the blank's cell.
	b := Goal(VariantOne)
	if err := b.Apply(NewMove(Right, 1)); err != nil {
		t.Fatal(err)
	}
	tiles := b.Tiles()
	if tiles[0] != 1 || tiles[1] != Blank {
		t.Errorf("after Right: cells 0,1 = %d,%d; want 1,0", tiles[0], tiles[1])
	}

	// Down swaps the blank with the tile below.
	b = Goal(VariantOne)
	if err := b.Apply(NewMove(Down, 1)); err != nil {
		t.Fatal(err)
	}
	tiles = b.Tiles()
	if tiles[0] != 4 || tiles[4] != Blank {
		t.Errorf("after Down: cells 0,4 = %d,%d; want 4,0", tiles[0], tiles[4])
	}

	// A 3-slide shifts the whole row segment one slot toward the blank.
	b = Goal(VariantTwo)
	if err := b.Apply(NewMove(Right, 3)); err != nil {
		t.Fatal(err)
	}
	tiles = b.Tiles()
	want := [4]Tile{1, 2, 3, Blank}
	for i, w := range want {
		if tiles[i] != w {
			t.Fatalf("after Right3: row 0 = %v; want %v", tiles[:4], want)
		}
	}
}

func TestApplyRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		variant Variant
		move    Move
	}{
		{"PastLeftBorder", VariantOne, NewMove(Left, 1)}, // blank at col 0
		{"PastTopBorder", VariantOne, NewMove(Up, 1)},    // blank at row 0
		{"VerticalMultiStep", VariantTwo, NewMove(Down, 2)},
		{"MultiStepUnderVariantOne", VariantOne, NewMove(Right, 2)},
		{"SlidePastBorder", VariantTwo, NewMove(Left, 2)},
		{"ZeroSteps", VariantOne, NoMove},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Goal(tc.variant)
			before := b.Tiles()
			if err := b.Apply(tc.move); !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("Apply(%v) error = %v; want ErrInvalidMove", tc.move, err)
			}
			if b.Tiles() != before {
				t.Error("board changed on rejected move")
			}
		})
	}
}

func TestLegalMoveCounts(t *testing.T) {
	cases := []struct {
		name     string
		blankTo  int // cell to move the blank to
		variant  Variant
		expected int
	}{
		{"CornerVariantOne", 0, VariantOne, 2},
		{"EdgeVariantOne", 1, VariantOne, 3},
		{"CenterVariantOne", 5, VariantOne, 4},
		{"CornerVariantTwo", 0, VariantTwo, 4},  // +Right2, Right3
		{"Col1VariantTwo", 1, VariantTwo, 4},    // +Right2
		{"CenterVariantTwo", 5, VariantTwo, 5},  // +Right2
		{"RightEdgeVariantTwo", 7, VariantTwo, 5}, // +Left2, Left3
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tiles := goalTiles()
			tiles[0], tiles[tc.blankTo] = tiles[tc.blankTo], tiles[0]
			b, err := New(tiles, tc.variant)
			if err != nil {
				t.Fatal(err)
			}
			var ml MoveList
			b.LegalMoves(&ml)
			if ml.Len() != tc.expected {
				t.Errorf("LegalMoves() = %v (%d moves); want %d", ml.Slice(), ml.Len(), tc.expected)
			}
		})
	}
}

func TestLegalMovesIncludeSlides(t *testing.T) {
	// Blank in column 3: both 2- and 3-slides to the left are legal.
	tiles := goalTiles()
	tiles[0], tiles[3] = tiles[3], tiles[0]
	b, err := New(tiles, VariantTwo)
	if err != nil {
		t.Fatal(err)
	}
	var ml MoveList
	b.LegalMoves(&ml)
	for _, want := range []Move{NewMove(Left, 2), NewMove(Left, 3)} {
		if !ml.Contains(want) {
			t.Errorf("LegalMoves() = %v; missing %v", ml.Slice(), want)
		}
	}
	if ml.Contains(NewMove(Right, 2)) {
		t.Errorf("LegalMoves() = %v; Right2 crosses the border", ml.Slice())
	}
}

// TestApplyUndoRoundTrip checks that undo restores the exact prior
// configuration along long random walks, for both variants.
func TestApplyUndoRoundTrip(t *testing.T) {
	for _, variant := range []Variant{VariantOne, VariantTwo} {
		rng := rand.New(rand.NewSource(42))
		b := Goal(variant)

		for step := 0; step < 500; step++ {
			var ml MoveList
			b.LegalMoves(&ml)
			m := ml.Get(rng.Intn(ml.Len()))

			before := b.Tiles()
			beforeKey := b.Key()
			if err := b.Apply(m); err != nil {
				t.Fatalf("variant %d: legal move %v rejected: %v", variant, m, err)
			}
			b.Undo(m)
			if b.Tiles() != before || b.Key() != beforeKey {
				t.Fatalf("variant %d: apply+undo of %v changed the board", variant, m)
			}

			// Walk on so the property is checked across many states.
			b.Apply(m)
		}
	}
}

func TestKeyMatchesTiles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := Goal(VariantTwo)
	seen := make(map[uint64][NumCells]Tile)

	for step := 0; step < 300; step++ {
		var ml MoveList
		b.LegalMoves(&ml)
		b.Apply(ml.Get(rng.Intn(ml.Len())))

		if prev, ok := seen[b.Key()]; ok && prev != b.Tiles() {
			t.Fatalf("key collision: %v vs %v", prev, b.Tiles())
		}
		seen[b.Key()] = b.Tiles()
	}
}

func TestSolvable(t *testing.T) {
	if !Goal(VariantOne).Solvable() {
		t.Error("goal must be solvable")
	}

	// Korf benchmark instance #1.
	korf1 := [NumCells]Tile{14, 13, 15, 7, 11, 12, 9, 5, 6, 0, 2, 1, 4, 8, 10, 3}
	b, err := New(korf1, VariantOne)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Solvable() {
		t.Error("Korf #1 must be solvable")
	}

	// Swapping two tiles flips the permutation parity.
	swapped := goalTiles()
	swapped[1], swapped[2] = swapped[2], swapped[1]
	b, err = New(swapped, VariantOne)
	if err != nil {
		t.Fatal(err)
	}
	if b.Solvable() {
		t.Error("two swapped tiles must be unsolvable")
	}

	// Solvability is invariant under every legal move.
	rng := rand.New(rand.NewSource(3))
	for _, variant := range []Variant{VariantOne, VariantTwo} {
		walk := Goal(variant)
		for step := 0; step < 200; step++ {
			var ml MoveList
			walk.LegalMoves(&ml)
			walk.Apply(ml.Get(rng.Intn(ml.Len())))
			if !walk.Solvable() {
				t.Fatalf("variant %d: reachable state reported unsolvable:\n%s", variant, walk)
			}
		}
	}
}

func TestMoveEncoding(t *testing.T) {
	for _, dir := range []Direction{Left, Right, Up, Down} {
		for steps := 1; steps <= 3; steps++ {
			m := NewMove(dir, steps)
			if m.Dir() != dir || m.Steps() != steps {
				t.Errorf("NewMove(%v, %d) decoded as (%v, %d)", dir, steps, m.Dir(), m.Steps())
			}
			r := m.Reverse()
			if r.Dir() != dir.Reverse() || r.Steps() != steps {
				t.Errorf("Reverse of %v = %v", m, r)
			}
			if r.Reverse() != m {
				t.Errorf("double reverse of %v = %v", m, r.Reverse())
			}
		}
	}
}
