package puzzle

// LegalMoves fills ml with every move that is legal for the current
// position under the board's variant. The four unit moves come first,
// bounded by the border; under variant 2 the horizontal slides of 2 and
// 3 tiles follow, bounded by the distance to the border.
func (b *Board) LegalMoves(ml *MoveList) {
	ml.Clear()

	if b.blankCol > 0 {
		ml.Add(NewMove(Left, 1))
	}
	if b.blankCol < Size-1 {
		ml.Add(NewMove(Right, 1))
	}
	if b.blankRow > 0 {
		ml.Add(NewMove(Up, 1))
	}
	if b.blankRow < Size-1 {
		ml.Add(NewMove(Down, 1))
	}

	if b.variant != VariantTwo {
		return
	}
	for s := 2; s <= b.blankCol && s <= 3; s++ {
		ml.Add(NewMove(Left, s))
	}
	for s := 2; s <= Size-1-b.blankCol && s <= 3; s++ {
		ml.Add(NewMove(Right, s))
	}
}
