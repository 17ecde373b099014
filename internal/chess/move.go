package chess

// Move is a request to relocate the piece on Start to End. Promotion is
// empty unless a pawn reaches the last row.
type Move struct {
	Start     Position  `json:"start"`
	End       Position  `json:"end"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func NewMove(start, end Position, promotion PieceType) Move {
	return Move{Start: start, End: end, Promotion: promotion}
}

// String renders the move in long algebraic form, e.g. "e7e8q".
func (m Move) String() string {
	return m.Start.Notation() + m.End.Notation() + m.Promotion.letter()
}

func (m Move) rowDelta() int {
	return m.End.Row - m.Start.Row
}

func (m Move) colDelta() int {
	return m.End.Col - m.Start.Col
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func lessMove(a, b Move) bool {
	if a.Start != b.Start {
		return a.Start.less(b.Start)
	}
	if a.End != b.End {
		return a.End.less(b.End)
	}
	return a.Promotion < b.Promotion
}
