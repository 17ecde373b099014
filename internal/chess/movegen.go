package chess

type direction struct {
	dr, dc int
}

var (
	diagonalDirs   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonalDirs = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	allDirs        = append(append([]direction{}, diagonalDirs...), orthogonalDirs...)
	knightJumps    = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// PieceMoves returns the pseudo-legal moves of the piece on pos: moves that
// respect geometry and occupancy but may leave the mover's king in check.
// Castling and en passant are not included.
func PieceMoves(b *Board, pos Position) []Move {
	piece, ok := b.Piece(pos)
	if !ok || !pos.Valid() {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, pos, piece.Color)
	case Knight:
		return stepMoves(b, pos, piece.Color, knightJumps)
	case Bishop:
		return slideMoves(b, pos, piece.Color, diagonalDirs)
	case Rook:
		return slideMoves(b, pos, piece.Color, orthogonalDirs)
	case Queen:
		return slideMoves(b, pos, piece.Color, allDirs)
	case King:
		return stepMoves(b, pos, piece.Color, allDirs)
	default:
		return nil
	}
}

func slideMoves(b *Board, from Position, color Color, dirs []direction) []Move {
	var moves []Move
	for _, dir := range dirs {
		target, ok := from.offset(dir.dr, dir.dc)
		for ok {
			if b.isEmpty(target) {
				moves = append(moves, Move{Start: from, End: target})
			} else {
				if b.isEnemy(target, color) {
					moves = append(moves, Move{Start: from, End: target})
				}
				break
			}
			target, ok = target.offset(dir.dr, dir.dc)
		}
	}
	return moves
}

func stepMoves(b *Board, from Position, color Color, offsets []direction) []Move {
	var moves []Move
	for _, dir := range offsets {
		target, ok := from.offset(dir.dr, dir.dc)
		if ok && (b.isEmpty(target) || b.isEnemy(target, color)) {
			moves = append(moves, Move{Start: from, End: target})
		}
	}
	return moves
}

func pawnMoves(b *Board, from Position, color Color) []Move {
	var moves []Move
	dir := color.forward()

	// Check move forward 1
	if one, ok := from.offset(dir, 0); ok && b.isEmpty(one) {
		moves = appendPawnMove(moves, from, one)
		// Check move forward 2 from the home row
		if from.Row == color.pawnHomeRow() {
			if two, ok := from.offset(2*dir, 0); ok && b.isEmpty(two) {
				moves = append(moves, Move{Start: from, End: two})
			}
		}
	}
	// Check captures left and right
	for _, dc := range []int{-1, 1} {
		if target, ok := from.offset(dir, dc); ok && b.isEnemy(target, color) {
			moves = appendPawnMove(moves, from, target)
		}
	}
	return moves
}

// appendPawnMove expands a move onto the last row into one move per promotion type.
func appendPawnMove(moves []Move, from, to Position) []Move {
	if to.Row != MinIndex && to.Row != MaxIndex {
		return append(moves, Move{Start: from, End: to})
	}
	for _, promotion := range PromotionTypes {
		moves = append(moves, Move{Start: from, End: to, Promotion: promotion})
	}
	return moves
}

// pawnAttacks lists the two forward diagonals of a pawn, occupied or not.
func pawnAttacks(from Position, color Color) []Position {
	var attacks []Position
	for _, dc := range []int{-1, 1} {
		if target, ok := from.offset(color.forward(), dc); ok {
			attacks = append(attacks, target)
		}
	}
	return attacks
}
