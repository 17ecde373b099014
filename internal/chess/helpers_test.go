package chess

import "sort"

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func white(t PieceType) Piece {
	return Piece{Color: White, Type: t}
}

func black(t PieceType) Piece {
	return Piece{Color: Black, Type: t}
}

// setupGame builds a free-setup game with the given pieces placed.
func setupGame(pieces map[Position]Piece) *Game {
	g := NewGame()
	for p, piece := range pieces {
		g.Board().AddPiece(p, piece)
	}
	return g
}

func sortMoves(moves []Move) []Move {
	sorted := append([]Move{}, moves...)
	sort.Slice(sorted, func(i, j int) bool { return lessMove(sorted[i], sorted[j]) })
	return sorted
}

// movesTo builds plain moves from start to each end.
func movesTo(start Position, ends ...Position) []Move {
	moves := make([]Move, 0, len(ends))
	for _, end := range ends {
		moves = append(moves, Move{Start: start, End: end})
	}
	return sortMoves(moves)
}

func promotionsTo(start, end Position) []Move {
	var moves []Move
	for _, promotion := range PromotionTypes {
		moves = append(moves, Move{Start: start, End: end, Promotion: promotion})
	}
	return moves
}

func containsMove(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
