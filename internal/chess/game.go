package chess

import (
	"fmt"
	"sort"
)

// Game owns a board and the color whose turn it is. It is not safe for
// concurrent use; callers sharing a Game must serialize access.
type Game struct {
	board *Board
	turn  Color
}

// NewGame returns a game on an empty free-setup board with White to move.
func NewGame() *Game {
	return &Game{
		board: NewBoard(),
		turn:  White,
	}
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) SetTurn(color Color) {
	g.turn = color
}

// ResetBoard sets up the standard opening with White to move.
func (g *Game) ResetBoard() {
	g.board.ResetBoard()
	g.turn = White
}

// ValidMoves returns the legal moves of the piece on start, sorted. Outside
// free-setup mode only the side to move has legal moves.
func (g *Game) ValidMoves(start Position) []Move {
	piece, ok := g.board.Piece(start)
	if !ok || !start.Valid() || (!g.board.FreeSetupMode() && piece.Color != g.turn) {
		return []Move{}
	}
	return g.legalMoves(start, piece)
}

func (g *Game) legalMoves(start Position, piece Piece) []Move {
	legal := []Move{}
	for _, move := range PieceMoves(g.board, start) {
		if g.leavesKingSafe(move, piece.Color, nil) {
			legal = append(legal, move)
		}
	}
	switch piece.Type {
	case Pawn:
		legal = append(legal, g.enPassantMoves(start, piece.Color)...)
	case King:
		legal = append(legal, g.castlingMoves(start, piece.Color)...)
	}
	sort.Slice(legal, func(i, j int) bool { return lessMove(legal[i], legal[j]) })
	return legal
}

// leavesKingSafe plays move on the live board, tests whether color's king is
// attacked and restores the touched squares. captured names an extra square
// emptied by the move (en passant).
func (g *Game) leavesKingSafe(move Move, color Color, captured *Position) bool {
	touched := []Position{move.Start, move.End}
	if captured != nil {
		touched = append(touched, *captured)
	}
	snap := g.board.snapshot(touched...)
	defer g.board.restore(snap)

	if captured != nil {
		g.board.RemovePiece(*captured)
	}
	g.board.relocate(move.Start, move.End)
	return !g.isKingAttacked(color)
}

// isKingAttacked reports whether any king of color is attacked. A side
// without a king is never in check.
func (g *Game) isKingAttacked(color Color) bool {
	for _, pos := range g.board.kingPositions(color) {
		if g.IsSquareUnderAttack(pos, color) {
			return true
		}
	}
	return false
}

// IsSquareUnderAttack reports whether any piece of color's opponent could
// capture on pos. Kings only reach adjacent squares and pawns only their
// forward diagonals.
func (g *Game) IsSquareUnderAttack(pos Position, color Color) bool {
	enemy := color.Opposite()
	for from, sq := range g.board.squares {
		if sq.piece.Color != enemy {
			continue
		}
		if sq.piece.Type == Pawn {
			for _, target := range pawnAttacks(from, enemy) {
				if target == pos {
					return true
				}
			}
			continue
		}
		for _, move := range PieceMoves(g.board, from) {
			if move.End == pos {
				return true
			}
		}
	}
	return false
}

func (g *Game) enPassantMoves(start Position, color Color) []Move {
	if start.Row != color.enPassantRow() {
		return nil
	}
	last, ok := g.board.LastMove()
	if !ok {
		return nil
	}
	var moves []Move
	for _, dc := range []int{-1, 1} {
		adjacent, ok := start.offset(0, dc)
		if !ok {
			continue
		}
		passed, ok := g.board.Piece(adjacent)
		if !ok || passed.Type != Pawn || passed.Color == color {
			continue
		}
		// the passed pawn must have just advanced two squares from its home row
		if last.End != adjacent || last.Start != (Position{Row: passed.Color.pawnHomeRow(), Col: adjacent.Col}) {
			continue
		}
		end, ok := start.offset(color.forward(), dc)
		if !ok || !g.board.isEmpty(end) {
			continue
		}
		move := Move{Start: start, End: end}
		if g.leavesKingSafe(move, color, &adjacent) {
			moves = append(moves, move)
		}
	}
	return moves
}

const kingHomeCol = 5

func (g *Game) castlingMoves(start Position, color Color) []Move {
	var moves []Move
	for _, kingSide := range []bool{true, false} {
		if !g.canCastle(start, color, kingSide) {
			continue
		}
		dc := -2
		if kingSide {
			dc = 2
		}
		moves = append(moves, Move{Start: start, End: Position{Row: start.Row, Col: start.Col + dc}})
	}
	return moves
}

func (g *Game) canCastle(kingPos Position, color Color, kingSide bool) bool {
	if kingPos != (Position{Row: color.backRow(), Col: kingHomeCol}) || g.board.HasMoved(kingPos) {
		return false
	}
	king, ok := g.board.Piece(kingPos)
	if !ok || king.Type != King || king.Color != color {
		return false
	}

	rookCol, step := MinIndex, -1
	if kingSide {
		rookCol, step = MaxIndex, 1
	}
	rookPos := Position{Row: kingPos.Row, Col: rookCol}
	rook, ok := g.board.Piece(rookPos)
	if !ok || rook.Type != Rook || rook.Color != color || g.board.HasMoved(rookPos) {
		return false
	}

	for col := kingPos.Col + step; col != rookCol; col += step {
		if !g.board.isEmpty(Position{Row: kingPos.Row, Col: col}) {
			return false
		}
	}
	// the king may not start on, cross or land on an attacked square
	for i := 0; i <= 2; i++ {
		if g.IsSquareUnderAttack(Position{Row: kingPos.Row, Col: kingPos.Col + i*step}, color) {
			return false
		}
	}
	return true
}

// MakeMove validates move against ValidMoves and applies it. On error the
// game is left untouched. In free-setup mode the mover's color becomes the
// turn and the turn is not flipped afterwards.
func (g *Game) MakeMove(move Move) error {
	piece, ok := g.board.Piece(move.Start)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", ErrInvalidMove, move.Start)
	}
	if !g.isValid(move) {
		return fmt.Errorf("%w: %s", ErrInvalidMove, move)
	}
	if g.board.FreeSetupMode() {
		g.turn = piece.Color
	}

	g.board.SetLastMove(move)
	g.execute(move, piece)

	if !g.board.FreeSetupMode() {
		g.turn = g.turn.Opposite()
	}
	return nil
}

func (g *Game) isValid(move Move) bool {
	for _, valid := range g.ValidMoves(move.Start) {
		if valid == move {
			return true
		}
	}
	return false
}

func (g *Game) execute(move Move, piece Piece) {
	b := g.board
	b.markMoved(move.Start)

	switch piece.Type {
	case Pawn:
		// a diagonal step onto an empty square is an en passant capture
		if abs(move.colDelta()) == 1 && b.isEmpty(move.End) {
			b.RemovePiece(Position{Row: move.Start.Row, Col: move.End.Col})
		}
	case King:
		if abs(move.colDelta()) == 2 {
			rookFrom := Position{Row: move.Start.Row, Col: MinIndex}
			rookTo := Position{Row: move.Start.Row, Col: move.End.Col + 1}
			if move.colDelta() > 0 {
				rookFrom.Col = MaxIndex
				rookTo.Col = move.End.Col - 1
			}
			b.relocate(rookFrom, rookTo)
			b.markMoved(rookTo)
		}
	}

	b.relocate(move.Start, move.End)
	if piece.Type == Pawn && move.Promotion != "" {
		b.squares[move.End] = square{piece: Piece{Color: piece.Color, Type: move.Promotion}, moved: true}
	}
}
