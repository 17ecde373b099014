package chess

import "sort"

// square is the per-position record held by a Board. The moved flag sits
// next to the piece so simulated moves can snapshot and restore both.
type square struct {
	piece Piece
	moved bool
}

// Board maps positions to pieces. It remembers only the last applied move,
// which is all en passant needs.
type Board struct {
	squares   map[Position]square
	lastMove  *Move
	freeSetup bool
}

// NewBoard returns an empty board in free-setup mode.
func NewBoard() *Board {
	return &Board{
		squares:   make(map[Position]square),
		freeSetup: true,
	}
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// ResetBoard places the standard opening layout and leaves free-setup mode.
func (b *Board) ResetBoard() {
	b.squares = make(map[Position]square, 32)
	b.lastMove = nil
	b.freeSetup = false
	for col := MinIndex; col <= MaxIndex; col++ {
		for _, color := range []Color{White, Black} {
			b.squares[Position{Row: color.backRow(), Col: col}] = square{piece: Piece{Color: color, Type: backRank[col-1]}}
			b.squares[Position{Row: color.pawnHomeRow(), Col: col}] = square{piece: Piece{Color: color, Type: Pawn}}
		}
	}
}

// AddPiece places piece on pos, replacing whatever was there. The square's
// moved flag is cleared. Off-board positions are ignored.
func (b *Board) AddPiece(pos Position, piece Piece) {
	if !pos.Valid() {
		return
	}
	b.squares[pos] = square{piece: piece}
}

func (b *Board) RemovePiece(pos Position) {
	delete(b.squares, pos)
}

func (b *Board) Piece(pos Position) (Piece, bool) {
	sq, ok := b.squares[pos]
	return sq.piece, ok
}

// HasMoved reports whether the piece on pos has been relocated by a move.
func (b *Board) HasMoved(pos Position) bool {
	return b.squares[pos].moved
}

func (b *Board) LastMove() (Move, bool) {
	if b.lastMove == nil {
		return Move{}, false
	}
	return *b.lastMove, true
}

func (b *Board) SetLastMove(m Move) {
	b.lastMove = &m
}

// FreeSetupMode is true until the first ResetBoard. While set, turn order
// is not enforced.
func (b *Board) FreeSetupMode() bool {
	return b.freeSetup
}

func (b *Board) Len() int {
	return len(b.squares)
}

// Occupied returns every occupied position in row-major order.
func (b *Board) Occupied() []Position {
	positions := make([]Position, 0, len(b.squares))
	for pos := range b.squares {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].less(positions[j]) })
	return positions
}

func (b *Board) isEmpty(pos Position) bool {
	_, ok := b.squares[pos]
	return !ok
}

// isEnemy reports whether pos holds a piece not of color.
func (b *Board) isEnemy(pos Position, color Color) bool {
	sq, ok := b.squares[pos]
	return ok && sq.piece.Color != color
}

// relocate moves the record on from to to, keeping its moved flag.
func (b *Board) relocate(from, to Position) {
	sq := b.squares[from]
	delete(b.squares, from)
	b.squares[to] = sq
}

func (b *Board) markMoved(pos Position) {
	if sq, ok := b.squares[pos]; ok {
		sq.moved = true
		b.squares[pos] = sq
	}
}

// snapshot captures the records on a few squares so a simulated move can be
// undone exactly.
type squareSnapshot []struct {
	pos      Position
	sq       square
	occupied bool
}

func (b *Board) snapshot(positions ...Position) squareSnapshot {
	snap := make(squareSnapshot, len(positions))
	for i, pos := range positions {
		snap[i].pos = pos
		snap[i].sq, snap[i].occupied = b.squares[pos]
	}
	return snap
}

func (b *Board) restore(snap squareSnapshot) {
	for _, s := range snap {
		if s.occupied {
			b.squares[s.pos] = s.sq
		} else {
			delete(b.squares, s.pos)
		}
	}
}

func (b *Board) kingPositions(color Color) []Position {
	var kings []Position
	for pos, sq := range b.squares {
		if sq.piece.Type == King && sq.piece.Color == color {
			kings = append(kings, pos)
		}
	}
	return kings
}
