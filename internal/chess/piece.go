package chess

import "fmt"

type Color string

const (
	White Color = "WHITE"
	Black Color = "BLACK"
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return ""
	}
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// forward is the row direction pawns of this color advance in.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) pawnHomeRow() int {
	if c == White {
		return 2
	}
	return 7
}

func (c Color) backRow() int {
	if c == White {
		return 1
	}
	return 8
}

// enPassantRow is the row a pawn of this color must stand on to capture en passant.
func (c Color) enPassantRow() int {
	if c == White {
		return 5
	}
	return 4
}

type PieceType string

const (
	King   PieceType = "KING"
	Queen  PieceType = "QUEEN"
	Bishop PieceType = "BISHOP"
	Knight PieceType = "KNIGHT"
	Rook   PieceType = "ROOK"
	Pawn   PieceType = "PAWN"
)

// PromotionTypes are the piece types a pawn may become on the last row.
var PromotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

func (t PieceType) Valid() bool {
	switch t {
	case King, Queen, Bishop, Knight, Rook, Pawn:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether a pawn may promote to t.
func (t PieceType) IsPromotion() bool {
	for _, p := range PromotionTypes {
		if t == p {
			return true
		}
	}
	return false
}

func (t PieceType) letter() string {
	switch t {
	case King:
		return "k"
	case Queen:
		return "q"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Rook:
		return "r"
	case Pawn:
		return "p"
	}
	return ""
}

type Piece struct {
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
}

func NewPiece(color Color, pieceType PieceType) (Piece, error) {
	if !color.Valid() || !pieceType.Valid() {
		return Piece{}, fmt.Errorf("%w: %s %s", ErrInvalidPiece, color, pieceType)
	}
	return Piece{Color: color, Type: pieceType}, nil
}

func (p Piece) String() string {
	return string(p.Color) + ":" + string(p.Type)
}
