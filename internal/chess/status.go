package chess

import "fmt"

type Status uint8

const (
	StatusActive Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return ""
	}
}

func (s Status) IsOver() bool {
	return s == StatusCheckmate || s == StatusStalemate
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusActive, StatusCheck, StatusCheckmate, StatusStalemate} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// KingPosition locates color's king. Boards set up by hand may have none or
// several, which are reported as errors rather than guessed.
func (g *Game) KingPosition(color Color) (Position, error) {
	kings := g.board.kingPositions(color)
	switch len(kings) {
	case 0:
		return Position{}, fmt.Errorf("%w: %s", ErrKingNotFound, color)
	case 1:
		return kings[0], nil
	default:
		return Position{}, fmt.Errorf("%w: %s has %d", ErrMultipleKings, color, len(kings))
	}
}

func (g *Game) IsInCheck(color Color) bool {
	return g.isKingAttacked(color)
}

// IsInStalemate is only ever true for the side to move.
func (g *Game) IsInStalemate(color Color) bool {
	if color != g.turn {
		return false
	}
	return !g.IsInCheck(color) && !g.hasLegalMove(color)
}

// IsInCheckmate reports color in check with no valid move. Outside free-setup
// mode a side that is not to move has no valid moves.
func (g *Game) IsInCheckmate(color Color) bool {
	return g.IsInCheck(color) && !g.hasLegalMove(color)
}

func (g *Game) hasLegalMove(color Color) bool {
	for _, pos := range g.board.Occupied() {
		piece, _ := g.board.Piece(pos)
		if piece.Color == color && len(g.ValidMoves(pos)) > 0 {
			return true
		}
	}
	return false
}

// Status summarizes the position for the side to move.
func (g *Game) Status() Status {
	switch {
	case g.IsInCheckmate(g.turn):
		return StatusCheckmate
	case g.IsInStalemate(g.turn):
		return StatusStalemate
	case g.IsInCheck(g.turn):
		return StatusCheck
	default:
		return StatusActive
	}
}
