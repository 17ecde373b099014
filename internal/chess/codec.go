package chess

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Snapshot is the persisted form of a Game. Board maps "{row}:{col}" keys to
// "{COLOR}:{TYPE}" values. FreeSetup, LastMove and Moved are optional; a
// snapshot without them restores as a free-setup board.
type Snapshot struct {
	Turn      Color             `json:"turn"`
	Board     map[string]string `json:"board"`
	FreeSetup *bool             `json:"freeSetup,omitempty"`
	LastMove  *Move             `json:"lastMove,omitempty"`
	Moved     []string          `json:"moved,omitempty"`
}

func EncodeBoard(b *Board) map[string]string {
	encoded := make(map[string]string, b.Len())
	for pos, sq := range b.squares {
		encoded[pos.Key()] = sq.piece.String()
	}
	return encoded
}

// DecodeBoard rebuilds a free-setup board from EncodeBoard output.
func DecodeBoard(encoded map[string]string) (*Board, error) {
	b := NewBoard()
	for key, value := range encoded {
		pos, err := ParsePositionKey(key)
		if err != nil {
			return nil, err
		}
		piece, err := parsePiece(value)
		if err != nil {
			return nil, err
		}
		b.AddPiece(pos, piece)
	}
	return b, nil
}

func parsePiece(value string) (Piece, error) {
	color, pieceType, ok := strings.Cut(value, ":")
	if !ok {
		return Piece{}, fmt.Errorf("%w: %q", ErrInvalidPiece, value)
	}
	return NewPiece(Color(color), PieceType(pieceType))
}

func (g *Game) Snapshot() Snapshot {
	freeSetup := g.board.freeSetup
	s := Snapshot{
		Turn:      g.turn,
		Board:     EncodeBoard(g.board),
		FreeSetup: &freeSetup,
	}
	if last, ok := g.board.LastMove(); ok {
		s.LastMove = &last
	}
	for _, pos := range g.board.Occupied() {
		if g.board.HasMoved(pos) {
			s.Moved = append(s.Moved, pos.Key())
		}
	}
	return s
}

func RestoreGame(s Snapshot) (*Game, error) {
	if !s.Turn.Valid() {
		return nil, fmt.Errorf("%w: turn %q", ErrInvalidColor, s.Turn)
	}
	b, err := DecodeBoard(s.Board)
	if err != nil {
		return nil, err
	}
	if s.FreeSetup != nil {
		b.freeSetup = *s.FreeSetup
	}
	if s.LastMove != nil {
		if !s.LastMove.Start.Valid() || !s.LastMove.End.Valid() {
			return nil, fmt.Errorf("%w: last move %v", ErrInvalidPosition, *s.LastMove)
		}
		b.SetLastMove(*s.LastMove)
	}
	for _, key := range s.Moved {
		pos, err := ParsePositionKey(key)
		if err != nil {
			return nil, err
		}
		b.markMoved(pos)
	}
	return &Game{board: b, turn: s.Turn}, nil
}

func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	restored, err := RestoreGame(s)
	if err != nil {
		return err
	}
	*g = *restored
	return nil
}
