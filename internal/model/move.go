package model

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-server/internal/chess"
)

// Square is a board coordinate as clients send it. It is validated only when
// converted to a chess.Position.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func squareOf(p chess.Position) Square {
	return Square{Row: p.Row, Col: p.Col}
}

func (s Square) Position() (chess.Position, error) {
	return chess.NewPosition(s.Row, s.Col)
}

type MoveRequest struct {
	From      Square `json:"from"`
	To        Square `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (r MoveRequest) ToMove() (chess.Move, error) {
	from, err := r.From.Position()
	if err != nil {
		return chess.Move{}, fmt.Errorf("from: %w", err)
	}
	to, err := r.To.Position()
	if err != nil {
		return chess.Move{}, fmt.Errorf("to: %w", err)
	}
	var promotion chess.PieceType
	if r.Promotion != "" {
		promotion = chess.PieceType(strings.ToUpper(r.Promotion))
		if !promotion.IsPromotion() {
			return chess.Move{}, fmt.Errorf("%w: promotion %q", chess.ErrInvalidPiece, r.Promotion)
		}
	}
	return chess.NewMove(from, to, promotion), nil
}
