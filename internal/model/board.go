package model

import "github.com/benbeisheim/chess-server/internal/chess"

type PieceView struct {
	Square   Square          `json:"square"`
	Color    chess.Color     `json:"color"`
	Type     chess.PieceType `json:"type"`
	HasMoved bool            `json:"hasMoved"`
}

// BoardState is the client view of a board. King positions are nil when the
// board does not hold exactly one king of that color.
type BoardState struct {
	Pieces            []PieceView `json:"pieces"`
	WhiteKingPosition *Square     `json:"whiteKingPosition"`
	BlackKingPosition *Square     `json:"blackKingPosition"`
}

func newBoardState(g *chess.Game) BoardState {
	board := g.Board()
	state := BoardState{Pieces: make([]PieceView, 0, board.Len())}
	for _, pos := range board.Occupied() {
		piece, _ := board.Piece(pos)
		state.Pieces = append(state.Pieces, PieceView{
			Square:   squareOf(pos),
			Color:    piece.Color,
			Type:     piece.Type,
			HasMoved: board.HasMoved(pos),
		})
	}
	if pos, err := g.KingPosition(chess.White); err == nil {
		sq := squareOf(pos)
		state.WhiteKingPosition = &sq
	}
	if pos, err := g.KingPosition(chess.Black); err == nil {
		sq := squareOf(pos)
		state.BlackKingPosition = &sq
	}
	return state
}
