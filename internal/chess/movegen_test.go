package chess

import (
	"testing"

	"github.com/benbeisheim/chess-server/internal/testutil"
)

func TestPieceMovesOpenBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		piece Piece
		at    Position
		want  int
	}{
		{"rook center", white(Rook), pos(4, 4), 14},
		{"bishop center", white(Bishop), pos(4, 4), 13},
		{"queen center", black(Queen), pos(4, 4), 27},
		{"knight center", white(Knight), pos(4, 4), 8},
		{"knight corner", black(Knight), pos(1, 1), 2},
		{"king center", white(King), pos(4, 4), 8},
		{"king corner", white(King), pos(1, 1), 3},
		{"bishop corner", white(Bishop), pos(8, 8), 7},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			b.AddPiece(tt.at, tt.piece)
			testutil.AssertEqual(t, len(PieceMoves(b, tt.at)), tt.want)
		})
	}
}

func TestSlidingStopsAtPieces(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	b.AddPiece(pos(1, 1), white(Rook))
	b.AddPiece(pos(1, 3), white(Pawn))
	b.AddPiece(pos(3, 1), black(Pawn))

	got := sortMoves(PieceMoves(b, pos(1, 1)))
	testutil.AssertEqual(t, got, movesTo(pos(1, 1), pos(1, 2), pos(2, 1), pos(3, 1)))
}

func TestKnightSkipsOwnPieces(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	b.AddPiece(pos(1, 2), white(Knight))
	b.AddPiece(pos(3, 1), white(Pawn))
	b.AddPiece(pos(3, 3), black(Pawn))
	b.AddPiece(pos(2, 4), white(Pawn))

	got := sortMoves(PieceMoves(b, pos(1, 2)))
	testutil.AssertEqual(t, got, movesTo(pos(1, 2), pos(3, 3)))
}

func TestPawnMoves(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		pieces map[Position]Piece
		at     Position
		want   []Move
	}{
		{
			name:   "white double step from home row",
			pieces: map[Position]Piece{pos(2, 5): white(Pawn)},
			at:     pos(2, 5),
			want:   movesTo(pos(2, 5), pos(3, 5), pos(4, 5)),
		},
		{
			name:   "black double step from home row",
			pieces: map[Position]Piece{pos(7, 4): black(Pawn)},
			at:     pos(7, 4),
			want:   movesTo(pos(7, 4), pos(6, 4), pos(5, 4)),
		},
		{
			name:   "single step off home row",
			pieces: map[Position]Piece{pos(3, 5): white(Pawn)},
			at:     pos(3, 5),
			want:   movesTo(pos(3, 5), pos(4, 5)),
		},
		{
			name:   "blocked directly",
			pieces: map[Position]Piece{pos(2, 5): white(Pawn), pos(3, 5): black(Knight)},
			at:     pos(2, 5),
			want:   nil,
		},
		{
			name:   "double step blocked on destination",
			pieces: map[Position]Piece{pos(2, 5): white(Pawn), pos(4, 5): white(Knight)},
			at:     pos(2, 5),
			want:   movesTo(pos(2, 5), pos(3, 5)),
		},
		{
			name: "diagonal captures enemies only",
			pieces: map[Position]Piece{
				pos(4, 4): white(Pawn),
				pos(5, 5): black(Pawn),
				pos(5, 3): white(Pawn),
			},
			at:   pos(4, 4),
			want: movesTo(pos(4, 4), pos(5, 4), pos(5, 5)),
		},
		{
			name:   "promotion expands into four moves",
			pieces: map[Position]Piece{pos(7, 3): white(Pawn)},
			at:     pos(7, 3),
			want:   sortMoves(promotionsTo(pos(7, 3), pos(8, 3))),
		},
		{
			name: "black capture promotion",
			pieces: map[Position]Piece{
				pos(2, 2): black(Pawn),
				pos(1, 1): white(Rook),
			},
			at:   pos(2, 2),
			want: sortMoves(append(promotionsTo(pos(2, 2), pos(1, 2)), promotionsTo(pos(2, 2), pos(1, 1))...)),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			for p, piece := range tt.pieces {
				b.AddPiece(p, piece)
			}
			got := sortMoves(PieceMoves(b, tt.at))
			if tt.want == nil {
				tt.want = []Move{}
			}
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestPieceMovesEmptySquare(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, len(PieceMoves(NewBoard(), pos(4, 4))), 0)
}
