package chess

import (
	"testing"

	"github.com/benbeisheim/chess-server/internal/testutil"
)

func TestNewPosition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		row, col int
		wantErr  bool
	}{
		{name: "corner a1", row: 1, col: 1},
		{name: "corner h8", row: 8, col: 8},
		{name: "center", row: 4, col: 5},
		{name: "row zero", row: 0, col: 1, wantErr: true},
		{name: "col zero", row: 1, col: 0, wantErr: true},
		{name: "row nine", row: 9, col: 4, wantErr: true},
		{name: "col nine", row: 4, col: 9, wantErr: true},
		{name: "negative", row: -1, col: -1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosition(tt.row, tt.col)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, ErrInvalidPosition)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, Position{Row: tt.row, Col: tt.col})
		})
	}
}

func TestParsePositionKey(t *testing.T) {
	t.Parallel()
	got, err := ParsePositionKey("4:5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, pos(4, 5))
	testutil.AssertEqual(t, got.Key(), "4:5")

	for _, key := range []string{"", "45", "a:1", "1:b", "0:1", "9:9", "1:", ":1"} {
		_, err := ParsePositionKey(key)
		testutil.AssertErrorIs(t, err, ErrInvalidPosition, "key %q", key)
	}
}

func TestPositionNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		p    Position
		want string
	}{
		{pos(1, 1), "a1"},
		{pos(4, 5), "e4"},
		{pos(8, 8), "h8"},
		{Position{}, ""},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.p.Notation(), tt.want)
	}
}

func TestAllPositions(t *testing.T) {
	t.Parallel()
	all := AllPositions()
	testutil.AssertEqual(t, len(all), 64)
	testutil.AssertEqual(t, all[0], pos(1, 1))
	testutil.AssertEqual(t, all[63], pos(8, 8))

	seen := make(map[Position]bool)
	for _, p := range all {
		testutil.AssertTrue(t, p.Valid(), "position %v", p)
		testutil.AssertFalse(t, seen[p], "duplicate %v", p)
		seen[p] = true
	}
}

func TestMoveString(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, NewMove(pos(2, 5), pos(4, 5), "").String(), "e2e4")
	testutil.AssertEqual(t, NewMove(pos(7, 1), pos(8, 1), Queen).String(), "a7a8q")
}
