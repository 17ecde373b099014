package chess

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinIndex = 1
	MaxIndex = 8
)

// Position is a board square addressed by row (rank) and column (file),
// both counted from 1. White starts on rows 1 and 2.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) (Position, error) {
	if !inBounds(row, col) {
		return Position{}, fmt.Errorf("%w: row=%d col=%d", ErrInvalidPosition, row, col)
	}
	return Position{Row: row, Col: col}, nil
}

func inBounds(row, col int) bool {
	return row >= MinIndex && row <= MaxIndex && col >= MinIndex && col <= MaxIndex
}

// Valid reports whether p lies on the board. The zero Position is not valid.
func (p Position) Valid() bool {
	return inBounds(p.Row, p.Col)
}

// offset returns the square dr rows and dc columns away, if it is on the board.
func (p Position) offset(dr, dc int) (Position, bool) {
	row, col := p.Row+dr, p.Col+dc
	if !inBounds(row, col) {
		return Position{}, false
	}
	return Position{Row: row, Col: col}, true
}

// Key renders the position as "{row}:{col}", the form used by the board codec.
func (p Position) Key() string {
	return strconv.Itoa(p.Row) + ":" + strconv.Itoa(p.Col)
}

func ParsePositionKey(key string) (Position, error) {
	rowPart, colPart, ok := strings.Cut(key, ":")
	if !ok {
		return Position{}, fmt.Errorf("%w: key %q", ErrInvalidPosition, key)
	}
	row, err := strconv.Atoi(rowPart)
	if err != nil {
		return Position{}, fmt.Errorf("%w: key %q", ErrInvalidPosition, key)
	}
	col, err := strconv.Atoi(colPart)
	if err != nil {
		return Position{}, fmt.Errorf("%w: key %q", ErrInvalidPosition, key)
	}
	return NewPosition(row, col)
}

// Notation returns the algebraic square name, e.g. "e4".
func (p Position) Notation() string {
	if !p.Valid() {
		return ""
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

func (p Position) String() string {
	return p.Notation()
}

// AllPositions lists every square row by row, starting at (1,1).
func AllPositions() []Position {
	positions := make([]Position, 0, MaxIndex*MaxIndex)
	for row := MinIndex; row <= MaxIndex; row++ {
		for col := MinIndex; col <= MaxIndex; col++ {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	return positions
}

func (p Position) less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}
