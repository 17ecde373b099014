package chess

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidPiece    = errors.New("invalid piece")
	ErrKingNotFound    = errors.New("king not found")
	ErrMultipleKings   = errors.New("multiple kings")
	ErrInvalidColor    = errors.New("invalid color")
)
