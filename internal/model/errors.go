package model

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrSeatTaken        = errors.New("seat is taken")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotAPlayer       = errors.New("player not in game")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidColor     = errors.New("invalid player color")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
	ErrConnectionExists = errors.New("connection already exists")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrNotQueued        = errors.New("player not in queue")
)
