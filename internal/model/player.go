package model

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-server/internal/chess"
)

type PlayerColor string

const (
	PlayerColorWhite    PlayerColor = PlayerColor(chess.White)
	PlayerColorBlack    PlayerColor = PlayerColor(chess.Black)
	PlayerColorObserver PlayerColor = "OBSERVER"
)

// ParsePlayerColor accepts any letter case. An empty string means observer.
func ParsePlayerColor(s string) (PlayerColor, error) {
	switch c := PlayerColor(strings.ToUpper(strings.TrimSpace(s))); c {
	case PlayerColorWhite, PlayerColorBlack, PlayerColorObserver:
		return c, nil
	case "":
		return PlayerColorObserver, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

type Player struct {
	ID    string
	Color PlayerColor
}

type ClientPlayer struct {
	ID    string      `json:"id"`
	Color PlayerColor `json:"color"`
}
