package service

import (
	"fmt"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// JoinGame seats playerID at color ("white", "black") or adds them as an
// observer when color is empty or "observer".
func (gs *GameService) JoinGame(gameID, playerID, color string) (model.PlayerColor, error) {
	c, err := model.ParsePlayerColor(color)
	if err != nil {
		return "", err
	}
	return gs.gameManager.AddPlayerToGame(gameID, playerID, c)
}

func (gs *GameService) CreateGame(name string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(name)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) ListGames() ([]model.MatchSummary, error) {
	return gs.gameManager.ListGames()
}

func (gs *GameService) GetGameState(gameID string) (model.MatchState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) ValidMoves(gameID string, sq model.Square) ([]chess.Move, error) {
	return gs.gameManager.ValidMoves(gameID, sq)
}

func (gs *GameService) HandleMove(gameID, playerID string, req model.MoveRequest) (model.MatchState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, req)
}

// DeleteGame removes a match. Only its seated players may delete it.
func (gs *GameService) DeleteGame(gameID, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if !game.IsPlayerInGame(playerID) {
		return model.ErrNotAPlayer
	}
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) error {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) MatchmakingStatus {
	return gs.gameManager.MatchmakingStatus(playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Connection) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn model.Connection) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Send writes msg to playerID's connection in a match. Replies go through
// the match so they never race its broadcasts.
func (gs *GameService) Send(gameID, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}
