package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Name string `json:"name"`
}

type joinGameRequest struct {
	Color string `json:"color"`
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

// parseOptionalBody decodes the body into out unless it is empty.
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	return nil
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var body createGameRequest
	if err := parseOptionalBody(c, &body); err != nil {
		return respondError(c, err)
	}

	gameID, err := gc.gameService.CreateGame(body.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	games, err := gc.gameService.ListGames()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"games": games,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	var body joinGameRequest
	if err := parseOptionalBody(c, &body); err != nil {
		return respondError(c, err)
	}

	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c), body.Color)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(gameState)
}

// GetValidMoves answers GET /:gameId/moves?row=&col= with a bare move list.
func (gc *GameController) GetValidMoves(c *fiber.Ctx) error {
	sq := model.Square{Row: c.QueryInt("row"), Col: c.QueryInt("col")}
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), sq)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId"), playerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(playerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.LeaveMatchmaking(playerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	return c.JSON(gc.gameService.MatchmakingStatus(playerID(c)))
}
