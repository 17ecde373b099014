package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, model.ErrNotQueued):
		return fiber.StatusNotFound
	case errors.Is(err, chess.ErrInvalidMove),
		errors.Is(err, chess.ErrInvalidPosition),
		errors.Is(err, chess.ErrInvalidPiece),
		errors.Is(err, model.ErrInvalidRequest),
		errors.Is(err, model.ErrInvalidColor):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrSeatTaken),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrNotAPlayer),
		errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"error": msg}. Unexpected errors are logged and
// hidden from the client.
func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
