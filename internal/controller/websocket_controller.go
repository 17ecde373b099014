package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		if msg, encErr := errorMessage(err); encErr == nil {
			c.WriteJSON(msg)
		}
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("game %s: read error from %s: %v", gameID, playerID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(gameID, playerID, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.reply(gameID, playerID, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
		// The resulting state reaches this connection through the broadcast.
		_, err := wsc.gameService.HandleMove(gameID, playerID, req)
		return err

	case ws.MessageTypeValidMoves:
		var sq model.Square
		if err := json.Unmarshal(msg.Payload, &sq); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
		moves, err := wsc.gameService.ValidMoves(gameID, sq)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeValidMoves, moves)
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, playerID, reply)

	default:
		return fmt.Errorf("%w: unknown message type %q", model.ErrInvalidRequest, msg.Type)
	}
}

func errorMessage(err error) (ws.Message, error) {
	return ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
}

func (wsc *WebSocketController) reply(gameID, playerID string, err error) {
	msg, encErr := errorMessage(err)
	if encErr != nil {
		log.Printf("game %s: encode error reply: %v", gameID, encErr)
		return
	}
	if sendErr := wsc.gameService.Send(gameID, playerID, msg); sendErr != nil {
		log.Printf("game %s: send error reply to %s: %v", gameID, playerID, sendErr)
	}
}
