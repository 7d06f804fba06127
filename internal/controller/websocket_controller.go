package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"chessrules/internal/engine"
	"chessrules/internal/report"
	"chessrules/internal/service"
	"chessrules/internal/ws"

	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection runs the read loop for one websocket connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendResult(c, report.CreateError(engine.ErrMalformedMove, map[string]any{"parseError": err.Error()}))
			continue
		}

		if err := wsc.handleMessage(c, gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendResult(c, report.FromError(err))
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(c *websocket.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var mv engine.Move
		if err := json.Unmarshal(msg.Payload, &mv); err != nil {
			wsc.sendResult(c, report.CreateError(engine.ErrMalformedMove, map[string]any{"parseError": err.Error()}))
			return nil
		}
		result, err := wsc.gameService.HandleMove(gameID, playerID, mv)
		if err != nil {
			return err
		}
		if !result.Success {
			wsc.sendResult(c, result)
		}
		return nil

	case ws.MessageTypeLegalMoves:
		var req struct {
			Color engine.Color `json:"color"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.GetLegalMoves(gameID, req.Color)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(moves)
		if err != nil {
			return err
		}
		return c.WriteJSON(ws.Message{Type: ws.MessageTypeLegalMoves, Payload: payload})

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendResult(c *websocket.Conn, result *report.Result) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("marshal result: %v", err)
		return
	}
	if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Printf("send result: %v", err)
	}
}
