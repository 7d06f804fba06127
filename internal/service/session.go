package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"chessrules/internal/engine"
	"chessrules/internal/report"
	"chessrules/internal/ws"

	"github.com/gofiber/websocket/v2"
)

type sessionPlayers struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// gameSession owns one engine instance. The engine itself is
// single-writer, so every state-touching call goes through mu.
type gameSession struct {
	id      string
	mu      sync.Mutex
	game    *engine.Game
	players sessionPlayers

	connMu      sync.RWMutex
	connections map[string]*websocket.Conn
}

func newGameSession(id string) *gameSession {
	return &gameSession{
		id:          id,
		game:        engine.NewGame(),
		connections: make(map[string]*websocket.Conn),
	}
}

// addPlayer seats the player on the first free color.
func (s *gameSession) addPlayer(playerID string) (engine.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.players.White == "" && s.players.Black != playerID:
		s.players.White = playerID
		return engine.White, nil
	case s.players.Black == "" && s.players.White != playerID:
		s.players.Black = playerID
		return engine.Black, nil
	case s.players.White == playerID || s.players.Black == playerID:
		return "", errors.New("player already seated")
	}
	return "", errors.New("game is full")
}

func (s *gameSession) colorOf(playerID string) (engine.Color, bool) {
	switch playerID {
	case s.players.White:
		return engine.White, playerID != ""
	case s.players.Black:
		return engine.Black, playerID != ""
	}
	return "", false
}

// makeMove serializes the engine call, maps the player to a color, and
// wraps the outcome in the reporter's envelope.
func (s *gameSession) makeMove(playerID string, mv engine.Move) *report.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, seated := s.colorOf(playerID)
	if !seated {
		return report.CreateError(engine.ErrWrongTurn, map[string]any{"playerId": playerID, "reason": "player not seated"})
	}
	if color != s.game.Turn() {
		return report.CreateError(engine.ErrWrongTurn, map[string]any{"playerId": playerID, "turn": s.game.Turn()})
	}

	res, err := s.game.MakeMove(mv)
	if err != nil {
		return report.FromError(err)
	}
	return report.Success("move played", res)
}

func (s *gameSession) state() engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetGameState()
}

func (s *gameSession) legalMoves(color engine.Color) []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetAllValidMoves(color)
}

func (s *gameSession) isPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, seated := s.colorOf(playerID)
	return seated
}

func (s *gameSession) canSpectate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players.White == "" || s.players.Black == ""
}

// registerConnection keeps at most one connection per player; duplicates
// are closed politely.
func (s *gameSession) registerConnection(playerID string, conn *websocket.Conn) error {
	if !s.isPlayerInGame(playerID) && !s.canSpectate() {
		return errors.New("not authorized to join this game")
	}

	s.connMu.Lock()
	if _, exists := s.connections[playerID]; exists {
		s.connMu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	s.connections[playerID] = conn
	s.connMu.Unlock()

	go s.broadcastState()
	return nil
}

func (s *gameSession) unregisterConnection(playerID string) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	delete(s.connections, playerID)
}

// broadcastState pushes the current snapshot to every registered
// connection, dropping connections that fail to write.
func (s *gameSession) broadcastState() {
	state := s.state()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", s.id, err)
		return
	}

	s.connMu.Lock()
	defer s.connMu.Unlock()
	for playerID, conn := range s.connections {
		msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", s.id, playerID, err)
			delete(s.connections, playerID)
		}
	}
}
