package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"chessrules/internal/engine"
	"chessrules/internal/report"
	"chessrules/internal/storage"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// MatchFoundEvent notifies a queued player of their pairing.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}

// GameManager owns every live session plus the matchmaking queue. The
// store may be nil; persistence is a collaborator, never a rule source.
type GameManager struct {
	games            map[string]*gameSession
	queue            *matchQueue
	matchingChannels map[string]chan string
	store            *storage.Store
	mu               sync.RWMutex
}

func NewGameManager(store *storage.Store) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*gameSession),
		queue:            newMatchQueue(),
		matchingChannels: make(map[string]chan string),
		store:            store,
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	// The channel creator closes it; only drop the registration here.
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs the two longest-waiting players once a second.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		for gm.queue.size() >= 2 {
			p1, p2 := gm.queue.nextPair()

			gameID := uuid.New().String()
			session := newGameSession(gameID)

			c1, err := session.addPlayer(p1)
			if err != nil {
				log.Printf("matchmaking: seat %s: %v", p1, err)
				continue
			}
			c2, err := session.addPlayer(p2)
			if err != nil {
				log.Printf("matchmaking: seat %s: %v", p2, err)
				continue
			}
			gm.games[gameID] = session
			if gm.store != nil {
				gm.store.SaveGame(gameID)
			}

			gm.notifyMatch(p1, MatchFoundEvent{GameID: gameID, Color: c1})
			gm.notifyMatch(p2, MatchFoundEvent{GameID: gameID, Color: c2})
		}
		gm.mu.Unlock()
	}
}

// notifyMatch sends the pairing event and retires the player's channel.
// Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s not receiving", playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = newGameSession(gameID)
	if gm.store != nil {
		gm.store.SaveGame(gameID)
	}
	return nil
}

func (gm *GameManager) getSession(gameID string) (*gameSession, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (engine.Color, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return "", err
	}
	return session.addPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.addPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (engine.GameState, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return engine.GameState{}, err
	}
	return session.state(), nil
}

func (gm *GameManager) GetLegalMoves(gameID string, color engine.Color) ([]engine.Move, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return nil, err
	}
	if !color.Valid() {
		return nil, errors.New("invalid color")
	}
	return session.legalMoves(color), nil
}

// MakeMove plays a move on the session, persists it on success, and
// broadcasts the new state.
func (gm *GameManager) MakeMove(gameID, playerID string, mv engine.Move) (*report.Result, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return nil, err
	}

	result := session.makeMove(playerID, mv)
	if result.Success {
		if res, ok := result.Data.(*engine.MoveResult); ok && gm.store != nil {
			gm.store.RecordMove(gameID, res.MoveHistoryLength, res.Move)
			if res.GameStatus == engine.StatusCheckmate || res.GameStatus == engine.StatusStalemate {
				gm.store.SetResult(gameID, res.GameStatus, res.Winner)
			}
		}
		go session.broadcastState()
	}
	return result, nil
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	session, err := gm.getSession(gameID)
	if err != nil {
		return err
	}
	return session.registerConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return
	}
	session.unregisterConnection(playerID)
}
