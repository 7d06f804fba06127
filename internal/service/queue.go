package service

import (
	"fmt"
	"sync"
	"time"
)

type queuedPlayer struct {
	playerID string
	joinedAt time.Time
}

// matchQueue holds players waiting for an opponent, oldest first.
type matchQueue struct {
	players []queuedPlayer
	mu      sync.Mutex
}

func newMatchQueue() *matchQueue {
	return &matchQueue{}
}

func (q *matchQueue) addPlayer(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.playerID == playerID {
			return fmt.Errorf("player already in queue")
		}
	}
	q.players = append(q.players, queuedPlayer{playerID: playerID, joinedAt: time.Now()})
	return nil
}

// nextPair pops the two longest-waiting players.
func (q *matchQueue) nextPair() (string, string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p1 := q.players[0].playerID
	p2 := q.players[1].playerID
	q.players = q.players[2:]
	return p1, p2
}

func (q *matchQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
