package service

import (
	"sync"
	"testing"

	"chessrules/internal/engine"
)

func mv(fromRow, fromCol, toRow, toCol int) engine.Move {
	return engine.Move{
		From: engine.Position{Row: fromRow, Col: fromCol},
		To:   engine.Position{Row: toRow, Col: toCol},
	}
}

func TestMatchQueue(t *testing.T) {
	q := newMatchQueue()
	if err := q.addPlayer("alice"); err != nil {
		t.Fatalf("addPlayer: %v", err)
	}
	if err := q.addPlayer("alice"); err == nil {
		t.Error("duplicate enqueue should fail")
	}
	if err := q.addPlayer("bob"); err != nil {
		t.Fatalf("addPlayer: %v", err)
	}
	if err := q.addPlayer("carol"); err != nil {
		t.Fatalf("addPlayer: %v", err)
	}
	if got := q.size(); got != 3 {
		t.Fatalf("size = %d, want 3", got)
	}

	p1, p2 := q.nextPair()
	if p1 != "alice" || p2 != "bob" {
		t.Errorf("nextPair = %s, %s; want the two longest waiting", p1, p2)
	}
	if got := q.size(); got != 1 {
		t.Errorf("size after pairing = %d, want 1", got)
	}
}

func TestSessionSeating(t *testing.T) {
	s := newGameSession("test-game")

	c1, err := s.addPlayer("alice")
	if err != nil || c1 != engine.White {
		t.Fatalf("first player seated as %s (%v), want white", c1, err)
	}
	c2, err := s.addPlayer("bob")
	if err != nil || c2 != engine.Black {
		t.Fatalf("second player seated as %s (%v), want black", c2, err)
	}
	if _, err := s.addPlayer("carol"); err == nil {
		t.Error("third player should be rejected")
	}
	if _, err := s.addPlayer("alice"); err == nil {
		t.Error("re-seating an existing player should be rejected")
	}

	if !s.isPlayerInGame("alice") || !s.isPlayerInGame("bob") {
		t.Error("seated players should be in the game")
	}
	if s.isPlayerInGame("carol") {
		t.Error("unseated player should not be in the game")
	}
	if s.canSpectate() {
		t.Error("a full game accepts no spectators")
	}
}

func TestSessionMakeMove(t *testing.T) {
	s := newGameSession("test-game")
	s.addPlayer("alice") // white
	s.addPlayer("bob")   // black

	res := s.makeMove("bob", mv(1, 4, 3, 4))
	if res.Success || res.ErrorCode != engine.ErrWrongTurn {
		t.Fatalf("black moving first = %+v, want WRONG_TURN", res)
	}
	res = s.makeMove("mallory", mv(6, 4, 4, 4))
	if res.Success || res.ErrorCode != engine.ErrWrongTurn {
		t.Fatalf("unseated player = %+v, want WRONG_TURN", res)
	}

	res = s.makeMove("alice", mv(6, 4, 4, 4))
	if !res.Success {
		t.Fatalf("legal opening move rejected: %+v", res)
	}
	moveRes, ok := res.Data.(*engine.MoveResult)
	if !ok {
		t.Fatalf("success data is %T, want *engine.MoveResult", res.Data)
	}
	if moveRes.CurrentTurn != engine.Black || moveRes.MoveHistoryLength != 1 {
		t.Errorf("result = turn %s, history %d; want black, 1", moveRes.CurrentTurn, moveRes.MoveHistoryLength)
	}

	res = s.makeMove("alice", mv(6, 3, 4, 3))
	if res.Success || res.ErrorCode != engine.ErrWrongTurn {
		t.Errorf("white moving twice = %+v, want WRONG_TURN", res)
	}

	res = s.makeMove("bob", mv(0, 0, 4, 0))
	if res.Success || res.ErrorCode != engine.ErrPathBlocked {
		t.Errorf("blocked rook move = %+v, want PATH_BLOCKED", res)
	}
}

func TestGameManagerLifecycle(t *testing.T) {
	gm := NewGameManager(nil)

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gm.CreateGame("g1"); err == nil {
		t.Error("duplicate game id should be rejected")
	}
	if _, err := gm.GetGameState("missing"); err == nil {
		t.Error("unknown game id should be rejected")
	}

	if _, err := gm.AddPlayerToGame("g1", "alice"); err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}
	if _, err := gm.AddPlayerToGame("g1", "bob"); err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}

	result, err := gm.MakeMove("g1", "alice", mv(6, 4, 4, 4))
	if err != nil || !result.Success {
		t.Fatalf("MakeMove = %+v, %v", result, err)
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.CurrentTurn != engine.Black || len(state.MoveHistory) != 1 {
		t.Errorf("state = turn %s, history %d; want black, 1", state.CurrentTurn, len(state.MoveHistory))
	}

	if _, err := gm.GetLegalMoves("g1", "purple"); err == nil {
		t.Error("invalid color should be rejected")
	}
	moves, err := gm.GetLegalMoves("g1", engine.Black)
	if err != nil {
		t.Fatalf("GetLegalMoves: %v", err)
	}
	if len(moves) != 20 {
		t.Errorf("black has %d replies to e4, want 20", len(moves))
	}
}

func TestSessionSerializesConcurrentMoves(t *testing.T) {
	s := newGameSession("test-game")
	s.addPlayer("alice")
	s.addPlayer("bob")

	// Many copies of the same opening move race; the per-session mutex must
	// let exactly one commit and reject the rest as out of turn.
	const attempts = 16
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res := s.makeMove("alice", mv(6, 4, 4, 4)); res.Success {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	if got := len(successes); got != 1 {
		t.Fatalf("%d concurrent copies of the move committed, want exactly 1", got)
	}
	state := s.state()
	if len(state.MoveHistory) != 1 || state.CurrentTurn != engine.Black {
		t.Errorf("state = history %d, turn %s; want 1, black", len(state.MoveHistory), state.CurrentTurn)
	}
}
