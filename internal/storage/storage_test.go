package storage

import (
	"path/filepath"
	"testing"
	"time"

	"chessrules/internal/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return s
}

// waitForMoves polls until the async writer has flushed count rows.
func waitForMoves(t *testing.T, s *Store, gameID string, count int) []StoredMove {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		moves, err := s.LoadMoves(gameID)
		if err != nil {
			t.Fatalf("LoadMoves: %v", err)
		}
		if len(moves) >= count {
			return moves
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d moves, have %d", count, len(moves))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStoreRecordsMoves(t *testing.T) {
	s := newTestStore(t)
	s.SaveGame("g1")

	s.RecordMove("g1", 1, engine.MoveRecord{
		From:     engine.Position{Row: 6, Col: 4},
		To:       engine.Position{Row: 4, Col: 4},
		Piece:    engine.Pawn,
		Color:    engine.White,
		Notation: "e4",
	})
	s.RecordMove("g1", 2, engine.MoveRecord{
		From:     engine.Position{Row: 1, Col: 4},
		To:       engine.Position{Row: 3, Col: 4},
		Piece:    engine.Pawn,
		Color:    engine.Black,
		Notation: "e5",
	})

	moves := waitForMoves(t, s, "g1", 2)
	if moves[0].Ply != 1 || moves[0].Notation != "e4" || moves[0].Color != engine.White {
		t.Errorf("first stored move = %+v", moves[0])
	}
	if moves[1].Ply != 2 || moves[1].Notation != "e5" {
		t.Errorf("second stored move = %+v", moves[1])
	}
	if moves[0].From != (engine.Position{Row: 6, Col: 4}) {
		t.Errorf("stored origin = %v", moves[0].From)
	}
	if !s.IsHealthy() {
		t.Error("store should stay healthy after successful writes")
	}
}

func TestRecordMoveIsIdempotentPerPly(t *testing.T) {
	s := newTestStore(t)
	s.SaveGame("g1")

	rec := engine.MoveRecord{
		From:     engine.Position{Row: 6, Col: 4},
		To:       engine.Position{Row: 4, Col: 4},
		Piece:    engine.Pawn,
		Color:    engine.White,
		Notation: "e4",
	}
	s.RecordMove("g1", 1, rec)
	s.RecordMove("g1", 1, rec)

	waitForMoves(t, s, "g1", 1)
	time.Sleep(50 * time.Millisecond)
	moves, err := s.LoadMoves("g1")
	if err != nil {
		t.Fatalf("LoadMoves: %v", err)
	}
	if len(moves) != 1 {
		t.Errorf("replayed ply stored %d rows, want 1", len(moves))
	}
}

func TestLoadMovesUnknownGame(t *testing.T) {
	s := newTestStore(t)
	moves, err := s.LoadMoves("missing")
	if err != nil {
		t.Fatalf("LoadMoves: %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("unknown game returned %d moves, want none", len(moves))
	}
}
