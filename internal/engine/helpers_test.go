package engine

import "testing"

type placement struct {
	at Position
	pc *Piece
}

func at(row, col int, pc *Piece) placement {
	return placement{at: Position{Row: row, Col: col}, pc: pc}
}

func wp(t PieceType) *Piece { return &Piece{Type: t, Color: White} }
func bp(t PieceType) *Piece { return &Piece{Type: t, Color: Black} }

func pos(row, col int) Position { return Position{Row: row, Col: col} }

func move(fromRow, fromCol, toRow, toCol int) Move {
	return Move{From: pos(fromRow, fromCol), To: pos(toRow, toCol)}
}

func buildGrid(pieces ...placement) [][]*Piece {
	grid := make([][]*Piece, 8)
	for r := range grid {
		grid[r] = make([]*Piece, 8)
	}
	for _, p := range pieces {
		grid[p.at.Row][p.at.Col] = p.pc
	}
	return grid
}

// buildBoard places pieces directly, skipping snapshot validation so
// board-level tests can use kingless fragments.
func buildBoard(pieces ...placement) *Board {
	b := newEmptyBoard()
	for _, p := range pieces {
		b.place(p.at, p.pc)
	}
	return b
}

// newTestGame rebuilds a game from an arbitrary position with turn to move.
// Castling rights start cleared; tests that exercise castling set them on
// the snapshot themselves.
func newTestGame(t *testing.T, turn Color, pieces ...placement) *Game {
	t.Helper()
	g, err := NewGameFromState(GameState{
		Board:          buildGrid(pieces...),
		CurrentTurn:    turn,
		GameStatus:     StatusActive,
		FullMoveNumber: 1,
	})
	if err != nil {
		t.Fatalf("build test position: %v", err)
	}
	return g
}

func mustMove(t *testing.T, g *Game, mv Move) *MoveResult {
	t.Helper()
	res, err := g.MakeMove(mv)
	if err != nil {
		t.Fatalf("MakeMove(%v -> %v): unexpected rejection %v", mv.From, mv.To, err)
	}
	return res
}

func wantRejection(t *testing.T, g *Game, mv Move, code ErrorCode) *MoveError {
	t.Helper()
	_, err := g.MakeMove(mv)
	if err == nil {
		t.Fatalf("MakeMove(%v -> %v): want %s, move was accepted", mv.From, mv.To, code)
	}
	merr, ok := err.(*MoveError)
	if !ok {
		t.Fatalf("MakeMove(%v -> %v): returned %T, want *MoveError", mv.From, mv.To, err)
	}
	if merr.Code != code {
		t.Fatalf("MakeMove(%v -> %v): code = %s, want %s", mv.From, mv.To, merr.Code, code)
	}
	return merr
}
