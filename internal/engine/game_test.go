package engine

import (
	"reflect"
	"testing"
)

func TestOpeningMove(t *testing.T) {
	g := NewGame()

	res := mustMove(t, g, move(6, 4, 4, 4))
	if res.CurrentTurn != Black {
		t.Errorf("turn = %s, want black", res.CurrentTurn)
	}
	if res.MoveHistoryLength != 1 {
		t.Errorf("history length = %d, want 1", res.MoveHistoryLength)
	}
	if res.GameStatus != StatusActive {
		t.Errorf("status = %s, want active", res.GameStatus)
	}
	if res.Move.Notation != "e4" {
		t.Errorf("notation = %q, want e4", res.Move.Notation)
	}

	state := g.GetGameState()
	if state.Board[6][4] != nil {
		t.Error("origin square should be empty")
	}
	if pc := state.Board[4][4]; pc == nil || pc.Type != Pawn || pc.Color != White {
		t.Errorf("destination holds %v, want white pawn", pc)
	}
	if state.EnPassantTarget == nil || *state.EnPassantTarget != pos(5, 4) {
		t.Errorf("en passant target = %v, want %v", state.EnPassantTarget, pos(5, 4))
	}
	if state.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d, want 0 after a pawn move", state.HalfMoveClock)
	}
	if state.FullMoveNumber != 1 {
		t.Errorf("full-move number = %d, want 1 until black replies", state.FullMoveNumber)
	}
}

func TestRejectedMoveLeavesStateUntouched(t *testing.T) {
	g := NewGame()
	before := g.GetGameState()

	wantRejection(t, g, move(7, 0, 4, 0), ErrPathBlocked)

	after := g.GetGameState()
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected move must not change any observable state")
	}
}

func TestInputRejections(t *testing.T) {
	tests := []struct {
		name string
		mv   Move
		want ErrorCode
	}{
		{"origin off the board", move(-1, 4, 4, 4), ErrOutOfBounds},
		{"destination off the board", move(6, 4, 8, 4), ErrOutOfBounds},
		{"from equals to", move(6, 4, 6, 4), ErrSameSquare},
		{"empty origin square", move(4, 4, 3, 4), ErrNoPiece},
		{"opponent piece selected", move(1, 4, 3, 4), ErrWrongTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantRejection(t, NewGame(), tt.mv, tt.want)
		})
	}
}

func TestTurnAlternationAndCounters(t *testing.T) {
	g := NewGame()
	mustMove(t, g, move(6, 4, 4, 4)) // e4
	mustMove(t, g, move(1, 4, 3, 4)) // e5
	mustMove(t, g, move(7, 6, 5, 5)) // Nf3
	mustMove(t, g, move(0, 1, 2, 2)) // Nc6

	state := g.GetGameState()
	if state.CurrentTurn != White {
		t.Errorf("turn = %s, want white after four plies", state.CurrentTurn)
	}
	if len(state.MoveHistory) != 4 {
		t.Errorf("history length = %d, want 4", len(state.MoveHistory))
	}
	if state.FullMoveNumber != 3 {
		t.Errorf("full-move number = %d, want 3", state.FullMoveNumber)
	}
	if state.HalfMoveClock != 2 {
		t.Errorf("half-move clock = %d, want 2 after two knight moves", state.HalfMoveClock)
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	mustMove(t, g, move(6, 5, 5, 5)) // f3
	mustMove(t, g, move(1, 4, 3, 4)) // e5
	mustMove(t, g, move(6, 6, 4, 6)) // g4

	res := mustMove(t, g, move(0, 3, 4, 7)) // Qh4#
	if res.GameStatus != StatusCheckmate {
		t.Fatalf("status = %s, want checkmate", res.GameStatus)
	}
	if res.Winner != Black {
		t.Errorf("winner = %q, want black", res.Winner)
	}
	if res.Move.Notation != "Qh4#" {
		t.Errorf("notation = %q, want Qh4#", res.Move.Notation)
	}

	wantRejection(t, g, move(6, 0, 5, 0), ErrGameNotActive)
}

func TestInitialPositionMoveCount(t *testing.T) {
	g := NewGame()
	for _, c := range []Color{White, Black} {
		if got := len(g.GetAllValidMoves(c)); got != 20 {
			t.Errorf("%s has %d legal moves in the initial position, want 20", c, got)
		}
	}
}

func TestMoveEnumerationIsDeterministic(t *testing.T) {
	g := NewGame()
	first := g.GetAllValidMoves(White)
	second := g.GetAllValidMoves(White)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated enumeration of the same position must match")
	}
	// Row-major scan: the a-pawn's single step comes first.
	want := move(6, 0, 5, 0)
	if first[0] != want {
		t.Errorf("first enumerated move = %v, want %v", first[0], want)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := NewGame()
	mustMove(t, g, move(6, 4, 4, 4))
	mustMove(t, g, move(1, 4, 3, 4))

	restored, err := NewGameFromState(g.GetGameState())
	if err != nil {
		t.Fatalf("NewGameFromState: %v", err)
	}

	if got, want := restored.GetAllValidMoves(White), g.GetAllValidMoves(White); !reflect.DeepEqual(got, want) {
		t.Fatalf("restored game enumerates %d moves, original %d", len(got), len(want))
	}

	mustMove(t, g, move(7, 6, 5, 5))
	mustMove(t, restored, move(7, 6, 5, 5))
	if !reflect.DeepEqual(g.GetGameState(), restored.GetGameState()) {
		t.Error("states diverged after identical moves on original and restored games")
	}
}

func TestSnapshotWithBlackToMove(t *testing.T) {
	g := newTestGame(t, Black,
		at(0, 4, bp(King)),
		at(3, 3, bp(Rook)),
		at(7, 4, wp(King)),
	)
	res := mustMove(t, g, move(3, 3, 3, 0))
	if res.CurrentTurn != White {
		t.Errorf("turn = %s, want white after black's move", res.CurrentTurn)
	}
	if err := g.ValidateConsistency(); err != nil {
		t.Errorf("ValidateConsistency after restored-game move: %v", err)
	}
}

func TestCastlingRightsAreMonotonic(t *testing.T) {
	g := castlingGame(t, White, whiteRights(),
		at(7, 4, wp(King)),
		at(7, 0, wp(Rook)),
		at(7, 7, wp(Rook)),
		at(0, 4, bp(King)),
	)

	mustMove(t, g, move(7, 7, 6, 7))
	rights := g.GetGameState().CastlingRights
	if rights.White.Kingside {
		t.Fatal("kingside right should clear when the rook leaves its corner")
	}
	if !rights.White.Queenside {
		t.Fatal("queenside right should survive a kingside rook move")
	}

	// Returning the rook does not restore the right.
	mustMove(t, g, move(0, 4, 0, 3))
	mustMove(t, g, move(6, 7, 7, 7))
	mustMove(t, g, move(0, 3, 0, 4))
	if g.GetGameState().CastlingRights.White.Kingside {
		t.Fatal("cleared castling rights must never come back")
	}
	wantRejection(t, g, move(7, 4, 7, 6), ErrInvalidCastling)
}

func TestRookCaptureClearsOpponentRight(t *testing.T) {
	g := castlingGame(t, Black, whiteRights(),
		at(7, 4, wp(King)),
		at(7, 7, wp(Rook)),
		at(5, 7, bp(Rook)),
		at(0, 4, bp(King)),
	)

	mustMove(t, g, move(5, 7, 7, 7))
	rights := g.GetGameState().CastlingRights
	if rights.White.Kingside {
		t.Error("capturing the corner rook should clear the kingside right")
	}
	if !rights.White.Queenside {
		t.Error("queenside right should survive the kingside capture")
	}
}

func TestValidateConsistencyAndRecoverTurn(t *testing.T) {
	g := NewGame()
	if err := g.ValidateConsistency(); err != nil {
		t.Fatalf("fresh game should be consistent: %v", err)
	}

	g.turn = Black // externally induced corruption
	err := g.ValidateConsistency()
	merr, ok := err.(*MoveError)
	if !ok || merr.Code != ErrTurnHistoryMismatch {
		t.Fatalf("ValidateConsistency = %v, want %s", err, ErrTurnHistoryMismatch)
	}
	wantRejection(t, g, move(1, 4, 3, 4), ErrTurnSequenceViolation)

	g.RecoverTurn()
	if g.Turn() != White {
		t.Errorf("turn after recovery = %s, want white", g.Turn())
	}
	if err := g.ValidateConsistency(); err != nil {
		t.Errorf("ValidateConsistency after recovery: %v", err)
	}
}

func TestNewGameFromStateValidation(t *testing.T) {
	goodGrid := func() [][]*Piece {
		return buildGrid(at(7, 4, wp(King)), at(0, 4, bp(King)))
	}

	tests := []struct {
		name   string
		mutate func(*GameState)
		want   ErrorCode
	}{
		{
			"short grid",
			func(s *GameState) { s.Board = s.Board[:7] },
			ErrStateCorruption,
		},
		{
			"duplicate king",
			func(s *GameState) { s.Board[3][3] = wp(King) },
			ErrStateCorruption,
		},
		{
			"missing king",
			func(s *GameState) { s.Board[0][4] = nil },
			ErrStateCorruption,
		},
		{
			"unknown piece type",
			func(s *GameState) { s.Board[3][3] = &Piece{Type: "wizard", Color: White} },
			ErrInvalidPiece,
		},
		{
			"invalid turn color",
			func(s *GameState) { s.CurrentTurn = "green" },
			ErrInvalidColor,
		},
		{
			"invalid status",
			func(s *GameState) { s.GameStatus = "paused" },
			ErrInvalidStatus,
		},
		{
			"en passant target off the board",
			func(s *GameState) { s.EnPassantTarget = &Position{Row: 9, Col: 0} },
			ErrInvalidCoordinates,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GameState{
				Board:          goodGrid(),
				CurrentTurn:    White,
				GameStatus:     StatusActive,
				FullMoveNumber: 1,
			}
			tt.mutate(&s)
			_, err := NewGameFromState(s)
			merr, ok := err.(*MoveError)
			if !ok || merr.Code != tt.want {
				t.Fatalf("NewGameFromState = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestResetGame(t *testing.T) {
	g := NewGame()
	mustMove(t, g, move(6, 4, 4, 4))
	g.ResetGame()

	state := g.GetGameState()
	if state.CurrentTurn != White || len(state.MoveHistory) != 0 {
		t.Error("reset should restore white to move with empty history")
	}
	if pc := state.Board[6][4]; pc == nil || pc.Type != Pawn {
		t.Error("reset should restore the initial position")
	}
	if !state.CastlingRights.White.Kingside || !state.CastlingRights.Black.Queenside {
		t.Error("reset should restore all castling rights")
	}
}

func TestGameStateSnapshotIsDetached(t *testing.T) {
	g := NewGame()
	state := g.GetGameState()
	state.Board[6][4] = nil
	state.CastlingRights.White.Kingside = false

	if g.board.PieceAt(pos(6, 4)) == nil {
		t.Error("mutating a snapshot grid must not reach the live board")
	}
	if !g.rights.White.Kingside {
		t.Error("mutating a snapshot must not reach live castling rights")
	}
}
