package engine

import "testing"

func TestPawnAttacksDiagonalsOnly(t *testing.T) {
	b := buildBoard(at(1, 4, bp(Pawn)))

	// A pawn threatens its capture squares even when they are empty.
	if !b.IsSquareAttacked(pos(2, 3), Black) {
		t.Error("black pawn should attack the left diagonal")
	}
	if !b.IsSquareAttacked(pos(2, 5), Black) {
		t.Error("black pawn should attack the right diagonal")
	}
	if b.IsSquareAttacked(pos(2, 4), Black) {
		t.Error("a pawn's forward square is a move, not an attack")
	}
	if b.IsSquareAttacked(pos(0, 3), Black) {
		t.Error("a pawn does not attack behind itself")
	}
}

func TestSliderAttacksStopAtBlockers(t *testing.T) {
	b := buildBoard(
		at(0, 4, bp(Rook)),
		at(4, 4, wp(Pawn)),
	)
	if !b.IsSquareAttacked(pos(4, 4), Black) {
		t.Error("rook should attack the first piece on its file")
	}
	if b.IsSquareAttacked(pos(6, 4), Black) {
		t.Error("rook attack must not pass through a blocker")
	}
}

func TestAttackersOfCollectsAll(t *testing.T) {
	b := buildBoard(
		at(0, 4, bp(Rook)),
		at(3, 0, bp(Bishop)),
		at(5, 3, bp(Knight)),
		at(7, 4, wp(King)),
	)
	attackers := b.AttackersOf(pos(7, 4), Black)
	if len(attackers) != 3 {
		t.Fatalf("AttackersOf found %d attackers, want 3: %v", len(attackers), attackers)
	}
	types := make(map[PieceType]bool)
	for _, a := range attackers {
		types[a.Piece.Type] = true
	}
	for _, want := range []PieceType{Rook, Bishop, Knight} {
		if !types[want] {
			t.Errorf("AttackersOf missing %s", want)
		}
	}
}

func TestCategorizeCheck(t *testing.T) {
	tests := []struct {
		name      string
		attackers []Attacker
		want      string
	}{
		{"no attackers", nil, "none"},
		{
			"single rook",
			[]Attacker{{Piece: Piece{Type: Rook, Color: Black}, Position: pos(0, 4)}},
			"rook_check",
		},
		{
			"single knight",
			[]Attacker{{Piece: Piece{Type: Knight, Color: White}, Position: pos(2, 3)}},
			"knight_check",
		},
		{
			"two attackers",
			[]Attacker{
				{Piece: Piece{Type: Rook, Color: Black}, Position: pos(0, 4)},
				{Piece: Piece{Type: Bishop, Color: Black}, Position: pos(3, 0)},
			},
			"double_check",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeCheck(tt.attackers); got != tt.want {
				t.Errorf("CategorizeCheck = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsPiecePinned(t *testing.T) {
	b := buildBoard(
		at(7, 4, wp(King)),
		at(5, 4, wp(Bishop)),
		at(0, 4, bp(Rook)),
	)
	if !b.IsPiecePinned(pos(5, 4), White) {
		t.Error("bishop between king and rook on the same file should be pinned")
	}

	// A second piece on the line breaks the pin.
	b.place(pos(3, 4), wp(Pawn))
	if b.IsPiecePinned(pos(5, 4), White) {
		t.Error("pin should dissolve when another piece shares the line")
	}
}

func TestPinRequiresMatchingSlider(t *testing.T) {
	// A rook cannot pin along a diagonal.
	b := buildBoard(
		at(7, 4, wp(King)),
		at(5, 2, wp(Knight)),
		at(3, 0, bp(Rook)),
	)
	if b.IsPiecePinned(pos(5, 2), White) {
		t.Error("rook on a diagonal is not a pinning piece")
	}

	b = buildBoard(
		at(7, 4, wp(King)),
		at(5, 2, wp(Knight)),
		at(3, 0, bp(Bishop)),
	)
	if !b.IsPiecePinned(pos(5, 2), White) {
		t.Error("bishop on the diagonal should pin the knight")
	}
}

func TestPinLineBoundsMoves(t *testing.T) {
	g := newTestGame(t, White,
		at(7, 4, wp(King)),
		at(5, 4, wp(Bishop)),
		at(0, 4, bp(Rook)),
		at(0, 0, bp(King)),
	)

	// Any bishop move leaves the file and exposes the king.
	merr := wantRejection(t, g, move(5, 4, 4, 3), ErrPinnedPieceInvalidMove)
	if merr.Context["from"] != pos(5, 4) {
		t.Errorf("rejection context from = %v, want %v", merr.Context["from"], pos(5, 4))
	}

	// A pinned rook may slide along the pin line, pinner capture included.
	g = newTestGame(t, White,
		at(7, 4, wp(King)),
		at(5, 4, wp(Rook)),
		at(0, 4, bp(Rook)),
		at(0, 0, bp(King)),
	)
	res := mustMove(t, g, move(5, 4, 0, 4))
	if res.Move.Captured == nil || res.Move.Captured.Type != Rook {
		t.Fatalf("capturing the pinner recorded %v, want rook capture", res.Move.Captured)
	}
}
