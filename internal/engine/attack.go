package engine

// Attacker is one enemy piece bearing on a square.
type Attacker struct {
	Piece    Piece    `json:"piece"`
	Position Position `json:"position"`
}

// CheckDetails describes the current check, recomputed after every
// committed move and never persisted across them.
type CheckDetails struct {
	KingPosition Position   `json:"kingPosition"`
	Attackers    []Attacker `json:"attackingPieces"`
	Kind         string     `json:"kind"`
}

// IsSquareAttacked reports whether any piece of byColor has a geometrically
// valid attack on sq. Pawn attacks are diagonal-only and distinct from pawn
// forward moves: a pawn threatens diagonally even onto an empty square.
func (b *Board) IsSquareAttacked(sq Position, by Color) bool {
	return b.scanAttackers(sq, by, true) != nil
}

// AttackersOf returns every piece of byColor attacking sq, in scan order.
func (b *Board) AttackersOf(sq Position, by Color) []Attacker {
	return b.scanAttackers(sq, by, false)
}

// scanAttackers runs reverse scans outward from sq: slider rays, knight
// jumps, adjacent kings, then pawn diagonals.
func (b *Board) scanAttackers(sq Position, by Color, firstOnly bool) []Attacker {
	var found []Attacker
	add := func(pc *Piece, at Position) bool {
		found = append(found, Attacker{Piece: *pc, Position: at})
		return firstOnly
	}

	for _, d := range rookDirs {
		for to := sq.add(d); to.onBoard(); to = to.add(d) {
			pc := b.PieceAt(to)
			if pc == nil {
				continue
			}
			if pc.Color == by && (pc.Type == Rook || pc.Type == Queen) {
				if add(pc, to) {
					return found
				}
			}
			break
		}
	}
	for _, d := range bishopDirs {
		for to := sq.add(d); to.onBoard(); to = to.add(d) {
			pc := b.PieceAt(to)
			if pc == nil {
				continue
			}
			if pc.Color == by && (pc.Type == Bishop || pc.Type == Queen) {
				if add(pc, to) {
					return found
				}
			}
			break
		}
	}
	for _, d := range knightJumps {
		to := sq.add(d)
		if !to.onBoard() {
			continue
		}
		if pc := b.PieceAt(to); pc != nil && pc.Color == by && pc.Type == Knight {
			if add(pc, to) {
				return found
			}
		}
	}
	for _, d := range royalDirs {
		to := sq.add(d)
		if !to.onBoard() {
			continue
		}
		if pc := b.PieceAt(to); pc != nil && pc.Color == by && pc.Type == King {
			if add(pc, to) {
				return found
			}
		}
	}
	// A pawn of color by attacks sq from one row behind its advance
	// direction, one file to either side.
	for _, dc := range []int{-1, 1} {
		to := Position{Row: sq.Row - pawnDir(by), Col: sq.Col + dc}
		if !to.onBoard() {
			continue
		}
		if pc := b.PieceAt(to); pc != nil && pc.Color == by && pc.Type == Pawn {
			if add(pc, to) {
				return found
			}
		}
	}
	return found
}

// CategorizeCheck names the check: none, "<pieceType>_check" for a single
// attacker, "double_check" for two or more. Double check permits only king
// moves as resolutions.
func CategorizeCheck(attackers []Attacker) string {
	switch len(attackers) {
	case 0:
		return "none"
	case 1:
		return string(attackers[0].Piece.Type) + "_check"
	default:
		return "double_check"
	}
}

// IsPiecePinned reports whether removing the piece at sq would expose the
// own king to an enemy slider through that square.
func (b *Board) IsPiecePinned(sq Position, own Color) bool {
	pinned, _ := b.pinLine(sq, own)
	return pinned
}

// pinLine detects a pin on the piece at sq and returns the set of squares
// the pinned piece may still move to: the squares between king and pinner,
// the pinning piece's own square included, sq itself excluded. The pin line
// is authoritative; moves off it are rejected outright.
func (b *Board) pinLine(sq Position, own Color) (bool, map[Position]bool) {
	pc := b.PieceAt(sq)
	if pc == nil || pc.Type == King {
		return false, nil
	}
	king := b.KingPosition(own)
	dr, dc := sq.Row-king.Row, sq.Col-king.Col

	var d Position
	var straight bool
	switch {
	case dr == 0 && dc != 0:
		d, straight = Position{Col: sign(dc)}, true
	case dc == 0 && dr != 0:
		d, straight = Position{Row: sign(dr)}, true
	case abs(dr) == abs(dc) && dr != 0:
		d, straight = Position{Row: sign(dr), Col: sign(dc)}, false
	default:
		return false, nil
	}

	// The line from king to sq must be empty apart from sq itself.
	for cur := king.add(d); cur != sq; cur = cur.add(d) {
		if b.PieceAt(cur) != nil {
			return false, nil
		}
	}

	// Beyond sq, the first piece must be an enemy slider matching the line.
	for cur := sq.add(d); cur.onBoard(); cur = cur.add(d) {
		enemy := b.PieceAt(cur)
		if enemy == nil {
			continue
		}
		if enemy.Color == own {
			return false, nil
		}
		pins := enemy.Type == Queen ||
			(straight && enemy.Type == Rook) ||
			(!straight && enemy.Type == Bishop)
		if !pins {
			return false, nil
		}
		line := make(map[Position]bool)
		for onLine := king.add(d); onLine != cur; onLine = onLine.add(d) {
			if onLine != sq {
				line[onLine] = true
			}
		}
		line[cur] = true
		return true, line
	}
	return false, nil
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
