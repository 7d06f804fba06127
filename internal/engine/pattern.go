package engine

// Direction tables. Generation walks these in declaration order so
// candidate lists come out in a fixed, reproducible geometric order.
var (
	rookDirs   = []Position{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	bishopDirs = []Position{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	royalDirs  = []Position{
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
		{Row: 0, Col: -1}, {Row: 0, Col: 1},
		{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}
	knightJumps = []Position{
		{Row: -2, Col: -1}, {Row: -2, Col: 1},
		{Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2},
		{Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
)

func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func promotionRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func homeRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// moveGenerator produces the geometrically reachable destinations for a
// piece, ignoring check safety. Castling is the special-move handler's
// business and is never emitted here.
type moveGenerator func(b *Board, from Position, pc *Piece, ep *Position) []Position

// generators is the dispatch table keyed on the piece-type tag.
var generators = map[PieceType]moveGenerator{
	Pawn:   pawnMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Rook:   rookMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

// pseudoMoves dispatches to the generator table. A piece type without a
// generator is an internal fault, not a user error.
func pseudoMoves(b *Board, from Position, pc *Piece, ep *Position) ([]Position, *MoveError) {
	gen, ok := generators[pc.Type]
	if !ok {
		return nil, reject(ErrUnknownPieceType, map[string]any{"pieceType": pc.Type, "from": from})
	}
	return gen(b, from, pc, ep), nil
}

func pawnMoves(b *Board, from Position, pc *Piece, ep *Position) []Position {
	var moves []Position
	dir := pawnDir(pc.Color)

	// Forward steps never capture. Double step only from the start rank
	// and never over an occupied square.
	one := Position{Row: from.Row + dir, Col: from.Col}
	if one.onBoard() && b.PieceAt(one) == nil {
		moves = append(moves, one)
		two := Position{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == pawnStartRank(pc.Color) && b.PieceAt(two) == nil {
			moves = append(moves, two)
		}
	}

	// Diagonal captures, en passant target included.
	for _, dc := range []int{-1, 1} {
		diag := Position{Row: from.Row + dir, Col: from.Col + dc}
		if !diag.onBoard() {
			continue
		}
		if target := b.PieceAt(diag); target != nil && target.Color != pc.Color {
			moves = append(moves, diag)
		} else if target == nil && ep != nil && diag == *ep {
			moves = append(moves, diag)
		}
	}
	return moves
}

func knightMoves(b *Board, from Position, pc *Piece, _ *Position) []Position {
	return stepMoves(b, from, pc, knightJumps)
}

func kingMoves(b *Board, from Position, pc *Piece, _ *Position) []Position {
	return stepMoves(b, from, pc, royalDirs)
}

func bishopMoves(b *Board, from Position, pc *Piece, _ *Position) []Position {
	return slideMoves(b, from, pc, bishopDirs)
}

func rookMoves(b *Board, from Position, pc *Piece, _ *Position) []Position {
	return slideMoves(b, from, pc, rookDirs)
}

func queenMoves(b *Board, from Position, pc *Piece, _ *Position) []Position {
	return slideMoves(b, from, pc, append(append([]Position{}, rookDirs...), bishopDirs...))
}

func stepMoves(b *Board, from Position, pc *Piece, offsets []Position) []Position {
	var moves []Position
	for _, d := range offsets {
		to := from.add(d)
		if !to.onBoard() {
			continue
		}
		if target := b.PieceAt(to); target == nil || target.Color != pc.Color {
			moves = append(moves, to)
		}
	}
	return moves
}

// slideMoves walks each ray until the board edge or the first occupied
// square, inclusive if that square holds an enemy piece.
func slideMoves(b *Board, from Position, pc *Piece, dirs []Position) []Position {
	var moves []Position
	for _, d := range dirs {
		for to := from.add(d); to.onBoard(); to = to.add(d) {
			target := b.PieceAt(to)
			if target == nil {
				moves = append(moves, to)
				continue
			}
			if target.Color != pc.Color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// classifyRejection picks the most specific code for a destination that is
// not in the piece's pseudo-move set: capturing one's own piece beats a
// blocked path, which beats plain bad geometry.
func classifyRejection(b *Board, from, to Position, pc *Piece) *MoveError {
	ctx := map[string]any{"from": from, "to": to, "piece": *pc}

	if dst := b.PieceAt(to); dst != nil && dst.Color == pc.Color && geometryReaches(from, to, pc) {
		return reject(ErrCaptureOwnPiece, ctx)
	}
	if blockedSlide(b, from, to, pc) {
		return reject(ErrPathBlocked, ctx)
	}
	return reject(ErrInvalidMovement, ctx)
}

// geometryReaches reports whether from->to matches the piece's raw movement
// shape on an empty board, blocking pieces ignored.
func geometryReaches(from, to Position, pc *Piece) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch pc.Type {
	case Knight:
		return (abs(dr) == 2 && abs(dc) == 1) || (abs(dr) == 1 && abs(dc) == 2)
	case King:
		return abs(dr) <= 1 && abs(dc) <= 1 && (dr != 0 || dc != 0)
	case Rook:
		return (dr == 0) != (dc == 0)
	case Bishop:
		return dr != 0 && abs(dr) == abs(dc)
	case Queen:
		return (dr == 0) != (dc == 0) || (dr != 0 && abs(dr) == abs(dc))
	case Pawn:
		// Diagonal capture shape only; forward steps cannot land on a piece.
		return dr == pawnDir(pc.Color) && abs(dc) == 1
	}
	return false
}

// blockedSlide reports whether from->to is a valid ray for the piece whose
// path is interrupted before the destination. Pawn forward steps count: a
// pawn cannot push onto or across an occupied square.
func blockedSlide(b *Board, from, to Position, pc *Piece) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col

	if pc.Type == Pawn {
		if dc != 0 {
			return false
		}
		dir := pawnDir(pc.Color)
		if dr == dir {
			return b.PieceAt(to) != nil
		}
		if dr == 2*dir && from.Row == pawnStartRank(pc.Color) {
			mid := Position{Row: from.Row + dir, Col: from.Col}
			return b.PieceAt(mid) != nil || b.PieceAt(to) != nil
		}
		return false
	}

	var dirs []Position
	switch pc.Type {
	case Rook:
		dirs = rookDirs
	case Bishop:
		dirs = bishopDirs
	case Queen:
		dirs = royalDirs
	default:
		return false
	}
	for _, d := range dirs {
		if !rayContains(from, to, d) {
			continue
		}
		for sq := from.add(d); sq != to; sq = sq.add(d) {
			if b.PieceAt(sq) != nil {
				return true
			}
		}
		return false
	}
	return false
}

// rayContains reports whether to lies on the ray from from in direction d.
func rayContains(from, to Position, d Position) bool {
	for sq := from.add(d); sq.onBoard(); sq = sq.add(d) {
		if sq == to {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
