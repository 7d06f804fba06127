package engine

// resolvedMove is a fully classified move ready to apply to a board.
// Simulation and commit run the exact same apply path so castling and
// en passant side effects are tested identically to normal moves.
type resolvedMove struct {
	mv         Move
	piece      Piece
	captured   *Piece
	capturedAt Position
	castle     CastleSide
	enPassant  bool
	promotion  PieceType
}

// apply mutates b with the move and all of its side effects.
func (r resolvedMove) apply(b *Board) {
	switch {
	case r.castle != "":
		applyCastle(b, r.piece.Color, r.castle)
	case r.enPassant:
		b.remove(r.capturedAt)
		b.movePiece(r.mv.From, r.mv.To)
	default:
		b.movePiece(r.mv.From, r.mv.To)
	}
	if r.promotion != "" {
		b.place(r.mv.To, &Piece{Type: r.promotion, Color: r.piece.Color})
	}
}

// castleAttempt reports whether mv has the shape of a castling move: the
// king stepping two files along its home rank from its starting square.
func castleAttempt(pc *Piece, mv Move) (CastleSide, bool) {
	if pc.Type != King || mv.From.Row != mv.To.Row {
		return "", false
	}
	if mv.From.Row != homeRank(pc.Color) || mv.From.Col != 4 {
		return "", false
	}
	switch mv.To.Col {
	case 6:
		return CastleKingside, true
	case 2:
		return CastleQueenside, true
	}
	return "", false
}

func castleRookCol(side CastleSide) int {
	if side == CastleKingside {
		return 7
	}
	return 0
}

// betweenCols are the files strictly between king and rook.
func betweenCols(side CastleSide) []int {
	if side == CastleKingside {
		return []int{5, 6}
	}
	return []int{1, 2, 3}
}

// transitCols are the files the king occupies or passes through,
// destination included, starting square excluded.
func transitCols(side CastleSide) []int {
	if side == CastleKingside {
		return []int{5, 6}
	}
	return []int{3, 2}
}

// validateCastling checks the rights flag, the clear corridor, and attack
// safety over the king's path. The rights flag is authoritative for
// king/rook movement history: checked, never re-derived from the board.
func validateCastling(b *Board, rights CastlingRights, c Color, side CastleSide) *MoveError {
	ctx := map[string]any{"color": c, "side": side}
	fail := func(reason string) *MoveError {
		ctx["reason"] = reason
		return reject(ErrInvalidCastling, ctx)
	}

	sr := rights.side(c)
	if (side == CastleKingside && !sr.Kingside) || (side == CastleQueenside && !sr.Queenside) {
		return fail("castling rights already forfeited")
	}

	row := homeRank(c)
	rook := b.PieceAt(Position{Row: row, Col: castleRookCol(side)})
	if rook == nil || rook.Type != Rook || rook.Color != c {
		return fail("rook missing from its original square")
	}
	for _, col := range betweenCols(side) {
		if b.PieceAt(Position{Row: row, Col: col}) != nil {
			return fail("squares between king and rook are not empty")
		}
	}

	enemy := c.Opponent()
	if b.IsSquareAttacked(Position{Row: row, Col: 4}, enemy) {
		return fail("cannot castle out of check")
	}
	for _, col := range transitCols(side) {
		if b.IsSquareAttacked(Position{Row: row, Col: col}, enemy) {
			return fail("king would pass through an attacked square")
		}
	}
	return nil
}

// applyCastle moves the king two files toward the rook and brings the rook
// to the square the king crossed.
func applyCastle(b *Board, c Color, side CastleSide) {
	row := homeRank(c)
	if side == CastleKingside {
		b.movePiece(Position{Row: row, Col: 4}, Position{Row: row, Col: 6})
		b.movePiece(Position{Row: row, Col: 7}, Position{Row: row, Col: 5})
	} else {
		b.movePiece(Position{Row: row, Col: 4}, Position{Row: row, Col: 2})
		b.movePiece(Position{Row: row, Col: 0}, Position{Row: row, Col: 3})
	}
}

// enPassantAttempt reports whether mv targets the current en passant square
// with a pawn. Shape and victim checks live in validateEnPassant.
func enPassantAttempt(pc *Piece, mv Move, ep *Position) bool {
	return pc.Type == Pawn && ep != nil && mv.To == *ep
}

// validateEnPassant requires a standard diagonal capture step toward the
// target and a capturable enemy pawn beside the origin on the target file.
func validateEnPassant(b *Board, pc *Piece, mv Move) (Position, *MoveError) {
	ctx := map[string]any{"from": mv.From, "to": mv.To}
	if mv.To.Row-mv.From.Row != pawnDir(pc.Color) || abs(mv.To.Col-mv.From.Col) != 1 {
		ctx["reason"] = "not a diagonal pawn step onto the target"
		return Position{}, reject(ErrInvalidEnPassant, ctx)
	}
	victimAt := Position{Row: mv.From.Row, Col: mv.To.Col}
	victim := b.PieceAt(victimAt)
	if victim == nil || victim.Type != Pawn || victim.Color == pc.Color {
		ctx["reason"] = "no enemy pawn on the bypassed square"
		return Position{}, reject(ErrInvalidEnPassant, ctx)
	}
	return victimAt, nil
}

// promotionAttempt reports whether the move promotes: a pawn arriving on
// its last rank.
func promotionAttempt(pc *Piece, mv Move) bool {
	return pc.Type == Pawn && mv.To.Row == promotionRank(pc.Color)
}

// normalizePromotion resolves the promotion choice. An absent choice
// defaults to queen. An explicit value outside the legal set is rejected;
// the reporter suggests the queen default but the engine never applies a
// recovery on its own.
func normalizePromotion(mv Move, promoting bool) (PieceType, *MoveError) {
	if !promoting {
		return "", nil
	}
	if mv.Promotion == "" {
		return Queen, nil
	}
	if !promotionTypes[mv.Promotion] {
		return "", reject(ErrInvalidPromotion, map[string]any{
			"promotion": mv.Promotion,
			"default":   Queen,
		})
	}
	return mv.Promotion, nil
}
