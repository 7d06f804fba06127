package engine

import (
	"fmt"
	"strings"
)

// Game is one chess game: the authoritative board plus every piece of
// derived state. It is a single-writer value; callers sharing an instance
// across goroutines must serialize access themselves.
type Game struct {
	board    *Board
	turn     Color
	status   GameStatus
	winner   Color
	rights   CastlingRights
	epTarget *Position
	history  []MoveRecord
	halfMove int
	fullMove int
	check    *CheckDetails

	// plyOffset anchors turn/history parity for games restored from a
	// snapshot whose history does not start at ply zero.
	plyOffset int
}

// NewGame starts from the standard position: white to move, all castling
// rights intact, empty history.
func NewGame() *Game {
	g := &Game{}
	g.ResetGame()
	return g
}

// ResetGame reinitializes to the starting position and clears all derived
// state.
func (g *Game) ResetGame() {
	g.board = NewBoard()
	g.turn = White
	g.status = StatusActive
	g.winner = ""
	g.rights = newCastlingRights()
	g.epTarget = nil
	g.history = nil
	g.halfMove = 0
	g.fullMove = 1
	g.check = nil
	g.plyOffset = 0
}

// NewGameFromState rebuilds a game from a snapshot. The rebuilt game
// produces identical results to the original for every query.
func NewGameFromState(s GameState) (*Game, error) {
	board, merr := boardFromGrid(s.Board)
	if merr != nil {
		return nil, merr
	}
	if !s.CurrentTurn.Valid() {
		return nil, reject(ErrInvalidColor, map[string]any{"currentTurn": s.CurrentTurn})
	}
	if !s.GameStatus.Valid() {
		return nil, reject(ErrInvalidStatus, map[string]any{"gameStatus": s.GameStatus})
	}
	g := &Game{
		board:    board,
		turn:     s.CurrentTurn,
		status:   s.GameStatus,
		winner:   s.Winner,
		rights:   s.CastlingRights,
		halfMove: s.HalfMoveClock,
		fullMove: s.FullMoveNumber,
	}
	if g.fullMove < 1 {
		g.fullMove = 1
	}
	if s.EnPassantTarget != nil {
		ep := *s.EnPassantTarget
		if !ep.onBoard() {
			return nil, reject(ErrInvalidCoordinates, map[string]any{"enPassantTarget": ep})
		}
		g.epTarget = &ep
	}
	g.history = append([]MoveRecord(nil), s.MoveHistory...)
	if g.expectedTurn() != g.turn {
		g.plyOffset = 1
	}
	g.refreshCheck()
	return g, nil
}

// MakeMove validates and, if legal, commits mv. A rejected move leaves the
// game byte-for-byte identical to before the call: all intermediate testing
// runs on throwaway clones and the authoritative state is touched only
// after legality and check safety both pass. Unexpected internal faults are
// converted to SYSTEM_ERROR at this boundary instead of propagating.
func (g *Game) MakeMove(mv Move) (result *MoveResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = reject(ErrSystemError, map[string]any{"fault": fmt.Sprint(r)})
		}
	}()

	if g.status.Terminal() {
		return nil, reject(ErrGameNotActive, map[string]any{"gameStatus": g.status, "winner": g.winner})
	}
	if expected := g.expectedTurn(); g.turn != expected {
		return nil, reject(ErrTurnSequenceViolation, map[string]any{
			"currentTurn":   g.turn,
			"expectedTurn":  expected,
			"historyLength": len(g.history),
		})
	}

	resolved, merr := g.resolveMove(mv, g.turn)
	if merr != nil {
		return nil, merr
	}
	next, merr := g.checkSafety(resolved)
	if merr != nil {
		return nil, merr
	}
	return g.commit(resolved, next), nil
}

// resolveMove runs coordinate, piece, pattern, and special-move validation
// for mover and classifies the move. The board is not touched.
func (g *Game) resolveMove(mv Move, mover Color) (resolvedMove, *MoveError) {
	var r resolvedMove

	if !mv.From.onBoard() || !mv.To.onBoard() {
		return r, reject(ErrOutOfBounds, map[string]any{"from": mv.From, "to": mv.To})
	}
	if mv.From == mv.To {
		return r, reject(ErrSameSquare, map[string]any{"square": mv.From})
	}

	pc := g.board.PieceAt(mv.From)
	if pc == nil {
		return r, reject(ErrNoPiece, map[string]any{"from": mv.From})
	}
	if !pc.Type.Valid() {
		return r, reject(ErrInvalidPieceType, map[string]any{"from": mv.From, "pieceType": pc.Type})
	}
	if !pc.Color.Valid() {
		return r, reject(ErrInvalidPieceColor, map[string]any{"from": mv.From, "pieceColor": pc.Color})
	}
	if pc.Color != mover {
		return r, reject(ErrWrongTurn, map[string]any{"from": mv.From, "pieceColor": pc.Color, "turn": mover})
	}

	r = resolvedMove{mv: mv, piece: *pc}

	if side, ok := castleAttempt(pc, mv); ok {
		if merr := validateCastling(g.board, g.rights, pc.Color, side); merr != nil {
			return r, merr
		}
		r.castle = side
		return r, nil
	}

	if enPassantAttempt(pc, mv, g.epTarget) {
		victimAt, merr := validateEnPassant(g.board, pc, mv)
		if merr != nil {
			return r, merr
		}
		r.enPassant = true
		r.capturedAt = victimAt
		victim := *g.board.PieceAt(victimAt)
		r.captured = &victim
		return r, nil
	}

	candidates, merr := pseudoMoves(g.board, mv.From, pc, g.epTarget)
	if merr != nil {
		return r, merr
	}
	if !containsPosition(candidates, mv.To) {
		return r, classifyRejection(g.board, mv.From, mv.To, pc)
	}

	promo, merr := normalizePromotion(mv, promotionAttempt(pc, mv))
	if merr != nil {
		return r, merr
	}
	r.promotion = promo

	if target := g.board.PieceAt(mv.To); target != nil {
		cp := *target
		r.captured = &cp
		r.capturedAt = mv.To
	}
	return r, nil
}

// checkSafety enforces the check rules: double check restricts to king
// moves, a pinned piece may only travel its pin line, and the simulated
// position must not leave the mover's own king attacked. On success it
// returns the clone the move was applied to; commit adopts it wholesale so
// the simulated and committed positions can never diverge.
func (g *Game) checkSafety(r resolvedMove) (*Board, *MoveError) {
	mover := r.piece.Color
	enemy := mover.Opponent()
	attackers := g.board.AttackersOf(g.board.KingPosition(mover), enemy)
	inCheck := len(attackers) > 0

	if len(attackers) >= 2 && r.piece.Type != King {
		return nil, reject(ErrDoubleCheckKingOnly, map[string]any{
			"from":      r.mv.From,
			"piece":     r.piece.Type,
			"attackers": attackers,
		})
	}

	if r.piece.Type != King {
		if pinned, line := g.board.pinLine(r.mv.From, mover); pinned && !line[r.mv.To] {
			return nil, reject(ErrPinnedPieceInvalidMove, map[string]any{
				"from": r.mv.From,
				"to":   r.mv.To,
			})
		}
	}

	next := g.board.Clone()
	r.apply(next)
	if next.IsSquareAttacked(next.KingPosition(mover), enemy) {
		code := ErrKingInCheck
		if inCheck {
			code = ErrCheckNotResolved
		}
		return nil, reject(code, map[string]any{"from": r.mv.From, "to": r.mv.To})
	}
	return next, nil
}

// commit adopts the simulated board and brings every piece of derived
// state up to date. This is the only place authoritative state changes.
func (g *Game) commit(r resolvedMove, next *Board) *MoveResult {
	mover := r.piece.Color
	g.board = next
	g.updateRights(r)
	g.updateEnPassant(r)

	if r.piece.Type == Pawn || r.captured != nil {
		g.halfMove = 0
	} else {
		g.halfMove++
	}
	if mover == Black {
		g.fullMove++
	}

	g.turn = mover.Opponent()
	g.recomputeStatus()

	record := MoveRecord{
		From:      r.mv.From,
		To:        r.mv.To,
		Piece:     r.piece.Type,
		Color:     mover,
		Captured:  r.captured,
		Promotion: r.promotion,
		Castle:    r.castle,
		EnPassant: r.enPassant,
	}
	record.Notation = g.notate(record)
	g.history = append(g.history, record)

	return &MoveResult{
		Move:              record,
		Board:             g.board.Grid(),
		CurrentTurn:       g.turn,
		GameStatus:        g.status,
		Winner:            g.winner,
		MoveHistoryLength: len(g.history),
		InCheck:           g.check != nil,
		CheckDetails:      g.checkCopy(),
	}
}

// updateRights clears castling flags on king moves, rook moves off their
// original squares, and captures of rooks on their original squares.
// Flags only ever go from true to false.
func (g *Game) updateRights(r resolvedMove) {
	mover := r.piece.Color
	switch r.piece.Type {
	case King:
		sr := g.rightsFor(mover)
		sr.Kingside = false
		sr.Queenside = false
	case Rook:
		g.clearRookRight(mover, r.mv.From)
	}
	if r.captured != nil && r.captured.Type == Rook {
		g.clearRookRight(r.captured.Color, r.capturedAt)
	}
}

func (g *Game) clearRookRight(c Color, at Position) {
	if at.Row != homeRank(c) {
		return
	}
	sr := g.rightsFor(c)
	switch at.Col {
	case 0:
		sr.Queenside = false
	case 7:
		sr.Kingside = false
	}
}

func (g *Game) rightsFor(c Color) *SideRights {
	if c == White {
		return &g.rights.White
	}
	return &g.rights.Black
}

// updateEnPassant keeps the one-ply target lifecycle: a pawn double step
// sets the skipped square, every other move clears unconditionally.
func (g *Game) updateEnPassant(r resolvedMove) {
	if r.piece.Type == Pawn && abs(r.mv.To.Row-r.mv.From.Row) == 2 {
		mid := Position{Row: (r.mv.From.Row + r.mv.To.Row) / 2, Col: r.mv.From.Col}
		g.epTarget = &mid
		return
	}
	g.epTarget = nil
}

// recomputeStatus runs the state machine once per committed move against
// the new side to move.
func (g *Game) recomputeStatus() {
	g.refreshCheck()
	if g.hasMovesFor(g.turn) {
		if g.check != nil {
			g.status = StatusCheck
		} else {
			g.status = StatusActive
		}
		return
	}
	if g.check != nil {
		g.status = StatusCheckmate
		g.winner = g.turn.Opponent()
	} else {
		g.status = StatusStalemate
	}
}

func (g *Game) refreshCheck() {
	king := g.board.KingPosition(g.turn)
	attackers := g.board.AttackersOf(king, g.turn.Opponent())
	if len(attackers) == 0 {
		g.check = nil
		return
	}
	g.check = &CheckDetails{
		KingPosition: king,
		Attackers:    attackers,
		Kind:         CategorizeCheck(attackers),
	}
}

// IsInCheck reports whether color's king is currently attacked.
func (g *Game) IsInCheck(color Color) bool {
	return g.board.IsSquareAttacked(g.board.KingPosition(color), color.Opponent())
}

func (g *Game) IsCheckmate() bool {
	return g.status == StatusCheckmate
}

func (g *Game) IsStalemate() bool {
	return g.status == StatusStalemate
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) Winner() Color {
	return g.winner
}

// HasValidMoves reports whether color has at least one legal move.
func (g *Game) HasValidMoves(color Color) bool {
	return g.hasMovesFor(color)
}

// GetAllValidMoves enumerates every legal move for color. Ordering is
// deterministic: the board is scanned row-major and each piece's candidates
// come out in the generators' fixed geometric order, castling last.
func (g *Game) GetAllValidMoves(color Color) []Move {
	var legal []Move
	g.scanMoves(color, func(mv Move) bool {
		legal = append(legal, mv)
		return false
	})
	return legal
}

func (g *Game) hasMovesFor(color Color) bool {
	found := false
	g.scanMoves(color, func(Move) bool {
		found = true
		return true
	})
	return found
}

// scanMoves feeds each legal move for color to visit; visit returning true
// stops the scan.
func (g *Game) scanMoves(color Color, visit func(Move) bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			pc := g.board.PieceAt(from)
			if pc == nil || pc.Color != color {
				continue
			}
			candidates, merr := pseudoMoves(g.board, from, pc, g.epTarget)
			if merr != nil {
				continue
			}
			if pc.Type == King && from.Col == 4 && from.Row == homeRank(color) {
				candidates = append(candidates,
					Position{Row: from.Row, Col: 6},
					Position{Row: from.Row, Col: 2})
			}
			for _, to := range candidates {
				mv := Move{From: from, To: to}
				if g.legalFor(mv, color) && visit(mv) {
					return
				}
			}
		}
	}
}

func (g *Game) legalFor(mv Move, color Color) bool {
	resolved, merr := g.resolveMove(mv, color)
	if merr != nil {
		return false
	}
	_, merr = g.checkSafety(resolved)
	return merr == nil
}

// GetGameState returns a full deep-copied snapshot; mutating it cannot
// reach the live game.
func (g *Game) GetGameState() GameState {
	var ep *Position
	if g.epTarget != nil {
		cp := *g.epTarget
		ep = &cp
	}
	return GameState{
		Board:           g.board.Grid(),
		CurrentTurn:     g.turn,
		GameStatus:      g.status,
		Winner:          g.winner,
		MoveHistory:     append([]MoveRecord(nil), g.history...),
		CastlingRights:  g.rights,
		EnPassantTarget: ep,
		HalfMoveClock:   g.halfMove,
		FullMoveNumber:  g.fullMove,
		InCheck:         g.check != nil,
		CheckDetails:    g.checkCopy(),
	}
}

func (g *Game) checkCopy() *CheckDetails {
	if g.check == nil {
		return nil
	}
	cp := *g.check
	cp.Attackers = append([]Attacker(nil), g.check.Attackers...)
	return &cp
}

func (g *Game) expectedTurn() Color {
	if (g.plyOffset+len(g.history))%2 == 0 {
		return White
	}
	return Black
}

// ValidateConsistency cross-checks turn parity against history length.
// A mismatch is reported, never silently repaired; RecoverTurn is the
// explicit recovery operation.
func (g *Game) ValidateConsistency() error {
	if !g.turn.Valid() {
		return reject(ErrInvalidColor, map[string]any{"currentTurn": g.turn})
	}
	if expected := g.expectedTurn(); g.turn != expected {
		return reject(ErrTurnHistoryMismatch, map[string]any{
			"currentTurn":   g.turn,
			"expectedTurn":  expected,
			"historyLength": len(g.history),
		})
	}
	return nil
}

// RecoverTurn recomputes the turn from history length. This is the repair
// action ValidateConsistency suggests.
func (g *Game) RecoverTurn() {
	g.turn = g.expectedTurn()
	g.refreshCheck()
}

// notate renders light algebraic notation for a committed record, status
// suffix included. Disambiguation beyond the pawn-capture file is not
// attempted.
func (g *Game) notate(r MoveRecord) string {
	var sb strings.Builder
	switch {
	case r.Castle == CastleKingside:
		sb.WriteString("O-O")
	case r.Castle == CastleQueenside:
		sb.WriteString("O-O-O")
	default:
		sb.WriteString(r.Piece.Notation())
		if r.Captured != nil {
			if r.Piece == Pawn {
				sb.WriteByte(byte('a' + r.From.Col))
			}
			sb.WriteString("x")
		}
		sb.WriteString(r.To.Notation())
		if r.Promotion != "" {
			sb.WriteString("=" + r.Promotion.Notation())
		}
	}
	switch g.status {
	case StatusCheckmate:
		sb.WriteString("#")
	case StatusCheck:
		sb.WriteString("+")
	}
	return sb.String()
}

func containsPosition(list []Position, p Position) bool {
	for _, c := range list {
		if c == p {
			return true
		}
	}
	return false
}
