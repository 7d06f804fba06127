// Package report is the error-reporting collaborator: a stateless
// classification service mapping engine error codes to category, severity,
// and recoverability, plus the human-readable message catalog. The engine
// only ever selects codes; all user-facing text lives here.
package report

import (
	"errors"

	"chessrules/internal/engine"
)

type Category string

const (
	CategoryFormat     Category = "FORMAT"
	CategoryCoordinate Category = "COORDINATE"
	CategoryPiece      Category = "PIECE"
	CategoryMovement   Category = "MOVEMENT"
	CategoryPath       Category = "PATH"
	CategoryRule       Category = "RULE"
	CategoryCheck      Category = "CHECK"
	CategoryState      Category = "STATE"
	CategorySystem     Category = "SYSTEM"
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

type Classification struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Recoverable bool     `json:"recoverable"`
}

// classifications is the fixed code table. Recoverable entries expose a
// suggested repair; the engine never applies one automatically.
var classifications = map[engine.ErrorCode]Classification{
	engine.ErrMalformedMove:        {CategoryFormat, SeverityError, false},
	engine.ErrInvalidFormat:        {CategoryFormat, SeverityError, false},
	engine.ErrMissingRequiredField: {CategoryFormat, SeverityError, false},

	engine.ErrInvalidCoordinates: {CategoryCoordinate, SeverityError, false},
	engine.ErrOutOfBounds:        {CategoryCoordinate, SeverityError, false},
	engine.ErrSameSquare:         {CategoryCoordinate, SeverityError, false},

	engine.ErrNoPiece:           {CategoryPiece, SeverityError, false},
	engine.ErrWrongTurn:         {CategoryPiece, SeverityError, false},
	engine.ErrInvalidPiece:      {CategoryPiece, SeverityError, true},
	engine.ErrInvalidPieceType:  {CategoryPiece, SeverityError, true},
	engine.ErrInvalidPieceColor: {CategoryPiece, SeverityError, true},

	engine.ErrInvalidMovement:  {CategoryMovement, SeverityError, false},
	engine.ErrUnknownPieceType: {CategoryMovement, SeverityError, true},

	engine.ErrPathBlocked: {CategoryPath, SeverityError, false},

	engine.ErrCaptureOwnPiece:  {CategoryRule, SeverityError, false},
	engine.ErrInvalidCastling:  {CategoryRule, SeverityError, false},
	engine.ErrInvalidEnPassant: {CategoryRule, SeverityError, false},
	engine.ErrInvalidPromotion: {CategoryRule, SeverityError, true},

	engine.ErrKingInCheck:            {CategoryCheck, SeverityError, false},
	engine.ErrPinnedPieceInvalidMove: {CategoryCheck, SeverityError, false},
	engine.ErrDoubleCheckKingOnly:    {CategoryCheck, SeverityError, false},
	engine.ErrCheckNotResolved:       {CategoryCheck, SeverityError, false},

	engine.ErrGameNotActive:         {CategoryState, SeverityError, false},
	engine.ErrInvalidStatus:         {CategoryState, SeverityError, true},
	engine.ErrTurnSequenceViolation: {CategoryState, SeverityError, true},
	engine.ErrTurnHistoryMismatch:   {CategoryState, SeverityError, true},
	engine.ErrInvalidColor:          {CategoryState, SeverityError, true},

	engine.ErrSystemError:     {CategorySystem, SeverityCritical, true},
	engine.ErrStateCorruption: {CategorySystem, SeverityCritical, true},
}

var messages = map[engine.ErrorCode]string{
	engine.ErrMalformedMove:        "The move request could not be parsed.",
	engine.ErrInvalidFormat:        "The move request format is invalid.",
	engine.ErrMissingRequiredField: "A required move field is missing.",

	engine.ErrInvalidCoordinates: "Move coordinates must be whole numbers.",
	engine.ErrOutOfBounds:        "Move coordinates must be between 0 and 7.",
	engine.ErrSameSquare:         "A piece cannot move to the square it is already on.",

	engine.ErrNoPiece:           "There is no piece on the selected square.",
	engine.ErrWrongTurn:         "It is not that player's turn.",
	engine.ErrInvalidPiece:      "The piece on the selected square is invalid.",
	engine.ErrInvalidPieceType:  "The piece has an unrecognized type.",
	engine.ErrInvalidPieceColor: "The piece has an unrecognized color.",

	engine.ErrInvalidMovement:  "That piece cannot move that way.",
	engine.ErrUnknownPieceType: "The engine has no movement rules for this piece.",

	engine.ErrPathBlocked: "Another piece blocks the path.",

	engine.ErrCaptureOwnPiece:  "A piece cannot capture a piece of its own color.",
	engine.ErrInvalidCastling:  "Castling is not allowed in this position.",
	engine.ErrInvalidEnPassant: "En passant is not available for this move.",
	engine.ErrInvalidPromotion: "The promotion choice is not a legal piece type.",

	engine.ErrKingInCheck:            "That move would leave the king in check.",
	engine.ErrPinnedPieceInvalidMove: "That piece is pinned and may only move along the pin line.",
	engine.ErrDoubleCheckKingOnly:    "In double check only the king may move.",
	engine.ErrCheckNotResolved:       "The king is in check; the move must resolve it.",

	engine.ErrGameNotActive:         "The game has ended; no further moves are accepted.",
	engine.ErrInvalidStatus:         "The game status is invalid.",
	engine.ErrTurnSequenceViolation: "The turn sequence is inconsistent with the move history.",
	engine.ErrTurnHistoryMismatch:   "The current turn does not match the move history.",
	engine.ErrInvalidColor:          "The color value is invalid.",

	engine.ErrSystemError:     "An internal error occurred while processing the move.",
	engine.ErrStateCorruption: "The game state failed an internal consistency check.",
}

var suggestions = map[engine.ErrorCode][]string{
	engine.ErrOutOfBounds:           {"Use row and column values between 0 and 7."},
	engine.ErrSameSquare:            {"Choose a destination different from the origin."},
	engine.ErrNoPiece:               {"Select a square holding one of your pieces."},
	engine.ErrWrongTurn:             {"Wait for your turn to move."},
	engine.ErrPathBlocked:           {"Choose a destination with a clear path."},
	engine.ErrCaptureOwnPiece:       {"Choose an empty square or an enemy piece."},
	engine.ErrInvalidCastling:       {"Castling needs intact rights, a clear corridor, and no attacked transit squares."},
	engine.ErrInvalidEnPassant:      {"En passant is only available on the ply directly after the double step."},
	engine.ErrInvalidPromotion:      {"Promote to queen, rook, bishop, or knight; queen is the usual default."},
	engine.ErrKingInCheck:           {"Choose a move that does not expose your king."},
	engine.ErrCheckNotResolved:      {"Capture the attacker, block the line, or move the king."},
	engine.ErrDoubleCheckKingOnly:   {"Move the king; no other piece can resolve a double check."},
	engine.ErrTurnHistoryMismatch:   {"Recompute the turn from the history length."},
	engine.ErrTurnSequenceViolation: {"Recompute the turn from the history length."},
}

// Classify returns the table entry for code. Unknown codes fall back to
// the SYSTEM_ERROR entry so no fault ever leaves unclassified.
func Classify(code engine.ErrorCode) Classification {
	if cl, ok := classifications[code]; ok {
		return cl
	}
	return classifications[engine.ErrSystemError]
}

// Result is the wire shape of every engine operation outcome.
type Result struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	Data        any              `json:"data,omitempty"`
	ErrorCode   engine.ErrorCode `json:"errorCode,omitempty"`
	Category    Category         `json:"category,omitempty"`
	Severity    Severity         `json:"severity,omitempty"`
	Recoverable bool             `json:"recoverable,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Details     map[string]any   `json:"details,omitempty"`
	Context     map[string]any   `json:"context,omitempty"`
}

// CreateError builds the structured failure result for code. The context
// comes from the engine; message, classification, and suggestions from the
// catalogs here.
func CreateError(code engine.ErrorCode, context map[string]any) *Result {
	cl := Classify(code)
	msg, ok := messages[code]
	if !ok {
		msg = messages[engine.ErrSystemError]
	}
	return &Result{
		Success:     false,
		Message:     msg,
		ErrorCode:   code,
		Category:    cl.Category,
		Severity:    cl.Severity,
		Recoverable: cl.Recoverable,
		Errors:      []string{msg},
		Suggestions: suggestions[code],
		Context:     context,
	}
}

// FromError converts any engine error into a Result. Non-engine errors are
// wrapped as SYSTEM_ERROR rather than leaking a raw fault.
func FromError(err error) *Result {
	var merr *engine.MoveError
	if errors.As(err, &merr) {
		return CreateError(merr.Code, merr.Context)
	}
	return CreateError(engine.ErrSystemError, map[string]any{"error": err.Error()})
}

// Success builds the success envelope around a data payload.
func Success(message string, data any) *Result {
	return &Result{Success: true, Message: message, Data: data}
}
