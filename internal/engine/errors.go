package engine

// ErrorCode identifies why a move was rejected. The engine selects codes;
// the report package owns the category/severity/recoverability table and
// all user-facing text.
type ErrorCode string

const (
	// Format
	ErrMalformedMove        ErrorCode = "MALFORMED_MOVE"
	ErrInvalidFormat        ErrorCode = "INVALID_FORMAT"
	ErrMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"

	// Coordinates
	ErrInvalidCoordinates ErrorCode = "INVALID_COORDINATES"
	ErrOutOfBounds        ErrorCode = "OUT_OF_BOUNDS"
	ErrSameSquare         ErrorCode = "SAME_SQUARE"

	// Piece selection
	ErrNoPiece           ErrorCode = "NO_PIECE"
	ErrWrongTurn         ErrorCode = "WRONG_TURN"
	ErrInvalidPiece      ErrorCode = "INVALID_PIECE"
	ErrInvalidPieceType  ErrorCode = "INVALID_PIECE_TYPE"
	ErrInvalidPieceColor ErrorCode = "INVALID_PIECE_COLOR"

	// Movement geometry
	ErrInvalidMovement  ErrorCode = "INVALID_MOVEMENT"
	ErrUnknownPieceType ErrorCode = "UNKNOWN_PIECE_TYPE"

	// Path
	ErrPathBlocked ErrorCode = "PATH_BLOCKED"

	// Rules
	ErrCaptureOwnPiece  ErrorCode = "CAPTURE_OWN_PIECE"
	ErrInvalidCastling  ErrorCode = "INVALID_CASTLING"
	ErrInvalidEnPassant ErrorCode = "INVALID_EN_PASSANT"
	ErrInvalidPromotion ErrorCode = "INVALID_PROMOTION"

	// Check
	ErrKingInCheck            ErrorCode = "KING_IN_CHECK"
	ErrPinnedPieceInvalidMove ErrorCode = "PINNED_PIECE_INVALID_MOVE"
	ErrDoubleCheckKingOnly    ErrorCode = "DOUBLE_CHECK_KING_ONLY"
	ErrCheckNotResolved       ErrorCode = "CHECK_NOT_RESOLVED"

	// Game state
	ErrGameNotActive         ErrorCode = "GAME_NOT_ACTIVE"
	ErrInvalidStatus         ErrorCode = "INVALID_STATUS"
	ErrTurnSequenceViolation ErrorCode = "TURN_SEQUENCE_VIOLATION"
	ErrTurnHistoryMismatch   ErrorCode = "TURN_HISTORY_MISMATCH"
	ErrInvalidColor          ErrorCode = "INVALID_COLOR"

	// System
	ErrSystemError     ErrorCode = "SYSTEM_ERROR"
	ErrStateCorruption ErrorCode = "STATE_CORRUPTION"
)

// MoveError is a rejected operation. The board is guaranteed untouched
// whenever one is returned.
type MoveError struct {
	Code    ErrorCode      `json:"code"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *MoveError) Error() string {
	return string(e.Code)
}

func reject(code ErrorCode, ctx map[string]any) *MoveError {
	return &MoveError{Code: code, Context: ctx}
}
