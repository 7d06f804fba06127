package engine

// Move is the caller's input. Promotion is ignored unless the move is a
// pawn reaching its last rank.
type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

type SideRights struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

// CastlingRights flags are monotonic: once cleared they never come back.
type CastlingRights struct {
	White SideRights `json:"white"`
	Black SideRights `json:"black"`
}

func newCastlingRights() CastlingRights {
	return CastlingRights{
		White: SideRights{Kingside: true, Queenside: true},
		Black: SideRights{Kingside: true, Queenside: true},
	}
}

func (r CastlingRights) side(c Color) SideRights {
	if c == White {
		return r.White
	}
	return r.Black
}

type CastleSide string

const (
	CastleKingside  CastleSide = "kingside"
	CastleQueenside CastleSide = "queenside"
)

// MoveRecord is one committed ply. History is append-only and its length
// always equals the number of committed plies.
type MoveRecord struct {
	From      Position   `json:"from"`
	To        Position   `json:"to"`
	Piece     PieceType  `json:"piece"`
	Color     Color      `json:"color"`
	Captured  *Piece     `json:"captured,omitempty"`
	Promotion PieceType  `json:"promotion,omitempty"`
	Castle    CastleSide `json:"castle,omitempty"`
	EnPassant bool       `json:"enPassant,omitempty"`
	Notation  string     `json:"notation"`
}

type GameStatus string

const (
	StatusActive    GameStatus = "active"
	StatusCheck     GameStatus = "check"
	StatusCheckmate GameStatus = "checkmate"
	StatusStalemate GameStatus = "stalemate"
	StatusDraw      GameStatus = "draw"
)

func (s GameStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCheck, StatusCheckmate, StatusStalemate, StatusDraw:
		return true
	}
	return false
}

// Terminal statuses accept no further moves.
func (s GameStatus) Terminal() bool {
	switch s {
	case StatusCheckmate, StatusStalemate, StatusDraw:
		return true
	}
	return false
}

// MoveResult is the success payload of MakeMove.
type MoveResult struct {
	Move              MoveRecord    `json:"move"`
	Board             [][]*Piece    `json:"board"`
	CurrentTurn       Color         `json:"currentTurn"`
	GameStatus        GameStatus    `json:"gameStatus"`
	Winner            Color         `json:"winner,omitempty"`
	MoveHistoryLength int           `json:"moveHistoryLength"`
	InCheck           bool          `json:"inCheck"`
	CheckDetails      *CheckDetails `json:"checkDetails,omitempty"`
}

// GameState is the full side-effect-free snapshot. A game rebuilt from one
// behaves identically to the original.
type GameState struct {
	Board           [][]*Piece     `json:"board"`
	CurrentTurn     Color          `json:"currentTurn"`
	GameStatus      GameStatus     `json:"gameStatus"`
	Winner          Color          `json:"winner,omitempty"`
	MoveHistory     []MoveRecord   `json:"moveHistory"`
	CastlingRights  CastlingRights `json:"castlingRights"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	HalfMoveClock   int            `json:"halfMoveClock"`
	FullMoveNumber  int            `json:"fullMoveNumber"`
	InCheck         bool           `json:"inCheck"`
	CheckDetails    *CheckDetails  `json:"checkDetails,omitempty"`
}
