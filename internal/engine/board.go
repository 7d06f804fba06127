package engine

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type PieceType string

const (
	Pawn   PieceType = "pawn"
	Rook   PieceType = "rook"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

func (p PieceType) Valid() bool {
	switch p {
	case Pawn, Rook, Knight, Bishop, Queen, King:
		return true
	}
	return false
}

func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// promotionTypes is the closed set of legal promotion targets.
var promotionTypes = map[PieceType]bool{
	Queen:  true,
	Rook:   true,
	Bishop: true,
	Knight: true,
}

// Piece is an immutable value; moving a piece relocates it on the grid.
// Promotion replaces the piece rather than mutating it in place.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Position addresses a square. Row 0 is black's back rank, row 7 white's,
// matching the grid orientation the wire format uses.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) onBoard() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Notation renders the square in algebraic form, e.g. {7,4} -> "e1".
func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

// Board is the 8x8 grid plus cached king positions. nil cells are empty.
type Board struct {
	squares   [8][8]*Piece
	whiteKing Position
	blackKing Position
}

func newEmptyBoard() *Board {
	return &Board{}
}

// NewBoard sets up the standard starting position.
func NewBoard() *Board {
	b := newEmptyBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, pt := range backRank {
		b.place(Position{Row: 0, Col: col}, &Piece{Type: pt, Color: Black})
		b.place(Position{Row: 7, Col: col}, &Piece{Type: pt, Color: White})
	}
	for col := 0; col < 8; col++ {
		b.place(Position{Row: 1, Col: col}, &Piece{Type: Pawn, Color: Black})
		b.place(Position{Row: 6, Col: col}, &Piece{Type: Pawn, Color: White})
	}
	return b
}

func (b *Board) PieceAt(p Position) *Piece {
	if !p.onBoard() {
		return nil
	}
	return b.squares[p.Row][p.Col]
}

func (b *Board) place(pos Position, pc *Piece) {
	b.squares[pos.Row][pos.Col] = pc
	if pc != nil && pc.Type == King {
		if pc.Color == White {
			b.whiteKing = pos
		} else {
			b.blackKing = pos
		}
	}
}

func (b *Board) remove(pos Position) {
	b.squares[pos.Row][pos.Col] = nil
}

// movePiece relocates the piece at from to to, overwriting any capture.
func (b *Board) movePiece(from, to Position) {
	pc := b.squares[from.Row][from.Col]
	b.squares[from.Row][from.Col] = nil
	b.place(to, pc)
}

func (b *Board) KingPosition(c Color) Position {
	if c == White {
		return b.whiteKing
	}
	return b.blackKing
}

// Clone deep-copies the board so simulations never alias the live grid.
func (b *Board) Clone() *Board {
	nb := &Board{whiteKing: b.whiteKing, blackKing: b.blackKing}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if pc := b.squares[r][c]; pc != nil {
				cp := *pc
				nb.squares[r][c] = &cp
			}
		}
	}
	return nb
}

// Grid returns a deep copy of the squares for snapshots and wire payloads.
func (b *Board) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for r := 0; r < 8; r++ {
		grid[r] = make([]*Piece, 8)
		for c := 0; c < 8; c++ {
			if pc := b.squares[r][c]; pc != nil {
				cp := *pc
				grid[r][c] = &cp
			}
		}
	}
	return grid
}

// boardFromGrid rebuilds a Board from a snapshot grid, enforcing the
// one-king-per-color invariant.
func boardFromGrid(grid [][]*Piece) (*Board, *MoveError) {
	if len(grid) != 8 {
		return nil, reject(ErrStateCorruption, map[string]any{"reason": "grid must have 8 rows"})
	}
	b := newEmptyBoard()
	whiteKings, blackKings := 0, 0
	for r := 0; r < 8; r++ {
		if len(grid[r]) != 8 {
			return nil, reject(ErrStateCorruption, map[string]any{"reason": "grid rows must have 8 columns", "row": r})
		}
		for c := 0; c < 8; c++ {
			pc := grid[r][c]
			if pc == nil {
				continue
			}
			if !pc.Type.Valid() || !pc.Color.Valid() {
				return nil, reject(ErrInvalidPiece, map[string]any{"row": r, "col": c, "piece": *pc})
			}
			cp := *pc
			b.place(Position{Row: r, Col: c}, &cp)
			if pc.Type == King {
				if pc.Color == White {
					whiteKings++
				} else {
					blackKings++
				}
			}
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, reject(ErrStateCorruption, map[string]any{
			"reason":     "exactly one king per color required",
			"whiteKings": whiteKings,
			"blackKings": blackKings,
		})
	}
	return b, nil
}
