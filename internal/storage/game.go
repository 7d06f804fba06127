package storage

import (
	"database/sql"

	"chessrules/internal/engine"
)

// StoredMove is one persisted ply, as returned by LoadMoves.
type StoredMove struct {
	Ply      int              `json:"ply"`
	Color    engine.Color     `json:"color"`
	Piece    engine.PieceType `json:"piece"`
	From     engine.Position  `json:"from"`
	To       engine.Position  `json:"to"`
	Notation string           `json:"notation"`
}

// SaveGame records a new game row asynchronously.
func (s *Store) SaveGame(gameID string) {
	s.enqueue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR IGNORE INTO games (id) VALUES (?)`, gameID)
		return err
	})
}

// RecordMove appends a committed ply asynchronously.
func (s *Store) RecordMove(gameID string, ply int, rec engine.MoveRecord) {
	s.enqueue(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO moves
			 (game_id, ply, color, piece, from_row, from_col, to_row, to_col, notation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			gameID, ply, string(rec.Color), string(rec.Piece),
			rec.From.Row, rec.From.Col, rec.To.Row, rec.To.Col, rec.Notation,
		)
		return err
	})
}

// SetResult stores the terminal status and winner for a game.
func (s *Store) SetResult(gameID string, status engine.GameStatus, winner engine.Color) {
	s.enqueue(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`UPDATE games SET status = ?, winner = ? WHERE id = ?`,
			string(status), string(winner), gameID,
		)
		return err
	})
}

// LoadMoves returns a game's committed plies in order.
func (s *Store) LoadMoves(gameID string) ([]StoredMove, error) {
	rows, err := s.db.Query(
		`SELECT ply, color, piece, from_row, from_col, to_row, to_col, notation
		 FROM moves WHERE game_id = ? ORDER BY ply`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []StoredMove
	for rows.Next() {
		var m StoredMove
		var color, piece string
		if err := rows.Scan(&m.Ply, &color, &piece,
			&m.From.Row, &m.From.Col, &m.To.Row, &m.To.Col, &m.Notation); err != nil {
			return nil, err
		}
		m.Color = engine.Color(color)
		m.Piece = engine.PieceType(piece)
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
