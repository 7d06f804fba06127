package storage

const Schema = `
CREATE TABLE IF NOT EXISTS games (
    id         TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    status     TEXT NOT NULL DEFAULT 'active',
    winner     TEXT
);

CREATE TABLE IF NOT EXISTS moves (
    game_id   TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
    ply       INTEGER NOT NULL,
    color     TEXT NOT NULL,
    piece     TEXT NOT NULL,
    from_row  INTEGER NOT NULL,
    from_col  INTEGER NOT NULL,
    to_row    INTEGER NOT NULL,
    to_col    INTEGER NOT NULL,
    notation  TEXT NOT NULL,
    played_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (game_id, ply)
);

CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(game_id);
`
