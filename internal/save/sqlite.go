package save

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB holds per-user snapshots for hosted sessions.
type DB struct {
	conn *sql.DB
}

// OpenDB opens (or creates) the SQLite database at path.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open save db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate save db: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
	CREATE TABLE IF NOT EXISTS snapshots (
		username TEXT PRIMARY KEY,
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0,
		coins INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`)
	return err
}

// ForUser returns a Store bound to one username.
func (db *DB) ForUser(username string) Store {
	return &userStore{db: db, username: username}
}

type userStore struct {
	db       *DB
	username string
}

func (u *userStore) Load() (Snapshot, error) {
	var s Snapshot
	err := u.db.conn.QueryRow(
		"SELECT x, y, coins FROM snapshots WHERE username = ?", u.username,
	).Scan(&s.Position.X, &s.Position.Y, &s.Coins)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSave
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load save for %s: %w", u.username, err)
	}
	return s, nil
}

func (u *userStore) Save(s Snapshot) error {
	_, err := u.db.conn.Exec(`
		INSERT INTO snapshots (username, x, y, coins) VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			x = excluded.x, y = excluded.y, coins = excluded.coins,
			updated_at = CURRENT_TIMESTAMP`,
		u.username, s.Position.X, s.Position.Y, s.Coins,
	)
	if err != nil {
		return fmt.Errorf("save for %s: %w", u.username, err)
	}
	return nil
}
