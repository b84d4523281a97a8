package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/ultramac/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLite stores scores in a single SQLite database shared by all users.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database and applies migrations.
func OpenSQLite(path string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps appends visible to the next query.
	db.SetMaxOpenConns(1)
	store := &SQLite{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			username TEXT NOT NULL,
			played_at TEXT NOT NULL,
			score INTEGER NOT NULL,
			time_limit_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_username ON scores(username);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append stores one finished game.
func (s *SQLite) Append(ctx context.Context, rec model.ScoreRecord) error {
	if err := checkUsername(rec.Username); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (session_id, username, played_at, score, time_limit_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Username,
		rec.Timestamp(),
		rec.Score,
		rec.TimeLimit.Milliseconds(),
	)
	return err
}

// Query returns all games for username in append order.
func (s *SQLite) Query(ctx context.Context, username string) ([]model.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, username, played_at, score, time_limit_ms
		 FROM scores
		 WHERE username = ?
		 ORDER BY id ASC`, username)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ScoreRecord
	for rows.Next() {
		var rec model.ScoreRecord
		var playedAt string
		var limitMs int64
		if err := rows.Scan(&rec.SessionID, &rec.Username, &playedAt, &rec.Score, &limitMs); err != nil {
			return nil, err
		}
		parsed, err := model.ParseTimestamp(playedAt)
		if err != nil {
			return nil, err
		}
		rec.PlayedAt = parsed
		rec.TimeLimit = time.Duration(limitMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Users lists every username with at least one stored game.
func (s *SQLite) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT username FROM scores ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var users []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		users = append(users, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
