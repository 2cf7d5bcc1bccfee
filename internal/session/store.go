// Package session persists per-session interaction history in SQLite.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeFmt = time.RFC3339Nano

// Interaction is one processed request and its response. Rows are
// append-only; an interaction is never updated after Save.
type Interaction struct {
	ID          int64
	Timestamp   time.Time
	SessionID   string
	Query       string
	Category    string
	Route       string
	Response    string
	Fallback    bool
	Model       string
	TotalTokens int
	Error       string
}

// Store abstracts interaction persistence keyed by session id.
// History returns newest-first. Implementations must be safe for
// concurrent use.
type Store interface {
	Save(in Interaction) error
	History(sessionID string, limit int) ([]Interaction, error)
	Clear(sessionID string) error
	Close() error
}

type SQLiteStore struct {
	db *sql.DB
}

func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		session_id TEXT NOT NULL,
		query TEXT NOT NULL,
		category TEXT NOT NULL,
		route TEXT NOT NULL,
		response TEXT NOT NULL,
		fallback INTEGER NOT NULL DEFAULT 0,
		model TEXT NOT NULL DEFAULT '',
		total_tokens INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_session ON interactions(session_id, timestamp)`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(in Interaction) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO interactions
		(timestamp, session_id, query, category, route, response, fallback, model, total_tokens, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.UTC().Format(timeFmt), in.SessionID, in.Query, in.Category, in.Route,
		in.Response, boolToInt(in.Fallback), in.Model, in.TotalTokens, in.Error)
	if err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(sessionID string, limit int) ([]Interaction, error) {
	rows, err := s.db.Query(`SELECT id, timestamp, session_id, query, category, route, response, fallback, model, total_tokens, error
		FROM interactions WHERE session_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		var ts string
		var fallback int
		if err := rows.Scan(&in.ID, &ts, &in.SessionID, &in.Query, &in.Category, &in.Route,
			&in.Response, &fallback, &in.Model, &in.TotalTokens, &in.Error); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		t, err := time.Parse(timeFmt, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		in.Timestamp = t
		in.Fallback = fallback != 0
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Clear(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM interactions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
