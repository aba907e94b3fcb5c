// Package storage provides SQLite-based persistence for best scores and
// round history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flapduel/internal/session"
)

// Store manages the SQLite database connection.
// It is safe for concurrent use; the SSH server shares one Store between
// connections.
type Store struct {
	db *sql.DB
}

// RoundEntry represents a single finished lane round.
type RoundEntry struct {
	ID        uuid.UUID
	Mode      string
	Lane      int
	Score     int
	Pilot     string // Empty for human play
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			mode TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			lane INTEGER NOT NULL,
			score INTEGER NOT NULL,
			pilot TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(mode, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the best score of every mode that has one, keyed by mode key.
func (s *Store) Load() (map[string]int, error) {
	rows, err := s.db.Query("SELECT mode, score FROM best_scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var mode string
		var score int
		if err := rows.Scan(&mode, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[mode] = score
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return best, nil
}

// Save upserts the given best scores in one transaction. A stored score is
// only ever raised. Modes missing from best are left untouched.
func (s *Store) Save(best map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for mode, score := range best {
		_, err := tx.Exec(
			`INSERT INTO best_scores (mode, score, updated_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(mode) DO UPDATE SET
			   score = MAX(best_scores.score, excluded.score),
			   updated_at = CASE WHEN excluded.score > best_scores.score
			     THEN excluded.updated_at ELSE best_scores.updated_at END`,
			mode, score,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save best score for %s: %w", mode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit best scores: %w", err)
	}
	return nil
}

// BestScore returns the stored best score for a mode.
// Returns 0 if the mode has never been played.
func (s *Store) BestScore(mode string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE mode = ?", mode).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// RecordRound implements session.RoundRecorder.
func (s *Store) RecordRound(r session.RoundResult) error {
	id := r.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := s.db.Exec(
		`INSERT INTO rounds (id, mode, lane, score, pilot, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), r.Mode.Key(), int(r.Lane)+1, r.Score, r.Pilot, r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record round: %w", err)
	}
	return nil
}

// TopRounds retrieves the top N rounds for the given mode key.
// Results are ordered by score descending, oldest first on ties.
func (s *Store) TopRounds(mode string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, lane, score, pilot, duration_ms, created_at
		 FROM rounds
		 WHERE mode = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var id string
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&id, &e.Mode, &e.Lane, &e.Score, &e.Pilot, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("storage: bad round id %q: %w", id, err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearMode deletes the best score and round history of a mode.
func (s *Store) ClearMode(mode string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rounds WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM best_scores WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// ModeStats contains aggregated round statistics for a mode.
type ModeStats struct {
	Mode       string
	Rounds     int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// AllModeStats retrieves statistics for every mode with recorded rounds.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM rounds
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Rounds, &m.HighScore, &m.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var (
	_ session.BestScoreStore = (*Store)(nil)
	_ session.RoundRecorder  = (*Store)(nil)
)
