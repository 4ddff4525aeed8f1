// Package storage provides SQLite-based persistence for snake scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-modes/internal/core"
)

// DefaultPath is where the score database lives unless overridden.
const DefaultPath = "~/.snake/scores.db"

// rankOrder sorts score lists: best score first, faster first on ties,
// most recent first after that.
const rankOrder = "ORDER BY score DESC, time_secs ASC, played_at DESC, id ASC"

// ErrEmptyPlayer is returned when a score is recorded without a name.
var ErrEmptyPlayer = errors.New("storage: player name is empty")

// Store manages the SQLite database connection for score persistence.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// ScoreRecord is one finished session.
type ScoreRecord struct {
	ID       int64   `json:"id"`
	Player   string  `json:"player"`
	Mode     string  `json:"mode"`
	Score    int     `json:"score"`
	Time     float64 `json:"time"`      // Play time in seconds
	PlayedAt float64 `json:"played_at"` // Unix seconds
}

// Date returns the moment the session ended.
func (r ScoreRecord) Date() time.Time {
	return unixFloat(r.PlayedAt)
}

// Totals aggregates the score table.
type Totals struct {
	Games       int       `json:"games"`
	Players     int       `json:"players"`
	Modes       int       `json:"modes"`
	TotalScore  int64     `json:"total_score"`
	TotalTime   float64   `json:"total_time"`
	FirstPlayed time.Time `json:"first_played"`
	LastPlayed  time.Time `json:"last_played"`
	DaysPlayed  int       `json:"days_played"`
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			time_secs REAL NOT NULL,
			played_at REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, time_secs ASC, played_at DESC);
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

// RecordScore stores a finished session. The player name is stored
// upper-case. Returns the ID of the inserted record.
func (s *Store) RecordScore(player, mode string, score int, elapsed, timestamp float64) (int64, error) {
	player = strings.ToUpper(strings.TrimSpace(player))
	if player == "" {
		return 0, ErrEmptyPlayer
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (player, mode, score, time_secs, played_at) VALUES (?, ?, ?, ?, ?)",
		player, mode, score, elapsed, timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordSession stores a session result under the given player name.
func (s *Store) RecordSession(player string, res core.SessionResult) (int64, error) {
	return s.RecordScore(player, res.Mode, res.Score, res.ElapsedSeconds(), res.Timestamp())
}

// AllScores returns every record in rank order.
func (s *Store) AllScores() ([]ScoreRecord, error) {
	return s.queryScores("SELECT id, player, mode, score, time_secs, played_at FROM scores " + rankOrder)
}

// ScoresForMode returns the records of one mode in rank order.
// An empty mode returns all records.
func (s *Store) ScoresForMode(mode string) ([]ScoreRecord, error) {
	if mode == "" {
		return s.AllScores()
	}
	return s.queryScores(
		"SELECT id, player, mode, score, time_secs, played_at FROM scores WHERE mode = ? "+rankOrder,
		mode,
	)
}

// TopScores returns the best limit records of a mode, or of all modes
// when mode is empty.
func (s *Store) TopScores(mode string, limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if mode == "" {
		return s.queryScores(
			"SELECT id, player, mode, score, time_secs, played_at FROM scores "+rankOrder+" LIMIT ?",
			limit,
		)
	}
	return s.queryScores(
		"SELECT id, player, mode, score, time_secs, played_at FROM scores WHERE mode = ? "+rankOrder+" LIMIT ?",
		mode, limit,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		if err := rows.Scan(&r.ID, &r.Player, &r.Mode, &r.Score, &r.Time, &r.PlayedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// DistinctModes returns every mode label that has scores, sorted.
func (s *Store) DistinctModes() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT mode FROM scores ORDER BY mode")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query modes: %w", err)
	}
	defer rows.Close()

	var modes []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		modes = append(modes, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return modes, nil
}

// Totals aggregates the records of a mode, or of all modes when mode is
// empty. Days played counts distinct local calendar dates.
func (s *Store) Totals(mode string) (Totals, error) {
	where, args := "", []any{}
	if mode != "" {
		where, args = " WHERE mode = ?", []any{mode}
	}

	var t Totals
	var first, last sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COUNT(DISTINCT mode),
		        COALESCE(SUM(score), 0), COALESCE(SUM(time_secs), 0.0),
		        MIN(played_at), MAX(played_at)
		 FROM scores`+where,
		args...,
	).Scan(&t.Games, &t.Players, &t.Modes, &t.TotalScore, &t.TotalTime, &first, &last)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot get totals: %w", err)
	}
	if first.Valid {
		t.FirstPlayed = unixFloat(first.Float64)
	}
	if last.Valid {
		t.LastPlayed = unixFloat(last.Float64)
	}

	rows, err := s.db.Query("SELECT played_at FROM scores"+where, args...)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot query dates: %w", err)
	}
	defer rows.Close()

	days := make(map[string]struct{})
	for rows.Next() {
		var ts float64
		if err := rows.Scan(&ts); err != nil {
			return Totals{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		days[unixFloat(ts).Format(time.DateOnly)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return Totals{}, fmt.Errorf("storage: row iteration error: %w", err)
	}
	t.DaysPlayed = len(days)

	return t, nil
}

// DeleteAll removes every score.
func (s *Store) DeleteAll() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// unixFloat converts fractional unix seconds to local time.
func unixFloat(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
