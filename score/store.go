// Package score keeps finished games in a local sqlite high-score table
package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/term-snake/engine"
	_ "modernc.org/sqlite"
)

var (
	ErrNoScores = errors.New("no scores recorded")
	ErrBadLimit = errors.New("limit must be positive")
)

// DefaultName is used when a result carries no player name
const DefaultName = "anonymous"

// Result is one finished game
type Result struct {
	ID        uuid.UUID
	Name      string
	Score     int
	Level     int
	Length    int
	FoodEaten int
	Duration  time.Duration
	PlayedAt  time.Time
}

// ResultFromSnapshot summarizes the final frame of a game
func ResultFromSnapshot(name string, s engine.Snapshot, playedAt time.Time) Result {
	return Result{
		ID:        uuid.New(),
		Name:      name,
		Score:     s.Score,
		Level:     s.Level,
		Length:    len(s.Snake),
		FoodEaten: s.FoodEaten,
		Duration:  s.Elapsed,
		PlayedAt:  playedAt,
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		level INTEGER NOT NULL,
		length INTEGER NOT NULL,
		food_eaten INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		played_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS scores_rank ON scores (score DESC, played_at ASC)`,
}

// Store is a high-score table backed by a sqlite file
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path; ":memory:" is accepted
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create scores dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open scores: %w", err)
	}
	// Single writer, and keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)

	for _, q := range schema {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, fmt.Errorf("create scores schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts r, assigning an id and a timestamp when missing
func (s *Store) Record(ctx context.Context, r Result) (Result, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = DefaultName
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, name, score, level, length, food_eaten, duration_ms, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Name, r.Score, r.Level, r.Length, r.FoodEaten,
		r.Duration.Milliseconds(), r.PlayedAt.UnixMilli())
	if err != nil {
		return Result{}, fmt.Errorf("record score: %w", err)
	}
	return r, nil
}

// Top returns up to n results, best first, earlier games winning ties
func (s *Store) Top(ctx context.Context, n int) ([]Result, error) {
	if n <= 0 {
		return nil, ErrBadLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, score, level, length, food_eaten, duration_ms, played_at
		 FROM scores ORDER BY score DESC, played_at ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	return out, nil
}

// Best returns the top result or ErrNoScores
func (s *Store) Best(ctx context.Context) (Result, error) {
	top, err := s.Top(ctx, 1)
	if err != nil {
		return Result{}, err
	}
	if len(top) == 0 {
		return Result{}, ErrNoScores
	}
	return top[0], nil
}

// Rank returns the 1-based position score would take in the table
func (s *Store) Rank(ctx context.Context, score int) (int, error) {
	var better int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores WHERE score > ?`, score).Scan(&better); err != nil {
		return 0, fmt.Errorf("rank score: %w", err)
	}
	return better + 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var (
		r          Result
		id         string
		durationMs int64
		playedAtMs int64
	)
	if err := sc.Scan(&id, &r.Name, &r.Score, &r.Level, &r.Length, &r.FoodEaten, &durationMs, &playedAtMs); err != nil {
		return Result{}, fmt.Errorf("scan score: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Result{}, fmt.Errorf("scan score id: %w", err)
	}
	r.ID = parsed
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.PlayedAt = time.UnixMilli(playedAtMs)
	return r, nil
}
