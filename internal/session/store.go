// Package session persists a history of art generations in a SQLite
// database so past runs can be listed and re-rendered.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/the-o-space/Cue/internal/sentiment"
)

// Generation is one stored art generation record.
type Generation struct {
	ID        int64
	CreatedAt time.Time
	Text      string
	Scores    sentiment.Scores
	Kind      string
	Seed      int64
	Path      string
}

// Store records generations in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and initializes the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			text TEXT NOT NULL,
			positiveness REAL NOT NULL,
			energy REAL NOT NULL,
			complexity REAL NOT NULL,
			conflictness REAL NOT NULL,
			kind TEXT NOT NULL,
			seed INTEGER NOT NULL,
			path TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS generations_created_at ON generations (created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Add records one generation and returns its assigned id.
func (s *Store) Add(ctx context.Context, g Generation) (int64, error) {
	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (created_at, text, positiveness, energy, complexity, conflictness, kind, seed, path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Unix(), g.Text,
		g.Scores.Positiveness, g.Scores.Energy, g.Scores.Complexity, g.Scores.Conflictness,
		g.Kind, g.Seed, g.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to insert generation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generation id: %w", err)
	}
	return id, nil
}

// Recent returns the latest generations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, text, positiveness, energy, complexity, conflictness, kind, seed, path
		FROM generations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var (
			g       Generation
			created int64
		)
		if err := rows.Scan(&g.ID, &created, &g.Text,
			&g.Scores.Positiveness, &g.Scores.Energy, &g.Scores.Complexity, &g.Scores.Conflictness,
			&g.Kind, &g.Seed, &g.Path); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		g.CreatedAt = time.Unix(created, 0)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generations: %w", err)
	}

	return out, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
