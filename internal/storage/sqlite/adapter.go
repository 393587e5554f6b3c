package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
	"github.com/kurihiro0119/github-wrapped/internal/storage"
)

// sqliteStore implements the Store interface for SQLite
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(dbPath string) (storage.Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	s := &sqliteStore{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *sqliteStore) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS wrapped_results (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		year INTEGER NOT NULL,
		generated_at TIMESTAMP NOT NULL,
		source_type TEXT NOT NULL,
		source_note TEXT NOT NULL,
		insights TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_wrapped_results_username_year
		ON wrapped_results(username, year);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// FindByKey returns the stored result for (username, year), or nil when absent
func (s *sqliteStore) FindByKey(ctx context.Context, username string, year int) (*domain.WrappedResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, year, generated_at, source_type, source_note, insights
		FROM wrapped_results
		WHERE username = ? AND year = ?
	`, username, year)

	return scanResult(row)
}

// InsertUnique stores a new result, mapping a unique-key violation to a
// store conflict error
func (s *sqliteStore) InsertUnique(ctx context.Context, result *domain.WrappedResult) error {
	insights, err := json.Marshal(result.Insights)
	if err != nil {
		return fmt.Errorf("failed to encode insights: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wrapped_results (id, username, year, generated_at, source_type, source_note, insights)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.Username, result.Year, result.GeneratedAt,
		result.Source.Type, result.Source.Note, string(insights))

	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return apperrors.NewStoreConflictError(
				fmt.Sprintf("wrapped result already exists for %s (%d)", result.Username, result.Year), err)
		}
		return fmt.Errorf("failed to insert wrapped result: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func scanResult(row *sql.Row) (*domain.WrappedResult, error) {
	var result domain.WrappedResult
	var generatedAt time.Time
	var insights string

	err := row.Scan(&result.ID, &result.Username, &result.Year, &generatedAt,
		&result.Source.Type, &result.Source.Note, &insights)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan wrapped result: %w", err)
	}

	result.GeneratedAt = generatedAt
	if err := json.Unmarshal([]byte(insights), &result.Insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}
	return &result, nil
}
