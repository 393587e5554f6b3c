package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
	"github.com/kurihiro0119/github-wrapped/internal/storage"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique-key violation
const uniqueViolation = "23505"

// postgresStore implements the Store interface for PostgreSQL
type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL store instance
func NewPostgresStore(connStr string) (storage.Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &postgresStore{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *postgresStore) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS wrapped_results (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		year INTEGER NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL,
		source_type TEXT NOT NULL,
		source_note TEXT NOT NULL,
		insights JSONB NOT NULL,
		CONSTRAINT wrapped_results_username_year_key UNIQUE (username, year)
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// FindByKey returns the stored result for (username, year), or nil when absent
func (s *postgresStore) FindByKey(ctx context.Context, username string, year int) (*domain.WrappedResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, year, generated_at, source_type, source_note, insights
		FROM wrapped_results
		WHERE username = $1 AND year = $2
	`, username, year)

	var result domain.WrappedResult
	var generatedAt time.Time
	var insights []byte

	err := row.Scan(&result.ID, &result.Username, &result.Year, &generatedAt,
		&result.Source.Type, &result.Source.Note, &insights)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan wrapped result: %w", err)
	}

	result.GeneratedAt = generatedAt
	if err := json.Unmarshal(insights, &result.Insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}
	return &result, nil
}

// InsertUnique stores a new result, mapping a unique-key violation to a
// store conflict error
func (s *postgresStore) InsertUnique(ctx context.Context, result *domain.WrappedResult) error {
	insights, err := json.Marshal(result.Insights)
	if err != nil {
		return fmt.Errorf("failed to encode insights: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wrapped_results (id, username, year, generated_at, source_type, source_note, insights)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, result.ID, result.Username, result.Year, result.GeneratedAt,
		result.Source.Type, result.Source.Note, insights)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewStoreConflictError(
				fmt.Sprintf("wrapped result already exists for %s (%d)", result.Username, result.Year), err)
		}
		return fmt.Errorf("failed to insert wrapped result: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *postgresStore) Close() error {
	return s.db.Close()
}
