package storage

import (
	"context"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
)

// Store is the abstract interface for the wrapped result persistence layer.
// The (username, year) pair is a unique key: a result is created once and
// never updated.
type Store interface {
	// FindByKey returns the stored result for (username, year), or nil when
	// no result exists
	FindByKey(ctx context.Context, username string, year int) (*domain.WrappedResult, error)

	// InsertUnique stores a new result. A unique-key violation returns a
	// store conflict error; the stored set is left untouched.
	InsertUnique(ctx context.Context, result *domain.WrappedResult) error

	// Migration
	Migrate(ctx context.Context) error

	// Connection management
	Close() error
}
