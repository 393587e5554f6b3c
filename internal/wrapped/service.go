package wrapped

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
	"github.com/kurihiro0119/github-wrapped/internal/insights"
	"github.com/kurihiro0119/github-wrapped/internal/storage"
)

const sourceNote = "Data fetched from public GitHub API"

// Fetcher defines the upstream data the orchestrator needs
type Fetcher interface {
	// FetchOverview retrieves profile fields and the repository set
	FetchOverview(ctx context.Context, username string) (*domain.UserOverview, error)

	// FetchContributions retrieves the contribution summary for a year
	FetchContributions(ctx context.Context, username string, year int) (*domain.ContributionSummary, error)
}

// Service coordinates the cache-or-compute decision for wrapped results
type Service interface {
	// GetWrapped returns the stored result for (username, year) or computes,
	// persists and returns a new one
	GetWrapped(ctx context.Context, username string, year int) (*domain.WrappedResult, error)
}

// service implements the Service interface
type service struct {
	fetcher Fetcher
	store   storage.Store
}

// NewService creates a new wrapped service
func NewService(fetcher Fetcher, store storage.Store) Service {
	return &service{
		fetcher: fetcher,
		store:   store,
	}
}

// GetWrapped resolves one request end to end: cache check, concurrent fetch
// of overview and contributions, insight computation, persist, return. On any
// fetch or computation failure nothing is persisted. A stored result is
// permanent; a past year's activity does not change.
func (s *service) GetWrapped(ctx context.Context, username string, year int) (*domain.WrappedResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	cached, err := s.store.FindByKey(ctx, username, year)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		log.Printf("cache hit for %s (%d)", username, year)
		return cached, nil
	}

	log.Printf("fetching GitHub data for %s (%d)", username, year)

	var (
		overview      *domain.UserOverview
		contributions *domain.ContributionSummary
		overviewErr   error
		contribErr    error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		overview, overviewErr = s.fetcher.FetchOverview(ctx, username)
	}()
	go func() {
		defer wg.Done()
		contributions, contribErr = s.fetcher.FetchContributions(ctx, username, year)
	}()
	wg.Wait()

	if overviewErr != nil {
		return nil, overviewErr
	}
	if contribErr != nil {
		return nil, contribErr
	}

	computed, err := insights.Compute(overview, contributions, year)
	if err != nil {
		return nil, err
	}

	result := &domain.WrappedResult{
		ID:          uuid.New().String(),
		Username:    username,
		Year:        year,
		GeneratedAt: time.Now().UTC(),
		Source:      domain.Source{Type: "public", Note: sourceNote},
		Insights:    *computed,
	}

	if err := s.store.InsertUnique(ctx, result); err != nil {
		if apperrors.IsStoreConflict(err) {
			// A concurrent request won the insert race; its stored copy is
			// the authoritative one
			existing, findErr := s.store.FindByKey(ctx, username, year)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	log.Printf("wrapped result generated and saved for %s (%d)", username, year)
	return result, nil
}
