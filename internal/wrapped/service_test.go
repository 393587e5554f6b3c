package wrapped

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
)

type fakeFetcher struct {
	overview      *domain.UserOverview
	contributions *domain.ContributionSummary
	overviewErr   error
	contribErr    error

	mu            sync.Mutex
	overviewCalls int
	contribCalls  int
}

func (f *fakeFetcher) FetchOverview(ctx context.Context, username string) (*domain.UserOverview, error) {
	f.mu.Lock()
	f.overviewCalls++
	f.mu.Unlock()
	return f.overview, f.overviewErr
}

func (f *fakeFetcher) FetchContributions(ctx context.Context, username string, year int) (*domain.ContributionSummary, error) {
	f.mu.Lock()
	f.contribCalls++
	f.mu.Unlock()
	return f.contributions, f.contribErr
}

type memoryStore struct {
	mu      sync.Mutex
	results map[string]*domain.WrappedResult
}

func newMemoryStore() *memoryStore {
	return &memoryStore{results: make(map[string]*domain.WrappedResult)}
}

func storeKey(username string, year int) string {
	return fmt.Sprintf("%s/%d", username, year)
}

func (m *memoryStore) FindByKey(ctx context.Context, username string, year int) (*domain.WrappedResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[storeKey(username, year)], nil
}

func (m *memoryStore) InsertUnique(ctx context.Context, result *domain.WrappedResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := storeKey(result.Username, result.Year)
	if _, exists := m.results[key]; exists {
		return apperrors.NewStoreConflictError("duplicate key", nil)
	}
	m.results[key] = result
	return nil
}

func (m *memoryStore) Migrate(ctx context.Context) error { return nil }
func (m *memoryStore) Close() error                      { return nil }

func (m *memoryStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

func validFetcher() *fakeFetcher {
	return &fakeFetcher{
		overview: &domain.UserOverview{
			Login:             "octocat",
			CreatedAt:         time.Date(2011, time.January, 25, 0, 0, 0, 0, time.UTC),
			TotalRepositories: 1,
			Repositories: []domain.Repository{
				{Name: "hello-world", StargazerCount: 3, CreatedAt: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		contributions: &domain.ContributionSummary{
			TotalCommits: 10,
			Calendar: &domain.ContributionCalendar{
				TotalContributions: 10,
				Weeks: []domain.Week{
					{Days: []domain.ContributionDay{{Date: "2023-05-02", Count: 10}}},
				},
			},
		},
	}
}

func TestGetWrappedComputesAndCaches(t *testing.T) {
	fetcher := validFetcher()
	store := newMemoryStore()
	service := NewService(fetcher, store)

	first, err := service.GetWrapped(context.Background(), "octocat", 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Username != "octocat" || first.Year != 2023 {
		t.Errorf("unexpected result identity: %s/%d", first.Username, first.Year)
	}
	if first.Source.Type != "public" || first.Source.Note == "" {
		t.Errorf("expected a provenance annotation, got %+v", first.Source)
	}
	if store.size() != 1 {
		t.Fatalf("expected 1 stored result, got %d", store.size())
	}

	second, err := service.GetWrapped(context.Background(), "octocat", 2023)
	if err != nil {
		t.Fatalf("unexpected error on repeat call: %v", err)
	}
	if second != first {
		t.Error("expected the cached result to be returned unchanged")
	}
	if fetcher.overviewCalls != 1 || fetcher.contribCalls != 1 {
		t.Errorf("repeat call must not hit upstream, got %d/%d calls", fetcher.overviewCalls, fetcher.contribCalls)
	}
}

func TestGetWrappedNormalizesUsername(t *testing.T) {
	fetcher := validFetcher()
	store := newMemoryStore()
	service := NewService(fetcher, store)

	result, err := service.GetWrapped(context.Background(), "  OctoCat ", 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Username != "octocat" {
		t.Errorf("expected lowercased username, got %q", result.Username)
	}

	stored, _ := store.FindByKey(context.Background(), "octocat", 2023)
	if stored == nil {
		t.Error("expected the result to be stored under the normalized key")
	}
}

func TestGetWrappedFetchFailurePersistsNothing(t *testing.T) {
	fetcher := validFetcher()
	fetcher.overviewErr = apperrors.NewUpstreamError("boom", nil)
	store := newMemoryStore()
	service := NewService(fetcher, store)

	_, err := service.GetWrapped(context.Background(), "octocat", 2023)
	if !apperrors.IsUpstreamUnavailable(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if store.size() != 0 {
		t.Errorf("nothing must be persisted on failure, got %d stored results", store.size())
	}
}

func TestGetWrappedNotFoundPropagates(t *testing.T) {
	fetcher := validFetcher()
	fetcher.contribErr = apperrors.NewNotFoundError("user \"ghost\"")
	store := newMemoryStore()
	service := NewService(fetcher, store)

	_, err := service.GetWrapped(context.Background(), "ghost", 2023)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if store.size() != 0 {
		t.Errorf("nothing must be persisted on failure, got %d stored results", store.size())
	}
}

func TestGetWrappedIncompleteDataAborts(t *testing.T) {
	fetcher := validFetcher()
	fetcher.contributions = &domain.ContributionSummary{} // no calendar
	store := newMemoryStore()
	service := NewService(fetcher, store)

	_, err := service.GetWrapped(context.Background(), "octocat", 2023)
	if !apperrors.IsIncompleteData(err) {
		t.Fatalf("expected incomplete data error, got %v", err)
	}
	if store.size() != 0 {
		t.Errorf("nothing must be persisted on failure, got %d stored results", store.size())
	}
}

// raceStore simulates losing a check-then-act race: the first lookup misses,
// the insert conflicts, and the re-read finds the winner's record.
type raceStore struct {
	winner  *domain.WrappedResult
	lookups int
}

func (r *raceStore) FindByKey(ctx context.Context, username string, year int) (*domain.WrappedResult, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, nil
	}
	return r.winner, nil
}

func (r *raceStore) InsertUnique(ctx context.Context, result *domain.WrappedResult) error {
	return apperrors.NewStoreConflictError("duplicate key", nil)
}

func (r *raceStore) Migrate(ctx context.Context) error { return nil }
func (r *raceStore) Close() error                      { return nil }

func TestGetWrappedConflictReturnsExistingResult(t *testing.T) {
	winner := &domain.WrappedResult{
		ID:       "winner-id",
		Username: "octocat",
		Year:     2023,
	}
	store := &raceStore{winner: winner}
	service := NewService(validFetcher(), store)

	result, err := service.GetWrapped(context.Background(), "octocat", 2023)
	if err != nil {
		t.Fatalf("a losing insert race must not surface an error, got %v", err)
	}
	if result != winner {
		t.Errorf("expected the winner's stored record, got %+v", result)
	}
}
