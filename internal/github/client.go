package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
)

const (
	defaultEndpoint = "https://api.github.com/graphql"

	// maxRepositories bounds the pagination loop. The retrieved set is a
	// prefix of the most recently updated repositories; the authoritative
	// total always comes from the first page's totalCount.
	maxRepositories = 1000
)

// Client issues GraphQL queries against the GitHub API. It is stateless per
// invocation and never retries; retry policy belongs to the caller.
type Client struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
}

// NewClient creates a client against the public GitHub GraphQL endpoint
func NewClient(token string) *Client {
	return NewClientWithEndpoint(token, defaultEndpoint)
}

// NewClientWithEndpoint creates a client against a custom endpoint, used by
// tests to point at a fake server
func NewClientWithEndpoint(token, endpoint string) *Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: src},
		Timeout:   30 * time.Second,
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// FetchOverview retrieves the user's profile fields and repository set,
// paging through the repository list until the last page or the hard cap.
// Profile fields are read once from the first page; they are invariant
// across pages.
func (c *Client) FetchOverview(ctx context.Context, username string) (*domain.UserOverview, error) {
	var overview *domain.UserOverview
	var cursor *string

	for {
		variables := map[string]interface{}{
			"login":  username,
			"cursor": cursor,
		}

		var data overviewData
		if err := c.post(ctx, userOverviewQuery, variables, &data); err != nil {
			return nil, err
		}

		user := data.User
		if user == nil {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %q", username))
		}

		if overview == nil {
			overview = &domain.UserOverview{
				Login:             user.Login,
				CreatedAt:         user.CreatedAt,
				Bio:               stringValue(user.Bio),
				Company:           stringValue(user.Company),
				Location:          stringValue(user.Location),
				Followers:         user.Followers.TotalCount,
				Following:         user.Following.TotalCount,
				TotalRepositories: user.Repositories.TotalCount,
			}
		}

		for _, node := range user.Repositories.Nodes {
			overview.Repositories = append(overview.Repositories, toRepository(node))
		}

		if !user.Repositories.PageInfo.HasNextPage || len(overview.Repositories) >= maxRepositories {
			break
		}
		next := user.Repositories.PageInfo.EndCursor
		cursor = &next
	}

	return overview, nil
}

// FetchContributions retrieves the contribution calendar and aggregate
// counts bounded to the UTC window of the requested year.
func (c *Client) FetchContributions(ctx context.Context, username string, year int) (*domain.ContributionSummary, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	variables := map[string]interface{}{
		"login": username,
		"from":  from.Format("2006-01-02T15:04:05.000Z"),
		"to":    to.Format("2006-01-02T15:04:05.000Z"),
	}

	var data contributionsData
	if err := c.post(ctx, userContributionsQuery, variables, &data); err != nil {
		return nil, err
	}

	if data.User == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %q", username))
	}
	coll := data.User.ContributionsCollection
	if coll == nil {
		return nil, apperrors.NewIncompleteDataError(fmt.Sprintf("no contributions collection for %s (%d)", username, year))
	}

	summary := &domain.ContributionSummary{
		TotalCommits: coll.TotalCommitContributions,
		TotalIssues:  coll.TotalIssueContributions,
		TotalPRs:     coll.TotalPullRequestContributions,
		TotalReviews: coll.TotalPullRequestReviewContributions,
	}

	if cal := coll.ContributionCalendar; cal != nil {
		calendar := &domain.ContributionCalendar{
			TotalContributions: cal.TotalContributions,
			Weeks:              make([]domain.Week, 0, len(cal.Weeks)),
		}
		for _, week := range cal.Weeks {
			days := make([]domain.ContributionDay, 0, len(week.ContributionDays))
			for _, day := range week.ContributionDays {
				days = append(days, domain.ContributionDay{
					Date:    day.Date,
					Count:   day.ContributionCount,
					Weekday: day.Weekday,
				})
			}
			calendar.Weeks = append(calendar.Weeks, domain.Week{Days: days})
		}
		summary.Calendar = calendar
	}

	return summary, nil
}

// post executes one GraphQL request and decodes the data payload into out.
// GraphQL errors of type NOT_FOUND map to a not found error; every other
// failure maps to an upstream unavailable error carrying the upstream
// message.
func (c *Client) post(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return apperrors.NewInternalError("failed to encode GraphQL request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewInternalError("failed to build GraphQL request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError("GitHub GraphQL request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.NewUpstreamError(
			fmt.Sprintf("GitHub GraphQL returned %s: %s", resp.Status, strings.TrimSpace(string(msg))), nil)
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return apperrors.NewUpstreamError("failed to decode GraphQL response", err)
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, gqlErr := range gqlResp.Errors {
			if gqlErr.Type == "NOT_FOUND" {
				return apperrors.NewNotFoundError(gqlErr.Message)
			}
			messages = append(messages, gqlErr.Message)
		}
		return apperrors.NewUpstreamError(strings.Join(messages, "; "), nil)
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return apperrors.NewUpstreamError("failed to decode GraphQL data", err)
	}
	return nil
}

func toRepository(node repositoryNode) domain.Repository {
	repo := domain.Repository{
		Name:               node.Name,
		Description:        stringValue(node.Description),
		StargazerCount:     node.StargazerCount,
		ForkCount:          node.ForkCount,
		WatcherCount:       node.Watchers.TotalCount,
		CreatedAt:          node.CreatedAt,
		UpdatedAt:          node.UpdatedAt,
		PushedAt:           node.PushedAt,
		IsArchived:         node.IsArchived,
		IsPrivate:          node.IsPrivate,
		DiskUsage:          node.DiskUsage,
		LanguagesTotalSize: node.Languages.TotalSize,
	}

	if node.PrimaryLanguage != nil {
		repo.PrimaryLanguage = &domain.Language{
			Name:  node.PrimaryLanguage.Name,
			Color: node.PrimaryLanguage.Color,
		}
	}
	for _, edge := range node.Languages.Edges {
		repo.Languages = append(repo.Languages, domain.LanguageEdge{
			Name:  edge.Node.Name,
			Color: edge.Node.Color,
			Size:  edge.Size,
		})
	}
	if node.LicenseInfo != nil {
		repo.License = &domain.License{
			Name:   node.LicenseInfo.Name,
			SpdxID: node.LicenseInfo.SpdxID,
		}
	}
	for _, topicNode := range node.RepositoryTopics.Nodes {
		repo.Topics = append(repo.Topics, topicNode.Topic.Name)
	}

	return repo
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
