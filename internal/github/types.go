package github

import (
	"encoding/json"
	"time"
)

// graphQLRequest represents a GitHub GraphQL API request
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse represents a GitHub GraphQL API response
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// graphQLError represents a GitHub GraphQL API error
type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

type languageNode struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type repositoryNode struct {
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	StargazerCount  int        `json:"stargazerCount"`
	ForkCount       int        `json:"forkCount"`
	Watchers        totalCount `json:"watchers"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	PushedAt        *time.Time `json:"pushedAt"`
	IsArchived      bool       `json:"isArchived"`
	IsPrivate       bool       `json:"isPrivate"`
	DiskUsage       int        `json:"diskUsage"`
	PrimaryLanguage *languageNode `json:"primaryLanguage"`
	Languages       struct {
		TotalSize int `json:"totalSize"`
		Edges     []struct {
			Size int          `json:"size"`
			Node languageNode `json:"node"`
		} `json:"edges"`
	} `json:"languages"`
	LicenseInfo *struct {
		Name   string `json:"name"`
		SpdxID string `json:"spdxId"`
	} `json:"licenseInfo"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
}

type overviewData struct {
	User *struct {
		Login        string     `json:"login"`
		CreatedAt    time.Time  `json:"createdAt"`
		Bio          *string    `json:"bio"`
		Company      *string    `json:"company"`
		Location     *string    `json:"location"`
		Followers    totalCount `json:"followers"`
		Following    totalCount `json:"following"`
		Repositories struct {
			TotalCount int              `json:"totalCount"`
			PageInfo   pageInfo         `json:"pageInfo"`
			Nodes      []repositoryNode `json:"nodes"`
		} `json:"repositories"`
	} `json:"user"`
}

type contributionsData struct {
	User *struct {
		ContributionsCollection *struct {
			TotalCommitContributions            int `json:"totalCommitContributions"`
			TotalIssueContributions             int `json:"totalIssueContributions"`
			TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
			TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
			ContributionCalendar                *struct {
				TotalContributions int `json:"totalContributions"`
				Weeks              []struct {
					ContributionDays []struct {
						ContributionCount int    `json:"contributionCount"`
						Date              string `json:"date"`
						Weekday           int    `json:"weekday"`
					} `json:"contributionDays"`
				} `json:"weeks"`
			} `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}
