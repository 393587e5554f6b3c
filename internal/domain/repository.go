package domain

import "time"

// Language represents a programming language with its display color
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LanguageEdge represents one language of a repository weighted by byte size
type LanguageEdge struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size"`
}

// License represents a repository license
type License struct {
	Name   string `json:"name,omitempty"`
	SpdxID string `json:"spdxId,omitempty"`
}

// Repository is an immutable snapshot of one repository at fetch time.
// It is owned by the fetch cycle that produced it and never mutated.
type Repository struct {
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	StargazerCount     int            `json:"stargazerCount"`
	ForkCount          int            `json:"forkCount"`
	WatcherCount       int            `json:"watcherCount"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	PushedAt           *time.Time     `json:"pushedAt,omitempty"`
	IsArchived         bool           `json:"isArchived"`
	IsPrivate          bool           `json:"isPrivate"`
	DiskUsage          int            `json:"diskUsage"`
	PrimaryLanguage    *Language      `json:"primaryLanguage,omitempty"`
	Languages          []LanguageEdge `json:"languages,omitempty"`
	LanguagesTotalSize int            `json:"languagesTotalSize"`
	License            *License       `json:"license,omitempty"`
	Topics             []string       `json:"topics,omitempty"`
}

// UserOverview holds the profile fields and the retrieved repository set.
// TotalRepositories is the upstream's authoritative count; Repositories may
// be a capped prefix of the true set, ordered by most recently updated.
type UserOverview struct {
	Login             string       `json:"login"`
	CreatedAt         time.Time    `json:"createdAt"`
	Bio               string       `json:"bio,omitempty"`
	Company           string       `json:"company,omitempty"`
	Location          string       `json:"location,omitempty"`
	Followers         int          `json:"followers"`
	Following         int          `json:"following"`
	TotalRepositories int          `json:"totalRepositories"`
	Repositories      []Repository `json:"repositories"`
}
