package domain

import "time"

// RepoRef is a lightweight reference to a repository within an insight
type RepoRef struct {
	Name  string `json:"name"`
	Stars int    `json:"stars,omitempty"`
	Forks int    `json:"forks,omitempty"`
}

// ActivityInsights aggregates the contribution calendar.
// TotalCommits counts only authored commits; TotalContributions is the
// calendar total across all contribution types. ContributionsPerMonth keys
// are English month names and cover all twelve months.
type ActivityInsights struct {
	TotalCommits          int            `json:"totalCommits"`
	TotalContributions    int            `json:"totalContributions"`
	PullRequests          int            `json:"pullRequests"`
	Issues                int            `json:"issues"`
	ContributionsPerMonth map[string]int `json:"contributionsPerMonth"`
	MostActiveMonth       string         `json:"mostActiveMonth,omitempty"`
	ActiveMonthsCount     int            `json:"activeMonthsCount"`
}

// RepositoryInsights summarizes the repository set.
// TotalPublicRepos is the upstream's authoritative total, not the size of the
// retrieved set.
type RepositoryInsights struct {
	TotalPublicRepos   int      `json:"totalPublicRepos"`
	ReposCreatedInYear int      `json:"reposCreatedInYear"`
	MostStarredRepo    *RepoRef `json:"mostStarredRepo,omitempty"`
}

// LanguageInsights is the primary-language distribution over retrieved repos
type LanguageInsights struct {
	TopLanguage          string         `json:"topLanguage,omitempty"`
	LanguageDistribution map[string]int `json:"languageDistribution"`
	LanguageCount        int            `json:"languageCount"`
}

// BehaviorInsights splits contributions into weekday and weekend totals
type BehaviorInsights struct {
	WeekdayContributions int `json:"weekdayContributions"`
	WeekendContributions int `json:"weekendContributions"`
}

// ProfileInsights describes the account itself
type ProfileInsights struct {
	AccountAgeYears int    `json:"accountAgeYears"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	HasBio          bool   `json:"hasBio"`
	HasCompany      bool   `json:"hasCompany"`
	HasLocation     bool   `json:"hasLocation"`
	Bio             string `json:"bio,omitempty"`
	Company         string `json:"company,omitempty"`
	Location        string `json:"location,omitempty"`
}

// Streak is a maximal run of consecutive contributing days
type Streak struct {
	Days      int    `json:"days"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// DayOfWeekStats names the weekday with the highest contribution total
type DayOfWeekStats struct {
	Day           string `json:"day"`
	Contributions int    `json:"contributions"`
}

// ActiveRepo is the retrieved repo with the most recent in-year push
type ActiveRepo struct {
	Name     string     `json:"name"`
	LastPush *time.Time `json:"lastPush,omitempty"`
}

// TopicCount is one entry of the topic frequency distribution
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// TopicInsights is the topic frequency distribution over retrieved repos
type TopicInsights struct {
	TopTopics         []TopicCount   `json:"topTopics"`
	TotalUniqueTopics int            `json:"totalUniqueTopics"`
	TopicDistribution map[string]int `json:"topicDistribution"`
}

// LicenseInsights is the license name frequency distribution
type LicenseInsights struct {
	TopLicense          string         `json:"topLicense,omitempty"`
	LicenseDistribution map[string]int `json:"licenseDistribution"`
	NoLicenseCount      int            `json:"noLicenseCount"`
	TotalLicensed       int            `json:"totalLicensed"`
}

// GrowthInsights covers repos created in the requested year
type GrowthInsights struct {
	ReposCreatedInYear     int      `json:"reposCreatedInYear"`
	TotalStarsFromNewRepos int      `json:"totalStarsFromNewRepos"`
	MostStarredNewRepo     *RepoRef `json:"mostStarredNewRepo,omitempty"`
}

// ForkInsights covers fork counts across retrieved repos
type ForkInsights struct {
	TotalForks          int      `json:"totalForks"`
	AverageForksPerRepo float64  `json:"averageForksPerRepo"`
	MostForkedRepo      *RepoRef `json:"mostForkedRepo,omitempty"`
}

// AdvancedInsights groups the streak, weekday, push, topic, license, growth
// and fork statistics
type AdvancedInsights struct {
	LongestStreak        Streak          `json:"longestStreak"`
	BestDayOfWeek        *DayOfWeekStats `json:"bestDayOfWeek,omitempty"`
	MostActiveRepository *ActiveRepo     `json:"mostActiveRepository,omitempty"`
	Topics               TopicInsights   `json:"topics"`
	Licenses             LicenseInsights `json:"licenses"`
	RepositoryGrowth     GrowthInsights  `json:"repositoryGrowth"`
	ForkStats            ForkInsights    `json:"forkStats"`
}

// WrappedInsights is the computed artifact for one (username, year)
type WrappedInsights struct {
	Activity     ActivityInsights   `json:"activity"`
	Repositories RepositoryInsights `json:"repositories"`
	Languages    LanguageInsights   `json:"languages"`
	Behavior     BehaviorInsights   `json:"behavior"`
	Profile      ProfileInsights    `json:"profile"`
	Advanced     AdvancedInsights   `json:"advanced"`
}

// Source annotates where a wrapped result's data came from
type Source struct {
	Type string `json:"type"`
	Note string `json:"note"`
}

// WrappedResult is the persisted, user-facing summary for one
// (username, year). Created once, never updated; the store enforces the
// (username, year) pair as a unique key.
type WrappedResult struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Year        int             `json:"year"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Source      Source          `json:"source"`
	Insights    WrappedInsights `json:"insights"`
}
