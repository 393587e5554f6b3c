package domain

// ContributionDay is one day of the contribution calendar. Count covers all
// contribution types (commits, PRs, issues, reviews) as reported upstream.
// Weekday is the upstream's 0=Sunday..6=Saturday index; consumers should
// recompute it from Date rather than trust it.
type ContributionDay struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Count   int    `json:"contributionCount"`
	Weekday int    `json:"weekday"`
}

// Week is an ordered sequence of contribution days
type Week struct {
	Days []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar is the ordered set of weeks covering the requested
// year's UTC boundaries. The upstream may include a few boundary days outside
// the exact range.
type ContributionCalendar struct {
	TotalContributions int    `json:"totalContributions"`
	Weeks              []Week `json:"weeks"`
}

// ContributionSummary holds the aggregate contribution counts and the
// calendar for one (user, year). TotalContributions on the calendar is the
// authoritative superset count.
type ContributionSummary struct {
	TotalCommits int                   `json:"totalCommitContributions"`
	TotalIssues  int                   `json:"totalIssueContributions"`
	TotalPRs     int                   `json:"totalPullRequestContributions"`
	TotalReviews int                   `json:"totalPullRequestReviewContributions"`
	Calendar     *ContributionCalendar `json:"contributionCalendar"`
}
