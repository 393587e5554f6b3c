// Package insights turns raw GitHub overview and contribution data into the
// derived wrapped statistics. Everything here is pure computation: no I/O and
// no mutation of inputs.
package insights

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
)

const dateLayout = "2006-01-02"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Compute derives the full insights record for one (username, year) from a
// complete overview and contribution summary. It fails fast with an
// incomplete data error when either input lacks its required substructure;
// no group is ever partially computed.
func Compute(overview *domain.UserOverview, contributions *domain.ContributionSummary, year int) (*domain.WrappedInsights, error) {
	if overview == nil {
		return nil, apperrors.NewIncompleteDataError("repository data is missing")
	}
	if contributions == nil || contributions.Calendar == nil {
		return nil, apperrors.NewIncompleteDataError(fmt.Sprintf("contribution calendar is missing for year %d", year))
	}

	repos := overview.Repositories

	return &domain.WrappedInsights{
		Activity:     computeActivity(contributions, year),
		Repositories: computeRepositories(repos, overview.TotalRepositories, year),
		Languages:    computeLanguages(repos),
		Behavior:     computeBehavior(contributions.Calendar),
		Profile:      computeProfile(overview),
		Advanced: domain.AdvancedInsights{
			LongestStreak:        computeLongestStreak(contributions.Calendar, year),
			BestDayOfWeek:        computeBestDayOfWeek(contributions.Calendar),
			MostActiveRepository: computeMostActiveRepo(repos, year),
			Topics:               computeTopics(repos),
			Licenses:             computeLicenses(repos),
			RepositoryGrowth:     computeRepositoryGrowth(repos, year),
			ForkStats:            computeForkStats(repos),
		},
	}, nil
}

// computeActivity buckets the calendar per month, filtered to the requested
// calendar year. The upstream calendar may include boundary days just outside
// the year; those are skipped. Ties for the most active month resolve to the
// earlier month in calendar order.
func computeActivity(contributions *domain.ContributionSummary, year int) domain.ActivityInsights {
	calendar := contributions.Calendar

	perMonth := make(map[string]int, len(monthNames))
	for _, name := range monthNames {
		perMonth[name] = 0
	}
	active := make(map[string]bool)

	for _, week := range calendar.Weeks {
		for _, day := range week.Days {
			date, err := time.Parse(dateLayout, day.Date)
			if err != nil {
				continue
			}
			if date.Year() != year {
				continue
			}
			name := monthNames[int(date.Month())-1]
			perMonth[name] += day.Count
			if day.Count > 0 {
				active[name] = true
			}
		}
	}

	mostActive := ""
	maxCount := 0
	monthlySum := 0
	for _, name := range monthNames {
		monthlySum += perMonth[name]
		if perMonth[name] > maxCount {
			maxCount = perMonth[name]
			mostActive = name
		}
	}

	// Timezone and day-boundary slop is expected and tolerated
	if diff := monthlySum - calendar.TotalContributions; diff > 1 || diff < -1 {
		log.Printf("warning: monthly contributions sum (%d) does not match calendar total (%d) for year %d",
			monthlySum, calendar.TotalContributions, year)
	}

	return domain.ActivityInsights{
		TotalCommits:          contributions.TotalCommits,
		TotalContributions:    calendar.TotalContributions,
		PullRequests:          contributions.TotalPRs,
		Issues:                contributions.TotalIssues,
		ContributionsPerMonth: perMonth,
		MostActiveMonth:       mostActive,
		ActiveMonthsCount:     len(active),
	}
}

func computeRepositories(repos []domain.Repository, totalRepos, year int) domain.RepositoryInsights {
	start, end := yearWindow(year)

	createdInYear := 0
	for _, repo := range repos {
		if inWindow(repo.CreatedAt, start, end) {
			createdInYear++
		}
	}

	var mostStarred *domain.RepoRef
	if len(repos) > 0 {
		top := repos[0]
		for _, repo := range repos[1:] {
			if repo.StargazerCount > top.StargazerCount {
				top = repo
			}
		}
		mostStarred = &domain.RepoRef{Name: top.Name, Stars: top.StargazerCount}
	}

	return domain.RepositoryInsights{
		TotalPublicRepos:   totalRepos,
		ReposCreatedInYear: createdInYear,
		MostStarredRepo:    mostStarred,
	}
}

// computeLanguages counts retrieved repos by primary language. Repos without
// a primary language are excluded from the distribution entirely. Ties for
// the top language resolve to the language encountered first.
func computeLanguages(repos []domain.Repository) domain.LanguageInsights {
	distribution := make(map[string]int)
	var order []string

	for _, repo := range repos {
		if repo.PrimaryLanguage == nil || repo.PrimaryLanguage.Name == "" {
			continue
		}
		name := repo.PrimaryLanguage.Name
		if _, seen := distribution[name]; !seen {
			order = append(order, name)
		}
		distribution[name]++
	}

	top := ""
	maxCount := 0
	for _, name := range order {
		if distribution[name] > maxCount {
			maxCount = distribution[name]
			top = name
		}
	}

	return domain.LanguageInsights{
		TopLanguage:          top,
		LanguageDistribution: distribution,
		LanguageCount:        len(distribution),
	}
}

// computeBehavior recomputes each day's weekday from its date, ignoring the
// upstream weekday field. Saturday and Sunday accumulate into the weekend
// total, Monday through Friday into the weekday total.
func computeBehavior(calendar *domain.ContributionCalendar) domain.BehaviorInsights {
	weekday := 0
	weekend := 0

	for _, week := range calendar.Weeks {
		for _, day := range week.Days {
			date, err := time.Parse(dateLayout, day.Date)
			if err != nil {
				continue
			}
			switch date.Weekday() {
			case time.Saturday, time.Sunday:
				weekend += day.Count
			default:
				weekday += day.Count
			}
		}
	}

	return domain.BehaviorInsights{
		WeekdayContributions: weekday,
		WeekendContributions: weekend,
	}
}

func computeProfile(overview *domain.UserOverview) domain.ProfileInsights {
	ageYears := int(time.Since(overview.CreatedAt).Hours() / (24 * 365))
	if ageYears < 0 {
		ageYears = 0
	}

	return domain.ProfileInsights{
		AccountAgeYears: ageYears,
		Followers:       overview.Followers,
		Following:       overview.Following,
		HasBio:          overview.Bio != "",
		HasCompany:      overview.Company != "",
		HasLocation:     overview.Location != "",
		Bio:             overview.Bio,
		Company:         overview.Company,
		Location:        overview.Location,
	}
}

// computeLongestStreak finds the longest contiguous run of contributing days
// within the requested year in a single forward pass over the chronologically
// ordered calendar. A year with no contributions yields length 0 and no
// start or end date.
func computeLongestStreak(calendar *domain.ContributionCalendar, year int) domain.Streak {
	longest := domain.Streak{}
	current := 0
	currentStart := ""

	for _, week := range calendar.Weeks {
		for _, day := range week.Days {
			date, err := time.Parse(dateLayout, day.Date)
			if err != nil {
				continue
			}
			if date.Year() != year {
				continue
			}

			if day.Count > 0 {
				if current == 0 {
					currentStart = day.Date
				}
				current++
				if current > longest.Days {
					longest.Days = current
					longest.StartDate = currentStart
					longest.EndDate = day.Date
				}
			} else {
				current = 0
				currentStart = ""
			}
		}
	}

	return longest
}

// computeBestDayOfWeek sums contributions per weekday across the whole
// fetched calendar. The calendar is already year-bounded by the fetch, so no
// per-day year filter is applied here.
func computeBestDayOfWeek(calendar *domain.ContributionCalendar) *domain.DayOfWeekStats {
	var totals [7]int

	for _, week := range calendar.Weeks {
		for _, day := range week.Days {
			date, err := time.Parse(dateLayout, day.Date)
			if err != nil {
				continue
			}
			totals[int(date.Weekday())] += day.Count
		}
	}

	best := 0
	maxCount := 0
	for weekday, count := range totals {
		if count > maxCount {
			maxCount = count
			best = weekday
		}
	}

	return &domain.DayOfWeekStats{
		Day:           dayNames[best],
		Contributions: maxCount,
	}
}

func computeMostActiveRepo(repos []domain.Repository, year int) *domain.ActiveRepo {
	start, end := yearWindow(year)

	var mostActive *domain.Repository
	var latestPush time.Time

	for i := range repos {
		repo := &repos[i]
		if repo.PushedAt == nil {
			continue
		}
		pushedAt := *repo.PushedAt
		if !inWindow(pushedAt, start, end) {
			continue
		}
		if mostActive == nil || pushedAt.After(latestPush) {
			latestPush = pushedAt
			mostActive = repo
		}
	}

	if mostActive == nil {
		return nil
	}
	return &domain.ActiveRepo{
		Name:     mostActive.Name,
		LastPush: mostActive.PushedAt,
	}
}

func computeTopics(repos []domain.Repository) domain.TopicInsights {
	distribution := make(map[string]int)
	var order []string

	for _, repo := range repos {
		for _, topic := range repo.Topics {
			if _, seen := distribution[topic]; !seen {
				order = append(order, topic)
			}
			distribution[topic]++
		}
	}

	ranked := make([]domain.TopicCount, 0, len(order))
	for _, topic := range order {
		ranked = append(ranked, domain.TopicCount{Topic: topic, Count: distribution[topic]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	return domain.TopicInsights{
		TopTopics:         ranked,
		TotalUniqueTopics: len(distribution),
		TopicDistribution: distribution,
	}
}

// computeLicenses counts repos per license display name, falling back to the
// SPDX id and then the literal "Unknown". Repos without a license increment a
// separate counter.
func computeLicenses(repos []domain.Repository) domain.LicenseInsights {
	distribution := make(map[string]int)
	var order []string
	noLicense := 0

	for _, repo := range repos {
		if repo.License == nil {
			noLicense++
			continue
		}
		name := repo.License.Name
		if name == "" {
			name = repo.License.SpdxID
		}
		if name == "" {
			name = "Unknown"
		}
		if _, seen := distribution[name]; !seen {
			order = append(order, name)
		}
		distribution[name]++
	}

	top := ""
	maxCount := 0
	totalLicensed := 0
	for _, name := range order {
		totalLicensed += distribution[name]
		if distribution[name] > maxCount {
			maxCount = distribution[name]
			top = name
		}
	}

	return domain.LicenseInsights{
		TopLicense:          top,
		LicenseDistribution: distribution,
		NoLicenseCount:      noLicense,
		TotalLicensed:       totalLicensed,
	}
}

func computeRepositoryGrowth(repos []domain.Repository, year int) domain.GrowthInsights {
	start, end := yearWindow(year)

	count := 0
	totalStars := 0
	var mostStarred *domain.Repository

	for i := range repos {
		repo := &repos[i]
		if !inWindow(repo.CreatedAt, start, end) {
			continue
		}
		count++
		totalStars += repo.StargazerCount
		if mostStarred == nil || repo.StargazerCount > mostStarred.StargazerCount {
			mostStarred = repo
		}
	}

	growth := domain.GrowthInsights{
		ReposCreatedInYear:     count,
		TotalStarsFromNewRepos: totalStars,
	}
	if mostStarred != nil {
		growth.MostStarredNewRepo = &domain.RepoRef{
			Name:  mostStarred.Name,
			Stars: mostStarred.StargazerCount,
		}
	}
	return growth
}

func computeForkStats(repos []domain.Repository) domain.ForkInsights {
	totalForks := 0
	for _, repo := range repos {
		totalForks += repo.ForkCount
	}

	stats := domain.ForkInsights{TotalForks: totalForks}
	if len(repos) == 0 {
		return stats
	}

	stats.AverageForksPerRepo = float64(totalForks) / float64(len(repos))

	top := repos[0]
	for _, repo := range repos[1:] {
		if repo.ForkCount > top.ForkCount {
			top = repo
		}
	}
	stats.MostForkedRepo = &domain.RepoRef{Name: top.Name, Forks: top.ForkCount}

	return stats
}

// yearWindow returns the inclusive UTC bounds of a calendar year
func yearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start, end
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
