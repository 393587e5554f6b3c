package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-wrapped/internal/commentary"
	"github.com/kurihiro0119/github-wrapped/internal/config"
	"github.com/kurihiro0119/github-wrapped/internal/domain"
	"github.com/kurihiro0119/github-wrapped/internal/github"
	"github.com/kurihiro0119/github-wrapped/internal/storage"
	"github.com/kurihiro0119/github-wrapped/internal/storage/postgres"
	"github.com/kurihiro0119/github-wrapped/internal/storage/sqlite"
	"github.com/kurihiro0119/github-wrapped/internal/wrapped"
)

var (
	year       int
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "github-wrapped",
	Short: "GitHub year-in-review tool",
	Long: `A CLI tool for generating "wrapped" year-in-review summaries of a
GitHub user's public activity.

The tool fetches repository and contribution data from the GitHub GraphQL API,
derives statistical insights, and caches the computed result locally.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate [username]",
	Short: "Generate (or fetch the cached) wrapped summary for a user",
	Long:  `Compute the wrapped summary for a GitHub user and year, storing the result locally. Repeat runs for the same user and year return the cached result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var showCmd = &cobra.Command{
	Use:   "show [username]",
	Short: "Show a previously generated wrapped summary",
	Long:  `Display a wrapped summary from the local store without contacting GitHub.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&year, "year", time.Now().Year()-1, "year to summarize")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStore(cfg.PostgresURL)
	default:
		return sqlite.NewSQLiteStore(cfg.SQLitePath)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	username := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store, err := getStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	var fetcher wrapped.Fetcher
	if cfg.GitHubEndpoint != "" {
		fetcher = github.NewClientWithEndpoint(cfg.GitHubToken, cfg.GitHubEndpoint)
	} else {
		fetcher = github.NewClient(cfg.GitHubToken)
	}

	service := wrapped.NewService(fetcher, store)

	result, err := service.GetWrapped(context.Background(), username, year)
	if err != nil {
		return err
	}

	return render(result)
}

func runShow(cmd *cobra.Command, args []string) error {
	username := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := getStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	result, err := store.FindByKey(context.Background(), username, year)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("no wrapped result stored for %s (%d), run 'generate' first", username, year)
	}

	return render(result)
}

func render(result *domain.WrappedResult) error {
	if outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Printf("\nGitHub Wrapped: %s (%d)\n", result.Username, result.Year)
	fmt.Printf("Generated at: %s\n\n", result.GeneratedAt.Format(time.RFC3339))

	in := result.Insights

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Insight", "Value"})

	table.Append([]string{"Total contributions", strconv.Itoa(in.Activity.TotalContributions)})
	table.Append([]string{"Total commits", strconv.Itoa(in.Activity.TotalCommits)})
	table.Append([]string{"Pull requests", strconv.Itoa(in.Activity.PullRequests)})
	table.Append([]string{"Issues", strconv.Itoa(in.Activity.Issues)})
	table.Append([]string{"Most active month", orNone(in.Activity.MostActiveMonth)})
	table.Append([]string{"Active months", strconv.Itoa(in.Activity.ActiveMonthsCount)})

	table.Append([]string{"Public repositories", strconv.Itoa(in.Repositories.TotalPublicRepos)})
	table.Append([]string{"Repos created this year", strconv.Itoa(in.Repositories.ReposCreatedInYear)})
	if repo := in.Repositories.MostStarredRepo; repo != nil {
		table.Append([]string{"Most starred repo", fmt.Sprintf("%s (%d stars)", repo.Name, repo.Stars)})
	}

	table.Append([]string{"Top language", orNone(in.Languages.TopLanguage)})
	table.Append([]string{"Languages used", strconv.Itoa(in.Languages.LanguageCount)})

	table.Append([]string{"Weekday contributions", strconv.Itoa(in.Behavior.WeekdayContributions)})
	table.Append([]string{"Weekend contributions", strconv.Itoa(in.Behavior.WeekendContributions)})

	streak := in.Advanced.LongestStreak
	if streak.Days > 0 {
		table.Append([]string{"Longest streak", fmt.Sprintf("%d days (%s to %s)", streak.Days, streak.StartDate, streak.EndDate)})
	} else {
		table.Append([]string{"Longest streak", "none"})
	}
	if best := in.Advanced.BestDayOfWeek; best != nil {
		table.Append([]string{"Best day of week", fmt.Sprintf("%s (%d contributions)", best.Day, best.Contributions)})
	}
	if active := in.Advanced.MostActiveRepository; active != nil {
		table.Append([]string{"Most active repo", active.Name})
	}
	if fork := in.Advanced.ForkStats.MostForkedRepo; fork != nil {
		table.Append([]string{"Most forked repo", fmt.Sprintf("%s (%d forks)", fork.Name, fork.Forks)})
	}
	table.Append([]string{"Total forks", strconv.Itoa(in.Advanced.ForkStats.TotalForks)})

	table.Render()

	fmt.Println()
	fmt.Println(commentary.ForContributions(in.Activity.TotalContributions))
	fmt.Println(commentary.ForStreak(in.Advanced.LongestStreak.Days))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
