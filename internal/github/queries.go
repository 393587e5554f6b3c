package github

// GraphQL queries issued against the GitHub API

// userOverviewQuery fetches profile fields and one page of repositories,
// ordered by most recently updated
const userOverviewQuery = `
query getUserOverview($login: String!, $cursor: String) {
  user(login: $login) {
    login
    createdAt
    bio
    company
    location
    followers {
      totalCount
    }
    following {
      totalCount
    }
    repositories(first: 100, after: $cursor, orderBy: {field: UPDATED_AT, direction: DESC}) {
      totalCount
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        name
        description
        stargazerCount
        forkCount
        watchers {
          totalCount
        }
        createdAt
        updatedAt
        pushedAt
        isArchived
        isPrivate
        diskUsage
        primaryLanguage {
          name
          color
        }
        languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
          totalSize
          edges {
            size
            node {
              name
              color
            }
          }
        }
        licenseInfo {
          name
          spdxId
        }
        repositoryTopics(first: 20) {
          nodes {
            topic {
              name
            }
          }
        }
      }
    }
  }
}`

// userContributionsQuery fetches aggregate contribution counts and the
// contribution calendar bounded to a date window
const userContributionsQuery = `
query getUserContributions($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            contributionCount
            date
            weekday
          }
        }
      }
    }
  }
}`
