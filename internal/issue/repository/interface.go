package repository

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// Repository is the composed interface for the issue data store that
// webhook handlers mutate.
type Repository interface {
	IssueRepository
	LinkRepository
	PullRequestRepository
	ActivityRepository
}

// IssueRepository reads and updates issues.
// Lookups return a zero-value Issue (ID == "") when nothing matches.
type IssueRepository interface {
	GetIssue(ctx context.Context, id string) (model.Issue, error)
	UpdateIssueStatus(ctx context.Context, id string, status model.IssueStatus) error
}

// LinkRepository manages provider links.
type LinkRepository interface {
	// CreateLinkedIssue inserts an issue and its external link atomically.
	// created is false, with no error, when the link already exists.
	CreateLinkedIssue(ctx context.Context, opt CreateLinkedIssueOptions) (out LinkedIssue, created bool, err error)
	// GetLink returns a zero-value link (ID == "") when none matches.
	GetLink(ctx context.Context, opt GetLinkOptions) (model.ExternalLink, error)
	ListLinksByNumbers(ctx context.Context, opt ListLinksByNumbersOptions) ([]model.ExternalLink, error)
}

// PullRequestRepository stores PR metadata attached to issues.
type PullRequestRepository interface {
	// UpsertPullRequest inserts or overwrites the row keyed by (IssueID, URL).
	UpsertPullRequest(ctx context.Context, opt UpsertPullRequestOptions) error
	ListPullRequests(ctx context.Context, issueID string) ([]model.IssuePullRequest, error)
}

// ActivityRepository stores workspace activity.
type ActivityRepository interface {
	// InsertActivities writes all rows in a single statement. Rows already
	// recorded for the same external id are skipped.
	InsertActivities(ctx context.Context, opts []CreateActivityOptions) error
	ListActivities(ctx context.Context, opt ListActivitiesOptions) ([]model.Activity, error)
}
