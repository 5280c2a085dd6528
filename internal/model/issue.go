package model

import "time"

type IssueStatus string

const (
	IssueStatusOpen   IssueStatus = "open"
	IssueStatusClosed IssueStatus = "closed"
)

type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
)

// Issue is a DevTel issue. Issues created from a provider carry Source = provider name.
type Issue struct {
	ID          string
	WorkspaceID string
	Title       string
	Description string
	Status      IssueStatus
	Priority    IssuePriority
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExternalLink maps an issue to its counterpart on a provider.
// (WorkspaceID, Provider, ExternalID) is unique.
type ExternalLink struct {
	ID             string
	IssueID        string
	WorkspaceID    string
	Provider       Provider
	ExternalID     string
	ExternalNumber int
	Repository     string
	ExternalURL    string
	CreatedAt      time.Time
}

// IssuePullRequest is PR metadata attached to an issue, unique per (IssueID, URL).
type IssuePullRequest struct {
	ID        string
	IssueID   string
	Provider  Provider
	Number    int
	URL       string
	Title     string
	State     string
	Merged    bool
	UpdatedAt time.Time
}

const ActivityKindCommit = "commit"

// Activity is a workspace activity entry, currently one per pushed commit.
type Activity struct {
	ID          string
	WorkspaceID string
	Provider    Provider
	Kind        string
	ExternalID  string
	Repository  string
	Ref         string
	Author      string
	AuthorEmail string
	Message     string
	URL         string
	OccurredAt  time.Time
	CreatedAt   time.Time
}
