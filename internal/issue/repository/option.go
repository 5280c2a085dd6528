package repository

import (
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// CreateLinkedIssueOptions holds the issue and link fields for CreateLinkedIssue.
type CreateLinkedIssueOptions struct {
	WorkspaceID string
	Title       string
	Description string
	Status      model.IssueStatus
	Priority    model.IssuePriority
	Source      string

	Provider       model.Provider
	ExternalID     string
	ExternalNumber int
	Repository     string
	ExternalURL    string
}

// LinkedIssue is an issue with the link that created it.
type LinkedIssue struct {
	Issue model.Issue
	Link  model.ExternalLink
}

// GetLinkOptions identifies a link by its unique key.
type GetLinkOptions struct {
	WorkspaceID string
	Provider    model.Provider
	ExternalID  string
}

// ListLinksByNumbersOptions selects links for provider-side numbers in one repository.
type ListLinksByNumbersOptions struct {
	WorkspaceID string
	Provider    model.Provider
	Repository  string
	Numbers     []int
}

type UpsertPullRequestOptions struct {
	IssueID  string
	Provider model.Provider
	Number   int
	URL      string
	Title    string
	State    string
	Merged   bool
}

type CreateActivityOptions struct {
	WorkspaceID string
	Provider    model.Provider
	Kind        string
	ExternalID  string
	Repository  string
	Ref         string
	Author      string
	AuthorEmail string
	Message     string
	URL         string
	OccurredAt  time.Time
}

type ListActivitiesOptions struct {
	WorkspaceID string
	Kind        string
	Limit       int
}
