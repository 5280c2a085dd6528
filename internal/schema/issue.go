package schema

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// Issue is the devtel_issues table.
type Issue struct {
	bun.BaseModel `bun:"table:devtel_issues,alias:iss"`

	ID          string    `bun:"id,pk"`
	WorkspaceID string    `bun:"workspace_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull"`
	Status      string    `bun:"status,notnull"`
	Priority    string    `bun:"priority,notnull"`
	Source      string    `bun:"source,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (r *Issue) ToDomain() model.Issue {
	return model.Issue{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Title:       r.Title,
		Description: r.Description,
		Status:      model.IssueStatus(r.Status),
		Priority:    model.IssuePriority(r.Priority),
		Source:      r.Source,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ExternalLink is the devtel_external_links table.
// (workspace_id, provider, external_id) is unique.
type ExternalLink struct {
	bun.BaseModel `bun:"table:devtel_external_links,alias:el"`

	ID             string    `bun:"id,pk"`
	IssueID        string    `bun:"issue_id,notnull"`
	WorkspaceID    string    `bun:"workspace_id,notnull"`
	Provider       string    `bun:"provider,notnull"`
	ExternalID     string    `bun:"external_id,notnull"`
	ExternalNumber int       `bun:"external_number,notnull"`
	Repository     string    `bun:"repository,notnull"`
	ExternalURL    string    `bun:"external_url,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

func (r *ExternalLink) ToDomain() model.ExternalLink {
	return model.ExternalLink{
		ID:             r.ID,
		IssueID:        r.IssueID,
		WorkspaceID:    r.WorkspaceID,
		Provider:       model.Provider(r.Provider),
		ExternalID:     r.ExternalID,
		ExternalNumber: r.ExternalNumber,
		Repository:     r.Repository,
		ExternalURL:    r.ExternalURL,
		CreatedAt:      r.CreatedAt,
	}
}

// IssuePullRequest is the devtel_issue_pull_requests table, unique on (issue_id, url).
type IssuePullRequest struct {
	bun.BaseModel `bun:"table:devtel_issue_pull_requests,alias:ipr"`

	ID        string    `bun:"id,pk"`
	IssueID   string    `bun:"issue_id,notnull"`
	Provider  string    `bun:"provider,notnull"`
	Number    int       `bun:"number,notnull"`
	URL       string    `bun:"url,notnull"`
	Title     string    `bun:"title,notnull"`
	State     string    `bun:"state,notnull"`
	Merged    bool      `bun:"merged,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (r *IssuePullRequest) ToDomain() model.IssuePullRequest {
	return model.IssuePullRequest{
		ID:        r.ID,
		IssueID:   r.IssueID,
		Provider:  model.Provider(r.Provider),
		Number:    r.Number,
		URL:       r.URL,
		Title:     r.Title,
		State:     r.State,
		Merged:    r.Merged,
		UpdatedAt: r.UpdatedAt,
	}
}

// Activity is the devtel_activities table.
type Activity struct {
	bun.BaseModel `bun:"table:devtel_activities,alias:act"`

	ID          string    `bun:"id,pk"`
	WorkspaceID string    `bun:"workspace_id,notnull"`
	Provider    string    `bun:"provider,notnull"`
	Kind        string    `bun:"kind,notnull"`
	ExternalID  string    `bun:"external_id,notnull"`
	Repository  string    `bun:"repository,notnull"`
	Ref         string    `bun:"ref,notnull"`
	Author      string    `bun:"author,notnull"`
	AuthorEmail string    `bun:"author_email,notnull"`
	Message     string    `bun:"message,notnull"`
	URL         string    `bun:"url,notnull"`
	OccurredAt  time.Time `bun:"occurred_at,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

func (r *Activity) ToDomain() model.Activity {
	return model.Activity{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Provider:    model.Provider(r.Provider),
		Kind:        r.Kind,
		ExternalID:  r.ExternalID,
		Repository:  r.Repository,
		Ref:         r.Ref,
		Author:      r.Author,
		AuthorEmail: r.AuthorEmail,
		Message:     r.Message,
		URL:         r.URL,
		OccurredAt:  r.OccurredAt,
		CreatedAt:   r.CreatedAt,
	}
}
