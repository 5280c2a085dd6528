package postgre

import (
	"context"
	"time"

	"github.com/google/uuid"

	repo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
)

// UpsertPullRequest writes PR metadata; a row with the same (issue_id, url) is overwritten.
func (r *implRepository) UpsertPullRequest(ctx context.Context, opt repo.UpsertPullRequestOptions) error {
	record := &schema.IssuePullRequest{
		ID:        uuid.NewString(),
		IssueID:   opt.IssueID,
		Provider:  string(opt.Provider),
		Number:    opt.Number,
		URL:       opt.URL,
		Title:     opt.Title,
		State:     opt.State,
		Merged:    opt.Merged,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (issue_id, url) DO UPDATE").
		Set("number = EXCLUDED.number").
		Set("title = EXCLUDED.title").
		Set("state = EXCLUDED.state").
		Set("merged = EXCLUDED.merged").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertPullRequest"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// ListPullRequests returns the PRs attached to an issue, newest first.
func (r *implRepository) ListPullRequests(ctx context.Context, issueID string) ([]model.IssuePullRequest, error) {
	var records []schema.IssuePullRequest
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.issue_id = ?", issueID).
		OrderExpr("?TableAlias.updated_at DESC").
		Scan(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListPullRequests"), err)
		return nil, repo.ErrFailedToList
	}

	prs := make([]model.IssuePullRequest, 0, len(records))
	for i := range records {
		prs = append(prs, records[i].ToDomain())
	}
	return prs, nil
}
