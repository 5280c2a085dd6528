package postgre

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
	"github.com/DarshanCode2005/gitmesh/pkg/database"
)

var errLinkExists = errors.New("link exists")

// CreateLinkedIssue inserts the issue and its link in one transaction.
// An existing link, including one created concurrently, yields created == false.
func (r *implRepository) CreateLinkedIssue(ctx context.Context, opt repo.CreateLinkedIssueOptions) (repo.LinkedIssue, bool, error) {
	now := time.Now().UTC()
	issue := &schema.Issue{
		ID:          uuid.NewString(),
		WorkspaceID: opt.WorkspaceID,
		Title:       opt.Title,
		Description: opt.Description,
		Status:      string(opt.Status),
		Priority:    string(opt.Priority),
		Source:      opt.Source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	link := &schema.ExternalLink{
		ID:             uuid.NewString(),
		IssueID:        issue.ID,
		WorkspaceID:    opt.WorkspaceID,
		Provider:       string(opt.Provider),
		ExternalID:     opt.ExternalID,
		ExternalNumber: opt.ExternalNumber,
		Repository:     opt.Repository,
		ExternalURL:    opt.ExternalURL,
		CreatedAt:      now,
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*schema.ExternalLink)(nil)).
			Where("workspace_id = ?", opt.WorkspaceID).
			Where("provider = ?", string(opt.Provider)).
			Where("external_id = ?", opt.ExternalID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return errLinkExists
		}
		if _, err := tx.NewInsert().Model(issue).Exec(ctx); err != nil {
			return err
		}
		_, err = tx.NewInsert().Model(link).Exec(ctx)
		return err
	})

	switch {
	case err == nil:
		return repo.LinkedIssue{Issue: issue.ToDomain(), Link: link.ToDomain()}, true, nil
	case errors.Is(err, errLinkExists), database.IsUniqueViolation(err):
		return repo.LinkedIssue{}, false, nil
	default:
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateLinkedIssue"), err)
		return repo.LinkedIssue{}, false, repo.ErrFailedToInsert
	}
}

// GetLink returns the link for (workspace, provider, external id) or a zero value.
func (r *implRepository) GetLink(ctx context.Context, opt repo.GetLinkOptions) (model.ExternalLink, error) {
	record := &schema.ExternalLink{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.workspace_id = ?", opt.WorkspaceID).
		Where("?TableAlias.provider = ?", string(opt.Provider)).
		Where("?TableAlias.external_id = ?", opt.ExternalID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ExternalLink{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetLink"), err)
		return model.ExternalLink{}, repo.ErrFailedToGet
	}
	return record.ToDomain(), nil
}

// ListLinksByNumbers returns the links whose provider-side number is in opt.Numbers.
func (r *implRepository) ListLinksByNumbers(ctx context.Context, opt repo.ListLinksByNumbersOptions) ([]model.ExternalLink, error) {
	if len(opt.Numbers) == 0 {
		return nil, nil
	}

	var records []schema.ExternalLink
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.workspace_id = ?", opt.WorkspaceID).
		Where("?TableAlias.provider = ?", string(opt.Provider)).
		Where("?TableAlias.repository = ?", opt.Repository).
		Where("?TableAlias.external_number IN (?)", bun.In(opt.Numbers)).
		OrderExpr("?TableAlias.external_number ASC").
		Scan(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListLinksByNumbers"), err)
		return nil, repo.ErrFailedToList
	}

	links := make([]model.ExternalLink, 0, len(records))
	for i := range records {
		links = append(links, records[i].ToDomain())
	}
	return links, nil
}
