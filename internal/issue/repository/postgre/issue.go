package postgre

import (
	"context"
	"database/sql"
	"errors"
	"time"

	repo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
)

// GetIssue returns the issue or a zero value when it does not exist.
func (r *implRepository) GetIssue(ctx context.Context, id string) (model.Issue, error) {
	record := &schema.Issue{}
	err := r.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Issue{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetIssue"), err)
		return model.Issue{}, repo.ErrFailedToGet
	}
	return record.ToDomain(), nil
}

// UpdateIssueStatus sets the status of an issue by id. Concurrent updates are last-write-wins.
func (r *implRepository) UpdateIssueStatus(ctx context.Context, id string, status model.IssueStatus) error {
	_, err := r.db.NewUpdate().
		Model((*schema.Issue)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateIssueStatus"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}
