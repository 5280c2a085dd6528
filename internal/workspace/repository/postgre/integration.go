package postgre

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
	repo "github.com/DarshanCode2005/gitmesh/internal/workspace/repository"
)

// CreateIntegration inserts a new integration row.
func (r *implRepository) CreateIntegration(ctx context.Context, opt repo.CreateIntegrationOptions) (model.Integration, error) {
	now := time.Now().UTC()
	record := &schema.Integration{
		ID:          uuid.NewString(),
		WorkspaceID: opt.WorkspaceID,
		Provider:    string(opt.Provider),
		Status:      string(opt.Status),
		Credentials: opt.Credentials,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateIntegration"), err)
		return model.Integration{}, repo.ErrFailedToInsert
	}
	return record.ToDomain(), nil
}

// GetIntegration returns the most recently updated integration matching opt,
// or a zero value when none does.
func (r *implRepository) GetIntegration(ctx context.Context, opt repo.GetIntegrationOptions) (model.Integration, error) {
	record := &schema.Integration{}
	err := r.db.NewSelect().
		Model(record).
		Apply(integrationFilter(opt)).
		OrderExpr("?TableAlias.updated_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Integration{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetIntegration"), err)
		return model.Integration{}, repo.ErrFailedToGet
	}
	return record.ToDomain(), nil
}

// UpdateIntegrationStatus sets the status of an integration by id.
func (r *implRepository) UpdateIntegrationStatus(ctx context.Context, id string, status model.IntegrationStatus) error {
	_, err := r.db.NewUpdate().
		Model((*schema.Integration)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateIntegrationStatus"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

func integrationFilter(opt repo.GetIntegrationOptions) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if opt.ID != "" {
			q = q.Where("?TableAlias.id = ?", opt.ID)
		}
		if opt.WorkspaceID != "" {
			q = q.Where("?TableAlias.workspace_id = ?", opt.WorkspaceID)
		}
		if opt.Provider != "" {
			q = q.Where("?TableAlias.provider = ?", string(opt.Provider))
		}
		if opt.Status != "" {
			q = q.Where("?TableAlias.status = ?", string(opt.Status))
		}
		return q
	}
}
