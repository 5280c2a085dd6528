package postgre

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
	repo "github.com/DarshanCode2005/gitmesh/internal/workspace/repository"
)

// CreateWorkspace inserts a new workspace row.
func (r *implRepository) CreateWorkspace(ctx context.Context, opt repo.CreateWorkspaceOptions) (model.Workspace, error) {
	record := &schema.Workspace{
		ID:        uuid.NewString(),
		TenantID:  opt.TenantID,
		Name:      opt.Name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateWorkspace"), err)
		return model.Workspace{}, repo.ErrFailedToInsert
	}
	return record.ToDomain(), nil
}

// GetWorkspace returns the workspace or a zero value when it does not exist.
func (r *implRepository) GetWorkspace(ctx context.Context, id string) (model.Workspace, error) {
	record := &schema.Workspace{}
	err := r.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workspace{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetWorkspace"), err)
		return model.Workspace{}, repo.ErrFailedToGet
	}
	return record.ToDomain(), nil
}
