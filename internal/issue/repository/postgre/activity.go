package postgre

import (
	"context"
	"time"

	"github.com/google/uuid"

	repo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
)

// InsertActivities batch-inserts activity rows, skipping ones already recorded.
func (r *implRepository) InsertActivities(ctx context.Context, opts []repo.CreateActivityOptions) error {
	if len(opts) == 0 {
		return nil
	}

	now := time.Now().UTC()
	records := make([]schema.Activity, 0, len(opts))
	for _, opt := range opts {
		records = append(records, schema.Activity{
			ID:          uuid.NewString(),
			WorkspaceID: opt.WorkspaceID,
			Provider:    string(opt.Provider),
			Kind:        opt.Kind,
			ExternalID:  opt.ExternalID,
			Repository:  opt.Repository,
			Ref:         opt.Ref,
			Author:      opt.Author,
			AuthorEmail: opt.AuthorEmail,
			Message:     opt.Message,
			URL:         opt.URL,
			OccurredAt:  opt.OccurredAt.UTC(),
			CreatedAt:   now,
		})
	}

	_, err := r.db.NewInsert().
		Model(&records).
		On("CONFLICT (workspace_id, provider, kind, external_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("InsertActivities"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// ListActivities returns workspace activity, most recent first.
func (r *implRepository) ListActivities(ctx context.Context, opt repo.ListActivitiesOptions) ([]model.Activity, error) {
	var records []schema.Activity
	q := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.workspace_id = ?", opt.WorkspaceID).
		OrderExpr("?TableAlias.occurred_at DESC")
	if opt.Kind != "" {
		q = q.Where("?TableAlias.kind = ?", opt.Kind)
	}
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListActivities"), err)
		return nil, repo.ErrFailedToList
	}

	activities := make([]model.Activity, 0, len(records))
	for i := range records {
		activities = append(activities, records[i].ToDomain())
	}
	return activities, nil
}
