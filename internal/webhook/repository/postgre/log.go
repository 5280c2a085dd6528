package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
	repo "github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
)

// CreateLog inserts a received log carrying a snapshot of the payload.
func (r *implRepository) CreateLog(ctx context.Context, opt repo.CreateLogOptions) (model.WebhookLog, error) {
	record := &schema.WebhookLog{
		ID:          uuid.NewString(),
		WorkspaceID: opt.WorkspaceID,
		Provider:    string(opt.Provider),
		EventType:   string(opt.EventType),
		DeliveryID:  opt.DeliveryID,
		Payload:     snapshot(opt.Payload),
		Status:      string(model.WebhookStatusReceived),
		ReceivedAt:  time.Now().UTC(),
	}
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateLog"), err)
		return model.WebhookLog{}, repo.ErrFailedToInsert
	}
	return record.ToDomain(), nil
}

func (r *implRepository) MarkProcessed(ctx context.Context, id string) error {
	return r.finalize(ctx, "MarkProcessed", id, model.WebhookStatusProcessed, "")
}

func (r *implRepository) MarkError(ctx context.Context, id string, message string) error {
	return r.finalize(ctx, "MarkError", id, model.WebhookStatusError, message)
}

func (r *implRepository) MarkSignatureFailed(ctx context.Context, id string) error {
	return r.finalize(ctx, "MarkSignatureFailed", id, model.WebhookStatusSignatureFailed, "")
}

// finalize is a single conditional update, so at most one caller ever wins.
func (r *implRepository) finalize(ctx context.Context, method, id string, status model.WebhookStatus, message string) error {
	res, err := r.db.NewUpdate().
		Model((*schema.WebhookLog)(nil)).
		Set("status = ?", string(status)).
		Set("error = ?", truncate(message, repo.MaxErrorLength)).
		Set("processed_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", string(model.WebhookStatusReceived)).
		Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
		return repo.ErrFailedToUpdate
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn(method), err)
		return repo.ErrFailedToUpdate
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repo.ErrLogAlreadyFinalized, id)
	}
	return nil
}

// GetLog returns the log or a zero value when it does not exist.
func (r *implRepository) GetLog(ctx context.Context, opt repo.GetLogOptions) (model.WebhookLog, error) {
	record := &schema.WebhookLog{}
	q := r.db.NewSelect().Model(record).Where("?TableAlias.id = ?", opt.ID)
	if opt.WorkspaceID != "" {
		q = q.Where("?TableAlias.workspace_id = ?", opt.WorkspaceID)
	}
	err := q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WebhookLog{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetLog"), err)
		return model.WebhookLog{}, repo.ErrFailedToGet
	}
	return record.ToDomain(), nil
}

// ListLogs returns a page of logs, newest first, and the total matching count.
func (r *implRepository) ListLogs(ctx context.Context, opt repo.ListLogsOptions) ([]model.WebhookLog, int, error) {
	var records []schema.WebhookLog
	q := r.db.NewSelect().
		Model(&records).
		Apply(logFilter(opt)).
		OrderExpr("?TableAlias.received_at DESC")
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit)
	}
	if opt.Offset > 0 {
		q = q.Offset(opt.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListLogs"), err)
		return nil, 0, repo.ErrFailedToList
	}

	logs := make([]model.WebhookLog, 0, len(records))
	for i := range records {
		logs = append(logs, records[i].ToDomain())
	}
	return logs, total, nil
}

// SweepStale finalizes received rows older than olderThan as errors. Each row
// goes through the same conditional update as Mark*, so a row finalized
// concurrently is skipped rather than overwritten.
func (r *implRepository) SweepStale(ctx context.Context, olderThan time.Time) ([]model.WebhookLog, error) {
	var records []schema.WebhookLog
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.status = ?", string(model.WebhookStatusReceived)).
		Where("?TableAlias.received_at < ?", olderThan.UTC()).
		OrderExpr("?TableAlias.received_at ASC").
		Scan(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SweepStale"), err)
		return nil, repo.ErrFailedToList
	}

	swept := make([]model.WebhookLog, 0, len(records))
	for i := range records {
		err := r.finalize(ctx, "SweepStale", records[i].ID, model.WebhookStatusError, repo.StaleErrorMessage)
		if errors.Is(err, repo.ErrLogAlreadyFinalized) {
			continue
		}
		if err != nil {
			return swept, err
		}

		wl := records[i].ToDomain()
		now := time.Now().UTC()
		wl.Status = model.WebhookStatusError
		wl.Error = repo.StaleErrorMessage
		wl.ProcessedAt = &now
		swept = append(swept, wl)
	}
	return swept, nil
}

func logFilter(opt repo.ListLogsOptions) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if opt.WorkspaceID != "" {
			q = q.Where("?TableAlias.workspace_id = ?", opt.WorkspaceID)
		}
		if opt.Status != "" {
			q = q.Where("?TableAlias.status = ?", string(opt.Status))
		}
		if opt.EventType != "" {
			q = q.Where("?TableAlias.event_type = ?", string(opt.EventType))
		}
		return q
	}
}

// snapshot stores valid JSON as-is and anything else as a JSON string.
func snapshot(payload []byte) json.RawMessage {
	if json.Valid(payload) {
		return append(json.RawMessage(nil), payload...)
	}
	quoted, _ := json.Marshal(string(payload))
	return quoted
}

// truncate cuts s to at most n bytes on a rune boundary. Invalid bytes are
// replaced with U+FFFD first so only a trailing partial rune is ever dropped.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
