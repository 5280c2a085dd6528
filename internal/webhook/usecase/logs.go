package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// GetLog returns a workspace's webhook log by id.
func (uc *implUseCase) GetLog(ctx context.Context, input webhook.GetLogInput) (model.WebhookLog, error) {
	if input.ID == "" {
		return model.WebhookLog{}, webhook.ErrLogNotFound
	}
	wl, err := uc.logRepo.GetLog(ctx, repository.GetLogOptions{ID: input.ID, WorkspaceID: input.WorkspaceID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.GetLog GetLog: %v", err)
		return model.WebhookLog{}, err
	}
	if wl.ID == "" {
		return model.WebhookLog{}, webhook.ErrLogNotFound
	}
	return wl, nil
}

// ListLogs returns a page of a workspace's webhook logs, newest first.
func (uc *implUseCase) ListLogs(ctx context.Context, input webhook.ListLogsInput) (webhook.ListLogsOutput, error) {
	if input.WorkspaceID == "" {
		return webhook.ListLogsOutput{}, webhook.ErrWorkspaceNotFound
	}
	if _, err := uc.resolver.ResolveWorkspace(ctx, input.WorkspaceID); err != nil {
		return webhook.ListLogsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset := max(input.Offset, 0)

	logs, total, err := uc.logRepo.ListLogs(ctx, repository.ListLogsOptions{
		WorkspaceID: input.WorkspaceID,
		Status:      input.Status,
		EventType:   input.EventType,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListLogs ListLogs: %v", err)
		return webhook.ListLogsOutput{}, err
	}

	return webhook.ListLogsOutput{Logs: logs, Total: total, Limit: limit, Offset: offset}, nil
}

// SweepStale finalizes logs left in received for longer than olderThan and
// broadcasts each one it moved.
func (uc *implUseCase) SweepStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, errors.New("sweep: olderThan must be positive")
	}
	swept, err := uc.logRepo.SweepStale(ctx, time.Now().Add(-olderThan))
	if uc.broadcaster != nil {
		for _, wl := range swept {
			uc.broadcaster.Broadcast(wl)
		}
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.SweepStale SweepStale: %v", err)
		return len(swept), err
	}
	if len(swept) > 0 {
		uc.l.Warnf(ctx, "swept %d stale webhook logs", len(swept))
	}
	return len(swept), nil
}
