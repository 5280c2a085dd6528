package repository

import (
	"context"
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// Repository is the durable webhook log.
//
// A log is created as received and finalized exactly once. The Mark* methods
// only move a received row; finalizing a row twice returns ErrLogAlreadyFinalized.
type Repository interface {
	CreateLog(ctx context.Context, opt CreateLogOptions) (model.WebhookLog, error)
	MarkProcessed(ctx context.Context, id string) error
	MarkError(ctx context.Context, id string, message string) error
	MarkSignatureFailed(ctx context.Context, id string) error

	// GetLog returns a zero-value log (ID == "") when nothing matches.
	GetLog(ctx context.Context, opt GetLogOptions) (model.WebhookLog, error)
	ListLogs(ctx context.Context, opt ListLogsOptions) ([]model.WebhookLog, int, error)

	// SweepStale moves received rows older than the cutoff to error and returns the rows it moved.
	SweepStale(ctx context.Context, olderThan time.Time) ([]model.WebhookLog, error)
}
