package webhook

import (
	"context"
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// UseCase runs inbound deliveries through the ingestion pipeline and exposes
// the resulting audit log.
type UseCase interface {
	// Process resolves, logs, verifies and dispatches a single delivery.
	Process(ctx context.Context, delivery model.Delivery) (ProcessOutput, error)

	GetLog(ctx context.Context, input GetLogInput) (model.WebhookLog, error)
	ListLogs(ctx context.Context, input ListLogsInput) (ListLogsOutput, error)

	// SweepStale finalizes logs stuck in received for longer than olderThan.
	SweepStale(ctx context.Context, olderThan time.Duration) (int, error)
}

// Publisher hands worker messages to the message broker. Publishing is
// best-effort and never fails the delivery.
type Publisher interface {
	Publish(ctx context.Context, msg model.WorkerMessage)
}

// Broadcaster fans out finalized logs to live subscribers.
type Broadcaster interface {
	Broadcast(log model.WebhookLog)
}
