package usecase

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

// dispatch routes a delivery to its handler by event type alone.
// Unknown event types are ignored and still count as processed.
func (uc *implUseCase) dispatch(ctx context.Context, res model.Resolution, d model.Delivery) (webhook.Outcome, error) {
	handle, ok := uc.handlers[d.EventType]
	if !ok {
		uc.l.Infof(ctx, "unhandled event type %q, skipping", d.EventType)
		return webhook.OutcomeIgnored, nil
	}
	return handle(ctx, res, d)
}

func (uc *implUseCase) handlePing(ctx context.Context, res model.Resolution, d model.Delivery) (webhook.Outcome, error) {
	uc.l.Infof(ctx, "ping received for integration %s", res.Integration.ID)
	return webhook.OutcomeNoop, nil
}

func (uc *implUseCase) publish(ctx context.Context, msg model.WorkerMessage) {
	if uc.publisher == nil {
		return
	}
	uc.publisher.Publish(ctx, msg)
}
