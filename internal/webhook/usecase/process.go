package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

// Process runs one delivery through the pipeline:
// resolve workspace and integration, log as received, verify the signature,
// dispatch, then finalize the log as processed or error.
// Nothing is written for deliveries rejected during resolution.
func (uc *implUseCase) Process(ctx context.Context, d model.Delivery) (webhook.ProcessOutput, error) {
	ctx = log.WithFields(ctx,
		"workspace_id", d.WorkspaceID,
		"event", string(d.EventType),
		"delivery_id", d.DeliveryID,
	)
	uc.l.Infof(ctx, "webhook received: provider=%s bytes=%d", d.Provider, len(d.Payload))

	res, err := uc.resolver.Resolve(ctx, d.WorkspaceID, d.Provider)
	if err != nil {
		if errors.Is(err, webhook.ErrWorkspaceNotFound) || errors.Is(err, webhook.ErrIntegrationNotFound) {
			uc.l.Warnf(ctx, "webhook rejected: %v", err)
		} else {
			uc.l.Errorf(ctx, "uc.Process Resolve: %v", err)
		}
		return webhook.ProcessOutput{}, err
	}

	if uc.dedupe.Seen(d.WorkspaceID, d.DeliveryID) {
		uc.l.Infof(ctx, "duplicate delivery acknowledged")
		return webhook.ProcessOutput{Outcome: webhook.OutcomeNoop, Duplicate: true}, nil
	}

	wl, err := uc.logRepo.CreateLog(ctx, repository.CreateLogOptions{
		WorkspaceID: d.WorkspaceID,
		Provider:    d.Provider,
		EventType:   d.EventType,
		DeliveryID:  d.DeliveryID,
		Payload:     d.Payload,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Process CreateLog: %v", err)
		return webhook.ProcessOutput{}, fmt.Errorf("create webhook log: %w", err)
	}
	ctx = log.WithFields(ctx, "log_id", wl.ID)
	out := webhook.ProcessOutput{LogID: wl.ID}

	secret := res.Integration.Credentials.WebhookSecret
	if !uc.signatures.Check(secret, d.Payload, d.Signature) {
		uc.l.Warnf(ctx, "webhook signature validation failed")
		uc.finalize(ctx, wl, model.WebhookStatusSignatureFailed, "")
		return out, webhook.ErrInvalidSignature
	}
	if secret == "" || d.Signature == "" {
		uc.l.Warnf(ctx, "webhook signature validation skipped: has_secret=%t has_signature=%t", secret != "", d.Signature != "")
	}

	outcome, err := uc.dispatch(ctx, res, d)
	if err != nil {
		uc.l.Errorf(ctx, "webhook processing failed: %v", err)
		uc.finalize(ctx, wl, model.WebhookStatusError, err.Error())
		return out, err
	}
	out.Outcome = outcome

	if err := uc.finalize(ctx, wl, model.WebhookStatusProcessed, ""); err != nil {
		if !errors.Is(err, repository.ErrLogAlreadyFinalized) {
			return out, fmt.Errorf("finalize webhook log: %w", err)
		}
	}
	uc.dedupe.Remember(d.WorkspaceID, d.DeliveryID)

	uc.l.Infof(ctx, "webhook processed: outcome=%s", outcome)
	return out, nil
}

// finalize moves wl to a terminal status. It runs detached from the caller's
// cancellation, bounded by the finalize timeout, so an aborted request still
// leaves a terminal row behind.
func (uc *implUseCase) finalize(ctx context.Context, wl model.WebhookLog, status model.WebhookStatus, message string) error {
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.opts.FinalizeTimeout)
	defer cancel()

	var err error
	switch status {
	case model.WebhookStatusProcessed:
		err = uc.logRepo.MarkProcessed(fctx, wl.ID)
	case model.WebhookStatusSignatureFailed:
		err = uc.logRepo.MarkSignatureFailed(fctx, wl.ID)
	default:
		err = uc.logRepo.MarkError(fctx, wl.ID, message)
	}
	if err != nil {
		if errors.Is(err, repository.ErrLogAlreadyFinalized) {
			uc.l.Warnf(ctx, "webhook log finalized elsewhere, wanted %s", status)
		} else {
			uc.l.Errorf(ctx, "uc.finalize %s: %v", status, err)
		}
		return err
	}

	now := time.Now().UTC()
	wl.Status = status
	wl.Error = message
	wl.ProcessedAt = &now
	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(wl)
	}
	return nil
}
