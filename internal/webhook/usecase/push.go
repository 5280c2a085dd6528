package usecase

import (
	"context"
	"time"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

// handlePush records one activity entry per pushed commit in a single batch.
func (uc *implUseCase) handlePush(ctx context.Context, res model.Resolution, d model.Delivery) (webhook.Outcome, error) {
	ev, err := webhook.ParsePushEvent(d.Payload)
	if err != nil {
		return "", webhook.NewHandlerError(model.EventPush, "", err)
	}

	uc.l.Infof(ctx, "push event: ref=%s commits=%d repository=%s", ev.Ref, len(ev.Commits), ev.Repository.FullName)

	if len(ev.Commits) == 0 {
		return webhook.OutcomeNoop, nil
	}

	received := time.Now().UTC()
	opts := make([]issueRepo.CreateActivityOptions, 0, len(ev.Commits))
	for _, c := range ev.Commits {
		author := c.Author.Name
		if author == "" {
			author = c.Author.Username
		}
		opts = append(opts, issueRepo.CreateActivityOptions{
			WorkspaceID: res.Workspace.ID,
			Provider:    d.Provider,
			Kind:        model.ActivityKindCommit,
			ExternalID:  c.ID,
			Repository:  ev.Repository.FullName,
			Ref:         ev.Branch(),
			Author:      author,
			AuthorEmail: c.Author.Email,
			Message:     c.Message,
			URL:         c.URL,
			OccurredAt:  c.Time(received),
		})
	}

	if err := uc.issueRepo.InsertActivities(ctx, opts); err != nil {
		return "", webhook.NewHandlerError(model.EventPush, "", err)
	}

	uc.publish(ctx, model.NewVelocityMessage(res.Workspace.TenantID, res.Workspace.ID))
	return webhook.OutcomeApplied, nil
}
