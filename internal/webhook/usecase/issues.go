package usecase

import (
	"context"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

func (uc *implUseCase) handleIssues(ctx context.Context, res model.Resolution, d model.Delivery) (webhook.Outcome, error) {
	ev, err := webhook.ParseIssuesEvent(d.Payload)
	if err != nil {
		return "", webhook.NewHandlerError(model.EventIssues, "", err)
	}

	uc.l.Infof(ctx, "issues event: action=%s number=%d repository=%s", ev.Action, ev.Issue.Number, ev.Repository.FullName)

	switch ev.Action {
	case webhook.ActionOpened:
		return uc.openIssue(ctx, res, d.Provider, ev)
	case webhook.ActionClosed:
		return uc.setLinkedIssueStatus(ctx, res, d.Provider, ev, model.IssueStatusClosed)
	case webhook.ActionReopened:
		return uc.setLinkedIssueStatus(ctx, res, d.Provider, ev, model.IssueStatusOpen)
	default:
		uc.l.Infof(ctx, "unhandled issue action %q", ev.Action)
		return webhook.OutcomeNoop, nil
	}
}

// openIssue creates the issue and its link together. A redelivery finds the link and does nothing.
func (uc *implUseCase) openIssue(ctx context.Context, res model.Resolution, provider model.Provider, ev webhook.IssuesEvent) (webhook.Outcome, error) {
	out, created, err := uc.issueRepo.CreateLinkedIssue(ctx, issueRepo.CreateLinkedIssueOptions{
		WorkspaceID:    res.Workspace.ID,
		Title:          ev.Issue.Title,
		Description:    ev.Issue.Body,
		Status:         model.IssueStatusOpen,
		Priority:       model.IssuePriorityMedium,
		Source:         string(provider),
		Provider:       provider,
		ExternalID:     ev.Issue.ExternalID(),
		ExternalNumber: ev.Issue.Number,
		Repository:     ev.Repository.FullName,
		ExternalURL:    ev.Issue.HTMLURL,
	})
	if err != nil {
		return "", webhook.NewHandlerError(model.EventIssues, ev.Action, err)
	}
	if !created {
		uc.l.Infof(ctx, "issue %s already linked, skipping", ev.Issue.ExternalID())
		return webhook.OutcomeNoop, nil
	}

	uc.l.Infof(ctx, "created issue %s for %s", out.Issue.ID, ev.Issue.HTMLURL)
	uc.publish(ctx, model.NewIssueIndexMessage(res.Workspace.TenantID, out.Issue.ID))
	return webhook.OutcomeApplied, nil
}

// setLinkedIssueStatus updates the linked issue. Issues that were never linked are left alone.
func (uc *implUseCase) setLinkedIssueStatus(ctx context.Context, res model.Resolution, provider model.Provider, ev webhook.IssuesEvent, status model.IssueStatus) (webhook.Outcome, error) {
	link, err := uc.issueRepo.GetLink(ctx, issueRepo.GetLinkOptions{
		WorkspaceID: res.Workspace.ID,
		Provider:    provider,
		ExternalID:  ev.Issue.ExternalID(),
	})
	if err != nil {
		return "", webhook.NewHandlerError(model.EventIssues, ev.Action, err)
	}
	if link.ID == "" {
		uc.l.Infof(ctx, "no linked issue for %s, skipping", ev.Issue.HTMLURL)
		return webhook.OutcomeNoop, nil
	}

	if err := uc.issueRepo.UpdateIssueStatus(ctx, link.IssueID, status); err != nil {
		return "", webhook.NewHandlerError(model.EventIssues, ev.Action, err)
	}

	uc.l.Infof(ctx, "issue %s set to %s", link.IssueID, status)
	uc.publish(ctx, model.NewIssueIndexMessage(res.Workspace.TenantID, link.IssueID))
	return webhook.OutcomeApplied, nil
}
