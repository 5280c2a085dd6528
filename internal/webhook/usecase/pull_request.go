package usecase

import (
	"context"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

// handlePullRequest attaches PR metadata to every linked issue the PR references.
// Only a merged PR closes issues, and only those referenced with a closing keyword.
// A PR closed without merging closes nothing.
func (uc *implUseCase) handlePullRequest(ctx context.Context, res model.Resolution, d model.Delivery) (webhook.Outcome, error) {
	ev, err := webhook.ParsePullRequestEvent(d.Payload)
	if err != nil {
		return "", webhook.NewHandlerError(model.EventPullRequest, "", err)
	}

	action := ev.EffectiveAction()
	uc.l.Infof(ctx, "pull_request event: action=%s number=%d repository=%s", action, ev.PRNumber(), ev.Repository.FullName)

	switch action {
	case webhook.ActionOpened, webhook.ActionClosed, webhook.ActionMerged:
	default:
		uc.l.Infof(ctx, "unhandled pull request action %q", action)
		return webhook.OutcomeNoop, nil
	}

	refs := webhook.FindIssueRefs(ev.PullRequest.Title, ev.PullRequest.Body)
	if len(refs) == 0 {
		return webhook.OutcomeNoop, nil
	}

	numbers := make([]int, 0, len(refs))
	closing := make(map[int]bool, len(refs))
	for _, ref := range refs {
		numbers = append(numbers, ref.Number)
		closing[ref.Number] = ref.Closing
	}

	links, err := uc.issueRepo.ListLinksByNumbers(ctx, issueRepo.ListLinksByNumbersOptions{
		WorkspaceID: res.Workspace.ID,
		Provider:    d.Provider,
		Repository:  ev.Repository.FullName,
		Numbers:     numbers,
	})
	if err != nil {
		return "", webhook.NewHandlerError(model.EventPullRequest, action, err)
	}
	if len(links) == 0 {
		uc.l.Infof(ctx, "pull request references %v but none are linked", numbers)
		return webhook.OutcomeNoop, nil
	}

	for _, link := range links {
		err := uc.issueRepo.UpsertPullRequest(ctx, issueRepo.UpsertPullRequestOptions{
			IssueID:  link.IssueID,
			Provider: d.Provider,
			Number:   ev.PRNumber(),
			URL:      ev.PullRequest.HTMLURL,
			Title:    ev.PullRequest.Title,
			State:    pullRequestState(action, ev.PullRequest.State),
			Merged:   action == webhook.ActionMerged,
		})
		if err != nil {
			return "", webhook.NewHandlerError(model.EventPullRequest, action, err)
		}

		if action == webhook.ActionMerged && closing[link.ExternalNumber] {
			if err := uc.issueRepo.UpdateIssueStatus(ctx, link.IssueID, model.IssueStatusClosed); err != nil {
				return "", webhook.NewHandlerError(model.EventPullRequest, action, err)
			}
			uc.l.Infof(ctx, "issue %s closed by merged pull request #%d", link.IssueID, ev.PRNumber())
		}

		uc.publish(ctx, model.NewIssueIndexMessage(res.Workspace.TenantID, link.IssueID))
	}

	return webhook.OutcomeApplied, nil
}

func pullRequestState(action, state string) string {
	if action == webhook.ActionMerged {
		return webhook.ActionMerged
	}
	if state != "" {
		return state
	}
	if action == webhook.ActionOpened {
		return "open"
	}
	return "closed"
}
