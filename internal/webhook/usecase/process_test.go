package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
)

func TestProcessRejectsUnknownWorkspaceWithoutLog(t *testing.T) {
	h := newHarness(t)

	d := h.delivery(model.EventIssues, "d-1", issueOpenedPayload)
	d.WorkspaceID = "missing"

	_, err := h.uc.Process(context.Background(), d)
	assert.ErrorIs(t, err, webhook.ErrWorkspaceNotFound)
	assert.Empty(t, h.allLogs())
}

func TestProcessRejectsMissingIntegrationWithoutLog(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.resolver.DisconnectIntegration(context.Background(), h.integration.ID))

	_, err := h.uc.Process(context.Background(), h.delivery(model.EventIssues, "d-1", issueOpenedPayload))
	assert.ErrorIs(t, err, webhook.ErrIntegrationNotFound)
	assert.Empty(t, h.allLogs())
}

func TestProcessInvalidSignature(t *testing.T) {
	h := newHarness(t)

	d := h.delivery(model.EventIssues, "d-1", issueOpenedPayload)
	d.Signature = webhook.Sign("wrong", d.Payload)

	out, err := h.uc.Process(context.Background(), d)
	assert.ErrorIs(t, err, webhook.ErrInvalidSignature)

	wl := h.onlyLog()
	assert.Equal(t, out.LogID, wl.ID)
	assert.Equal(t, model.WebhookStatusSignatureFailed, wl.Status)
	assert.Empty(t, h.link("5001").ID, "no domain mutation on bad signature")
	assert.Empty(t, h.pub.services())
	require.Len(t, h.feed.logs, 1)
	assert.Equal(t, model.WebhookStatusSignatureFailed, h.feed.logs[0].Status)
}

func TestProcessSkipsVerificationWithoutSecret(t *testing.T) {
	h := newHarness(t, withSecret(""))

	d := h.delivery(model.EventIssues, "d-1", issueOpenedPayload)
	d.Signature = "sha256=not-even-hex"

	_, err := h.uc.Process(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, model.WebhookStatusProcessed, h.onlyLog().Status)
}

func TestProcessSkipsVerificationWithoutSignature(t *testing.T) {
	h := newHarness(t)

	d := h.delivery(model.EventIssues, "d-1", issueOpenedPayload)
	d.Signature = ""

	_, err := h.uc.Process(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, model.WebhookStatusProcessed, h.onlyLog().Status)
}

func TestProcessRequireSignature(t *testing.T) {
	h := newHarness(t, withSecret(""), withOptions(webhook.Options{RequireSignature: true}))

	_, err := h.uc.Process(context.Background(), h.delivery(model.EventPush, "d-1", `{"commits":[]}`))
	assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
	assert.Equal(t, model.WebhookStatusSignatureFailed, h.onlyLog().Status)
}

func TestProcessHandlerErrorRecordsMessage(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Process(context.Background(), h.delivery(model.EventIssues, "d-1", `{"action":"opened","issue":{"number":1}}`))
	require.Error(t, err)
	assert.True(t, webhook.IsHandlerError(err))

	wl := h.onlyLog()
	assert.Equal(t, model.WebhookStatusError, wl.Status)
	assert.Contains(t, wl.Error, "issue.id is required")
	require.NotNil(t, wl.ProcessedAt)
}

func TestProcessRejectsMissingPayloadObjects(t *testing.T) {
	tests := []struct {
		name    string
		event   model.EventType
		payload string
		wantErr string
	}{
		{"Issues Without Issue", model.EventIssues, `{"action":"labeled"}`, "issue is required"},
		{"Issues Without Repository", model.EventIssues, `{"action":"edited","issue":{"id":5001,"number":7}}`, "repository is required"},
		{"Pull Request Without Pull Request", model.EventPullRequest, `{"action":"edited","number":12,"repository":{"full_name":"acme/app"}}`, "pull_request is required"},
		{"Push Without Repository", model.EventPush, `{"ref":"refs/heads/main","commits":[{"id":"a1","message":"x"}]}`, "repository is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.uc.Process(context.Background(), h.delivery(tc.event, "d-1", tc.payload))
			require.Error(t, err)
			assert.True(t, webhook.IsHandlerError(err))

			wl := h.onlyLog()
			assert.Equal(t, model.WebhookStatusError, wl.Status)
			assert.Contains(t, wl.Error, tc.wantErr)

			acts, err := h.issues.ListActivities(context.Background(), issueRepo.ListActivitiesOptions{WorkspaceID: h.workspace.ID})
			require.NoError(t, err)
			assert.Empty(t, acts)
		})
	}
}

func TestProcessMalformedJSON(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Process(context.Background(), h.delivery(model.EventPullRequest, "d-1", `{"action":`))
	assert.True(t, webhook.IsHandlerError(err))
	assert.Equal(t, model.WebhookStatusError, h.onlyLog().Status)
}

func TestDispatchIsTotal(t *testing.T) {
	for _, event := range []model.EventType{"issue_comment", "release", "", "PUSH", "workflow_run"} {
		t.Run(string(event), func(t *testing.T) {
			h := newHarness(t)

			out, err := h.uc.Process(context.Background(), h.delivery(event, "d-1", `{"anything":true}`))
			require.NoError(t, err)
			assert.Equal(t, webhook.OutcomeIgnored, out.Outcome)
			assert.Equal(t, model.WebhookStatusProcessed, h.onlyLog().Status)
		})
	}
}

func TestProcessPing(t *testing.T) {
	h := newHarness(t)

	out, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "d-1", `{"zen":"Keep it logically awesome."}`))
	require.NoError(t, err)
	assert.Equal(t, webhook.OutcomeNoop, out.Outcome)
	assert.Equal(t, model.WebhookStatusProcessed, h.onlyLog().Status)
}

func TestProcessFinalizesAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newHarness(t, withIssueRepo(func(r issueRepoT) issueRepoT {
		return &cancelingIssueRepo{Repository: r, cancel: cancel}
	}))

	_, err := h.uc.Process(ctx, h.delivery(model.EventIssues, "d-1", issueOpenedPayload))
	assert.ErrorIs(t, err, context.Canceled)

	wl := h.onlyLog()
	assert.Equal(t, model.WebhookStatusError, wl.Status, "terminal status written despite cancellation")
}

func TestProcessStoreFailures(t *testing.T) {
	t.Run("Create Log", func(t *testing.T) {
		storeErr := errors.New("disk full")
		h := newHarness(t, withLogRepo(func(r repository.Repository) repository.Repository {
			return &failingLogRepo{Repository: r, createErr: storeErr}
		}))

		_, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "d-1", `{}`))
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, webhook.IsHandlerError(err))
		assert.Empty(t, h.allLogs())
	})

	t.Run("Mark Processed", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		h := newHarness(t, withLogRepo(func(r repository.Repository) repository.Repository {
			return &failingLogRepo{Repository: r, markProcessedErr: storeErr}
		}))

		_, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "d-1", `{}`))
		assert.ErrorIs(t, err, storeErr)
		assert.Empty(t, h.feed.logs)
	})

	t.Run("Already Swept", func(t *testing.T) {
		h := newHarness(t, withLogRepo(func(r repository.Repository) repository.Repository {
			return &failingLogRepo{Repository: r, markProcessedErr: repository.ErrLogAlreadyFinalized}
		}))

		_, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "d-1", `{}`))
		assert.NoError(t, err)
	})
}

func TestProcessDedupe(t *testing.T) {
	t.Run("Disabled By Default", func(t *testing.T) {
		h := newHarness(t)
		for i := 0; i < 2; i++ {
			out, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "same", `{}`))
			require.NoError(t, err)
			assert.False(t, out.Duplicate)
		}
		assert.Len(t, h.allLogs(), 2)
	})

	t.Run("Enabled", func(t *testing.T) {
		h := newHarness(t, withOptions(webhook.Options{Dedupe: webhook.DedupeOptions{Enabled: true}}))

		first, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "same", `{}`))
		require.NoError(t, err)
		assert.False(t, first.Duplicate)

		second, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "same", `{}`))
		require.NoError(t, err)
		assert.True(t, second.Duplicate)
		assert.Empty(t, second.LogID)

		assert.Len(t, h.allLogs(), 1)
	})

	t.Run("Failed Deliveries Are Not Remembered", func(t *testing.T) {
		h := newHarness(t, withOptions(webhook.Options{Dedupe: webhook.DedupeOptions{Enabled: true}}))

		bad := h.delivery(model.EventPing, "retry-me", `{}`)
		bad.Signature = webhook.Sign("wrong", bad.Payload)
		_, err := h.uc.Process(context.Background(), bad)
		require.ErrorIs(t, err, webhook.ErrInvalidSignature)

		out, err := h.uc.Process(context.Background(), h.delivery(model.EventPing, "retry-me", `{}`))
		require.NoError(t, err)
		assert.False(t, out.Duplicate)
		assert.Len(t, h.allLogs(), 2)
	})
}

func TestEveryLoggedDeliveryEndsTerminal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	bad := h.delivery(model.EventIssues, "a", issueOpenedPayload)
	bad.Signature = webhook.Sign("nope", bad.Payload)

	deliveries := []model.Delivery{
		h.delivery(model.EventIssues, "b", issueOpenedPayload),
		h.delivery(model.EventIssues, "c", `{"action":"opened"}`),
		h.delivery(model.EventPush, "d", `{"commits":[]}`),
		h.delivery("star", "e", `{}`),
		bad,
	}
	for _, d := range deliveries {
		_, _ = h.uc.Process(ctx, d)
	}

	logs := h.allLogs()
	require.Len(t, logs, len(deliveries))
	for _, wl := range logs {
		assert.True(t, wl.Status.IsTerminal(), "log %s left in %s", wl.DeliveryID, wl.Status)
	}
	assert.Len(t, h.feed.logs, len(deliveries))
}
