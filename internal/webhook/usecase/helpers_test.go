package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	issuePostgre "github.com/DarshanCode2005/gitmesh/internal/issue/repository/postgre"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/schema/schematest"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
	logPostgre "github.com/DarshanCode2005/gitmesh/internal/webhook/repository/postgre"
	"github.com/DarshanCode2005/gitmesh/internal/webhook/usecase"
	"github.com/DarshanCode2005/gitmesh/internal/workspace"
	wsPostgre "github.com/DarshanCode2005/gitmesh/internal/workspace/repository/postgre"
	wsUsecase "github.com/DarshanCode2005/gitmesh/internal/workspace/usecase"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []model.WorkerMessage
}

func (p *recordingPublisher) Publish(ctx context.Context, msg model.WorkerMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

func (p *recordingPublisher) services() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.ServiceName())
	}
	return out
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	logs []model.WebhookLog
}

func (b *recordingBroadcaster) Broadcast(wl model.WebhookLog) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs = append(b.logs, wl)
}

// failingLogRepo fails selected finalize calls on top of a real store.
type failingLogRepo struct {
	repository.Repository
	markProcessedErr error
	createErr        error
}

func (r *failingLogRepo) CreateLog(ctx context.Context, opt repository.CreateLogOptions) (model.WebhookLog, error) {
	if r.createErr != nil {
		return model.WebhookLog{}, r.createErr
	}
	return r.Repository.CreateLog(ctx, opt)
}

func (r *failingLogRepo) MarkProcessed(ctx context.Context, id string) error {
	if r.markProcessedErr != nil {
		return r.markProcessedErr
	}
	return r.Repository.MarkProcessed(ctx, id)
}

// cancelingIssueRepo cancels the caller's context mid-handler, like a client hanging up.
type cancelingIssueRepo struct {
	issueRepo.Repository
	cancel context.CancelFunc
}

func (r *cancelingIssueRepo) CreateLinkedIssue(ctx context.Context, opt issueRepo.CreateLinkedIssueOptions) (issueRepo.LinkedIssue, bool, error) {
	r.cancel()
	return issueRepo.LinkedIssue{}, false, ctx.Err()
}

type harness struct {
	t           *testing.T
	uc          webhook.UseCase
	resolver    workspace.UseCase
	logs        repository.Repository
	issues      issueRepo.Repository
	pub         *recordingPublisher
	feed        *recordingBroadcaster
	workspace   model.Workspace
	integration model.Integration
	secret      string
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	secret   string
	opts     webhook.Options
	wrapLogs func(repository.Repository) repository.Repository
	wrapIss  func(issueRepo.Repository) issueRepo.Repository
}

func withSecret(s string) harnessOption { return func(c *harnessConfig) { c.secret = s } }

func withOptions(o webhook.Options) harnessOption { return func(c *harnessConfig) { c.opts = o } }

func withLogRepo(wrap func(repository.Repository) repository.Repository) harnessOption {
	return func(c *harnessConfig) { c.wrapLogs = wrap }
}

func withIssueRepo(wrap func(issueRepo.Repository) issueRepo.Repository) harnessOption {
	return func(c *harnessConfig) { c.wrapIss = wrap }
}

func newHarness(t *testing.T, options ...harnessOption) *harness {
	t.Helper()
	cfg := harnessConfig{secret: "s3cret"}
	for _, o := range options {
		o(&cfg)
	}

	ctx := context.Background()
	l := &mockLogger{}
	db := schematest.NewDB(t)

	resolver := wsUsecase.New(wsPostgre.New(db, l), l)
	ws, err := resolver.CreateWorkspace(ctx, workspace.CreateWorkspaceInput{TenantID: "tenant-1", Name: "Core"})
	require.NoError(t, err)
	integration, err := resolver.ConnectIntegration(ctx, workspace.ConnectIntegrationInput{
		WorkspaceID:   ws.ID,
		Provider:      model.ProviderGitHub,
		WebhookSecret: cfg.secret,
	})
	require.NoError(t, err)

	logs := logPostgre.New(db, l)
	issues := issuePostgre.New(db, l)
	var ucLogs repository.Repository = logs
	var ucIssues issueRepo.Repository = issues
	if cfg.wrapLogs != nil {
		ucLogs = cfg.wrapLogs(logs)
	}
	if cfg.wrapIss != nil {
		ucIssues = cfg.wrapIss(issues)
	}

	pub := &recordingPublisher{}
	feed := &recordingBroadcaster{}
	uc := usecase.New(l, resolver, ucLogs, ucIssues, pub, feed, cfg.opts)

	return &harness{
		t:           t,
		uc:          uc,
		resolver:    resolver,
		logs:        logs,
		issues:      issues,
		pub:         pub,
		feed:        feed,
		workspace:   ws,
		integration: integration,
		secret:      cfg.secret,
	}
}

// delivery builds a correctly signed delivery for the harness workspace.
func (h *harness) delivery(event model.EventType, deliveryID, payload string) model.Delivery {
	d := model.Delivery{
		WorkspaceID: h.workspace.ID,
		Provider:    model.ProviderGitHub,
		EventType:   event,
		DeliveryID:  deliveryID,
		Payload:     []byte(payload),
	}
	if h.secret != "" {
		d.Signature = webhook.Sign(h.secret, d.Payload)
	}
	return d
}

func (h *harness) allLogs() []model.WebhookLog {
	h.t.Helper()
	logs, _, err := h.logs.ListLogs(context.Background(), repository.ListLogsOptions{})
	require.NoError(h.t, err)
	return logs
}

func (h *harness) onlyLog() model.WebhookLog {
	h.t.Helper()
	logs := h.allLogs()
	require.Len(h.t, logs, 1)
	return logs[0]
}

func (h *harness) link(externalID string) model.ExternalLink {
	h.t.Helper()
	link, err := h.issues.GetLink(context.Background(), issueRepo.GetLinkOptions{
		WorkspaceID: h.workspace.ID,
		Provider:    model.ProviderGitHub,
		ExternalID:  externalID,
	})
	require.NoError(h.t, err)
	return link
}

func (h *harness) issue(id string) model.Issue {
	h.t.Helper()
	issue, err := h.issues.GetIssue(context.Background(), id)
	require.NoError(h.t, err)
	return issue
}

const issueOpenedPayload = `{
	"action": "opened",
	"issue": {"id": 5001, "number": 7, "title": "Crash on start", "body": "stack trace", "html_url": "https://github.com/acme/app/issues/7", "state": "open"},
	"repository": {"full_name": "acme/app"}
}`

const issueClosedPayload = `{
	"action": "closed",
	"issue": {"id": 5001, "number": 7, "title": "Crash on start", "html_url": "https://github.com/acme/app/issues/7", "state": "closed"},
	"repository": {"full_name": "acme/app"}
}`

const issueReopenedPayload = `{
	"action": "reopened",
	"issue": {"id": 5001, "number": 7, "title": "Crash on start", "html_url": "https://github.com/acme/app/issues/7", "state": "open"},
	"repository": {"full_name": "acme/app"}
}`

type issueRepoT = issueRepo.Repository
