package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarshanCode2005/gitmesh/internal/middleware"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
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

type mockUseCase struct {
	processOut   webhook.ProcessOutput
	processErr   error
	gotDelivery  model.Delivery
	gotDeadline  bool
	listOut      webhook.ListLogsOutput
	listErr      error
	gotListInput webhook.ListLogsInput
	getOut       model.WebhookLog
	getErr       error
}

func (m *mockUseCase) Process(ctx context.Context, d model.Delivery) (webhook.ProcessOutput, error) {
	m.gotDelivery = d
	_, m.gotDeadline = ctx.Deadline()
	return m.processOut, m.processErr
}

func (m *mockUseCase) GetLog(ctx context.Context, input webhook.GetLogInput) (model.WebhookLog, error) {
	return m.getOut, m.getErr
}

func (m *mockUseCase) ListLogs(ctx context.Context, input webhook.ListLogsInput) (webhook.ListLogsOutput, error) {
	m.gotListInput = input
	return m.listOut, m.listErr
}

func (m *mockUseCase) SweepStale(ctx context.Context, olderThan time.Duration) (int, error) {
	return 0, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(uc webhook.UseCase, cfg Config) *gin.Engine {
	l := &mockLogger{}
	h := New(l, uc, cfg)
	mw := middleware.New(l, "internal-key", nil)

	r := gin.New()
	RegisterWebhookRoutes(r.Group("/webhook/devtel"), h, mw)
	RegisterAuditRoutes(r.Group("/api/v1"), h, mw)
	return r
}

type envelope struct {
	ErrorCode int               `json:"error_code"`
	Message   string            `json:"message"`
	Data      json.RawMessage   `json:"data"`
	Errors    map[string]string `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func postWebhook(r *gin.Engine, workspaceID string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/devtel/github/"+workspaceID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReceive(t *testing.T) {
	body := []byte(`{"action":"opened"}`)
	uc := &mockUseCase{processOut: webhook.ProcessOutput{LogID: "log-1", Outcome: webhook.OutcomeApplied}}
	r := newRouter(uc, Config{})

	w := postWebhook(r, "ws-1", body, map[string]string{
		"X-GitHub-Event":      "issues",
		"X-GitHub-Delivery":   "d-1",
		"X-Hub-Signature-256": "sha256=abc",
	})

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, 0, env.ErrorCode)
	assert.JSONEq(t, `{"received":true}`, string(env.Data))

	assert.Equal(t, model.Delivery{
		WorkspaceID: "ws-1",
		Provider:    model.ProviderGitHub,
		EventType:   model.EventIssues,
		DeliveryID:  "d-1",
		Signature:   "sha256=abc",
		Payload:     body,
	}, uc.gotDelivery)
	assert.True(t, uc.gotDeadline, "processing runs under a deadline")
}

func TestReceiveDuplicate(t *testing.T) {
	uc := &mockUseCase{processOut: webhook.ProcessOutput{Outcome: webhook.OutcomeNoop, Duplicate: true}}
	r := newRouter(uc, Config{})

	w := postWebhook(r, "ws-1", []byte(`{}`), map[string]string{"X-GitHub-Event": "ping"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true,"duplicate":true}`, string(decode(t, w).Data))
}

func TestReceiveErrorMapping(t *testing.T) {
	tcs := map[string]struct {
		err        error
		wantStatus int
		wantReason string
	}{
		"Workspace Not Found":   {err: webhook.ErrWorkspaceNotFound, wantStatus: http.StatusNotFound, wantReason: "WorkspaceNotFound"},
		"Integration Not Found": {err: webhook.ErrIntegrationNotFound, wantStatus: http.StatusNotFound, wantReason: "IntegrationNotFound"},
		"Invalid Signature":     {err: webhook.ErrInvalidSignature, wantStatus: http.StatusUnauthorized, wantReason: "InvalidSignature"},
		"Handler Error": {
			err:        webhook.NewHandlerError(model.EventIssues, "opened", errors.New("boom")),
			wantStatus: http.StatusBadRequest,
			wantReason: "HandlerError",
		},
		"Wrapped Handler Error": {
			err:        fmt.Errorf("dispatch: %w", webhook.NewHandlerError(model.EventPush, "", errors.New("bad"))),
			wantStatus: http.StatusBadRequest,
			wantReason: "HandlerError",
		},
		"Store Failure": {err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantReason: "InternalError"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r := newRouter(&mockUseCase{processErr: tc.err}, Config{})

			w := postWebhook(r, "ws-1", []byte(`{}`), map[string]string{"X-GitHub-Event": "issues"})
			require.Equal(t, tc.wantStatus, w.Code)

			env := decode(t, w)
			assert.Equal(t, tc.wantStatus, env.ErrorCode)
			assert.Equal(t, tc.wantReason, env.Errors["reason"])
		})
	}
}

func TestReceiveHandlerErrorMessage(t *testing.T) {
	err := webhook.NewHandlerError(model.EventIssues, "opened", errors.New("boom"))
	r := newRouter(&mockUseCase{processErr: err}, Config{})

	w := postWebhook(r, "ws-1", []byte(`{}`), map[string]string{"X-GitHub-Event": "issues"})
	assert.Contains(t, decode(t, w).Message, "boom")
}

func TestReceiveBodyTooLarge(t *testing.T) {
	uc := &mockUseCase{}
	r := newRouter(uc, Config{MaxBodyBytes: 16})

	w := postWebhook(r, "ws-1", []byte(strings.Repeat("x", 64)), map[string]string{"X-GitHub-Event": "push"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decode(t, w).Errors["reason"])
	assert.Empty(t, uc.gotDelivery.WorkspaceID, "use case not called")
}

func getJSON(r *gin.Engine, target string, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if key != "" {
		req.Header.Set(middleware.HeaderInternalKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListLogs(t *testing.T) {
	received := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	uc := &mockUseCase{listOut: webhook.ListLogsOutput{
		Logs: []model.WebhookLog{{
			ID:          "log-1",
			WorkspaceID: "ws-1",
			Provider:    model.ProviderGitHub,
			EventType:   model.EventPush,
			Status:      model.WebhookStatusProcessed,
			Payload:     json.RawMessage(`{"big":true}`),
			ReceivedAt:  received,
		}},
		Total: 1,
		Limit: 10,
	}}
	r := newRouter(uc, Config{})

	w := getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs?status=processed&event_type=push&limit=10", "internal-key")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, webhook.ListLogsInput{
		WorkspaceID: "ws-1",
		Status:      model.WebhookStatusProcessed,
		EventType:   model.EventPush,
		Limit:       10,
	}, uc.gotListInput)

	var data listLogsResp
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	require.Len(t, data.Logs, 1)
	assert.Equal(t, "log-1", data.Logs[0].ID)
	assert.Nil(t, data.Logs[0].Payload, "list omits payloads")
	assert.Equal(t, 1, data.Total)
}

func TestListLogsValidation(t *testing.T) {
	r := newRouter(&mockUseCase{}, Config{})

	w := getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs?status=bogus", "internal-key")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decode(t, w).Errors["reason"])

	w = getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs?limit=abc", "internal-key")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditRoutesRequireInternalKey(t *testing.T) {
	r := newRouter(&mockUseCase{}, Config{})

	assert.Equal(t, http.StatusUnauthorized, getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs", "").Code)
	assert.Equal(t, http.StatusUnauthorized, getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs/log-1", "wrong").Code)
}

func TestDetailLog(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		uc := &mockUseCase{getOut: model.WebhookLog{
			ID:      "log-1",
			Status:  model.WebhookStatusError,
			Error:   "issues.opened handler: boom",
			Payload: json.RawMessage(`{"action":"opened"}`),
		}}
		r := newRouter(uc, Config{})

		w := getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs/log-1", "internal-key")
		require.Equal(t, http.StatusOK, w.Code)

		var data detailLogResp
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.Equal(t, "error", data.Log.Status)
		assert.JSONEq(t, `{"action":"opened"}`, string(data.Log.Payload))
	})

	t.Run("Not Found", func(t *testing.T) {
		r := newRouter(&mockUseCase{getErr: webhook.ErrLogNotFound}, Config{})

		w := getJSON(r, "/api/v1/workspaces/ws-1/webhook-logs/nope", "internal-key")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "LogNotFound", decode(t, w).Errors["reason"])
	})
}
