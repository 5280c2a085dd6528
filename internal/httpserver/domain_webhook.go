package httpserver

import (
	"context"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository/postgre"
	"github.com/DarshanCode2005/gitmesh/internal/middleware"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	webhookHTTP "github.com/DarshanCode2005/gitmesh/internal/webhook/delivery/http"
	webhookRepo "github.com/DarshanCode2005/gitmesh/internal/webhook/repository/postgre"
	webhookUC "github.com/DarshanCode2005/gitmesh/internal/webhook/usecase"
	workspaceRepo "github.com/DarshanCode2005/gitmesh/internal/workspace/repository/postgre"
	workspaceUC "github.com/DarshanCode2005/gitmesh/internal/workspace/usecase"
)

// setupWebhookDomain wires repositories, use cases and the HTTP handler for
// webhook ingestion, and registers:
//
//	POST /webhook/devtel/github/:workspaceId
//	GET  /api/v1/workspaces/:workspaceId/webhook-logs
//	GET  /api/v1/workspaces/:workspaceId/webhook-logs/:id
func (srv *HTTPServer) setupWebhookDomain(ctx context.Context, mw middleware.Middleware) error {
	// 1. Repositories
	resolver := workspaceUC.New(workspaceRepo.New(srv.db, srv.l), srv.l)
	logs := webhookRepo.New(srv.db, srv.l)
	issues := issueRepo.New(srv.db, srv.l)

	// 2. UseCase
	var broadcaster webhook.Broadcaster
	if srv.hub != nil {
		broadcaster = srv.hub
	}
	uc := webhookUC.New(srv.l, resolver, logs, issues, srv.publisher, broadcaster, srv.webhookOpts)
	srv.webhookUC = uc

	// 3. HTTP Handler
	h := webhookHTTP.New(srv.l, uc, webhookHTTP.Config{
		MaxBodyBytes:   srv.maxBodyBytes,
		ProcessTimeout: srv.processTimeout,
	})

	// 4. Routes
	webhookHTTP.RegisterWebhookRoutes(srv.gin.Group("/webhook/devtel"), h, mw)
	webhookHTTP.RegisterAuditRoutes(srv.gin.Group("/api/v1"), h, mw)

	srv.l.Infof(ctx, "Webhook domain registered: require_signature=%t dedupe=%t", srv.webhookOpts.RequireSignature, srv.webhookOpts.Dedupe.Enabled)
	return nil
}
