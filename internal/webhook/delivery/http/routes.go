package http

import (
	"github.com/gin-gonic/gin"

	"github.com/DarshanCode2005/gitmesh/internal/middleware"
)

// RegisterWebhookRoutes maps the provider-facing ingestion endpoint.
// Deliveries are authenticated by signature, not by middleware.
func RegisterWebhookRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/github/:workspaceId", mw.WorkspaceRateLimit(), h.Receive)
}

// RegisterAuditRoutes maps the internal webhook log endpoints.
func RegisterAuditRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	logs := rg.Group("/workspaces/:workspaceId/webhook-logs", mw.InternalAuth())
	{
		logs.GET("", h.ListLogs)
		logs.GET("/:id", h.DetailLog)
	}
}
