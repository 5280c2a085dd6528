package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/pkg/response"
)

// Receive godoc
// @Summary     Receive a GitHub webhook
// @Description Verifies, records, and applies a GitHub delivery for the workspace.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       workspaceId         path   string true  "Workspace ID"
// @Param       X-GitHub-Event      header string true  "Event type"
// @Param       X-GitHub-Delivery   header string false "Delivery ID"
// @Param       X-Hub-Signature-256 header string false "sha256=<hex HMAC of body>"
// @Success     200 {object} receiveResp
// @Failure     400 {object} response.Resp "Invalid request or handler error"
// @Failure     401 {object} response.Resp "Invalid signature"
// @Failure     404 {object} response.Resp "Workspace or integration not found"
// @Failure     429 {object} response.Resp "Rate limited"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /webhook/devtel/github/{workspaceId} [POST]
func (h *handler) Receive(c *gin.Context) {
	req, err := h.processReceiveReq(c)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "webhook request rejected: %v", err)
		response.Error(c, err, nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.processTimeout)
	defer cancel()

	output, err := h.uc.Process(ctx, req.toDelivery())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newReceiveResp(output))
}

// ListLogs godoc
// @Summary     List webhook logs
// @Description Returns a page of the workspace's webhook logs, newest first.
// @Tags        Webhook
// @Produce     json
// @Param       workspaceId    path   string true  "Workspace ID"
// @Param       X-Internal-Key header string true  "Internal key"
// @Param       status         query  string false "received, signature_failed, processed or error"
// @Param       event_type     query  string false "Event type"
// @Param       limit          query  int    false "Page size (default: 50, max: 200)"
// @Param       offset         query  int    false "Page offset"
// @Success     200 {object} listLogsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     404 {object} response.Resp "Workspace not found"
// @Router      /api/v1/workspaces/{workspaceId}/webhook-logs [GET]
func (h *handler) ListLogs(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListLogsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ListLogs(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListLogs: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListLogsResp(output))
}

// DetailLog godoc
// @Summary     Get a webhook log
// @Description Returns one webhook log, including its payload snapshot.
// @Tags        Webhook
// @Produce     json
// @Param       workspaceId    path   string true "Workspace ID"
// @Param       id             path   string true "Log ID"
// @Param       X-Internal-Key header string true "Internal key"
// @Success     200 {object} detailLogResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/workspaces/{workspaceId}/webhook-logs/{id} [GET]
func (h *handler) DetailLog(c *gin.Context) {
	ctx := c.Request.Context()

	wl, err := h.uc.GetLog(ctx, webhook.GetLogInput{
		WorkspaceID: c.Param("workspaceId"),
		ID:          c.Param("id"),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.GetLog: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailLogResp(wl))
}
