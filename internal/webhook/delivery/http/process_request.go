package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	headerSignature = "X-Hub-Signature-256"
	headerEvent     = "X-GitHub-Event"
	headerDelivery  = "X-GitHub-Delivery"
)

// processReceiveReq reads the raw body, bounded by maxBodyBytes, and the GitHub headers.
// The body is kept byte-for-byte since the signature covers it.
func (h *handler) processReceiveReq(c *gin.Context) (receiveReq, error) {
	req := receiveReq{
		WorkspaceID: c.Param("workspaceId"),
		EventType:   c.GetHeader(headerEvent),
		DeliveryID:  c.GetHeader(headerDelivery),
		Signature:   c.GetHeader(headerSignature),
	}
	if req.WorkspaceID == "" {
		return req, errInvalidRequest("workspaceId is required")
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, errInvalidRequest("request body too large")
		}
		return req, errInvalidRequest("failed to read request body")
	}
	req.Payload = body
	return req, nil
}

// processListLogsReq binds and validates the list query parameters.
func (h *handler) processListLogsReq(c *gin.Context) (listLogsReq, error) {
	var req listLogsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, errInvalidRequest(err.Error())
	}
	req.WorkspaceID = c.Param("workspaceId")
	return req, req.validate()
}
