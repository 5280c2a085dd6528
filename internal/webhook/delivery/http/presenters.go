package http

import (
	"encoding/json"
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

// --- Request DTOs ---

type receiveReq struct {
	WorkspaceID string
	EventType   string
	DeliveryID  string
	Signature   string
	Payload     []byte
}

func (r receiveReq) toDelivery() model.Delivery {
	return model.Delivery{
		WorkspaceID: r.WorkspaceID,
		Provider:    model.ProviderGitHub,
		EventType:   model.EventType(r.EventType),
		DeliveryID:  r.DeliveryID,
		Signature:   r.Signature,
		Payload:     r.Payload,
	}
}

// ---

type listLogsReq struct {
	WorkspaceID string `form:"-"`
	Status      string `form:"status"`
	EventType   string `form:"event_type"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

func (r listLogsReq) validate() error {
	if r.Status != "" && !model.WebhookStatus(r.Status).Valid() {
		return errInvalidRequest("status must be one of received, signature_failed, processed, error")
	}
	if r.Limit < 0 || r.Offset < 0 {
		return errInvalidRequest("limit and offset must not be negative")
	}
	return nil
}

func (r listLogsReq) toInput() webhook.ListLogsInput {
	return webhook.ListLogsInput{
		WorkspaceID: r.WorkspaceID,
		Status:      model.WebhookStatus(r.Status),
		EventType:   model.EventType(r.EventType),
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
}

// --- Response DTOs ---

type receiveResp struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}

func (h *handler) newReceiveResp(out webhook.ProcessOutput) receiveResp {
	return receiveResp{Received: true, Duplicate: out.Duplicate}
}

type logResp struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	Provider    string          `json:"provider"`
	EventType   string          `json:"event_type"`
	DeliveryID  string          `json:"delivery_id,omitempty"`
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	ReceivedAt  time.Time       `json:"received_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

func newLogResp(wl model.WebhookLog, withPayload bool) logResp {
	resp := logResp{
		ID:          wl.ID,
		WorkspaceID: wl.WorkspaceID,
		Provider:    string(wl.Provider),
		EventType:   string(wl.EventType),
		DeliveryID:  wl.DeliveryID,
		Status:      string(wl.Status),
		Error:       wl.Error,
		ReceivedAt:  wl.ReceivedAt,
		ProcessedAt: wl.ProcessedAt,
	}
	if withPayload {
		resp.Payload = wl.Payload
	}
	return resp
}

type listLogsResp struct {
	Logs   []logResp `json:"logs"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

func (h *handler) newListLogsResp(out webhook.ListLogsOutput) listLogsResp {
	logs := make([]logResp, len(out.Logs))
	for i, wl := range out.Logs {
		logs[i] = newLogResp(wl, false)
	}
	return listLogsResp{
		Logs:   logs,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type detailLogResp struct {
	Log logResp `json:"log"`
}

func (h *handler) newDetailLogResp(wl model.WebhookLog) detailLogResp {
	return detailLogResp{Log: newLogResp(wl, true)}
}
