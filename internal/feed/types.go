package feed

import (
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

const (
	MessageTypeDelivery  = "delivery"
	MessageTypeSubscribe = "subscribe"
)

// Message is what subscribers receive for every finalized delivery.
type Message struct {
	Type string     `json:"type"`
	Log  LogSummary `json:"log"`
}

// LogSummary is a webhook log without its payload.
type LogSummary struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Provider    string     `json:"provider"`
	EventType   string     `json:"event_type"`
	DeliveryID  string     `json:"delivery_id,omitempty"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	ReceivedAt  time.Time  `json:"received_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func newMessage(wl model.WebhookLog) Message {
	return Message{
		Type: MessageTypeDelivery,
		Log: LogSummary{
			ID:          wl.ID,
			WorkspaceID: wl.WorkspaceID,
			Provider:    string(wl.Provider),
			EventType:   string(wl.EventType),
			DeliveryID:  wl.DeliveryID,
			Status:      string(wl.Status),
			Error:       wl.Error,
			ReceivedAt:  wl.ReceivedAt,
			ProcessedAt: wl.ProcessedAt,
		},
	}
}

// subscribeMessage narrows a client to the listed workspaces. An empty list means all.
type subscribeMessage struct {
	Type       string   `json:"type"`
	Workspaces []string `json:"workspaces"`
}

type broadcastMessage struct {
	workspaceID string
	data        []byte
}
