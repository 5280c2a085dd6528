package model

import (
	"encoding/json"
	"time"
)

// EventType is the provider's event tag (X-GitHub-Event).
type EventType string

const (
	EventIssues      EventType = "issues"
	EventPullRequest EventType = "pull_request"
	EventPush        EventType = "push"
	EventPing        EventType = "ping"
)

// WebhookStatus is the processing state of a WebhookLog.
type WebhookStatus string

const (
	WebhookStatusReceived        WebhookStatus = "received"
	WebhookStatusSignatureFailed WebhookStatus = "signature_failed"
	WebhookStatusProcessed       WebhookStatus = "processed"
	WebhookStatusError           WebhookStatus = "error"
)

// IsTerminal reports whether s is a final status.
func (s WebhookStatus) IsTerminal() bool {
	switch s {
	case WebhookStatusSignatureFailed, WebhookStatusProcessed, WebhookStatusError:
		return true
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s WebhookStatus) Valid() bool {
	return s == WebhookStatusReceived || s.IsTerminal()
}

// Delivery is a single inbound webhook request. It only lives for the duration of processing.
type Delivery struct {
	WorkspaceID string
	Provider    Provider
	EventType   EventType
	DeliveryID  string
	Signature   string
	Payload     []byte
}

// WebhookLog is the durable audit record of a delivery.
// It is created as received and moves to exactly one terminal status.
type WebhookLog struct {
	ID          string
	WorkspaceID string
	Provider    Provider
	EventType   EventType
	DeliveryID  string
	Payload     json.RawMessage
	Status      WebhookStatus
	Error       string
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}
