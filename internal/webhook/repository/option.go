package repository

import "github.com/DarshanCode2005/gitmesh/internal/model"

// MaxErrorLength bounds the stored error message, in bytes.
const MaxErrorLength = 1024

// StaleErrorMessage is recorded on rows finalized by SweepStale.
const StaleErrorMessage = "abandoned before reaching a terminal status"

type CreateLogOptions struct {
	WorkspaceID string
	Provider    model.Provider
	EventType   model.EventType
	DeliveryID  string
	Payload     []byte
}

// GetLogOptions identifies a log. WorkspaceID, when set, scopes the lookup.
type GetLogOptions struct {
	ID          string
	WorkspaceID string
}

type ListLogsOptions struct {
	WorkspaceID string
	Status      model.WebhookStatus
	EventType   model.EventType
	Limit       int
	Offset      int
}
