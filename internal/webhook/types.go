package webhook

import (
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// Outcome describes what dispatching a delivery did.
type Outcome string

const (
	// OutcomeApplied means domain state changed.
	OutcomeApplied Outcome = "applied"
	// OutcomeNoop means the event was understood but required no change.
	OutcomeNoop Outcome = "noop"
	// OutcomeIgnored means the event type is not handled.
	OutcomeIgnored Outcome = "ignored"
)

// Options configure the pipeline.
type Options struct {
	RequireSignature bool
	FinalizeTimeout  time.Duration
	Dedupe           DedupeOptions
}

type DedupeOptions struct {
	Enabled bool
	TTL     time.Duration
	Size    int
}

type ProcessOutput struct {
	LogID     string
	Outcome   Outcome
	Duplicate bool
}

type GetLogInput struct {
	WorkspaceID string
	ID          string
}

type ListLogsInput struct {
	WorkspaceID string
	Status      model.WebhookStatus
	EventType   model.EventType
	Limit       int
	Offset      int
}

type ListLogsOutput struct {
	Logs   []model.WebhookLog
	Total  int
	Limit  int
	Offset int
}
