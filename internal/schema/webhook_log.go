package schema

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// WebhookLog is the devtel_webhook_logs table, the audit trail of every delivery
// that got past workspace and integration resolution.
type WebhookLog struct {
	bun.BaseModel `bun:"table:devtel_webhook_logs,alias:wl"`

	ID          string          `bun:"id,pk"`
	WorkspaceID string          `bun:"workspace_id,notnull"`
	Provider    string          `bun:"provider,notnull"`
	EventType   string          `bun:"event_type,notnull"`
	DeliveryID  string          `bun:"delivery_id,notnull"`
	Payload     json.RawMessage `bun:"payload,type:jsonb,notnull"`
	Status      string          `bun:"status,notnull"`
	Error       string          `bun:"error,notnull"`
	ReceivedAt  time.Time       `bun:"received_at,notnull"`
	ProcessedAt *time.Time      `bun:"processed_at,nullzero"`
}

func (r *WebhookLog) ToDomain() model.WebhookLog {
	return model.WebhookLog{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Provider:    model.Provider(r.Provider),
		EventType:   model.EventType(r.EventType),
		DeliveryID:  r.DeliveryID,
		Payload:     r.Payload,
		Status:      model.WebhookStatus(r.Status),
		Error:       r.Error,
		ReceivedAt:  r.ReceivedAt,
		ProcessedAt: r.ProcessedAt,
	}
}
