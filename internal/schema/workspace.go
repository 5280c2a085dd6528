package schema

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// Workspace is the devtel_workspaces table.
type Workspace struct {
	bun.BaseModel `bun:"table:devtel_workspaces,alias:ws"`

	ID        string    `bun:"id,pk"`
	TenantID  string    `bun:"tenant_id,notnull"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func (r *Workspace) ToDomain() model.Workspace {
	return model.Workspace{
		ID:        r.ID,
		TenantID:  r.TenantID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// Integration is the devtel_integrations table.
type Integration struct {
	bun.BaseModel `bun:"table:devtel_integrations,alias:ig"`

	ID          string            `bun:"id,pk"`
	WorkspaceID string            `bun:"workspace_id,notnull"`
	Provider    string            `bun:"provider,notnull"`
	Status      string            `bun:"status,notnull"`
	Credentials model.Credentials `bun:"credentials,type:jsonb,notnull"`
	CreatedAt   time.Time         `bun:"created_at,notnull"`
	UpdatedAt   time.Time         `bun:"updated_at,notnull"`
}

func (r *Integration) ToDomain() model.Integration {
	return model.Integration{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Provider:    model.Provider(r.Provider),
		Status:      model.IntegrationStatus(r.Status),
		Credentials: r.Credentials,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
