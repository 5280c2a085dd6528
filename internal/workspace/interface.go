package workspace

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// UseCase resolves the workspace and integration a delivery belongs to.
type UseCase interface {
	// ResolveWorkspace returns ErrWorkspaceNotFound for unknown ids.
	ResolveWorkspace(ctx context.Context, workspaceID string) (model.Workspace, error)
	// ResolveActiveIntegration returns ErrIntegrationNotFound unless an active
	// integration for the provider exists.
	ResolveActiveIntegration(ctx context.Context, workspaceID string, provider model.Provider) (model.Integration, error)
	// Resolve performs both lookups once and returns them as a single snapshot.
	Resolve(ctx context.Context, workspaceID string, provider model.Provider) (model.Resolution, error)

	// Provisioning used by the admin CLI.
	CreateWorkspace(ctx context.Context, input CreateWorkspaceInput) (model.Workspace, error)
	ConnectIntegration(ctx context.Context, input ConnectIntegrationInput) (model.Integration, error)
	DisconnectIntegration(ctx context.Context, integrationID string) error
}
