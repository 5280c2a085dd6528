package repository

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

// Repository is the composed interface for the workspace data store.
type Repository interface {
	WorkspaceRepository
	IntegrationRepository
}

// WorkspaceRepository reads and provisions workspaces.
// Lookups return a zero-value Workspace (ID == "") when nothing matches.
type WorkspaceRepository interface {
	CreateWorkspace(ctx context.Context, opt CreateWorkspaceOptions) (model.Workspace, error)
	GetWorkspace(ctx context.Context, id string) (model.Workspace, error)
}

// IntegrationRepository reads and provisions integrations.
// Lookups return a zero-value Integration (ID == "") when nothing matches.
type IntegrationRepository interface {
	CreateIntegration(ctx context.Context, opt CreateIntegrationOptions) (model.Integration, error)
	GetIntegration(ctx context.Context, opt GetIntegrationOptions) (model.Integration, error)
	UpdateIntegrationStatus(ctx context.Context, id string, status model.IntegrationStatus) error
}
