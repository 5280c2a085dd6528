package usecase

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/workspace"
	repo "github.com/DarshanCode2005/gitmesh/internal/workspace/repository"
)

// ResolveWorkspace looks a workspace up by id.
func (uc *implUseCase) ResolveWorkspace(ctx context.Context, workspaceID string) (model.Workspace, error) {
	if workspaceID == "" {
		return model.Workspace{}, workspace.ErrWorkspaceNotFound
	}
	ws, err := uc.repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ResolveWorkspace GetWorkspace: %v", err)
		return model.Workspace{}, err
	}
	if ws.ID == "" {
		return model.Workspace{}, workspace.ErrWorkspaceNotFound
	}
	return ws, nil
}

// ResolveActiveIntegration returns the active integration of the workspace for provider.
func (uc *implUseCase) ResolveActiveIntegration(ctx context.Context, workspaceID string, provider model.Provider) (model.Integration, error) {
	integration, err := uc.repo.GetIntegration(ctx, repo.GetIntegrationOptions{
		WorkspaceID: workspaceID,
		Provider:    provider,
		Status:      model.IntegrationStatusActive,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ResolveActiveIntegration GetIntegration: %v", err)
		return model.Integration{}, err
	}
	if integration.ID == "" || !integration.IsActive() {
		return model.Integration{}, workspace.ErrIntegrationNotFound
	}
	return integration, nil
}

// Resolve returns the workspace and its active integration in one snapshot.
func (uc *implUseCase) Resolve(ctx context.Context, workspaceID string, provider model.Provider) (model.Resolution, error) {
	ws, err := uc.ResolveWorkspace(ctx, workspaceID)
	if err != nil {
		return model.Resolution{}, err
	}
	integration, err := uc.ResolveActiveIntegration(ctx, ws.ID, provider)
	if err != nil {
		return model.Resolution{}, err
	}
	return model.Resolution{Workspace: ws, Integration: integration}, nil
}
