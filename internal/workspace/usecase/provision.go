package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/workspace"
	repo "github.com/DarshanCode2005/gitmesh/internal/workspace/repository"
)

// CreateWorkspace provisions a workspace for a tenant.
func (uc *implUseCase) CreateWorkspace(ctx context.Context, input workspace.CreateWorkspaceInput) (model.Workspace, error) {
	input.TenantID = strings.TrimSpace(input.TenantID)
	input.Name = strings.TrimSpace(input.Name)
	if input.TenantID == "" || input.Name == "" {
		return model.Workspace{}, fmt.Errorf("%w: tenant and name are required", workspace.ErrInvalidInput)
	}

	ws, err := uc.repo.CreateWorkspace(ctx, repo.CreateWorkspaceOptions{
		TenantID: input.TenantID,
		Name:     input.Name,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateWorkspace CreateWorkspace: %v", err)
		return model.Workspace{}, err
	}
	return ws, nil
}

// ConnectIntegration deactivates any active integration for the same provider and
// creates a new active one, so at most one is active per workspace and provider.
func (uc *implUseCase) ConnectIntegration(ctx context.Context, input workspace.ConnectIntegrationInput) (model.Integration, error) {
	if input.Provider == "" {
		return model.Integration{}, fmt.Errorf("%w: provider is required", workspace.ErrInvalidInput)
	}
	if _, err := uc.ResolveWorkspace(ctx, input.WorkspaceID); err != nil {
		return model.Integration{}, err
	}

	current, err := uc.repo.GetIntegration(ctx, repo.GetIntegrationOptions{
		WorkspaceID: input.WorkspaceID,
		Provider:    input.Provider,
		Status:      model.IntegrationStatusActive,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ConnectIntegration GetIntegration: %v", err)
		return model.Integration{}, err
	}
	if current.ID != "" {
		if err := uc.repo.UpdateIntegrationStatus(ctx, current.ID, model.IntegrationStatusInactive); err != nil {
			uc.l.Errorf(ctx, "uc.ConnectIntegration UpdateIntegrationStatus: %v", err)
			return model.Integration{}, err
		}
	}

	integration, err := uc.repo.CreateIntegration(ctx, repo.CreateIntegrationOptions{
		WorkspaceID: input.WorkspaceID,
		Provider:    input.Provider,
		Status:      model.IntegrationStatusActive,
		Credentials: model.Credentials{
			WebhookSecret: input.WebhookSecret,
			AccessToken:   input.AccessToken,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ConnectIntegration CreateIntegration: %v", err)
		return model.Integration{}, err
	}
	return integration, nil
}

// DisconnectIntegration marks an integration inactive.
func (uc *implUseCase) DisconnectIntegration(ctx context.Context, integrationID string) error {
	integration, err := uc.repo.GetIntegration(ctx, repo.GetIntegrationOptions{ID: integrationID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.DisconnectIntegration GetIntegration: %v", err)
		return err
	}
	if integration.ID == "" {
		return workspace.ErrIntegrationNotFound
	}
	if err := uc.repo.UpdateIntegrationStatus(ctx, integration.ID, model.IntegrationStatusInactive); err != nil {
		uc.l.Errorf(ctx, "uc.DisconnectIntegration UpdateIntegrationStatus: %v", err)
		return err
	}
	return nil
}
