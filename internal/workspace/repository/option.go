package repository

import "github.com/DarshanCode2005/gitmesh/internal/model"

type CreateWorkspaceOptions struct {
	TenantID string
	Name     string
}

type CreateIntegrationOptions struct {
	WorkspaceID string
	Provider    model.Provider
	Status      model.IntegrationStatus
	Credentials model.Credentials
}

// GetIntegrationOptions filters integrations. Non-empty fields are ANDed.
// When several rows match, the most recently updated one wins.
type GetIntegrationOptions struct {
	ID          string
	WorkspaceID string
	Provider    model.Provider
	Status      model.IntegrationStatus
}
