package workspace

import "github.com/DarshanCode2005/gitmesh/internal/model"

type CreateWorkspaceInput struct {
	TenantID string
	Name     string
}

type ConnectIntegrationInput struct {
	WorkspaceID   string
	Provider      model.Provider
	WebhookSecret string
	AccessToken   string
}
