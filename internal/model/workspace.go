package model

import "time"

// Provider identifies the third-party source of a delivery.
type Provider string

const (
	ProviderGitHub Provider = "github"
)

// IntegrationStatus is the lifecycle state of a workspace integration.
type IntegrationStatus string

const (
	IntegrationStatusActive   IntegrationStatus = "active"
	IntegrationStatusInactive IntegrationStatus = "inactive"
)

// Workspace is a tenant-scoped container for issues.
type Workspace struct {
	ID        string
	TenantID  string
	Name      string
	CreatedAt time.Time
}

// Credentials holds the integration secrets.
// An empty WebhookSecret means signatures are not checked unless required by config.
type Credentials struct {
	WebhookSecret string `json:"webhookSecret,omitempty"`
	AccessToken   string `json:"accessToken,omitempty"`
}

// Integration binds a workspace to a provider.
type Integration struct {
	ID          string
	WorkspaceID string
	Provider    Provider
	Status      IntegrationStatus
	Credentials Credentials
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the integration may accept deliveries.
func (i Integration) IsActive() bool {
	return i.Status == IntegrationStatusActive
}

// Resolution is the workspace and integration snapshot a single delivery runs against.
type Resolution struct {
	Workspace   Workspace
	Integration Integration
}
