package model

// Worker services that consume messages published by the ingestion pipeline.
const (
	ServiceIndexOpenSearch  = "devtel-index-opensearch"
	ServiceCalculateMetrics = "devtel-calculate-metrics"
)

// WorkerMessage is a message addressed to a background worker service.
type WorkerMessage interface {
	ServiceName() string
}

// IndexMessage asks the search indexer to (re)index an entity.
type IndexMessage struct {
	Service    string `json:"service"`
	Tenant     string `json:"tenant"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Action     string `json:"action"`
}

func (m IndexMessage) ServiceName() string { return m.Service }

// NewIssueIndexMessage builds the index request for an issue.
func NewIssueIndexMessage(tenant, issueID string) IndexMessage {
	return IndexMessage{
		Service:    ServiceIndexOpenSearch,
		Tenant:     tenant,
		EntityType: "issue",
		EntityID:   issueID,
		Action:     "index",
	}
}

// MetricsMessage asks the metrics worker to recompute workspace metrics.
type MetricsMessage struct {
	Service     string `json:"service"`
	Tenant      string `json:"tenant"`
	WorkspaceID string `json:"workspaceId"`
	MetricType  string `json:"metricType"`
}

func (m MetricsMessage) ServiceName() string { return m.Service }

// NewVelocityMessage builds the velocity recompute request for a workspace.
func NewVelocityMessage(tenant, workspaceID string) MetricsMessage {
	return MetricsMessage{
		Service:     ServiceCalculateMetrics,
		Tenant:      tenant,
		WorkspaceID: workspaceID,
		MetricType:  "velocity",
	}
}
