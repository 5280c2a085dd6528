package schema

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type index struct {
	model   any
	name    string
	columns []string
	unique  bool
}

var tables = []any{
	(*Workspace)(nil),
	(*Integration)(nil),
	(*WebhookLog)(nil),
	(*Issue)(nil),
	(*ExternalLink)(nil),
	(*IssuePullRequest)(nil),
	(*Activity)(nil),
}

var indexes = []index{
	{(*Integration)(nil), "devtel_integrations_workspace_provider_idx", []string{"workspace_id", "provider", "status"}, false},
	{(*WebhookLog)(nil), "devtel_webhook_logs_workspace_received_idx", []string{"workspace_id", "received_at"}, false},
	{(*WebhookLog)(nil), "devtel_webhook_logs_status_received_idx", []string{"status", "received_at"}, false},
	{(*Issue)(nil), "devtel_issues_workspace_idx", []string{"workspace_id"}, false},
	{(*ExternalLink)(nil), "devtel_external_links_external_uidx", []string{"workspace_id", "provider", "external_id"}, true},
	{(*ExternalLink)(nil), "devtel_external_links_number_idx", []string{"workspace_id", "provider", "repository", "external_number"}, false},
	{(*IssuePullRequest)(nil), "devtel_issue_pull_requests_url_uidx", []string{"issue_id", "url"}, true},
	{(*Activity)(nil), "devtel_activities_external_uidx", []string{"workspace_id", "provider", "kind", "external_id"}, true},
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("schema: create table %T: %w", m, err)
		}
	}

	for _, idx := range indexes {
		q := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists()
		if idx.unique {
			q = q.Unique()
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("schema: create index %s: %w", idx.name, err)
		}
	}

	return nil
}
