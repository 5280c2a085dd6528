package schema_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DarshanCode2005/gitmesh/internal/schema"
	"github.com/DarshanCode2005/gitmesh/pkg/database"
)

// TestMigratePostgres runs against a real PostgreSQL container.
// Set TEST_POSTGRES=1 to enable it, or TEST_POSTGRES_DSN to use an existing server.
func TestMigratePostgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" && os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("TEST_POSTGRES not set")
	}

	ctx := context.Background()
	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("devtel_test"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err)
		t.Cleanup(func() {
			if err := container.Terminate(context.Background()); err != nil {
				t.Logf("terminate postgres container: %v", err)
			}
		})

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	db, err := database.Open(ctx, database.Config{Driver: database.DriverPostgres, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, schema.Migrate(ctx, db))
	require.NoError(t, schema.Migrate(ctx, db))

	var names []string
	require.NoError(t, db.NewRaw(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name LIKE 'devtel_%' ORDER BY table_name",
	).Scan(ctx, &names))
	assert.Len(t, names, 7)

	now := time.Now().UTC()
	ws := &schema.Workspace{ID: "ws-pg", TenantID: "t1", Name: "Core", CreatedAt: now}
	_, err = db.NewInsert().Model(ws).Exec(ctx)
	require.NoError(t, err)

	link := &schema.ExternalLink{
		ID:          "link-1",
		WorkspaceID: ws.ID,
		IssueID:     "issue-1",
		Provider:    "github",
		ExternalID:  "5001",
		CreatedAt:   now,
	}
	_, err = db.NewInsert().Model(link).Exec(ctx)
	require.NoError(t, err)

	dup := *link
	dup.ID = "link-2"
	_, err = db.NewInsert().Model(&dup).Exec(ctx)
	assert.Error(t, err, "external id must be unique per workspace and provider")
}
