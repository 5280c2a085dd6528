package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/config"
	"github.com/DarshanCode2005/gitmesh/pkg/database"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

// dbFlags override the configured database when set.
type dbFlags struct {
	driver string
	dsn    string
}

func newRootCmd() *cobra.Command {
	var flags dbFlags

	rootCmd := &cobra.Command{
		Use:           "devtelctl",
		Short:         "Administer the DevTel webhook ingestion service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "Database driver (postgres|sqlite3), overrides config")
	rootCmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "Database DSN, overrides config")

	rootCmd.AddCommand(
		newMigrateCmd(&flags),
		newSweepCmd(&flags),
		newSignCmd(),
		newWorkspaceCmd(&flags),
		newIntegrationCmd(&flags),
	)
	return rootCmd
}

func newLogger() log.Logger {
	return log.Init(log.ZapConfig{
		Level:    "warn",
		Mode:     log.ModeDevelopment,
		Encoding: log.EncodingConsole,
	})
}

// withDB opens the database, runs fn and closes it. The context is cancelled on SIGINT/SIGTERM.
func withDB(cmd *cobra.Command, flags *dbFlags, fn func(ctx context.Context, db *bun.DB, l log.Logger) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg, err := resolveDatabase(flags)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return fn(ctx, db, newLogger())
}

func resolveDatabase(flags *dbFlags) (database.Config, error) {
	if flags.dsn != "" {
		driver := flags.driver
		if driver == "" {
			driver = database.DriverPostgres
		}
		return database.Config{Driver: driver, DSN: flags.dsn}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return database.Config{}, fmt.Errorf("load config: %w", err)
	}
	return database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, nil
}
