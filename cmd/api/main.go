package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DarshanCode2005/gitmesh/config"
	_ "github.com/DarshanCode2005/gitmesh/docs" // Swagger docs
	"github.com/DarshanCode2005/gitmesh/internal/feed"
	"github.com/DarshanCode2005/gitmesh/internal/httpserver"
	"github.com/DarshanCode2005/gitmesh/internal/schema"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/pkg/broker"
	"github.com/DarshanCode2005/gitmesh/pkg/database"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

// @title       DevTel Webhook Ingestion API
// @description Receives GitHub webhooks per workspace, verifies and records every delivery, and applies issue, pull request and push events.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		SentryDSN:    cfg.Logger.SentryDSN,
		Environment:  cfg.Environment.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting DevTel webhook ingestion...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Database
	db, err := database.Open(ctx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to open database: %v", err)
		return
	}
	defer db.Close()
	logger.Infof(ctx, "Database connected: driver=%s", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		if err := schema.Migrate(ctx, db); err != nil {
			logger.Errorf(ctx, "Failed to migrate database: %v", err)
			return
		}
		logger.Info(ctx, "Database schema migrated")
	}

	// 4. Broker
	pub, err := broker.New(ctx, broker.Config{
		URL:        cfg.Broker.URL,
		Stream:     cfg.Broker.Stream,
		PoolSize:   cfg.Broker.PoolSize,
		MaxRetries: cfg.Broker.MaxRetries,
	}, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to broker: %v", err)
		return
	}
	defer pub.Close()

	// 5. Live feed
	hub := feed.NewHub(logger)
	go hub.Run(ctx)

	webhookOpts := webhook.Options{
		RequireSignature: cfg.Webhook.RequireSignature,
		FinalizeTimeout:  cfg.Webhook.FinalizeTimeout,
		Dedupe: webhook.DedupeOptions{
			Enabled: cfg.Webhook.Dedupe.Enabled,
			TTL:     cfg.Webhook.Dedupe.TTL,
			Size:    cfg.Webhook.Dedupe.Size,
		},
	}

	// 6. HTTP Server (also runs the stale log sweeper)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		DB:              db,
		WebhookOptions:  webhookOpts,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		MaxBodyBytes:    cfg.Webhook.MaxBodyBytes,
		ProcessTimeout:  cfg.Webhook.ProcessTimeout,
		InternalKey:     cfg.Internal.Key,
		Publisher:       webhook.NewBrokerPublisher(pub),
		Hub:             hub,
		SweepInterval:   cfg.Webhook.SweepInterval,
		SweepOlderThan:  cfg.Webhook.SweepOlderThan,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
