package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/feed"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Storage
	db *bun.DB

	// Webhook ingestion
	webhookOpts     webhook.Options
	rateLimitPerMin int
	maxBodyBytes    int64
	processTimeout  time.Duration
	internalKey     string
	publisher       webhook.Publisher
	hub             *feed.Hub
	sweepInterval   time.Duration
	sweepOlderThan  time.Duration

	// Set by setupWebhookDomain; shared by the HTTP handler and the sweeper.
	webhookUC webhook.UseCase
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	DB *bun.DB

	WebhookOptions  webhook.Options
	RateLimitPerMin int
	MaxBodyBytes    int64
	ProcessTimeout  time.Duration
	InternalKey     string

	// Publisher may be nil; worker messages are then dropped.
	Publisher webhook.Publisher
	// Hub may be nil; the live feed route is then not registered.
	Hub *feed.Hub

	// SweepInterval <= 0 disables the stale log sweeper started by Run.
	SweepInterval  time.Duration
	SweepOlderThan time.Duration
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		db:              cfg.DB,
		webhookOpts:     cfg.WebhookOptions,
		rateLimitPerMin: cfg.RateLimitPerMin,
		maxBodyBytes:    cfg.MaxBodyBytes,
		processTimeout:  cfg.ProcessTimeout,
		internalKey:     cfg.InternalKey,
		publisher:       cfg.Publisher,
		hub:             cfg.Hub,
		sweepInterval:   cfg.SweepInterval,
		sweepOlderThan:  cfg.SweepOlderThan,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
