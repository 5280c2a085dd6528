package http

import (
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

const (
	defaultMaxBodyBytes   = 5 << 20
	defaultProcessTimeout = 15 * time.Second
)

type Config struct {
	MaxBodyBytes   int64
	ProcessTimeout time.Duration
}

type handler struct {
	l              log.Logger
	uc             webhook.UseCase
	maxBodyBytes   int64
	processTimeout time.Duration
}

// New creates the HTTP handler for webhook ingestion and the audit endpoints.
func New(l log.Logger, uc webhook.UseCase, cfg Config) *handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = defaultProcessTimeout
	}
	return &handler{
		l:              l,
		uc:             uc,
		maxBodyBytes:   cfg.MaxBodyBytes,
		processTimeout: cfg.ProcessTimeout,
	}
}
