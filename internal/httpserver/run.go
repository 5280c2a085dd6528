package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DarshanCode2005/gitmesh/internal/webhook"
)

const shutdownTimeout = 10 * time.Second

// Run serves until ctx is done, then shuts down gracefully. The stale log
// sweeper runs alongside it on the same webhook use case.
func (srv *HTTPServer) Run(ctx context.Context) error {
	go srv.sweep(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "HTTP server listening on :%d", srv.port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	srv.l.Infof(context.Background(), "HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (srv *HTTPServer) sweep(ctx context.Context) {
	webhook.RunSweeper(ctx, srv.l, srv.webhookUC, srv.sweepInterval, srv.sweepOlderThan)
}
