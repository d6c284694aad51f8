// Package bootstrap ties the server, background queue, and inbox
// watcher into one runnable application.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/ingest"
	"github.com/edubot/edubot-backend/internal/infra/config"
	"github.com/edubot/edubot-backend/internal/infra/queue"
	"github.com/edubot/edubot-backend/internal/watcher"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	watcher *watcher.Watcher
	queue   queue.HandlerQueue
	ingest  *ingest.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, w *watcher.Watcher, q queue.HandlerQueue, ingestSvc *ingest.Service) *App {
	app := &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		server:  server,
		watcher: w,
		queue:   q,
		ingest:  ingestSvc,
	}
	if q != nil {
		q.SetHandler(app.dispatchJob)
	}
	return app
}

// Run starts the HTTP server and the inbox watcher and blocks until
// shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	if a.watcher != nil {
		go func() {
			if err := a.watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("inbox watcher stopped", "error", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if a.watcher != nil {
			_ = a.watcher.Stop()
		}
		if a.queue != nil {
			a.queue.Close()
		}
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// dispatchJob routes queued jobs to their domain handlers.
func (a *App) dispatchJob(ctx context.Context, name string, payload map[string]any) {
	switch name {
	case "process_document":
		raw, _ := payload["document_id"].(string)
		docID, err := uuid.Parse(raw)
		if err != nil {
			a.logger.Error("job has invalid document id", "job", name, "document_id", raw)
			return
		}
		if err := a.ingest.Process(ctx, docID); err != nil {
			a.logger.Error("job failed", "job", name, "document_id", docID, "error", err)
		}
	default:
		a.logger.Warn("unknown job", "job", name)
	}
}
