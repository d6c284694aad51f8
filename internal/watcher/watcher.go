// Package watcher monitors an inbox directory and feeds dropped files
// into the ingest pipeline.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/edubot/edubot-backend/internal/domain/ingest"
)

// Config controls the inbox watcher.
type Config struct {
	Dir           string
	MaxConcurrent int
	// SettleDelay gives writers time to finish before the file is read.
	SettleDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 2
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	return c
}

// Ingestor is the slice of the ingest service the watcher needs.
type Ingestor interface {
	Upload(ctx context.Context, req ingest.UploadRequest) (ingest.Document, error)
}

// Watcher ingests files dropped into a directory.
type Watcher struct {
	cfg       Config
	ingestor  Ingestor
	logger    *slog.Logger
	fsw       *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// New constructs a watcher over cfg.Dir.
func New(cfg Config, ingestor Ingestor, logger *slog.Logger) (*Watcher, error) {
	cfg = cfg.withDefaults()
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("init fsnotify: %w", err)
	}
	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", cfg.Dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:       cfg,
		ingestor:  ingestor,
		logger:    logger.With("component", "watcher"),
		fsw:       fsw,
		semaphore: make(chan struct{}, cfg.MaxConcurrent),
	}, nil
}

// Start blocks, ingesting new files until the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("inbox watcher started", "dir", w.cfg.Dir, "max_concurrent", w.cfg.MaxConcurrent)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.logger.Info("inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isSupported(event.Name) {
				w.logger.Debug("ignoring unsupported file", "path", event.Name)
				continue
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					w.ingestFile(ctx, path)
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	// Give the writer time to finish before reading.
	time.Sleep(w.cfg.SettleDelay)

	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Error("read dropped file failed", "path", path, "error", err)
		return
	}
	doc, err := w.ingestor.Upload(ctx, ingest.UploadRequest{
		Filename: filepath.Base(path),
		Content:  data,
		MimeType: mimeFor(path),
	})
	if err != nil {
		w.logger.Error("ingest dropped file failed", "path", path, "error", err)
		return
	}
	w.logger.Info("dropped file ingested", "path", path, "document_id", doc.ID)
}

func isSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".png", ".jpg", ".jpeg", ".pdf":
		return true
	}
	return false
}

func mimeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "text/plain"
	case ".md", ".markdown":
		return "text/markdown"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
