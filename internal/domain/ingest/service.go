package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/blob"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
	apperrors "github.com/edubot/edubot-backend/pkg/errors"
	"github.com/edubot/edubot-backend/pkg/util"
)

// Generator produces study materials from plain text.
type Generator interface {
	Generate(ctx context.Context, req studycards.Request) (studycards.Materials, error)
}

// Librarian stores generated materials as a study set.
type Librarian interface {
	Save(ctx context.Context, title string, materials studycards.Materials, sourceChars int) (library.StudySet, error)
}

// Config limits uploads.
type Config struct {
	MaxFileBytes int64
}

func (c Config) withDefaults() Config {
	if c.MaxFileBytes <= 0 {
		c.MaxFileBytes = 20 * 1024 * 1024
	}
	return c
}

// Service runs the document ingestion workflow.
type Service struct {
	cfg       Config
	docs      DocumentRepository
	storage   blob.ObjectStorage
	extractor TextExtractor
	grammar   GrammarCorrector
	generator Generator
	librarian Librarian
	queue     JobQueue
	logger    *slog.Logger
}

// NewService constructs the ingest service.
func NewService(cfg Config, docs DocumentRepository, storage blob.ObjectStorage, extractor TextExtractor, grammar GrammarCorrector, generator Generator, librarian Librarian, queue JobQueue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg.withDefaults(),
		docs:      docs,
		storage:   storage,
		extractor: extractor,
		grammar:   grammar,
		generator: generator,
		librarian: librarian,
		queue:     queue,
		logger:    logger.With("component", "ingest.service"),
	}
}

// UploadRequest captures a multipart submission.
type UploadRequest struct {
	Filename    string
	Title       string
	MimeType    string
	Content     []byte
	UseTaxonomy bool
}

// Upload stores the blob, records the document, and enqueues processing.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (Document, error) {
	if len(req.Content) == 0 {
		return Document{}, apperrors.New("invalid_input", "file content cannot be empty", nil)
	}
	if int64(len(req.Content)) > s.cfg.MaxFileBytes {
		return Document{}, apperrors.New("invalid_input", "file exceeds maximum allowed size", nil)
	}
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "document.txt"
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = filename
	}
	mime := req.MimeType
	if mime == "" {
		mime = http.DetectContentType(req.Content)
	}

	now := util.NowUTC()
	doc := Document{
		ID:          uuid.New(),
		Title:       title,
		Filename:    filename,
		MimeType:    mime,
		Status:      DocumentStatusPending,
		UseTaxonomy: req.UseTaxonomy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	storageKey := fmt.Sprintf("uploads/%s/%s", doc.ID.String(), sanitizeFilename(filename))
	obj, err := s.storage.Put(ctx, storageKey, req.Content, mime)
	if err != nil {
		return Document{}, apperrors.Wrap("storage_error", "failed to store file", err)
	}
	doc.StorageKey = obj.Key

	if err := s.docs.Create(ctx, doc); err != nil {
		return Document{}, apperrors.Wrap("storage_error", "failed to persist document", err)
	}

	if s.queue != nil {
		payload := map[string]any{"document_id": doc.ID.String()}
		if err := s.queue.Enqueue(ctx, "process_document", payload); err != nil {
			s.logger.Warn("enqueue process_document failed", "error", err)
		}
	}
	return doc, nil
}

// Process runs the full pipeline for an uploaded document: read the
// blob, extract text, clean it up, generate study materials, and store
// them as a study set. Failures are recorded on the document.
func (s *Service) Process(ctx context.Context, docID uuid.UUID) error {
	s.logger.Info("process_document start", "document_id", docID)
	doc, found, err := s.docs.Get(ctx, docID)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to load document", err)
	}
	if !found {
		return apperrors.New("not_found", "document not found", nil)
	}
	if doc.Status == DocumentStatusProcessed {
		return nil
	}
	if err := s.docs.UpdateStatus(ctx, docID, DocumentStatusProcessing, nil); err != nil {
		return apperrors.Wrap("storage_error", "failed to update status", err)
	}

	text, err := s.extractText(ctx, doc)
	if err != nil {
		return s.fail(ctx, docID, "text extraction failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return s.fail(ctx, docID, "no text recognized in document", apperrors.New("invalid_input", "empty text", nil))
	}

	materials, err := s.generator.Generate(ctx, studycards.Request{
		Text:        text,
		UseTaxonomy: doc.UseTaxonomy,
	})
	if err != nil {
		return s.fail(ctx, docID, "study material generation failed", err)
	}

	set, err := s.librarian.Save(ctx, doc.Title, materials, len(text))
	if err != nil {
		return s.fail(ctx, docID, "saving study set failed", err)
	}

	if err := s.docs.AttachStudySet(ctx, docID, set.ID); err != nil {
		return s.fail(ctx, docID, "attaching study set failed", err)
	}
	if err := s.docs.UpdateStatus(ctx, docID, DocumentStatusProcessed, nil); err != nil {
		return apperrors.Wrap("storage_error", "failed to finalize document", err)
	}
	s.logger.Info("process_document complete", "document_id", docID, "study_set_id", set.ID)
	return nil
}

// Get returns a document record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Document, error) {
	doc, found, err := s.docs.Get(ctx, id)
	if err != nil {
		return Document{}, apperrors.Wrap("storage_error", "failed to load document", err)
	}
	if !found {
		return Document{}, apperrors.New("not_found", "document not found", nil)
	}
	return doc, nil
}

// List returns all documents, newest first.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list documents", err)
	}
	return docs, nil
}

// extractText reads the stored blob and turns it into plain text. Text
// files pass through; images and PDFs go through OCR, and recognized
// text gets reflowed and grammar corrected before the pipeline sees it.
func (s *Service) extractText(ctx context.Context, doc Document) (string, error) {
	reader, err := s.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return "", apperrors.Wrap("storage_error", "failed to fetch stored file", err)
	}
	defer reader.Close()
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", apperrors.Wrap("storage_error", "failed to read stored file", err)
	}

	if isPlainText(doc.MimeType, doc.Filename) {
		return string(raw), nil
	}

	if s.extractor == nil {
		return "", apperrors.New("ocr_error", "no text recognizer configured for "+doc.MimeType, nil)
	}
	recognized, err := s.extractor.ExtractText(ctx, raw, doc.MimeType)
	if err != nil {
		return "", err
	}

	text := studycards.Reflow(recognized)
	if s.grammar != nil {
		corrected, err := s.grammar.Correct(ctx, text)
		if err != nil {
			s.logger.Warn("grammar correction failed, using raw text", "error", err)
		} else {
			text = corrected
		}
	}
	return text, nil
}

func (s *Service) fail(ctx context.Context, docID uuid.UUID, reason string, cause error) error {
	s.logger.Error("process_document failed", "document_id", docID, "reason", reason, "error", cause)
	if err := s.docs.UpdateStatus(ctx, docID, DocumentStatusFailed, &reason); err != nil {
		s.logger.Error("recording failure status failed", "document_id", docID, "error", err)
	}
	return cause
}

func isPlainText(mimeType, filename string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	switch strings.ToLower(path.Ext(filename)) {
	case ".txt", ".md", ".markdown":
		return true
	}
	return false
}

func sanitizeFilename(name string) string {
	name = path.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
