package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/ingest"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/speech"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
	apperrors "github.com/edubot/edubot-backend/pkg/errors"
)

// GenerateService is the study card pipeline surface the handler uses.
type GenerateService interface {
	Generate(ctx context.Context, req studycards.Request) (studycards.Materials, error)
}

// LibraryService covers study set persistence and retrieval.
type LibraryService interface {
	Save(ctx context.Context, title string, materials studycards.Materials, sourceChars int) (library.StudySet, error)
	Get(ctx context.Context, id uuid.UUID) (library.StudySet, error)
	List(ctx context.Context) ([]library.StudySet, error)
	Related(ctx context.Context, id uuid.UUID) ([]library.RelatedStudySet, error)
	Export(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

// IngestService covers document upload and lookup.
type IngestService interface {
	Upload(ctx context.Context, req ingest.UploadRequest) (ingest.Document, error)
	Get(ctx context.Context, id uuid.UUID) (ingest.Document, error)
	List(ctx context.Context) ([]ingest.Document, error)
}

// SpeechService covers transcription and narration.
type SpeechService interface {
	Transcribe(ctx context.Context, req speech.TranscribeRequest) (speech.Transcription, error)
	Narrate(ctx context.Context, req speech.NarrateRequest) (speech.Narration, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	generateSvc GenerateService
	librarySvc  LibraryService
	ingestSvc   IngestService
	speechSvc   SpeechService
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(generateSvc GenerateService, librarySvc LibraryService, ingestSvc IngestService, speechSvc SpeechService, logger *slog.Logger) *Handler {
	return &Handler{
		generateSvc: generateSvc,
		librarySvc:  librarySvc,
		ingestSvc:   ingestSvc,
		speechSvc:   speechSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

type createStudySetRequest struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	UseTaxonomy bool   `json:"use_taxonomy"`
}

// CreateStudySet runs the pipeline over raw text and stores the result.
func (h *Handler) CreateStudySet(c *gin.Context) {
	var req createStudySetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	materials, err := h.generateSvc.Generate(c.Request.Context(), studycards.Request{
		Text:        req.Text,
		UseTaxonomy: req.UseTaxonomy,
	})
	if err != nil {
		abortWithError(c, toHTTPError(err, "generate_failed"))
		return
	}

	set, err := h.librarySvc.Save(c.Request.Context(), req.Title, materials, len(req.Text))
	if err != nil {
		abortWithError(c, toHTTPError(err, "save_failed"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"study_set": set, "stats": materials.Stats})
}

// ListStudySets returns stored study sets.
func (h *Handler) ListStudySets(c *gin.Context) {
	sets, err := h.librarySvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, toHTTPError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sets})
}

// GetStudySet returns a single study set.
func (h *Handler) GetStudySet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	set, err := h.librarySvc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, toHTTPError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, set)
}

// RelatedStudySets returns sets similar to the given one.
func (h *Handler) RelatedStudySets(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	related, err := h.librarySvc.Related(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, toHTTPError(err, "fetch_failed"))
		return
	}
	if related == nil {
		related = []library.RelatedStudySet{}
	}
	c.JSON(http.StatusOK, gin.H{"items": related})
}

// ExportStudySet streams the study guide document.
func (h *Handler) ExportStudySet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, filename, err := h.librarySvc.Export(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, toHTTPError(err, "export_failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}

// UploadDocument handles multipart upload and enqueues processing.
func (h *Handler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "upload_failed", "failed to read file", err))
		return
	}
	doc, err := h.ingestSvc.Upload(c.Request.Context(), ingest.UploadRequest{
		Filename:    fileHeader.Filename,
		Title:       c.PostForm("title"),
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Content:     data,
		UseTaxonomy: truthyForm(c, "use_taxonomy"),
	})
	if err != nil {
		abortWithError(c, toHTTPError(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"document": doc})
}

// ListDocuments returns uploaded documents.
func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.ingestSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, toHTTPError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": docs})
}

// GetDocument returns a single document's metadata.
func (h *Handler) GetDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.ingestSvc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, toHTTPError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateTranscription converts uploaded audio to text.
func (h *Handler) CreateTranscription(c *gin.Context) {
	if h.speechSvc == nil {
		abortWithError(c, NewHTTPError(http.StatusServiceUnavailable, "speech_disabled", "speech service unavailable", nil))
		return
	}
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "audio is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "transcribe_failed", "failed to read audio", err))
		return
	}
	result, err := h.speechSvc.Transcribe(c.Request.Context(), speech.TranscribeRequest{
		Filename:         fileHeader.Filename,
		Audio:            audio,
		GenerateStudySet: truthyForm(c, "generate_study_set"),
		UseTaxonomy:      truthyForm(c, "use_taxonomy"),
		Title:            c.PostForm("title"),
	})
	if err != nil {
		abortWithError(c, toHTTPError(err, "transcribe_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

type narrateRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// CreateNarration synthesizes narration audio with subtitles.
func (h *Handler) CreateNarration(c *gin.Context) {
	if h.speechSvc == nil {
		abortWithError(c, NewHTTPError(http.StatusServiceUnavailable, "speech_disabled", "speech service unavailable", nil))
		return
	}
	var req narrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	narration, err := h.speechSvc.Narrate(c.Request.Context(), speech.NarrateRequest{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		abortWithError(c, toHTTPError(err, "narrate_failed"))
		return
	}
	c.JSON(http.StatusCreated, narration)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid id", err))
		return uuid.Nil, false
	}
	return id, true
}

func truthyForm(c *gin.Context, field string) bool {
	v := c.PostForm(field)
	return v == "1" || v == "true"
}

func toHTTPError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "summarizer_error"),
		apperrors.IsCode(err, "embedding_error"),
		apperrors.IsCode(err, "speech_error"),
		apperrors.IsCode(err, "ocr_error"):
		status = http.StatusBadGateway
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
