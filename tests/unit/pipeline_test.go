package unit

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edubot/edubot-backend/internal/domain/ingest"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
	ingestrepo "github.com/edubot/edubot-backend/internal/infra/ingest/repo"
	libraryrepo "github.com/edubot/edubot-backend/internal/infra/library"
	"github.com/edubot/edubot-backend/internal/infra/queue"
	"github.com/edubot/edubot-backend/internal/infra/storage"
	"github.com/edubot/edubot-backend/internal/infra/studycards/embedder"
)

// The whole text-to-flashcards path against in-memory infrastructure,
// with only the model calls stubbed.

type stubSplitter struct{}

func (stubSplitter) Split(text string) []string {
	re := regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if s := strings.TrimSpace(m[1]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type stubSummarizer struct{}

func (stubSummarizer) SummarizeChunk(_ context.Context, text string, _, _ int) (string, error) {
	return text, nil
}

type stubExtractor struct{}

func (stubExtractor) Answer(_ context.Context, question, _ string) (studycards.Answer, error) {
	return studycards.Answer{Text: "answer to " + question, Confidence: 0.9}, nil
}

func newPipeline(t *testing.T) (*studycards.Service, *library.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	emb := embedder.NewDeterministicEmbedder(64)
	gen := studycards.NewService(studycards.Config{}, stubSplitter{}, stubSummarizer{}, emb, stubExtractor{}, logger)
	lib := library.NewService(library.Config{}, libraryrepo.NewMemoryStudySetRepository(), emb, nil, logger)
	return gen, lib
}

func TestTextToStoredStudySet(t *testing.T) {
	gen, lib := newPipeline(t)

	materials, err := gen.Generate(context.Background(), studycards.Request{
		Text: "Photosynthesis converts light into chemical energy. Chlorophyll absorbs the light.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, materials.Summary)
	require.NotEmpty(t, materials.Flashcards)

	set, err := lib.Save(context.Background(), "Biology", materials, 80)
	require.NoError(t, err)
	require.NotEmpty(t, set.SummaryEmbedding)

	loaded, err := lib.Get(context.Background(), set.ID)
	require.NoError(t, err)
	require.Equal(t, set.Title, loaded.Title)
	require.Equal(t, len(set.Flashcards), len(loaded.Flashcards))
}

func TestDocumentUploadToProcessedStudySet(t *testing.T) {
	gen, lib := newPipeline(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	docs := ingestrepo.NewMemoryDocumentRepository()
	blobs := storage.NewMemoryStorage()
	q := queue.NewImmediateQueue(nil)
	svc := ingest.NewService(ingest.Config{}, docs, blobs, nil, nil, gen, lib, q, logger)

	enqueued := make(chan string, 1)
	q.SetHandler(func(ctx context.Context, name string, payload map[string]any) {
		enqueued <- name
	})

	doc, err := svc.Upload(context.Background(), ingest.UploadRequest{
		Filename: "notes.txt",
		MimeType: "text/plain",
		Content:  []byte("Photosynthesis converts light into chemical energy."),
	})
	require.NoError(t, err)
	require.Equal(t, "process_document", <-enqueued)

	require.NoError(t, svc.Process(context.Background(), doc.ID))

	got, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, ingest.DocumentStatusProcessed, got.Status)
	require.NotNil(t, got.StudySetID)

	set, err := lib.Get(context.Background(), *got.StudySetID)
	require.NoError(t, err)
	require.Equal(t, "notes.txt", set.Title)
}

func TestRelatedStudySetsAcrossSaves(t *testing.T) {
	gen, lib := newPipeline(t)

	first, err := gen.Generate(context.Background(), studycards.Request{Text: "Cells divide through mitosis."})
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), studycards.Request{Text: "Cells divide through mitosis and meiosis."})
	require.NoError(t, err)

	a, err := lib.Save(context.Background(), "Mitosis", first, 0)
	require.NoError(t, err)
	_, err = lib.Save(context.Background(), "Division", second, 0)
	require.NoError(t, err)

	related, err := lib.Related(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, related, 1)
	require.Equal(t, "Division", related[0].Set.Title)
}
