package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/blob"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f fakeSynthesizer) Synthesize(_ context.Context, _ string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.audio, "mp3", nil
}

type regexSplitter struct{}

func (regexSplitter) Split(text string) []string {
	re := regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		s := strings.TrimSpace(m[1])
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

type memoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (s *memoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) (blob.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return blob.StoredObject{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (s *memoryStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

type fakeGenerator struct {
	materials studycards.Materials
	called    bool
}

func (g *fakeGenerator) Generate(_ context.Context, req studycards.Request) (studycards.Materials, error) {
	g.called = true
	return g.materials, nil
}

type fakeLibrarian struct {
	savedTitle string
	setID      uuid.UUID
}

func (l *fakeLibrarian) Save(_ context.Context, title string, materials studycards.Materials, _ int) (library.StudySet, error) {
	l.savedTitle = title
	l.setID = uuid.New()
	return library.StudySet{ID: l.setID, Title: title, Summary: materials.Summary}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTranscribeReturnsText(t *testing.T) {
	svc := NewService(Config{}, fakeTranscriber{text: "hello world"}, nil, regexSplitter{}, newMemoryStorage(), nil, nil, testLogger())
	got, err := svc.Transcribe(context.Background(), TranscribeRequest{Filename: "a.wav", Audio: []byte{1}})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got.Text != "hello world" {
		t.Fatalf("text = %q", got.Text)
	}
	if got.StudySetID != nil {
		t.Fatal("study set should not be generated by default")
	}
}

func TestTranscribeGeneratesStudySetOnRequest(t *testing.T) {
	gen := &fakeGenerator{materials: studycards.Materials{Summary: "s"}}
	lib := &fakeLibrarian{}
	svc := NewService(Config{}, fakeTranscriber{text: "lecture text"}, nil, regexSplitter{}, newMemoryStorage(), gen, lib, testLogger())

	got, err := svc.Transcribe(context.Background(), TranscribeRequest{
		Filename:         "lecture.mp3",
		Audio:            []byte{1},
		GenerateStudySet: true,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !gen.called {
		t.Fatal("generator not called")
	}
	if got.StudySetID == nil || *got.StudySetID != lib.setID {
		t.Fatal("study set id not returned")
	}
	if lib.savedTitle != "lecture.mp3" {
		t.Fatalf("title = %q", lib.savedTitle)
	}
}

func TestTranscribeRejectsEmptyAudio(t *testing.T) {
	svc := NewService(Config{}, fakeTranscriber{}, nil, regexSplitter{}, newMemoryStorage(), nil, nil, testLogger())
	if _, err := svc.Transcribe(context.Background(), TranscribeRequest{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNarrateStoresAudioAndSubtitles(t *testing.T) {
	storage := newMemoryStorage()
	svc := NewService(Config{WordsPerMinute: 120}, nil, fakeSynthesizer{audio: []byte("mp3bytes")}, regexSplitter{}, storage, nil, nil, testLogger())

	narration, err := svc.Narrate(context.Background(), NarrateRequest{
		Title: "Notes",
		Text:  "The sky is blue. Grass is green.",
	})
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if string(storage.blobs[narration.AudioKey]) != "mp3bytes" {
		t.Fatal("audio not stored")
	}
	srt := string(storage.blobs[narration.SubtitleKey])
	if strings.Count(srt, "-->") != 2 {
		t.Fatalf("expected 2 cues, got %q", srt)
	}
	// 4 words and 3 words at 120 wpm: 2s + 1.5s.
	if narration.DurationMs != 3500 {
		t.Fatalf("duration = %d", narration.DurationMs)
	}
	if narration.Format != "mp3" {
		t.Fatalf("format = %q", narration.Format)
	}
}

func TestNarrateSynthesizerFailure(t *testing.T) {
	svc := NewService(Config{}, nil, fakeSynthesizer{err: errors.New("voice down")}, regexSplitter{}, newMemoryStorage(), nil, nil, testLogger())
	if _, err := svc.Narrate(context.Background(), NarrateRequest{Text: "Some text."}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNarrateRejectsEmptyText(t *testing.T) {
	svc := NewService(Config{}, nil, fakeSynthesizer{audio: []byte{1}}, regexSplitter{}, newMemoryStorage(), nil, nil, testLogger())
	if _, err := svc.Narrate(context.Background(), NarrateRequest{Text: "   "}); err == nil {
		t.Fatal("expected error")
	}
}
