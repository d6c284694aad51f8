package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/edubot/edubot-backend/internal/infra/config"
	"github.com/edubot/edubot-backend/internal/infra/grammar"
	"github.com/edubot/edubot-backend/internal/infra/studycards/embedder"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideClientsKeyless(t *testing.T) {
	cfg := &config.Config{}

	hfClient, err := provideHFClient(cfg)
	if err != nil {
		t.Fatalf("provideHFClient: %v", err)
	}
	if hfClient != nil {
		t.Fatal("expected nil hf client without an api key")
	}

	openaiClient, err := provideOpenAIClient(cfg)
	if err != nil {
		t.Fatalf("provideOpenAIClient: %v", err)
	}
	if openaiClient != nil {
		t.Fatal("expected nil openai client without an api key")
	}
}

func TestKeylessRunUsesFallbacks(t *testing.T) {
	cfg := &config.Config{}
	logger := discardLogger()

	e := provideEmbedder(cfg, nil, nil, logger)
	if _, ok := e.(*embedder.DeterministicEmbedder); !ok {
		t.Fatalf("expected deterministic embedder, got %T", e)
	}
	if tr := provideTranscriber(cfg, nil); tr != nil {
		t.Fatalf("expected nil transcriber, got %T", tr)
	}
	if sy := provideSynthesizer(cfg, nil); sy != nil {
		t.Fatalf("expected nil synthesizer, got %T", sy)
	}
}

func TestProvideGrammarCorrectorDisabled(t *testing.T) {
	cfg := &config.Config{}

	g := provideGrammarCorrector(cfg)
	if _, ok := g.(grammar.Noop); !ok {
		t.Fatalf("expected passthrough corrector, got %T", g)
	}
}
