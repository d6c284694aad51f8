package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/edubot/edubot-backend/internal/domain/blob"
	"github.com/edubot/edubot-backend/internal/domain/ingest"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/speech"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/config"
	"github.com/edubot/edubot-backend/internal/infra/export"
	"github.com/edubot/edubot-backend/internal/infra/grammar"
	ingestrepo "github.com/edubot/edubot-backend/internal/infra/ingest/repo"
	libraryrepo "github.com/edubot/edubot-backend/internal/infra/library"
	"github.com/edubot/edubot-backend/internal/infra/llm/hf"
	"github.com/edubot/edubot-backend/internal/infra/llm/openai"
	"github.com/edubot/edubot-backend/internal/infra/ocr"
	"github.com/edubot/edubot-backend/internal/infra/queue"
	speechinfra "github.com/edubot/edubot-backend/internal/infra/speech"
	"github.com/edubot/edubot-backend/internal/infra/storage"
	"github.com/edubot/edubot-backend/internal/infra/studycards/embedder"
	"github.com/edubot/edubot-backend/internal/infra/studycards/qa"
	"github.com/edubot/edubot-backend/internal/infra/studycards/summarizer"
	"github.com/edubot/edubot-backend/internal/watcher"
)

const fallbackEmbeddingDim = 384

func providePipelineConfig(cfg *config.Config) studycards.Config {
	return studycards.Config{
		MaxChunkChars:       cfg.Pipeline.MaxChunkChars,
		MaxKeywords:         cfg.Pipeline.MaxKeywords,
		ConfidenceThreshold: cfg.Pipeline.ConfidenceThreshold,
		SimilarityThreshold: cfg.Pipeline.SimilarityThreshold,
		MinSentenceChars:    cfg.Pipeline.MinSentenceChars,
	}
}

// provideHFClient returns a nil client when no key is configured so
// keyless runs fall through to the local fallbacks instead of aborting
// startup.
func provideHFClient(cfg *config.Config) (*hf.Client, error) {
	if strings.TrimSpace(cfg.HF.APIKey) == "" {
		return nil, nil
	}
	return hf.NewClient(cfg.HF.APIKey, cfg.HF.BaseURL)
}

func provideOpenAIClient(cfg *config.Config) (*openai.Client, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, nil
	}
	return openai.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

// provideSummarizer prefers the Hugging Face summarization model and
// falls back to the chat model when only an OpenAI key is configured.
func provideSummarizer(cfg *config.Config, hfClient *hf.Client, openaiClient *openai.Client) studycards.ChunkSummarizer {
	if cfg.HF.APIKey == "" && cfg.LLM.APIKey != "" {
		return summarizer.NewOpenAISummarizer(openaiClient, cfg.LLM.Model, cfg.LLM.Temperature)
	}
	return summarizer.NewHFSummarizer(hfClient, cfg.HF.SummaryModel)
}

// provideEmbedder picks a real embedding model when an API key is
// available and a deterministic hash embedder otherwise, so local runs
// work without credentials.
func provideEmbedder(cfg *config.Config, hfClient *hf.Client, openaiClient *openai.Client, logger *slog.Logger) studycards.Embedder {
	switch {
	case cfg.HF.APIKey != "":
		return embedder.NewHFEmbedder(hfClient, cfg.HF.EmbeddingModel)
	case cfg.LLM.APIKey != "":
		return embedder.NewOpenAIEmbedder(openaiClient, cfg.LLM.EmbeddingModel, logger)
	default:
		logger.Warn("no embedding api key configured, using deterministic embedder")
		return embedder.NewDeterministicEmbedder(fallbackEmbeddingDim)
	}
}

func provideAnswerExtractor(cfg *config.Config, hfClient *hf.Client) studycards.AnswerExtractor {
	return qa.NewHFAnswerExtractor(hfClient, cfg.HF.QAModel)
}

func provideLibraryConfig(cfg *config.Config) library.Config {
	return library.Config{RelatedLimit: cfg.Library.RelatedLimit}
}

func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Library.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Library.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Library.Postgres.MaxConns
	}
	if cfg.Library.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Library.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideStudySetRepository(pool *pgxpool.Pool) library.StudySetRepository {
	if pool == nil {
		return libraryrepo.NewMemoryStudySetRepository()
	}
	return libraryrepo.NewPostgresStudySetRepository(pool)
}

func provideDocumentRepository(pool *pgxpool.Pool) ingest.DocumentRepository {
	if pool == nil {
		return ingestrepo.NewMemoryDocumentRepository()
	}
	return ingestrepo.NewPostgresDocumentRepository(pool)
}

func provideExporter() library.Exporter {
	return export.NewDocxExporter()
}

func provideIngestConfig(cfg *config.Config) ingest.Config {
	return ingest.Config{MaxFileBytes: cfg.Ingest.MaxFileBytes}
}

func provideBlobStorage(cfg *config.Config, logger *slog.Logger) blob.ObjectStorage {
	if strings.TrimSpace(cfg.Blob.Endpoint) == "" {
		logger.Info("blob endpoint not set, using memory storage")
		return storage.NewMemoryStorage()
	}
	s, err := storage.NewMinioStorage(cfg.Blob.Endpoint, cfg.Blob.AccessKey, cfg.Blob.SecretKey, cfg.Blob.Bucket, cfg.Blob.Region, logger)
	if err != nil {
		logger.Error("failed to initialize blob storage, using memory storage", "error", err)
		return storage.NewMemoryStorage()
	}
	return s
}

func provideTextExtractor(cfg *config.Config) ingest.TextExtractor {
	if !cfg.Vision.Enabled {
		return nil
	}
	return ocr.NewAzureClient(cfg.Vision.Endpoint, cfg.Vision.APIKey, cfg.Vision.Language)
}

func provideGrammarCorrector(cfg *config.Config) ingest.GrammarCorrector {
	if !cfg.Grammar.Enabled {
		return grammar.Noop{}
	}
	return grammar.NewLanguageToolClient(cfg.Grammar.BaseURL, cfg.Grammar.Language)
}

func provideQueue(cfg *config.Config, logger *slog.Logger) queue.HandlerQueue {
	if cfg.Queue.Enabled {
		opt, err := buildValkeyOptions(cfg.Queue.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, using in-process queue", "error", err)
			return queue.NewImmediateQueue(nil)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, using in-process queue", "error", err)
			return queue.NewImmediateQueue(nil)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, using in-process queue", "error", err)
		} else {
			logger.Info("valkey job queue enabled", "addr", cfg.Queue.Addr)
			return queue.NewValkeyQueue(client, cfg.Queue.Key, logger)
		}
	}
	return queue.NewImmediateQueue(nil)
}

func provideJobQueue(q queue.HandlerQueue) ingest.JobQueue {
	return q
}

func provideSpeechConfig(cfg *config.Config) speech.Config {
	return speech.Config{WordsPerMinute: cfg.Speech.WordsPerMinute}
}

func provideTranscriber(cfg *config.Config, client *openai.Client) speech.Transcriber {
	if cfg.LLM.APIKey == "" {
		return nil
	}
	return speechinfra.NewOpenAITranscriber(client, cfg.Speech.TranscribeModel)
}

func provideSynthesizer(cfg *config.Config, client *openai.Client) speech.Synthesizer {
	if cfg.LLM.APIKey == "" {
		return nil
	}
	return speechinfra.NewOpenAISynthesizer(client, cfg.Speech.SpeechModel, cfg.Speech.Voice, cfg.Speech.Format)
}

func provideWatcher(cfg *config.Config, ingestSvc *ingest.Service, logger *slog.Logger) (*watcher.Watcher, error) {
	if !cfg.Watcher.Enabled {
		return nil, nil
	}
	return watcher.New(watcher.Config{
		Dir:           cfg.Watcher.Dir,
		MaxConcurrent: cfg.Watcher.MaxConcurrent,
	}, ingestSvc, logger)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
