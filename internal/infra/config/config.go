// Package config loads runtime configuration from YAML and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	HF       HFConfig       `yaml:"hf"`
	LLM      LLMConfig      `yaml:"llm"`
	Vision   VisionConfig   `yaml:"vision"`
	Grammar  GrammarConfig  `yaml:"grammar"`
	Library  LibraryConfig  `yaml:"library"`
	Blob     BlobConfig     `yaml:"blob"`
	Queue    QueueConfig    `yaml:"queue"`
	Speech   SpeechConfig   `yaml:"speech"`
	Watcher  WatcherConfig  `yaml:"watcher"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// PipelineConfig tunes the study card generation pipeline.
type PipelineConfig struct {
	MaxChunkChars       int     `yaml:"maxChunkChars"`
	MaxKeywords         int     `yaml:"maxKeywords"`
	ConfidenceThreshold float64 `yaml:"confidenceThreshold"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	MinSentenceChars    int     `yaml:"minSentenceChars"`
}

// HFConfig contains Hugging Face Inference API settings.
type HFConfig struct {
	APIKey         string `yaml:"apiKey"`
	BaseURL        string `yaml:"baseUrl"`
	SummaryModel   string `yaml:"summaryModel"`
	QAModel        string `yaml:"qaModel"`
	EmbeddingModel string `yaml:"embeddingModel"`
}

// LLMConfig contains OpenAI-compatible API settings, used for the
// alternative summarizer/embedder and for speech.
type LLMConfig struct {
	APIKey         string  `yaml:"apiKey"`
	BaseURL        string  `yaml:"baseUrl"`
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embeddingModel"`
	Temperature    float32 `yaml:"temperature"`
}

// VisionConfig contains Azure Computer Vision OCR settings.
type VisionConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	Language string `yaml:"language"`
}

// GrammarConfig contains LanguageTool settings.
type GrammarConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BaseURL  string `yaml:"baseUrl"`
	Language string `yaml:"language"`
}

// LibraryConfig controls study set storage.
type LibraryConfig struct {
	RelatedLimit int            `yaml:"relatedLimit"`
	Postgres     PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// BlobConfig contains S3-compatible object storage settings. When the
// endpoint is empty, blobs are kept in memory.
type BlobConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// QueueConfig contains Valkey job queue settings. When disabled, jobs
// run in-process on enqueue.
type QueueConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Key     string `yaml:"key"`
}

// SpeechConfig tunes the speech services.
type SpeechConfig struct {
	TranscribeModel string `yaml:"transcribeModel"`
	SpeechModel     string `yaml:"speechModel"`
	Voice           string `yaml:"voice"`
	Format          string `yaml:"format"`
	WordsPerMinute  int    `yaml:"wordsPerMinute"`
}

// WatcherConfig controls the inbox directory watcher.
type WatcherConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	MaxConcurrent int    `yaml:"maxConcurrent"`
}

// IngestConfig limits document uploads.
type IngestConfig struct {
	MaxFileBytes int64 `yaml:"maxFileBytes"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("PIPELINE_MAX_CHUNK_CHARS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.MaxChunkChars = parsed
		}
	}
	if v := os.Getenv("PIPELINE_MAX_KEYWORDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.MaxKeywords = parsed
		}
	}
	if v := os.Getenv("PIPELINE_CONFIDENCE_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Pipeline.ConfidenceThreshold = parsed
		}
	}
	if v := os.Getenv("PIPELINE_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Pipeline.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("HF_API_KEY"); v != "" {
		cfg.HF.APIKey = v
	}
	if v := os.Getenv("HF_BASE_URL"); v != "" {
		cfg.HF.BaseURL = v
	}
	if v := os.Getenv("HF_SUMMARY_MODEL"); v != "" {
		cfg.HF.SummaryModel = v
	}
	if v := os.Getenv("HF_QA_MODEL"); v != "" {
		cfg.HF.QAModel = v
	}
	if v := os.Getenv("HF_EMBEDDING_MODEL"); v != "" {
		cfg.HF.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("VISION_ENABLED"); v != "" {
		cfg.Vision.Enabled = isTruthy(v)
	}
	if v := os.Getenv("VISION_ENDPOINT"); v != "" {
		cfg.Vision.Endpoint = v
	}
	if v := os.Getenv("VISION_API_KEY"); v != "" {
		cfg.Vision.APIKey = v
	}
	if v := os.Getenv("VISION_LANGUAGE"); v != "" {
		cfg.Vision.Language = v
	}
	if v := os.Getenv("GRAMMAR_ENABLED"); v != "" {
		cfg.Grammar.Enabled = isTruthy(v)
	}
	if v := os.Getenv("GRAMMAR_BASE_URL"); v != "" {
		cfg.Grammar.BaseURL = v
	}
	if v := os.Getenv("GRAMMAR_LANGUAGE"); v != "" {
		cfg.Grammar.Language = v
	}
	if v := os.Getenv("LIBRARY_RELATED_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Library.RelatedLimit = parsed
		}
	}
	if v := os.Getenv("LIBRARY_POSTGRES_DSN"); v != "" {
		cfg.Library.Postgres.DSN = v
	}
	if v := os.Getenv("LIBRARY_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Library.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("LIBRARY_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Library.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("BLOB_ENDPOINT"); v != "" {
		cfg.Blob.Endpoint = v
	}
	if v := os.Getenv("BLOB_ACCESS_KEY"); v != "" {
		cfg.Blob.AccessKey = v
	}
	if v := os.Getenv("BLOB_SECRET_KEY"); v != "" {
		cfg.Blob.SecretKey = v
	}
	if v := os.Getenv("BLOB_BUCKET"); v != "" {
		cfg.Blob.Bucket = v
	}
	if v := os.Getenv("BLOB_REGION"); v != "" {
		cfg.Blob.Region = v
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = isTruthy(v)
	}
	if v := os.Getenv("QUEUE_ADDR"); v != "" {
		cfg.Queue.Addr = v
	}
	if v := os.Getenv("QUEUE_KEY"); v != "" {
		cfg.Queue.Key = v
	}
	if v := os.Getenv("SPEECH_TRANSCRIBE_MODEL"); v != "" {
		cfg.Speech.TranscribeModel = v
	}
	if v := os.Getenv("SPEECH_MODEL"); v != "" {
		cfg.Speech.SpeechModel = v
	}
	if v := os.Getenv("SPEECH_VOICE"); v != "" {
		cfg.Speech.Voice = v
	}
	if v := os.Getenv("SPEECH_FORMAT"); v != "" {
		cfg.Speech.Format = v
	}
	if v := os.Getenv("SPEECH_WPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Speech.WordsPerMinute = parsed
		}
	}
	if v := os.Getenv("WATCHER_ENABLED"); v != "" {
		cfg.Watcher.Enabled = isTruthy(v)
	}
	if v := os.Getenv("WATCHER_DIR"); v != "" {
		cfg.Watcher.Dir = v
	}
	if v := os.Getenv("WATCHER_MAX_CONCURRENT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Watcher.MaxConcurrent = parsed
		}
	}
	if v := os.Getenv("INGEST_MAX_FILE_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Ingest.MaxFileBytes = parsed
		}
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Pipeline: PipelineConfig{
			MaxChunkChars:       1000,
			MaxKeywords:         10,
			ConfidenceThreshold: 0.3,
			SimilarityThreshold: 0.8,
			MinSentenceChars:    5,
		},
		HF: HFConfig{
			SummaryModel:   "facebook/bart-large-cnn",
			QAModel:        "deepset/roberta-base-squad2",
			EmbeddingModel: "sentence-transformers/all-MiniLM-L6-v2",
		},
		LLM: LLMConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    0.2,
		},
		Vision: VisionConfig{
			Language: "unk",
		},
		Grammar: GrammarConfig{
			BaseURL:  "https://api.languagetool.org",
			Language: "en-US",
		},
		Library: LibraryConfig{
			RelatedLimit: 5,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Blob: BlobConfig{
			Bucket: "edubot",
		},
		Queue: QueueConfig{
			Key: "edubot:jobs",
		},
		Speech: SpeechConfig{
			TranscribeModel: "whisper-1",
			SpeechModel:     "tts-1",
			Voice:           "alloy",
			Format:          "mp3",
			WordsPerMinute:  160,
		},
		Watcher: WatcherConfig{
			Dir:           "inbox",
			MaxConcurrent: 2,
		},
		Ingest: IngestConfig{
			MaxFileBytes: 20 * 1024 * 1024,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Pipeline.MaxChunkChars <= 0 {
		return errors.New("pipeline.maxChunkChars must be positive")
	}
	if c.Pipeline.MaxKeywords <= 0 {
		return errors.New("pipeline.maxKeywords must be positive")
	}
	if c.Pipeline.ConfidenceThreshold < 0 || c.Pipeline.ConfidenceThreshold > 1 {
		return errors.New("pipeline.confidenceThreshold must be between 0 and 1")
	}
	if c.Pipeline.SimilarityThreshold < 0 || c.Pipeline.SimilarityThreshold > 1 {
		return errors.New("pipeline.similarityThreshold must be between 0 and 1")
	}
	if c.Vision.Enabled {
		if strings.TrimSpace(c.Vision.Endpoint) == "" {
			return errors.New("vision.endpoint cannot be empty when vision is enabled")
		}
		if strings.TrimSpace(c.Vision.APIKey) == "" {
			return errors.New("vision.apiKey cannot be empty when vision is enabled")
		}
	}
	if c.Grammar.Enabled && strings.TrimSpace(c.Grammar.BaseURL) == "" {
		return errors.New("grammar.baseUrl cannot be empty when grammar is enabled")
	}
	if c.Queue.Enabled && strings.TrimSpace(c.Queue.Addr) == "" {
		return errors.New("queue.addr cannot be empty when the queue is enabled")
	}
	if c.Watcher.Enabled && strings.TrimSpace(c.Watcher.Dir) == "" {
		return errors.New("watcher.dir cannot be empty when the watcher is enabled")
	}
	if c.Library.RelatedLimit < 0 {
		return errors.New("library.relatedLimit cannot be negative")
	}
	if c.Ingest.MaxFileBytes <= 0 {
		return errors.New("ingest.maxFileBytes must be positive")
	}
	return nil
}
