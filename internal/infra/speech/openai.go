// Package speech provides speech-to-text and text-to-speech adapters.
package speech

import (
	"context"

	domain "github.com/edubot/edubot-backend/internal/domain/speech"
	"github.com/edubot/edubot-backend/internal/infra/llm/openai"
)

// OpenAITranscriber transcribes audio through the audio transcription
// endpoint.
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

// NewOpenAITranscriber constructs the adapter.
func NewOpenAITranscriber(client *openai.Client, model string) *OpenAITranscriber {
	if model == "" {
		model = "whisper-1"
	}
	return &OpenAITranscriber{client: client, model: model}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, t.model, filename, audio)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

var _ domain.Transcriber = (*OpenAITranscriber)(nil)

// OpenAISynthesizer renders text to speech.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	voice  string
	format string
}

// NewOpenAISynthesizer constructs the adapter.
func NewOpenAISynthesizer(client *openai.Client, model, voice, format string) *OpenAISynthesizer {
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "alloy"
	}
	if format == "" {
		format = "mp3"
	}
	return &OpenAISynthesizer{client: client, model: model, voice: voice, format: format}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	audio, err := s.client.CreateSpeech(ctx, openai.SpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: s.format,
	})
	if err != nil {
		return nil, "", err
	}
	return audio, s.format, nil
}

var _ domain.Synthesizer = (*OpenAISynthesizer)(nil)
