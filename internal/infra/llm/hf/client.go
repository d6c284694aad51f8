package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api-inference.huggingface.co"

// Client performs HTTP requests against the Hugging Face Inference API. One
// client serves every hosted model; the model id is part of the request path.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Hugging Face Inference API client.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("huggingface api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

type summarizationRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizationParams `json:"parameters"`
	Options    requestOptions      `json:"options"`
}

type summarizationParams struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type summarizationResponse struct {
	SummaryText string `json:"summary_text"`
}

// Summarize runs the hosted summarization pipeline for model with explicit
// length bounds.
func (c *Client) Summarize(ctx context.Context, model, text string, maxLength, minLength int) (string, error) {
	payload := summarizationRequest{
		Inputs: text,
		Parameters: summarizationParams{
			MaxLength: maxLength,
			MinLength: minLength,
			DoSample:  false,
		},
		Options: requestOptions{WaitForModel: true},
	}
	body, err := c.post(ctx, model, payload)
	if err != nil {
		return "", err
	}
	var out []summarizationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode summarization response: %w", err)
	}
	if len(out) == 0 {
		return "", errors.New("summarization returned no candidates")
	}
	return out[0].SummaryText, nil
}

type qaRequest struct {
	Inputs  qaInputs       `json:"inputs"`
	Options requestOptions `json:"options"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// QAResult is the extractive answer span with the model's score.
type QAResult struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// Answer runs the hosted question-answering pipeline for model.
func (c *Client) Answer(ctx context.Context, model, question, context_ string) (QAResult, error) {
	payload := qaRequest{
		Inputs:  qaInputs{Question: question, Context: context_},
		Options: requestOptions{WaitForModel: true},
	}
	body, err := c.post(ctx, model, payload)
	if err != nil {
		return QAResult{}, err
	}
	var out QAResult
	if err := json.Unmarshal(body, &out); err != nil {
		// some deployments wrap the result in a single-element array
		var many []QAResult
		if arrErr := json.Unmarshal(body, &many); arrErr != nil || len(many) == 0 {
			return QAResult{}, fmt.Errorf("decode qa response: %w", err)
		}
		out = many[0]
	}
	return out, nil
}

type embeddingRequest struct {
	Inputs  []string       `json:"inputs"`
	Options requestOptions `json:"options"`
}

// Embed runs the hosted feature-extraction pipeline, returning one vector per
// input text.
func (c *Client) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	payload := embeddingRequest{Inputs: texts, Options: requestOptions{WaitForModel: true}}
	body, err := c.post(ctx, model, payload)
	if err != nil {
		return nil, err
	}
	var out [][]float32
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(out) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d got %d", len(texts), len(out))
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, model string, payload any) ([]byte, error) {
	if c == nil {
		return nil, errors.New("huggingface api key not configured")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode inference request: %w", err)
	}
	endpoint := c.baseURL + "/models/" + model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request inference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("inference request failed: model=%s status=%d body=%s", model, resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
