// Package ocr reads printed text out of images and scanned documents via
// the Azure Computer Vision OCR endpoint.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/edubot/edubot-backend/pkg/errors"
)

const defaultLanguage = "unk"

// AzureClient calls the Computer Vision v3.2 ocr operation.
type AzureClient struct {
	endpoint   string
	key        string
	language   string
	httpClient *http.Client
}

// NewAzureClient builds a client for the given resource endpoint, e.g.
// https://myresource.cognitiveservices.azure.com.
func NewAzureClient(endpoint, key, language string) *AzureClient {
	if language == "" {
		language = defaultLanguage
	}
	return &AzureClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		language: language,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ocrResponse struct {
	Language string `json:"language"`
	Regions  []struct {
		Lines []struct {
			Words []struct {
				Text string `json:"text"`
			} `json:"words"`
		} `json:"lines"`
	} `json:"regions"`
}

// ExtractText runs OCR over the raw image or PDF bytes and returns the
// recognized text, one line per recognized line.
func (c *AzureClient) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", apperrors.New("invalid_input", "empty document", nil)
	}

	q := url.Values{}
	q.Set("language", c.language)
	q.Set("detectOrientation", "true")
	u := fmt.Sprintf("%s/vision/v3.2/ocr?%s", c.endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", apperrors.Wrap("ocr_error", "create request", err)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap("ocr_error", "call vision api", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap("ocr_error", "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.New("ocr_error",
			fmt.Sprintf("vision api returned %d: %s", resp.StatusCode, truncate(string(body), 200)), nil)
	}

	var parsed ocrResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperrors.Wrap("ocr_error", "decode response", err)
	}

	return flatten(parsed), nil
}

// flatten joins words into lines and lines into a newline separated page,
// preserving the region order the service returned.
func flatten(r ocrResponse) string {
	var lines []string
	for _, region := range r.Regions {
		for _, line := range region.Lines {
			words := make([]string, 0, len(line.Words))
			for _, w := range line.Words {
				if w.Text != "" {
					words = append(words, w.Text)
				}
			}
			if len(words) > 0 {
				lines = append(lines, strings.Join(words, " "))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
