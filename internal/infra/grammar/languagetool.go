// Package grammar corrects recognized text with a LanguageTool server.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	apperrors "github.com/edubot/edubot-backend/pkg/errors"
)

// LanguageToolClient applies the first suggested replacement of every
// match reported by the /v2/check endpoint.
type LanguageToolClient struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

func NewLanguageToolClient(baseURL, language string) *LanguageToolClient {
	if language == "" {
		language = "en-US"
	}
	return &LanguageToolClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []replacement `json:"replacements"`
}

type replacement struct {
	Value string `json:"value"`
}

// Correct returns the text with every suggested fix applied. Matches are
// applied back to front so earlier offsets stay valid.
func (c *LanguageToolClient) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.Wrap("grammar_error", "create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap("grammar_error", "call languagetool", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap("grammar_error", "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.New("grammar_error",
			fmt.Sprintf("languagetool returned %d", resp.StatusCode), nil)
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperrors.Wrap("grammar_error", "decode response", err)
	}

	return applyMatches(text, parsed.Matches), nil
}

func applyMatches(text string, matches []match) string {
	// Offsets from LanguageTool are rune based.
	runes := []rune(text)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Offset > matches[j].Offset
	})
	for _, m := range matches {
		if len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Length < 0 || m.Offset+m.Length > len(runes) {
			continue
		}
		repl := []rune(m.Replacements[0].Value)
		out := make([]rune, 0, len(runes)-m.Length+len(repl))
		out = append(out, runes[:m.Offset]...)
		out = append(out, repl...)
		out = append(out, runes[m.Offset+m.Length:]...)
		runes = out
	}
	return string(runes)
}

// Noop passes text through unchanged. Used when no LanguageTool server
// is configured.
type Noop struct{}

func (Noop) Correct(_ context.Context, text string) (string, error) {
	return text, nil
}
