package hf

import (
	"context"
	"testing"
)

func TestNilClientReturnsErrors(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if _, err := c.Summarize(ctx, "facebook/bart-large-cnn", "text", 100, 30); err == nil {
		t.Fatal("expected error from nil client summarize")
	}
	if _, err := c.Answer(ctx, "deepset/roberta-base-squad2", "q", "ctx"); err == nil {
		t.Fatal("expected error from nil client answer")
	}
	if _, err := c.Embed(ctx, "sentence-transformers/all-MiniLM-L6-v2", []string{"a"}); err == nil {
		t.Fatal("expected error from nil client embed")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatal("expected error on empty api key")
	}
	c, err := NewClient("hf_test", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.baseURL != defaultBaseURL {
		t.Fatalf("baseURL = %q", c.baseURL)
	}
}
