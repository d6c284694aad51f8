package errors

import (
	"errors"
	"testing"
)

func TestNewWithoutCause(t *testing.T) {
	err := New("not_found", "study set not found", nil)

	if got := err.Error(); got != "study set not found" {
		t.Fatalf("Error() = %q", got)
	}
	if !IsCode(err, "not_found") {
		t.Fatal("expected code not_found")
	}
	if errors.Unwrap(err) != nil {
		t.Fatal("expected no wrapped cause")
	}
}

func TestNewWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := New("storage_error", "blob upload failed", cause)

	if got := err.Error(); got != "blob upload failed: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to survive unwrapping")
	}
}

func TestIsCodeMismatch(t *testing.T) {
	if IsCode(errors.New("plain"), "not_found") {
		t.Fatal("plain errors carry no code")
	}
	if IsCode(Wrap("invalid_input", "bad request", nil), "not_found") {
		t.Fatal("code mismatch should not match")
	}
}
