package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/zyralabs/zyra/internal/llm"
	"github.com/zyralabs/zyra/internal/prompts"
)

func testRegistry(t *testing.T) *prompts.Registry {
	t.Helper()
	reg, err := prompts.NewRegistry()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	return reg
}

func TestCorrect_UsesModelOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("software engineer"),
	})
	c := New(mock, testRegistry(t))

	got := c.Correct(context.Background(), "softer engineer", "Job Role Selection")
	if got != "software engineer" {
		t.Errorf("expected corrected text, got %q", got)
	}

	system := mock.Calls[0].System
	if !strings.Contains(system, "softer engineer") {
		t.Error("expected raw input in prompt")
	}
	if !strings.Contains(system, "Job Role Selection") {
		t.Error("expected context label in prompt")
	}
}

func TestCorrect_IdentityOnModelFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("model down")})
	c := New(mock, testRegistry(t))

	got := c.Correct(context.Background(), "raw utterance", "an interview answer")
	if got != "raw utterance" {
		t.Errorf("expected identity fallback, got %q", got)
	}
}

func TestCorrect_StripsEnclosingQuotes(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"cleaned up answer"`),
	})
	c := New(mock, testRegistry(t))

	got := c.Correct(context.Background(), "cleaned up anser", "an interview answer")
	if got != "cleaned up answer" {
		t.Errorf("expected quotes stripped, got %q", got)
	}
}

func TestCorrect_KeepsInteriorQuotes(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`say "hello" politely`),
	})
	c := New(mock, testRegistry(t))

	got := c.Correct(context.Background(), "x", "an interview answer")
	if got != `say "hello" politely` {
		t.Errorf("interior quotes must survive, got %q", got)
	}
}

func TestCorrect_EmptyInput(t *testing.T) {
	mock := llm.NewMockProvider()
	c := New(mock, testRegistry(t))

	if got := c.Correct(context.Background(), "   ", "x"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
	if mock.CallCount() != 0 {
		t.Error("empty input must not hit the model")
	}
}

func TestCorrect_EmptyModelOutputFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("  ")})
	c := New(mock, testRegistry(t))

	if got := c.Correct(context.Background(), "original", "x"); got != "original" {
		t.Errorf("expected raw text when model returns nothing, got %q", got)
	}
}

func TestNoopCorrector(t *testing.T) {
	var c NoopCorrector
	if got := c.Correct(context.Background(), "  text  ", "x"); got != "text" {
		t.Errorf("expected trimmed passthrough, got %q", got)
	}
}
