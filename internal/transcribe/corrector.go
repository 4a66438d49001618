// Package transcribe cleans up speech-to-text output before it enters the
// interview transcript.
package transcribe

import (
	"context"
	"strings"

	"github.com/zyralabs/zyra/internal/llm"
	"github.com/zyralabs/zyra/internal/logger"
	"github.com/zyralabs/zyra/internal/prompts"
)

// Corrector fixes phonetic transcription errors in raw captured text.
type Corrector interface {
	// Correct returns the cleaned-up text. The contextLabel tells the model
	// what kind of utterance this is ("a job role", "an interview answer").
	// Correction is best effort: on any failure the raw input comes back
	// unchanged and no error is surfaced.
	Correct(ctx context.Context, raw, contextLabel string) string
}

// LLMCorrector implements Corrector with a single model call.
type LLMCorrector struct {
	provider  llm.Provider
	templates *prompts.Registry
	maxTokens int
}

// New creates an LLMCorrector.
func New(provider llm.Provider, templates *prompts.Registry) *LLMCorrector {
	return &LLMCorrector{provider: provider, templates: templates, maxTokens: 256}
}

type correctionData struct {
	Context string
	Input   string
}

// Correct sends the raw text through the correction prompt. Model failure is
// not fatal here, a raw transcription is still usable as an answer.
func (c *LLMCorrector) Correct(ctx context.Context, raw, contextLabel string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCorrection)

	system, err := c.templates.Render(prompts.Correction, correctionData{
		Context: contextLabel,
		Input:   trimmed,
	})
	if err != nil {
		logger.Log.Warn("correction prompt render failed, keeping raw text", "error", err)
		return trimmed
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Correct the input."},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0,
	})
	if err != nil {
		logger.Log.Warn("transcription correction failed, keeping raw text", "error", err)
		return trimmed
	}

	corrected := stripQuotes(resp.Text())
	if corrected == "" {
		return trimmed
	}
	return corrected
}

// stripQuotes removes one pair of enclosing double quotes. Models sometimes
// echo the quoting from the prompt's Input line.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// NoopCorrector passes text through untouched. Used when correction is
// disabled or no provider is configured.
type NoopCorrector struct{}

func (NoopCorrector) Correct(_ context.Context, raw, _ string) string {
	return strings.TrimSpace(raw)
}
