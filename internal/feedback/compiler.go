// Package feedback compiles a finished interview transcript into a
// structured performance report.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zyralabs/zyra/internal/llm"
	"github.com/zyralabs/zyra/internal/prompts"
	"github.com/zyralabs/zyra/internal/question"
)

// Report is the structured feedback document for one interview.
type Report struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Rating       int      `json:"rating"`
}

// Compiler produces feedback from a completed transcript.
type Compiler interface {
	// Compile assesses the transcript and returns a report. The transcript
	// must be non-empty; callers guard the no-data case themselves.
	Compile(ctx context.Context, role, topic string, transcript []question.Exchange) (*Report, error)
}

// reportSchema is the JSON Schema the model's structured output must match.
var reportSchema = &llm.Schema{
	Name:        "interview-feedback",
	Description: "Structured feedback report for a completed mock interview.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Overall performance summary, 3-5 sentences.",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete strengths shown in the answers.",
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Areas to improve, each with a practical suggestion.",
			},
			"rating": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     10,
				"description": "Overall rating from 1 to 10.",
			},
		},
		"required": []any{"summary", "strengths", "improvements", "rating"},
	},
}

// LLMCompiler implements Compiler with a single structured model call.
type LLMCompiler struct {
	provider  llm.Provider
	templates *prompts.Registry
	maxTokens int
}

// New creates an LLMCompiler.
func New(provider llm.Provider, templates *prompts.Registry) *LLMCompiler {
	return &LLMCompiler{provider: provider, templates: templates, maxTokens: 1024}
}

type feedbackData struct {
	Role       string
	Topic      string
	Transcript string
}

// Compile flattens the transcript, asks the model for a schema-conforming
// assessment, and decodes it into a Report.
func (c *LLMCompiler) Compile(ctx context.Context, role, topic string, transcript []question.Exchange) (*Report, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	system, err := c.templates.Render(prompts.Feedback, feedbackData{
		Role:       role,
		Topic:      topic,
		Transcript: Flatten(transcript),
	})
	if err != nil {
		return nil, fmt.Errorf("render feedback prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Write the feedback report."},
		},
		Schema:    reportSchema,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("feedback generation failed: %w", err)
	}

	var report Report
	if err := json.Unmarshal(resp.Content, &report); err != nil {
		return nil, fmt.Errorf("decode feedback report: %w", err)
	}
	return &report, nil
}

// Flatten renders the transcript in Q/A form, one blank line between pairs.
func Flatten(transcript []question.Exchange) string {
	var b strings.Builder
	for i, e := range transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", e.Question, e.Answer)
	}
	return b.String()
}

// Render formats a report as plain text for CLI display.
func Render(r *Report) string {
	var b strings.Builder
	b.WriteString("Interview Feedback\n")
	b.WriteString("==================\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\nStrengths:\n")
	for _, s := range r.Strengths {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	b.WriteString("\nAreas to improve:\n")
	for _, s := range r.Improvements {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	fmt.Fprintf(&b, "\nOverall rating: %d/10\n", r.Rating)
	return b.String()
}
