package question

import (
	"context"
	"fmt"

	"github.com/zyralabs/zyra/internal/llm"
	"github.com/zyralabs/zyra/internal/prompts"
)

// Config tunes the LLM-backed generator.
type Config struct {
	// MaxAttempts is the technicality-gate budget: the number of model
	// calls allowed before accepting a generic question as-is.
	MaxAttempts int

	// MaxHistory caps how many prior exchanges go into the prompt.
	// Zero means the full history.
	MaxHistory int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generator configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 2,
		MaxHistory:  0,
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator using a model provider.
type LLMGenerator struct {
	provider  llm.Provider
	templates *prompts.Registry
	config    Config
}

// New creates an LLMGenerator.
func New(provider llm.Provider, templates *prompts.Registry, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, templates: templates, config: cfg}
}

// Question produces a single interview question. It tries to obtain a
// sufficiently technical question within the attempt budget: when the first
// completion fails the Technical predicate, the system prompt is strengthened
// and the call retried once. The final attempt's text is returned regardless,
// a possibly-generic question being preferable to unbounded latency and cost.
func (g *LLMGenerator) Question(ctx context.Context, in Input) (string, error) {
	purpose := llm.PurposeQuestion
	if in.FollowUp {
		purpose = llm.PurposeFollowUp
	}
	ctx = llm.WithPurpose(ctx, purpose)

	system, err := buildSystemPrompt(g.templates, in, g.config.MaxHistory)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	maxAttempts := g.config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var text string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req := llm.Request{
			System: system,
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: userMessage(in.FollowUp)},
			},
			MaxTokens:   g.config.MaxTokens,
			Temperature: g.config.Temperature,
		}

		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return "", fmt.Errorf("question generation failed: %w", err)
		}

		text = resp.Text()
		if Technical(text) || attempt == maxAttempts {
			return text, nil
		}

		system += strengthenBlock
	}

	return text, nil
}
