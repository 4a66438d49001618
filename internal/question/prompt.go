package question

import (
	"fmt"
	"strings"

	"github.com/zyralabs/zyra/internal/prompts"
)

// templateData is what the interviewer templates interpolate.
type templateData struct {
	Role       string
	Topic      string
	Difficulty string
}

// buildSystemPrompt renders the interviewer template and appends the history
// block, non-repetition constraints, and follow-up context.
func buildSystemPrompt(reg *prompts.Registry, in Input, maxHistory int) (string, error) {
	id := prompts.Interviewer
	if in.IsDeveloper {
		id = prompts.DeveloperInterviewer
	}

	base, err := reg.Render(id, templateData{
		Role:       in.Role,
		Topic:      in.Topic,
		Difficulty: in.Difficulty,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(base)

	if len(in.History) > 0 {
		b.WriteString("\n\nPrevious Q&A history (most recent last):\n")
		b.WriteString(formatHistory(in.History, maxHistory))
		b.WriteString(noRepeatBlock)
	}

	if in.FollowUp && in.PreviousQuestion != "" && in.PreviousAnswer != "" {
		fmt.Fprintf(&b,
			"\n\nThis is a FOLLOW-UP question. The candidate just answered:\nQ: %s\nA: %s\n\n",
			in.PreviousQuestion, in.PreviousAnswer)
		b.WriteString(
			"Generate a relevant follow-up that probes deeper into the candidate's " +
				"answer, asks for clarification, requests an example, or explores " +
				"related technical trade-offs.")
	}

	return b.String(), nil
}

const noRepeatBlock = "\n\nImportant constraints:\n" +
	"- Do NOT repeat any previous question listed above.\n" +
	"- For a new (non-follow-up) question: use the candidate's prior answers to " +
	"move to a different but related core concept or to probe another key " +
	"technical area; do not re-ask the same concept.\n" +
	"- Questions must be conceptual and technical: request explanations, " +
	"reasoning, design trade-offs, or code-level details when appropriate.\n" +
	"- Keep questions unique across the session unless a direct clarification " +
	"is required.\n"

// strengthenBlock is appended before the second attempt when the first
// question failed the technicality gate.
const strengthenBlock = "\n\nThe previous question was too general. Now produce " +
	"a highly technical, specific question. Ask for explanation, design details, " +
	"code/pseudocode, complexity analysis, or concrete debugging steps. " +
	"Do NOT ask vague or high-level survey questions."

// formatHistory renders exchanges oldest-first, keeping the most recent max
// entries when max > 0.
func formatHistory(history []Exchange, max int) string {
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}

	var b strings.Builder
	for _, e := range history {
		fmt.Fprintf(&b, "Q: %s\n", e.Question)
		fmt.Fprintf(&b, "A: %s\n", e.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// userMessage is what the single user turn asks for.
func userMessage(followUp bool) string {
	if followUp {
		return "Generate a follow-up question based on the candidate's answer."
	}
	return "Generate the next question."
}
