// Package question generates interview questions from role, topic,
// difficulty, and the session history.
package question

import "context"

// Exchange is one completed question/answer pair.
type Exchange struct {
	Question string
	Answer   string
}

// Input is the full context for generating one question.
type Input struct {
	// Role is the candidate's target job role.
	Role string

	// Topic is the interview focus derived from the role.
	Topic string

	// Difficulty is the current schedule difficulty label.
	Difficulty string

	// IsDeveloper selects the coding-focused prompt template.
	IsDeveloper bool

	// History is every prior exchange in the session, oldest first. It is
	// included in the prompt together with a non-repetition instruction.
	History []Exchange

	// FollowUp marks this as a follow-up to the previous exchange.
	// PreviousQuestion and PreviousAnswer must be set when true.
	FollowUp         bool
	PreviousQuestion string
	PreviousAnswer   string
}

// Generator produces interview questions.
type Generator interface {
	// Question produces a single question for the given input context, or
	// an error when the upstream model call fails.
	Question(ctx context.Context, in Input) (string, error)
}
