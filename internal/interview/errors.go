package interview

import (
	"errors"
	"fmt"

	"github.com/zyralabs/zyra/internal/ratelimit"
)

var (
	// ErrSessionNotFound means the session id is unknown.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoData means the session has no transcript to compile feedback from.
	ErrNoData = errors.New("no interview data available for feedback")
)

// GenerationError is a model call failure surfaced to the caller: an initial
// question that could not be generated, or a feedback compile requested
// explicitly. Follow-up and correction failures are absorbed by the state
// machine and never carry this type.
type GenerationError struct {
	// Stage names the failing operation: "question" or "feedback".
	Stage string

	// Class is the rate-limit classification of the underlying error text.
	Class ratelimit.Classification

	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
