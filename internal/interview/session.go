// Package interview owns the session lifecycle: the state machine that
// drives one candidate's mock interview from role selection through the
// difficulty schedule to the feedback report.
package interview

import (
	"strings"
	"sync"

	"github.com/zyralabs/zyra/internal/question"
)

// State is a session lifecycle phase.
type State string

const (
	StateInitializing State = "initializing"
	StateRoleSet      State = "role_set"
	StateInterviewing State = "interviewing"
	StateCompleted    State = "completed"
)

const developerTopic = "coding problems, algorithms, data structures, and system design"

// developerRoles are the role names that select the coding-focused track.
var developerRoles = map[string]bool{
	"engineer":          true,
	"developer":         true,
	"software engineer": true,
}

// Session is one interview instance. All mutation happens under mu; the
// manager holds the lock for a full message dispatch so two messages for the
// same id cannot race on CurrentQuestion or the transcript.
type Session struct {
	mu sync.Mutex

	ID          string
	State       State
	Role        string
	Topic       string
	IsDeveloper bool

	// DifficultyIndex is the cursor into the difficulty schedule.
	// Ranges 0..len(Schedule); at len the interview is complete.
	DifficultyIndex int

	// CurrentQuestion is the question awaiting an answer. Empty exactly
	// when the candidate owes no answer.
	CurrentQuestion string

	QuestionNumber int
	Transcript     []question.Exchange
}

// NewSession creates a fresh session in the initializing state.
func NewSession(id string) *Session {
	return &Session{ID: id, State: StateInitializing}
}

// SetRole records the candidate's role, derives topic and track, and moves
// the session to role_set. Must be called with the session lock held.
func (s *Session) SetRole(role string) {
	s.Role = role
	s.IsDeveloper = IsDeveloperRole(role)
	if s.IsDeveloper {
		s.Topic = developerTopic
	} else {
		s.Topic = "core concepts and topics for " + role
	}
	s.State = StateRoleSet
}

// Reset returns the session to a fresh lifecycle under the same id.
// Must be called with the session lock held.
func (s *Session) Reset() {
	s.State = StateInitializing
	s.Role = ""
	s.Topic = ""
	s.IsDeveloper = false
	s.DifficultyIndex = 0
	s.CurrentQuestion = ""
	s.QuestionNumber = 0
	s.Transcript = nil
}

// Record appends one completed exchange to the transcript.
// Must be called with the session lock held.
func (s *Session) Record(q, a string) {
	s.Transcript = append(s.Transcript, question.Exchange{Question: q, Answer: a})
}

// Lock acquires the per-session mutex.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// IsDeveloperRole reports whether a role selects the coding-focused track.
func IsDeveloperRole(role string) bool {
	return developerRoles[strings.ToLower(strings.TrimSpace(role))]
}
