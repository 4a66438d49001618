package interview

import (
	"context"
	"strings"

	"github.com/zyralabs/zyra/internal/feedback"
	"github.com/zyralabs/zyra/internal/logger"
	"github.com/zyralabs/zyra/internal/question"
	"github.com/zyralabs/zyra/internal/ratelimit"
)

// Corrector cleans raw candidate input. Failures degrade to the raw text
// inside the implementation, so there is no error return.
type Corrector interface {
	Correct(ctx context.Context, raw, contextLabel string) string
}

// Compiler turns a finished transcript into a feedback report.
type Compiler interface {
	Compile(ctx context.Context, role, topic string, transcript []question.Exchange) (*feedback.Report, error)
}

// SessionStore maps session ids to live sessions.
type SessionStore interface {
	// GetOrCreate returns the session for id, creating it when absent.
	GetOrCreate(id string) *Session

	// Get returns the session for id when it exists.
	Get(id string) (*Session, bool)
}

// Result is the outcome of one dispatched turn. QuestionNumber counts main
// questions asked this lifecycle; zero until the first one.
type Result struct {
	Text           string
	SessionID      string
	State          State
	QuestionNumber int
}

// Manager is the session state machine. It dispatches each inbound message
// to the right handler based on the session's state and whether a question
// is pending, delegating all model work to the injected collaborators.
type Manager struct {
	sessions  SessionStore
	generator question.Generator
	corrector Corrector
	compiler  Compiler
	modelID   string
}

// NewManager wires the state machine to its collaborators. modelID is
// reported by Health and may be empty when no provider is configured.
func NewManager(store SessionStore, gen question.Generator, corr Corrector, comp Compiler, modelID string) *Manager {
	return &Manager{
		sessions:  store,
		generator: gen,
		corrector: corr,
		compiler:  comp,
		modelID:   modelID,
	}
}

const (
	promptForRole = "Please provide your job role to start the interview."

	answerBridge = "Thank you for your answer. Let me ask you another question."

	restartPrompt = "The interview has been completed. Would you like to start " +
		"a new interview? If so, please provide a new job role."

	genericWelcome = "Hi! I'm Zyra, your AI interview coach. Welcome to your " +
		"mock interview session. Please select a job role to begin."

	developerWelcome = "Hi! I'm Zyra, your AI interview coach. Welcome to your " +
		"coding interview! I'll ask you coding problems with varying difficulty " +
		"levels. Let's begin!"
)

// Start creates or resets the session. When a role is supplied it is
// pre-seeded and the welcome is role-specific.
func (m *Manager) Start(ctx context.Context, sessionID, role string) *Result {
	s := m.sessions.GetOrCreate(sessionID)
	s.Lock()
	defer s.Unlock()

	s.Reset()

	if role == "" {
		return m.result(s, genericWelcome)
	}

	s.SetRole(role)
	if s.IsDeveloper {
		return m.result(s, developerWelcome)
	}
	return m.result(s, "Hi! I'm Zyra, your AI interview coach. Welcome to your "+
		role+" interview! I'll ask you questions relevant to this role. Let's begin!")
}

// Message is the core dispatch entry point. role, when non-empty, supplies
// the role out-of-band and is honored only while the session is still
// awaiting one.
//
// The returned error is non-nil only for an initial-question GenerationError;
// every other failure is folded into the result text and the interview
// continues.
func (m *Manager) Message(ctx context.Context, sessionID, text, role string) (*Result, error) {
	s := m.sessions.GetOrCreate(sessionID)
	s.Lock()
	defer s.Unlock()

	if role != "" && s.State == StateInitializing {
		s.SetRole(role)
		return m.result(s, roleAccepted(s.Role)), nil
	}

	switch s.State {
	case StateInitializing:
		corrected := m.corrector.Correct(ctx, text, "Job Role Selection")
		if strings.TrimSpace(corrected) == "" {
			return m.result(s, promptForRole), nil
		}
		s.SetRole(corrected)
		return m.result(s, roleAccepted(corrected)), nil

	case StateRoleSet, StateInterviewing:
		if s.CurrentQuestion != "" {
			return m.handleAnswer(ctx, s, text), nil
		}
		return m.askQuestion(ctx, s)

	case StateCompleted:
		s.Reset()
		return m.result(s, restartPrompt), nil
	}

	return m.result(s, promptForRole), nil
}

// Feedback compiles the report for a session on demand.
func (m *Manager) Feedback(ctx context.Context, sessionID string) (string, error) {
	s, ok := m.sessions.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}
	s.Lock()
	defer s.Unlock()

	if s.State != StateCompleted && len(s.Transcript) == 0 {
		return "", ErrNoData
	}

	report, err := m.compiler.Compile(ctx, s.Role, s.Topic, s.Transcript)
	if err != nil {
		return "", &GenerationError{
			Stage: "feedback",
			Class: ratelimit.Classify(err.Error()),
			Err:   err,
		}
	}
	return feedback.Render(report), nil
}

// Health reports service liveness and whether a model is configured.
type Health struct {
	Online          bool
	ModelConfigured bool
	Model           string
}

func (m *Manager) Health() Health {
	return Health{Online: true, ModelConfigured: m.modelID != "", Model: m.modelID}
}

// handleAnswer records the candidate's answer and tries to generate a
// follow-up. Follow-up failure is absorbed as "no follow-up": the slot is
// consumed and the interview continues.
func (m *Manager) handleAnswer(ctx context.Context, s *Session, text string) *Result {
	answer := m.corrector.Correct(ctx, text, "Answer to interview question: "+s.CurrentQuestion)
	prevQ := s.CurrentQuestion
	s.Record(prevQ, answer)

	followUp, err := m.generator.Question(ctx, question.Input{
		Role:             s.Role,
		Topic:            s.Topic,
		Difficulty:       DifficultyAt(s.DifficultyIndex),
		IsDeveloper:      s.IsDeveloper,
		History:          s.Transcript,
		FollowUp:         true,
		PreviousQuestion: prevQ,
		PreviousAnswer:   answer,
	})

	var responseText string
	switch {
	case err == nil && strings.TrimSpace(followUp) != "":
		s.CurrentQuestion = followUp
		return m.result(s, followUp)

	case err == nil:
		s.CurrentQuestion = ""
		responseText = answerBridge

	default:
		logger.Log.Warn("follow-up generation failed, advancing",
			"session", s.ID, "error", err)
		class := ratelimit.Classify(err.Error())
		if class.RateLimited && class.HasWait {
			responseText = "Thank you for your answer!\n\n" + class.Message +
				"\n\nFor now, let's continue with the next question."
		} else {
			responseText = answerBridge + "\n\n(Error generating follow-up: " +
				err.Error() + ")"
		}
		s.CurrentQuestion = ""
	}

	// No follow-up pending: the main question cycle is done.
	s.DifficultyIndex++
	if !ScheduleComplete(s.DifficultyIndex) {
		return m.result(s, responseText)
	}
	return m.complete(ctx, s)
}

// askQuestion generates the next main question at the current difficulty.
// Failure here is the one surfaced error: CurrentQuestion stays unset so the
// candidate's next message retries the same slot.
func (m *Manager) askQuestion(ctx context.Context, s *Session) (*Result, error) {
	s.State = StateInterviewing
	if s.DifficultyIndex > len(Schedule)-1 {
		s.DifficultyIndex = len(Schedule) - 1
	}

	q, err := m.generator.Question(ctx, question.Input{
		Role:        s.Role,
		Topic:       s.Topic,
		Difficulty:  DifficultyAt(s.DifficultyIndex),
		IsDeveloper: s.IsDeveloper,
		History:     s.Transcript,
	})
	if err != nil {
		return nil, &GenerationError{
			Stage: "question",
			Class: ratelimit.Classify(err.Error()),
			Err:   err,
		}
	}

	s.CurrentQuestion = q
	s.QuestionNumber++
	logger.Log.Debug("asked main question",
		"session", s.ID, "number", s.QuestionNumber,
		"difficulty", DifficultyAt(s.DifficultyIndex))
	return m.result(s, q), nil
}

// complete marks the interview finished and attempts the feedback compile.
// Feedback failure degrades to an apology; the session completes regardless.
func (m *Manager) complete(ctx context.Context, s *Session) *Result {
	s.State = StateCompleted

	report, err := m.compiler.Compile(ctx, s.Role, s.Topic, s.Transcript)
	if err == nil {
		return m.result(s, "Interview completed! Here's your feedback:\n\n"+
			feedback.Render(report))
	}

	logger.Log.Warn("feedback compile failed at completion",
		"session", s.ID, "error", err)
	class := ratelimit.Classify(err.Error())
	if class.RateLimited && class.HasWait {
		return m.result(s, "Interview completed! However, I cannot generate "+
			"feedback right now due to a rate limit.\n\n"+class.Message+
			"\n\nYou can request feedback later using the feedback endpoint.")
	}
	return m.result(s, "Interview completed! However, there was an error "+
		"generating feedback: "+err.Error())
}

func (m *Manager) result(s *Session, text string) *Result {
	return &Result{
		Text:           text,
		SessionID:      s.ID,
		State:          s.State,
		QuestionNumber: s.QuestionNumber,
	}
}

func roleAccepted(role string) string {
	return "Great! I'll focus on the core concepts and topics relevant to " +
		role + ". Let's begin the interview.\n\nI'll ask you questions of " +
		"varying difficulty levels. Please answer them to the best of your ability."
}
