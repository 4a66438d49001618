package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zyralabs/zyra/internal/feedback"
	"github.com/zyralabs/zyra/internal/interview"
	"github.com/zyralabs/zyra/internal/llm"
	"github.com/zyralabs/zyra/internal/prompts"
	"github.com/zyralabs/zyra/internal/question"
	"github.com/zyralabs/zyra/internal/sessions"
	"github.com/zyralabs/zyra/internal/transcribe"
)

// newTestServer wires a full manager over a mock provider so handlers are
// exercised end to end.
func newTestServer(t *testing.T, mock *llm.MockProvider) *Server {
	t.Helper()

	registry, err := prompts.NewRegistry()
	require.NoError(t, err)

	sess := sessions.New()
	t.Cleanup(sess.Close)

	manager := interview.NewManager(
		sess,
		question.New(mock, registry, question.DefaultConfig()),
		transcribe.NoopCorrector{},
		feedback.New(mock, registry),
		mock.ModelID(),
	)
	return New(manager, ":0")
}

func post(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStart_GenericWelcome(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	rec := post(t, srv, "/api/start", map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "s1", body["session_id"])
	require.Contains(t, body["response"], "select a job role")
}

func TestStart_MintsSessionID(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	rec := post(t, srv, "/api/start", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.NotEmpty(t, body["session_id"])
}

func TestMessage_RoleThenQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Explain how indexes speed up queries."),
	})
	srv := newTestServer(t, mock)

	rec := post(t, srv, "/api", map[string]any{
		"message": "Software Engineer", "session_id": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "role_set", body["state"])
	require.Contains(t, body["response"], "Let's begin the interview")

	rec = post(t, srv, "/api", map[string]any{
		"message": "ready", "session_id": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Equal(t, "interviewing", body["state"])
	require.Equal(t, "Explain how indexes speed up queries.", body["response"])
}

func TestMessage_UnknownFieldsTolerated(t *testing.T) {
	// Browser front ends send extra keys alongside the known ones.
	srv := newTestServer(t, llm.NewMockProvider())

	rec := post(t, srv, "/api", map[string]any{
		"message":    "Software Engineer",
		"session_id": "s1",
		"timestamp":  "2026-08-28T10:00:00Z",
		"client":     map[string]any{"name": "web", "version": 3},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "role_set", body["state"])
}

func TestMessage_QuestionNumberInResponse(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Explain database indexes.")},
		// Follow-up declines on both quality-gate attempts.
		llm.MockResponse{Content: json.RawMessage("")},
		llm.MockResponse{Content: json.RawMessage("")},
		llm.MockResponse{Content: json.RawMessage("Explain query planning.")},
	)
	srv := newTestServer(t, mock)

	rec := post(t, srv, "/api", map[string]any{"message": "Software Engineer", "session_id": "s1"})
	body := decode(t, rec)
	require.NotContains(t, body, "question_number")

	rec = post(t, srv, "/api", map[string]any{"message": "ready", "session_id": "s1"})
	body = decode(t, rec)
	require.Equal(t, float64(1), body["question_number"])

	post(t, srv, "/api", map[string]any{"message": "b-trees", "session_id": "s1"})
	rec = post(t, srv, "/api", map[string]any{"message": "ready", "session_id": "s1"})
	body = decode(t, rec)
	require.Equal(t, float64(2), body["question_number"])
}

func TestMessage_EmptyMessageRejected(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	rec := post(t, srv, "/api", map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessage_RateLimited429(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("rate_limit exceeded, try again in 2m30.5s")},
		llm.MockResponse{Err: errors.New("rate_limit exceeded, try again in 2m30.5s")},
	)
	srv := newTestServer(t, mock)

	post(t, srv, "/api", map[string]any{"message": "Software Engineer", "session_id": "s1"})
	rec := post(t, srv, "/api", map[string]any{"message": "ready", "session_id": "s1"})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "error", body["status"])
	require.Equal(t, true, body["rate_limit_error"])
	require.Equal(t, float64(150), body["wait_time_seconds"])
	require.Contains(t, body["response"], "Rate limit reached")
}

func TestMessage_GenerationError500(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("upstream exploded")},
	)
	srv := newTestServer(t, mock)

	post(t, srv, "/api", map[string]any{"message": "Nurse", "session_id": "s1"})
	rec := post(t, srv, "/api", map[string]any{"message": "ready", "session_id": "s1"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "error", body["status"])
}

func TestFeedback_NotFound(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	rec := post(t, srv, "/api/feedback", map[string]any{"session_id": "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedback_NoData(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	post(t, srv, "/api/start", map[string]any{"session_id": "s1"})
	rec := post(t, srv, "/api/feedback", map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedback_Success(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Explain mutexes.")},
		// Follow-up declines on both quality-gate attempts, so the exchange
		// lands in the transcript and no follow-up is asked.
		llm.MockResponse{Content: json.RawMessage("")},
		llm.MockResponse{Content: json.RawMessage("")},
		llm.MockResponse{Content: json.RawMessage(`{
			"summary": "Solid.",
			"strengths": ["clarity"],
			"improvements": ["depth"],
			"rating": 6
		}`)},
	)
	srv := newTestServer(t, mock)

	post(t, srv, "/api", map[string]any{"message": "Software Engineer", "session_id": "s1"})
	post(t, srv, "/api", map[string]any{"message": "ready", "session_id": "s1"})
	post(t, srv, "/api", map[string]any{"message": "a lock", "session_id": "s1"})

	rec := post(t, srv, "/api/feedback", map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Contains(t, body["response"], "Solid.")
	require.Contains(t, body["response"], "6/10")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "online", body["status"])
	require.Equal(t, true, body["api_key_configured"])
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider())

	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
