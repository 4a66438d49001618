// Package server exposes the interview state machine over HTTP. It is pure
// transport: every decision lives in the interview manager, the handlers
// translate JSON and status codes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/zyralabs/zyra/internal/interview"
	"github.com/zyralabs/zyra/internal/logger"
)

// Server wraps an http.Server bound to the interview manager.
type Server struct {
	manager *interview.Manager
	httpSrv *http.Server
}

// New builds a Server listening on addr.
func New(manager *interview.Manager, addr string) *Server {
	s := &Server{manager: manager}

	mux := http.NewServeMux()
	mux.HandleFunc("/api", s.handleMessage)
	mux.HandleFunc("/api/start", s.handleStart)
	mux.HandleFunc("/api/feedback", s.handleFeedback)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           withCORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	logger.Log.Info("http server listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}

type messageResponse struct {
	Response        string `json:"response"`
	Status          string `json:"status"`
	SessionID       string `json:"session_id"`
	State           string `json:"state,omitempty"`
	QuestionNumber  int    `json:"question_number,omitempty"`
	RateLimitError  bool   `json:"rate_limit_error,omitempty"`
	WaitTimeSeconds int    `json:"wait_time_seconds,omitempty"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "no message provided")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result, err := s.manager.Message(r.Context(), sessionID, req.Message, req.Role)
	if err != nil {
		writeGenerationError(w, sessionID, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Response:       result.Text,
		Status:         "success",
		SessionID:      result.SessionID,
		State:          string(result.State),
		QuestionNumber: result.QuestionNumber,
	})
}

type startRequest struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result := s.manager.Start(r.Context(), sessionID, req.Role)
	writeJSON(w, http.StatusOK, messageResponse{
		Response:  result.Text,
		Status:    "success",
		SessionID: result.SessionID,
		State:     string(result.State),
	})
}

type feedbackRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "no session_id provided")
		return
	}

	report, err := s.manager.Feedback(r.Context(), req.SessionID)
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, interview.ErrNoData):
		writeError(w, http.StatusBadRequest, "no interview data available for feedback")
	case err != nil:
		writeGenerationError(w, req.SessionID, err)
	default:
		writeJSON(w, http.StatusOK, messageResponse{
			Response:  report,
			Status:    "success",
			SessionID: req.SessionID,
		})
	}
}

type healthResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	Model            string `json:"model,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h := s.manager.Health()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "online",
		Message:          "Zyra API is running",
		APIKeyConfigured: h.ModelConfigured,
		Model:            h.Model,
	})
}

// writeGenerationError maps a failed model call to a status code: 429 with a
// retry hint when the upstream error was a rate limit carrying a wait, 500
// otherwise.
func writeGenerationError(w http.ResponseWriter, sessionID string, err error) {
	var genErr *interview.GenerationError
	if errors.As(err, &genErr) {
		if genErr.Class.RateLimited && genErr.Class.HasWait {
			writeJSON(w, http.StatusTooManyRequests, messageResponse{
				Response:        genErr.Class.Message,
				Status:          "error",
				SessionID:       sessionID,
				RateLimitError:  true,
				WaitTimeSeconds: genErr.Class.RetryAfterSeconds(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse{
			Response:  genErr.Class.Message,
			Status:    "error",
			SessionID: sessionID,
		})
		return
	}

	writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
}
