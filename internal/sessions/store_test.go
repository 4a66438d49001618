package sessions

import (
	"testing"

	"github.com/zyralabs/zyra/internal/interview"
)

func TestGetOrCreate_StablePointer(t *testing.T) {
	s := New()
	defer s.Close()

	a := s.GetOrCreate("s1")
	b := s.GetOrCreate("s1")
	if a != b {
		t.Error("expected the same session for the same id")
	}
	if a.State != interview.StateInitializing {
		t.Errorf("new sessions start initializing, got %q", a.State)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 session, got %d", s.Len())
	}
}

func TestGet_Missing(t *testing.T) {
	s := New()
	defer s.Close()

	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestRemove_FiresEvictHook(t *testing.T) {
	var evicted []string
	s := New(WithEvictHook(func(id string) { evicted = append(evicted, id) }))
	defer s.Close()

	s.GetOrCreate("s1")
	s.Remove("s1")
	s.Remove("never-existed")

	if len(evicted) != 1 || evicted[0] != "s1" {
		t.Errorf("expected one eviction for s1, got %v", evicted)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestIndependentSessions(t *testing.T) {
	s := New()
	defer s.Close()

	a := s.GetOrCreate("a")
	b := s.GetOrCreate("b")
	a.Lock()
	a.SetRole("Software Engineer")
	a.Unlock()

	if b.Role != "" {
		t.Error("sessions must not share state")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", s.Len())
	}
}
