// Package sessions is the process-wide session table: an in-memory map from
// session id to live interview session, safe for concurrent callers.
package sessions

import (
	"sync"
	"time"

	"github.com/zyralabs/zyra/internal/interview"
	"github.com/zyralabs/zyra/internal/logger"
)

// Store implements interview.SessionStore with a map and a mutex. Entries
// are created lazily and live for the process lifetime unless a TTL is set.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	ttl      time.Duration
	onEvict  func(id string)
	stopOnce sync.Once
	stop     chan struct{}
}

type entry struct {
	session  *interview.Session
	lastSeen time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL enables idle eviction: sessions untouched for longer than ttl are
// dropped by a background sweep.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithEvictHook registers a callback invoked with each evicted session id.
func WithEvictHook(fn func(id string)) Option {
	return func(s *Store) { s.onEvict = fn }
}

// New creates a Store. When a TTL is configured the sweep goroutine starts
// immediately; call Close to stop it.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl > 0 {
		go s.sweep()
	}
	return s
}

// GetOrCreate returns the session for id, creating a fresh one when absent.
func (s *Store) GetOrCreate(id string) *interview.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &entry{session: interview.NewSession(id)}
		s.entries[id] = e
		logger.Log.Debug("session created", "session", id)
	}
	e.lastSeen = time.Now()
	return e.session
}

// Get returns the session for id when it exists.
func (s *Store) Get(id string) (*interview.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.session, true
}

// Remove drops the session for id, firing the evict hook when set.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if ok && s.onEvict != nil {
		s.onEvict(id)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the sweep goroutine. Safe to call multiple times.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) sweep() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Store) evictIdle() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var evicted []string
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	for _, id := range evicted {
		logger.Log.Debug("session evicted", "session", id)
		if s.onEvict != nil {
			s.onEvict(id)
		}
	}
}
