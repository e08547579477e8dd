package app

import (
	"sync"
	"time"
)

// Session registry limits
const (
	// MaxSessions triggers pruning of idle sessions when exceeded.
	MaxSessions = 1024
	// SessionIdleTTL is how long an idle session is kept once pruning starts.
	SessionIdleTTL = 10 * time.Minute
)

// Sessions hands out one Session per client ID so the in-flight guard
// applies per client rather than process-wide.
type Sessions struct {
	analyzer *Analyzer

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates an empty registry.
func NewSessions(a *Analyzer) *Sessions {
	return &Sessions{
		analyzer: a,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first use. The session is
// marked used while the registry lock is held, so Prune cannot drop it
// between Get and the caller's Analyze.
func (r *Sessions) Get(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	if ok {
		s.touch()
	}
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.touch()
		return s
	}
	if len(r.sessions) >= MaxSessions {
		r.pruneLocked(time.Now(), SessionIdleTTL)
	}
	s = r.analyzer.NewSession()
	r.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune drops sessions idle for longer than ttl and returns how many went.
func (r *Sessions) Prune(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked(time.Now(), ttl)
}

func (r *Sessions) pruneLocked(now time.Time, ttl time.Duration) int {
	removed := 0
	for id, s := range r.sessions {
		if idle, ok := s.idleSince(now); ok && idle > ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
