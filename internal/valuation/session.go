package valuation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStaleScope is returned when a result was computed for a scope the
// session has since moved away from.
var ErrStaleScope = errors.New("valuation: result belongs to a superseded scope")

// Ticket identifies one computation started by a Session.
type Ticket struct {
	gen   uint64
	scope Scope
}

// Scope returns the scope the computation was started for.
func (t Ticket) Scope() Scope { return t.scope }

// Session tracks the scope one viewer is looking at. Switching scope cancels
// every computation still running for the previous scope and resets the
// navigator.
type Session struct {
	mu       sync.Mutex
	scope    Scope
	gen      uint64
	nextID   uint64
	inFlight map[uint64]context.CancelFunc
	nav      Navigator
}

// NewSession returns a session looking at every portfolio.
func NewSession() *Session {
	return &Session{scope: AllPortfolios(), inFlight: make(map[uint64]context.CancelFunc)}
}

// Begin starts a computation for scope. The returned context is cancelled
// when the session switches to another scope; release must be called once
// the computation is done.
func (s *Session) Begin(ctx context.Context, scope Scope) (context.Context, Ticket, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight == nil {
		s.inFlight = make(map[uint64]context.CancelFunc)
	}
	if scope != s.scope {
		for id, cancel := range s.inFlight {
			cancel()
			delete(s.inFlight, id)
		}
		s.scope = scope
		s.gen++
		s.nav.Reset()
	}

	ctx, cancel := context.WithCancel(ctx)
	s.nextID++
	id := s.nextID
	s.inFlight[id] = cancel

	release := func() {
		s.mu.Lock()
		delete(s.inFlight, id)
		s.mu.Unlock()
		cancel()
	}
	return ctx, Ticket{gen: s.gen, scope: scope}, release
}

// Commit reports ErrStaleScope when t was issued before the latest scope change.
func (s *Session) Commit(t Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen != s.gen {
		return ErrStaleScope
	}
	return nil
}

// Scope returns the scope currently in view.
func (s *Session) Scope() Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// WithNavigator runs fn with the session's navigator held under the session lock.
func (s *Session) WithNavigator(fn func(*Navigator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.nav)
}

// busy reports whether any computation begun by s is still running.
func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight) > 0
}

type sessionEntry struct {
	session *Session
	seen    time.Time
}

// Sessions hands out one Session per viewer. A session not asked for within
// the idle window, with nothing in flight, is dropped and the viewer starts
// over at every portfolio.
type Sessions struct {
	mu        sync.Mutex
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	sessions  map[string]*sessionEntry
}

// NewSessions returns an empty registry. idle <= 0 keeps sessions forever.
func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{idle: idle, now: time.Now, sessions: make(map[string]*sessionEntry)}
}

// Get returns the session for viewer, creating it on first use.
func (r *Sessions) Get(viewer string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.idle > 0 && now.Sub(r.lastSweep) >= r.idle {
		r.sweepLocked(now)
	}
	e, ok := r.sessions[viewer]
	if !ok {
		e = &sessionEntry{session: NewSession()}
		r.sessions[viewer] = e
	}
	e.seen = now
	return e.session
}

// Sweep drops idle sessions and returns how many were removed.
func (r *Sessions) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idle <= 0 {
		return 0
	}
	return r.sweepLocked(r.now())
}

func (r *Sessions) sweepLocked(now time.Time) int {
	r.lastSweep = now
	removed := 0
	for viewer, e := range r.sessions {
		if now.Sub(e.seen) < r.idle || e.session.busy() {
			continue
		}
		delete(r.sessions, viewer)
		removed++
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
