package session

import (
	"sort"
	"sync"
	"time"
)

const (
	DefaultIdleTTL       = 30 * time.Minute
	DefaultMaxSessions   = 10000
	DefaultEvictionGrace = time.Minute
)

// Registry owns the sessions of all calls handled by this process.
// Its own mutex only guards the map; it is never held while a session lock is
// being waited on.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTTL     time.Duration
	maxSessions int
	grace       time.Duration
	now         func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithIdleTTL evicts sessions idle for longer than ttl on Reap.
func WithIdleTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.idleTTL = ttl
		}
	}
}

// WithMaxSessions caps the number of sessions kept after Reap.
func WithMaxSessions(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

// WithEvictionGrace protects sessions used within d from eviction above the
// session cap. A handler may hold a session between Get and Exec, or between
// two Execs, and must not end up writing to a session the registry dropped.
func WithEvictionGrace(d time.Duration) Option {
	return func(r *Registry) {
		if d >= 0 {
			r.grace = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions:    map[string]*Session{},
		idleTTL:     DefaultIdleTTL,
		maxSessions: DefaultMaxSessions,
		grace:       DefaultEvictionGrace,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for callSID, creating it on first use. A blank
// callSID returns the legacy session.
func (r *Registry) Get(callSID string) *Session {
	key := Key(callSID)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key]
	if !ok {
		s = newSession(key, r.now)
		r.sessions[key] = s
		return s
	}
	s.touch(r.now())
	return s
}

// Peek returns an existing session without creating or touching it.
func (r *Registry) Peek(callSID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[Key(callSID)]
	return s, ok
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap evicts sessions idle longer than the idle TTL, then the least recently
// used ones while more than the session cap remain. The legacy session,
// sessions whose lock is currently held and sessions used within the eviction
// grace are never evicted, so the cap may be exceeded until the next Reap. It
// returns the number of sessions removed.
func (r *Registry) Reap() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	candidates := make([]*Session, 0, len(r.sessions))
	for key, s := range r.sessions {
		if s.IsLegacy() {
			continue
		}
		if now.Sub(s.LastSeen()) > r.idleTTL && r.evict(key, s) {
			evicted++
			continue
		}
		candidates = append(candidates, s)
	}

	overflow := len(r.sessions) - r.maxSessions
	if overflow <= 0 {
		return evicted
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].LastSeen().Before(candidates[j].LastSeen())
	})
	for _, s := range candidates {
		if overflow <= 0 {
			break
		}
		if now.Sub(s.LastSeen()) < r.grace {
			// Sorted oldest first: every remaining candidate is recent too.
			break
		}
		if r.evict(s.ID(), s) {
			evicted++
			overflow--
		}
	}
	return evicted
}

// evict removes s unless a call is executing on it right now.
func (r *Registry) evict(key string, s *Session) bool {
	if !s.tryLock() {
		return false
	}
	defer s.unlock()
	delete(r.sessions, key)
	return true
}
