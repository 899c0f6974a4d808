// Package session keeps the in-call state of every active phone call.
//
// Each call gets its own Session with its own mutex; calls never contend with
// one another. Function calls that arrive without a call SID all share the
// LegacyID session, which is therefore one lock for all of them.
package session

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
)

// LegacyID is the session used when a call arrives without a call SID.
const LegacyID = "__legacy__"

// Key maps a possibly blank call SID to a registry key.
func Key(callSID string) string {
	id := strings.TrimSpace(callSID)
	if id == "" {
		return LegacyID
	}
	return id
}

// State is everything remembered about one call. It is only reachable
// through Session.Exec, which holds the session lock.
type State struct {
	Cart cart.Cart

	// Pending orders await finalization; Orders have been committed.
	Pending map[string]*order.Order
	Orders  map[string]*order.Order

	OrderType        kernel.OrderType
	OrderTypeSavedAt time.Time

	Phone            kernel.Phone
	PhoneConfirmed   bool
	Address          string
	AddressConfirmed bool

	// OrderNumber is the last order number read back to the caller.
	OrderNumber string
}

// Session serializes every operation on one call's State.
type Session struct {
	id       string
	mu       sync.Mutex
	state    State
	lastSeen atomic.Int64
	now      func() time.Time
}

func newSession(id string, now func() time.Time) *Session {
	s := &Session{
		id:  id,
		now: now,
		state: State{
			Pending: map[string]*order.Order{},
			Orders:  map[string]*order.Order{},
		},
	}
	s.touch(now())
	return s
}

func (s *Session) ID() string {
	return s.id
}

// IsLegacy reports whether this is the shared no-SID session.
func (s *Session) IsLegacy() bool {
	return s.id == LegacyID
}

// LastSeen is when the session was last handed out or executed.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Exec runs fn with the session lock held. fn must not block on I/O and must
// not keep references to st beyond its return.
func (s *Session) Exec(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(s.now())
	return fn(&s.state)
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) tryLock() bool {
	return s.mu.TryLock()
}

func (s *Session) unlock() {
	s.mu.Unlock()
}
