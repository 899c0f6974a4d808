// Package catalog serves the current menu to the rest of the application.
//
// The Resolver caches the normalized menu for a TTL and refreshes it through
// a single in-flight fetch. When the source fails it keeps serving the last
// good menu, then the configured fallback, then the empty menu.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

const (
	DefaultTTL          = 300 * time.Second
	DefaultFetchTimeout = 5 * time.Second

	// DefaultRetryBackoff keeps a failing source from being hit on every call.
	DefaultRetryBackoff = 10 * time.Second

	refreshKey = "menu"
)

var ErrNoMenuSource = errors.New("no menu source configured")

// Resolver is safe for concurrent use.
type Resolver struct {
	source   ports.MenuSource
	fallback menu.Menu
	events   ports.EventPublisher
	logger   *slog.Logger
	now      func() time.Time

	ttl          time.Duration
	fetchTimeout time.Duration
	retryBackoff time.Duration

	group singleflight.Group

	mu          sync.RWMutex
	cached      *menu.Menu
	fetchedAt   time.Time
	lastFailure time.Time
}

type Option func(*Resolver)

func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithFetchTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.fetchTimeout = timeout
		}
	}
}

func WithRetryBackoff(backoff time.Duration) Option {
	return func(r *Resolver) {
		if backoff >= 0 {
			r.retryBackoff = backoff
		}
	}
}

// WithFallback sets the menu served when the source has never succeeded.
func WithFallback(m menu.Menu) Option {
	return func(r *Resolver) {
		r.fallback = m
	}
}

func WithEvents(events ports.EventPublisher) Option {
	return func(r *Resolver) {
		r.events = events
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver builds a resolver over source. A nil source serves the
// fallback menu only.
func NewResolver(source ports.MenuSource, logger *slog.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		source:       source,
		fallback:     menu.Empty(),
		logger:       logger.With("component", "MenuResolver"),
		now:          time.Now,
		ttl:          DefaultTTL,
		fetchTimeout: DefaultFetchTimeout,
		retryBackoff: DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the current menu. It never fails: fetch errors are logged,
// published and answered with the best menu available.
func (r *Resolver) Get(ctx context.Context, forceRefresh bool) menu.Menu {
	if m, ok := r.fresh(forceRefresh); ok {
		return m
	}

	m, err := r.refresh(ctx, forceRefresh)
	if err != nil {
		return r.best()
	}
	return m
}

// Refresh forces a fetch and reports its error. The cache is only replaced
// on success.
func (r *Resolver) Refresh(ctx context.Context) error {
	_, err := r.refresh(ctx, true)
	return err
}

func (r *Resolver) fresh(force bool) (menu.Menu, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	if r.source == nil {
		return r.bestLocked(), true
	}
	if r.cached != nil && !force && now.Sub(r.fetchedAt) < r.ttl {
		return *r.cached, true
	}
	if !force && !r.lastFailure.IsZero() && now.Sub(r.lastFailure) < r.retryBackoff {
		return r.bestLocked(), true
	}
	return menu.Menu{}, false
}

func (r *Resolver) refresh(ctx context.Context, force bool) (menu.Menu, error) {
	if r.source == nil {
		return r.best(), ErrNoMenuSource
	}

	v, err, _ := r.group.Do(refreshKey, func() (any, error) {
		// A flight that finished just before this one started already did the work.
		if m, ok := r.cachedWithinTTL(); ok && !force {
			return m, nil
		}
		return r.fetch(ctx)
	})
	if err != nil {
		return menu.Menu{}, err
	}
	return v.(menu.Menu), nil
}

func (r *Resolver) fetch(ctx context.Context) (menu.Menu, error) {
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
	defer cancel()

	started := r.now()
	raw, err := r.source.Fetch(fetchCtx)
	if err != nil {
		r.fail(err)
		return menu.Menu{}, err
	}

	m := menu.Normalize(raw)

	r.mu.Lock()
	r.cached = &m
	r.fetchedAt = r.now()
	r.lastFailure = time.Time{}
	r.mu.Unlock()

	r.logger.Debug("menu refreshed",
		"flavors", len(m.Flavors),
		"sizes", len(m.Sizes),
		"took", r.now().Sub(started))
	return m, nil
}

func (r *Resolver) fail(err error) {
	r.mu.Lock()
	r.lastFailure = r.now()
	cached := r.cached != nil
	r.mu.Unlock()

	r.logger.Warn("menu fetch failed", "error", err, "serving_cached", cached)
	if r.events != nil {
		r.events.Publish(ports.EventMenuFetchFailed, map[string]any{
			"error":          err.Error(),
			"serving_cached": cached,
		})
	}
}

func (r *Resolver) cachedWithinTTL() (menu.Menu, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cached == nil || r.now().Sub(r.fetchedAt) >= r.ttl {
		return menu.Menu{}, false
	}
	return *r.cached, true
}

func (r *Resolver) best() menu.Menu {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bestLocked()
}

func (r *Resolver) bestLocked() menu.Menu {
	if r.cached != nil {
		return *r.cached
	}
	return r.fallback
}
