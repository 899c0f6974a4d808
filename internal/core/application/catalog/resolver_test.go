package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shmhzr/ai-voice/internal/core/application/catalog"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

type MockMenuSource struct{ mock.Mock }

func (m *MockMenuSource) Fetch(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	raw, _ := args.Get(0).(map[string]any)
	return raw, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(name string, payload map[string]any) {
	m.Called(name, payload)
}

type countingSource struct {
	calls atomic.Int32
	delay time.Duration
	raw   map[string]any
}

func (s *countingSource) Fetch(ctx context.Context) (map[string]any, error) {
	s.calls.Add(1)
	select {
	case <-time.After(s.delay):
		return s.raw, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type blockingSource struct{}

func (blockingSource) Fetch(ctx context.Context) (map[string]any, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawMenu(flavors ...any) map[string]any {
	return map[string]any{
		"flavors": flavors,
		"sizes":   []any{"Small", "Large"},
		"prices": map[string]any{
			"Margherita": map[string]any{"Small": 8.0, "Large": 12.0},
		},
	}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestResolver_Get_CachesWithinTTL(t *testing.T) {
	ctx := t.Context()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	source := new(MockMenuSource)
	source.On("Fetch", mock.Anything).Return(rawMenu("Margherita"), nil).Once()

	r := catalog.NewResolver(source, quietLogger(), catalog.WithClock(c.Now), catalog.WithTTL(time.Minute))

	first := r.Get(ctx, false)
	c.Advance(30 * time.Second)
	second := r.Get(ctx, false)

	assert.Equal(t, []string{"Margherita"}, first.Flavors)
	assert.Equal(t, first.Flavors, second.Flavors)
	source.AssertExpectations(t)
}

func TestResolver_Get_RefetchesAfterTTL(t *testing.T) {
	ctx := t.Context()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	source := new(MockMenuSource)
	mock.InOrder(
		source.On("Fetch", mock.Anything).Return(rawMenu("Margherita"), nil).Once(),
		source.On("Fetch", mock.Anything).Return(rawMenu("Margherita", "Pepperoni"), nil).Once(),
	)

	r := catalog.NewResolver(source, quietLogger(), catalog.WithClock(c.Now), catalog.WithTTL(time.Minute))

	_ = r.Get(ctx, false)
	c.Advance(2 * time.Minute)
	m := r.Get(ctx, false)

	assert.Equal(t, []string{"Margherita", "Pepperoni"}, m.Flavors)
	source.AssertExpectations(t)
}

func TestResolver_Get_ForceRefreshBypassesCache(t *testing.T) {
	ctx := t.Context()
	source := new(MockMenuSource)
	source.On("Fetch", mock.Anything).Return(rawMenu("Margherita"), nil).Twice()

	r := catalog.NewResolver(source, quietLogger())

	_ = r.Get(ctx, false)
	_ = r.Get(ctx, true)

	source.AssertExpectations(t)
}

func TestResolver_Get_FailureServesLastCachedMenu(t *testing.T) {
	ctx := t.Context()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	source := new(MockMenuSource)
	events := new(MockEventPublisher)
	mock.InOrder(
		source.On("Fetch", mock.Anything).Return(rawMenu("Margherita"), nil).Once(),
		source.On("Fetch", mock.Anything).Return(nil, errors.New("503")).Once(),
	)
	events.On("Publish", ports.EventMenuFetchFailed, mock.MatchedBy(func(p map[string]any) bool {
		return p["error"] == "503" && p["serving_cached"] == true
	})).Once()

	r := catalog.NewResolver(source, quietLogger(),
		catalog.WithClock(c.Now), catalog.WithTTL(time.Minute), catalog.WithEvents(events))

	_ = r.Get(ctx, false)
	c.Advance(2 * time.Minute)
	m := r.Get(ctx, false)

	assert.Equal(t, []string{"Margherita"}, m.Flavors)
	source.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestResolver_Get_NeverFetchedServesFallback(t *testing.T) {
	ctx := t.Context()
	source := new(MockMenuSource)
	source.On("Fetch", mock.Anything).Return(nil, errors.New("down")).Once()
	fallback := menu.Normalize(rawMenu("Hawaiian"))

	r := catalog.NewResolver(source, quietLogger(), catalog.WithFallback(fallback))

	m := r.Get(ctx, false)

	assert.Equal(t, []string{"Hawaiian"}, m.Flavors)
}

func TestResolver_Get_NeverFetchedWithoutFallbackServesEmptyMenu(t *testing.T) {
	ctx := t.Context()
	source := new(MockMenuSource)
	source.On("Fetch", mock.Anything).Return(nil, errors.New("down")).Once()

	r := catalog.NewResolver(source, quietLogger())

	m := r.Get(ctx, false)

	assert.True(t, m.IsEmpty())
}

func TestResolver_Get_BacksOffAfterFailure(t *testing.T) {
	ctx := t.Context()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	source := new(MockMenuSource)
	mock.InOrder(
		source.On("Fetch", mock.Anything).Return(nil, errors.New("down")).Once(),
		source.On("Fetch", mock.Anything).Return(rawMenu("Margherita"), nil).Once(),
	)

	r := catalog.NewResolver(source, quietLogger(),
		catalog.WithClock(c.Now), catalog.WithRetryBackoff(10*time.Second))

	assert.True(t, r.Get(ctx, false).IsEmpty())
	c.Advance(5 * time.Second)
	assert.True(t, r.Get(ctx, false).IsEmpty(), "inside backoff the source is not called")
	c.Advance(10 * time.Second)
	assert.Equal(t, []string{"Margherita"}, r.Get(ctx, false).Flavors)

	source.AssertExpectations(t)
}

func TestResolver_Get_TimesOutSlowSource(t *testing.T) {
	ctx := t.Context()
	fallback := menu.Normalize(rawMenu("Hawaiian"))
	r := catalog.NewResolver(blockingSource{}, quietLogger(),
		catalog.WithFetchTimeout(20*time.Millisecond), catalog.WithFallback(fallback))

	started := time.Now()
	m := r.Get(ctx, false)

	assert.Less(t, time.Since(started), 2*time.Second)
	assert.Equal(t, []string{"Hawaiian"}, m.Flavors)
}

func TestResolver_Get_ConcurrentCallersShareOneFetch(t *testing.T) {
	ctx := t.Context()
	source := &countingSource{delay: 50 * time.Millisecond, raw: rawMenu("Margherita")}
	r := catalog.NewResolver(source, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := r.Get(ctx, false)
			assert.Equal(t, []string{"Margherita"}, m.Flavors)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestResolver_Refresh_ReportsError(t *testing.T) {
	ctx := t.Context()
	source := new(MockMenuSource)
	source.On("Fetch", mock.Anything).Return(nil, errors.New("down")).Once()

	r := catalog.NewResolver(source, quietLogger())

	require.EqualError(t, r.Refresh(ctx), "down")
}

func TestResolver_NilSourceServesFallback(t *testing.T) {
	fallback := menu.Normalize(rawMenu("Hawaiian"))
	r := catalog.NewResolver(nil, quietLogger(), catalog.WithFallback(fallback))

	assert.Equal(t, []string{"Hawaiian"}, r.Get(t.Context(), true).Flavors)
	require.ErrorIs(t, r.Refresh(t.Context()), catalog.ErrNoMenuSource)
}
