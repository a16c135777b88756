package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache with per-key load deduplication.
// A zero TTL keeps entries until they are deleted.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	flight  resilience.Group[V]
	now     func() time.Time

	loadTimeout time.Duration
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	loadTimeout time.Duration
}

// WithLoadTimeout bounds a shared load. Loads are detached from the callers
// waiting on them, so this is the only limit they have.
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(o *storeOptions) { o.loadTimeout = d }
}

func NewStore[V any](ttl time.Duration, opts ...StoreOption) *Store[V] {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[V]{
		entries:     make(map[string]entry[V]),
		ttl:         ttl,
		now:         time.Now,
		loadTimeout: o.loadTimeout,
	}
}

// Loader produces a value for a missing key. keep=false returns the value to
// the caller without storing it.
type Loader[V any] func(ctx context.Context) (value V, keep bool, err error)

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// DeletePrefix evicts every key starting with prefix, e.g. all entries of one kind.
func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once for all
// concurrent callers of the same key. The loader runs on a context detached
// from every caller; each caller waits only as long as its own ctx allows and
// gets ctx.Err() when that runs out first.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader Loader[V]) (V, error) {
	if key == "" {
		value, _, err := loader(ctx)
		return value, err
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.DoContext(ctx, key, func() (V, error) {
		loadCtx := context.WithoutCancel(ctx)
		if s.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, s.loadTimeout)
			defer cancel()
		}

		if cached, ok := s.Get(loadCtx, key); ok {
			return cached, nil
		}

		loaded, keep, loadErr := loader(loadCtx)
		if loadErr != nil {
			return loaded, loadErr
		}
		if keep {
			s.Set(loadCtx, key, loaded)
		}
		return loaded, nil
	})
	return value, err
}
