package resilience

import (
	"context"
	"fmt"
	"sync"
)

// Group deduplicates concurrent calls for the same key. Callers that arrive
// while a call is in flight wait for it and share its result.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do runs fn once per in-flight key. shared is true for callers that reused
// another caller's result.
func (g *Group[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	c, leader := g.join(key)
	if leader {
		g.run(key, c, fn)
	} else {
		<-c.done
	}
	return c.val, c.err, !leader
}

// DoContext is Do where every caller, the first one included, stops waiting
// when its own ctx is done. The shared call keeps running for the others, so
// fn must not depend on any single caller's ctx.
func (g *Group[T]) DoContext(ctx context.Context, key string, fn func() (T, error)) (val T, err error, shared bool) {
	c, leader := g.join(key)
	if leader {
		go g.run(key, c, fn)
	}

	select {
	case <-c.done:
		return c.val, c.err, !leader
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), !leader
	}
}

func (g *Group[T]) join(key string) (*call[T], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	if c, ok := g.calls[key]; ok {
		return c, false
	}
	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	return c, true
}

func (g *Group[T]) run(key string, c *call[T], fn func() (T, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			c.err = fmt.Errorf("shared call %q panicked: %v", key, rec)
		}
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
}
