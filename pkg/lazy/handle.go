package lazy

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handle holds a process-wide value that is created on first use.
//
// Concurrent first callers block on the same initialisation; exactly one
// of them runs init. A failed init is not cached, so a later Get tries again.
type Handle[T any] struct {
	init func(ctx context.Context) (T, error)

	mu    sync.Mutex
	ready atomic.Bool
	value T
}

func New[T any](init func(ctx context.Context) (T, error)) *Handle[T] {
	return &Handle[T]{init: init}
}

// Of wraps an already-initialised value.
func Of[T any](value T) *Handle[T] {
	h := &Handle[T]{}
	h.value = value
	h.ready.Store(true)
	return h
}

func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	if h.ready.Load() {
		return h.value, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ready.Load() {
		return h.value, nil
	}

	value, err := h.init(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	h.value = value
	h.ready.Store(true)
	return value, nil
}

// Peek returns the value only if it has already been initialised.
func (h *Handle[T]) Peek() (T, bool) {
	if h == nil || !h.ready.Load() {
		var zero T
		return zero, false
	}
	return h.value, true
}

func (h *Handle[T]) Ready() bool {
	return h != nil && h.ready.Load()
}
