package history

import (
	"slices"
	"sync"
)

// Shared guards a Buffer for one writer and any number of readers.
type Shared[T any] struct {
	mu  sync.RWMutex
	buf *Buffer[T]
}

// NewShared allocates a guarded buffer of the given capacity.
func NewShared[T any](capacity int) *Shared[T] {
	return &Shared[T]{buf: New[T](capacity)}
}

func (s *Shared[T]) Cap() int { return s.buf.Cap() }

// Add appends v under the write lock.
func (s *Shared[T]) Add(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Add(v)
}

func (s *Shared[T]) Latest() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Latest()
}

func (s *Shared[T]) Get(i int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf.Get(i)
}

// Snapshot copies the buffer contents in traversal order.
func (s *Shared[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(s.buf.All())
}
