// Package history keeps a fixed number of the most recent values.
package history

import "iter"

type slot[T any] struct {
	value T
	ok    bool
}

// Buffer is a fixed-capacity ring. Adding to a full buffer silently drops
// the oldest value.
//
// Traversal starts at the cursor, which always points at the newest value,
// and then wraps around: the newest value comes first, followed by the rest
// from oldest to second newest. Before the buffer has filled, indices that
// land on never-written slots are empty.
type Buffer[T any] struct {
	slots  []slot[T]
	cursor int
}

// New allocates a buffer holding up to capacity values.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("history: capacity must be positive")
	}
	return &Buffer[T]{slots: make([]slot[T], capacity)}
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.slots) }

// Len returns how many slots hold a value.
func (b *Buffer[T]) Len() int {
	n := 0
	for _, s := range b.slots {
		if s.ok {
			n++
		}
	}
	return n
}

// Add moves the cursor to the next slot and overwrites it with v.
func (b *Buffer[T]) Add(v T) {
	b.cursor = (b.cursor + 1) % len(b.slots)
	b.slots[b.cursor] = slot[T]{value: v, ok: true}
}

// Latest returns the most recently added value, if any.
func (b *Buffer[T]) Latest() (T, bool) {
	s := b.slots[b.cursor]
	return s.value, s.ok
}

// Get returns the value at logical index i, counted from the cursor.
func (b *Buffer[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(b.slots) {
		var zero T
		return zero, false
	}
	s := b.slots[(b.cursor+i)%len(b.slots)]
	return s.value, s.ok
}

// All yields Get(0) through Get(Cap()-1), skipping empty slots. Each range
// over the sequence starts again at Get(0).
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range len(b.slots) {
			v, ok := b.Get(i)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
