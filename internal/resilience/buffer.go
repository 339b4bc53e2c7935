package resilience

import "sync"

// DefaultBufferCapacity bounds each write buffer. Oldest entries are evicted
// first once the bound is reached.
const DefaultBufferCapacity = 100

// Buffer is a bounded FIFO of records accepted while the primary store was
// unreachable. It lives for the process lifetime only and is merged ahead of
// live or fallback rows on reads, so a user who just submitted a form sees
// their own submission immediately. Safe for concurrent use.
type Buffer[T any] struct {
	mu       sync.Mutex
	capacity int
	items    []T // oldest first
}

// NewBuffer builds a Buffer with the given capacity; non-positive values use
// DefaultBufferCapacity.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &Buffer[T]{capacity: capacity}
}

// Record appends v, evicting the oldest entry when the buffer is full.
func (b *Buffer[T]) Record(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, v)
	if len(b.items) > b.capacity {
		b.items = b.items[len(b.items)-b.capacity:]
	}
}

// Items returns a copy of the buffered records, newest first.
func (b *Buffer[T]) Items() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.items))
	for i, v := range b.items {
		out[len(b.items)-1-i] = v
	}
	return out
}

// Len returns the number of buffered records.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Reset discards all buffered records. Exposed for the administrative reset
// endpoint and for test isolation.
func (b *Buffer[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}
