package pipeline

import "sync"

// Buffer is a thread-safe FIFO that grows by doubling when full. It hands
// completed day results to the store writer without ever blocking a worker.
type Buffer[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	head   int
	tail   int
	count  int
	closed bool

	totalIn  int64
	totalOut int64
	grows    int
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer[T]{items: make([]T, capacity)}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Send appends an item, growing the buffer if needed. Returns false if the
// buffer has been closed.
func (b *Buffer[T]) Send(item T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}
	if b.count == len(b.items) {
		b.grow()
	}
	b.items[b.tail] = item
	b.tail = (b.tail + 1) % len(b.items)
	b.count++
	b.totalIn++
	b.cond.Signal()
	return true
}

// Receive blocks until an item is available or the buffer is closed and
// drained. The second return is false only in the latter case.
func (b *Buffer[T]) Receive() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.count == 0 && !b.closed {
		b.cond.Wait()
	}
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.pop(), true
}

// TryReceive is a non-blocking Receive.
func (b *Buffer[T]) TryReceive() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.pop(), true
}

// Close stops further sends. Receivers drain remaining items first.
func (b *Buffer[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.cond.Broadcast()
}

// Len returns the number of buffered items.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// BufferStats describes buffer activity.
type BufferStats struct {
	Count    int
	Capacity int
	TotalIn  int64
	TotalOut int64
	Grows    int
}

// Stats returns a snapshot of buffer activity.
func (b *Buffer[T]) Stats() BufferStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BufferStats{
		Count:    b.count,
		Capacity: len(b.items),
		TotalIn:  b.totalIn,
		TotalOut: b.totalOut,
		Grows:    b.grows,
	}
}

// pop removes the head item. Caller holds the lock.
func (b *Buffer[T]) pop() T {
	item := b.items[b.head]
	var zero T
	b.items[b.head] = zero // release reference
	b.head = (b.head + 1) % len(b.items)
	b.count--
	b.totalOut++
	return item
}

// grow doubles capacity, unwrapping the ring. Caller holds the lock.
func (b *Buffer[T]) grow() {
	next := make([]T, len(b.items)*2)
	if b.head < b.tail {
		copy(next, b.items[b.head:b.tail])
	} else {
		n := copy(next, b.items[b.head:])
		copy(next[n:], b.items[:b.tail])
	}
	b.items = next
	b.head = 0
	b.tail = b.count
	b.grows++
}
