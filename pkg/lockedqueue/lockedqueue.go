package lockedqueue

import (
	"sync"

	"github.com/i5heu/GoQueueClassics/internal/queue"
)

// Locked guards a single-threaded queue with a mutex so producers and
// consumers on different goroutines can share it.
type Locked[T any] struct {
	mu sync.Mutex
	q  queue.Queue[T]
}

// New wraps q. The caller must not use q directly afterwards.
func New[T any](q queue.Queue[T]) *Locked[T] {
	return &Locked[T]{q: q}
}

func (l *Locked[T]) Enqueue(val T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Enqueue(val)
}

func (l *Locked[T]) Dequeue() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Dequeue()
}

func (l *Locked[T]) Peek() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Peek()
}

func (l *Locked[T]) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.IsEmpty()
}

// FreeSlots reports queue.Unbounded when the wrapped queue cannot tell.
func (l *Locked[T]) FreeSlots() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.q.(queue.Sized); ok {
		return s.FreeSlots()
	}
	return queue.Unbounded
}

// UsedSlots reports 0 for an empty queue and 1 for a non-empty one when the
// wrapped queue does not count its elements.
func (l *Locked[T]) UsedSlots() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.q.(queue.Sized); ok {
		return s.UsedSlots()
	}
	if l.q.IsEmpty() {
		return 0
	}
	return 1
}
