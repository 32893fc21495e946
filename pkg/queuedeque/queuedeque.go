package queuedeque

import (
	"fmt"
	"strings"

	deque "github.com/eapache/queue"
	"github.com/i5heu/GoQueueClassics/internal/queue"
)

// QueueDeque is an unbounded FIFO queue backed by eapache/queue, a ring
// buffer that doubles (and shrinks) its power-of-two backing array.
type QueueDeque[T any] struct {
	q *deque.Queue
}

func New[T any]() *QueueDeque[T] {
	return &QueueDeque[T]{q: deque.New()}
}

func (d *QueueDeque[T]) IsEmpty() bool {
	return d.q.Length() == 0
}

// Peek returns the oldest element. deque.Queue panics on an empty Peek,
// so emptiness is checked first.
func (d *QueueDeque[T]) Peek() (T, bool) {
	if d.IsEmpty() {
		var zero T
		return zero, false
	}
	return d.q.Peek().(T), true
}

// Enqueue always succeeds.
func (d *QueueDeque[T]) Enqueue(val T) bool {
	d.q.Add(val)
	return true
}

func (d *QueueDeque[T]) Dequeue() (T, bool) {
	if d.IsEmpty() {
		var zero T
		return zero, false
	}
	return d.q.Remove().(T), true
}

func (d *QueueDeque[T]) FreeSlots() uint64 {
	return queue.Unbounded
}

func (d *QueueDeque[T]) UsedSlots() uint64 {
	return uint64(d.q.Length())
}

func (d *QueueDeque[T]) String() string {
	n := d.q.Length()
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprint(d.q.Get(i))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
