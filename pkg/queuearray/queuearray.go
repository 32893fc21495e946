package queuearray

import (
	"fmt"
	"strings"

	"github.com/i5heu/GoQueueClassics/internal/queue"
)

// QueueArray is an unbounded FIFO queue backed by a slice.
// Dequeue shifts the slice window, so it is O(1); the backing array is
// released once it has been fully consumed.
type QueueArray[T any] struct {
	array []T
}

func New[T any]() *QueueArray[T] {
	return &QueueArray[T]{}
}

func (q *QueueArray[T]) IsEmpty() bool {
	return len(q.array) == 0
}

func (q *QueueArray[T]) Peek() (T, bool) {
	if q.IsEmpty() {
		var zero T
		return zero, false
	}
	return q.array[0], true
}

// Enqueue always succeeds.
func (q *QueueArray[T]) Enqueue(val T) bool {
	q.array = append(q.array, val)
	return true
}

func (q *QueueArray[T]) Dequeue() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	val := q.array[0]
	q.array[0] = zero
	q.array = q.array[1:]
	if len(q.array) == 0 {
		q.array = nil
	}
	return val, true
}

func (q *QueueArray[T]) FreeSlots() uint64 {
	return queue.Unbounded
}

func (q *QueueArray[T]) UsedSlots() uint64 {
	return uint64(len(q.array))
}

// String renders the queued values front to back, e.g. "[10, 20]".
func (q *QueueArray[T]) String() string {
	parts := make([]string, len(q.array))
	for i, v := range q.array {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
