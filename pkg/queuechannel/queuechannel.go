package queuechannel

import "sync"

// QueueChannel is a bounded FIFO queue on a buffered channel.
// Unlike the other backings it is safe for concurrent use, and
// Enqueue never blocks: it reports false when the buffer is full.
type QueueChannel[T any] struct {
	ch chan T

	// mu guards head, a value taken out of ch by Peek and parked there
	// until the next Dequeue.
	mu      sync.Mutex
	head    T
	hasHead bool
}

func New[T any](bufferSize uint64) *QueueChannel[T] {
	// Sends are non-blocking, so an unbuffered channel would reject every
	// Enqueue that has no receiver waiting at that moment.
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &QueueChannel[T]{
		ch: make(chan T, bufferSize),
	}
}

func (q *QueueChannel[T]) Enqueue(val T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	// A parked head still occupies one slot of the capacity.
	if q.hasHead && len(q.ch) >= cap(q.ch)-1 {
		return false
	}
	select {
	case q.ch <- val:
		return true
	default:
		return false
	}
}

func (q *QueueChannel[T]) Dequeue() (val T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.hasHead {
		val = q.head
		var zero T
		q.head = zero
		q.hasHead = false
		return val, true
	}
	select {
	case val = <-q.ch:
		return val, true
	default:
		return val, false
	}
}

func (q *QueueChannel[T]) Peek() (val T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.hasHead {
		return q.head, true
	}
	select {
	case q.head = <-q.ch:
		q.hasHead = true
		return q.head, true
	default:
		return val, false
	}
}

func (q *QueueChannel[T]) IsEmpty() bool {
	return q.UsedSlots() == 0
}

func (q *QueueChannel[T]) FreeSlots() uint64 {
	return uint64(cap(q.ch)) - q.UsedSlots()
}

func (q *QueueChannel[T]) UsedSlots() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := uint64(len(q.ch))
	if q.hasHead {
		n++
	}
	return n
}
