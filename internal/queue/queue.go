package queue

import "math"

// Unbounded is what FreeSlots reports for backings without a capacity limit.
const Unbounded = math.MaxUint64

// Queue is the contract every backing store satisfies to be used as a FIFO queue.
type Queue[T any] interface {
	// Enqueue appends an element. It returns false only when a bounded
	// backing is at capacity; the queue is left unchanged in that case.
	Enqueue(T) bool

	// Dequeue removes and returns the oldest element.
	// If the queue is empty it returns the zero T and false.
	Dequeue() (T, bool)

	// Peek returns the oldest element without removing it.
	Peek() (T, bool)

	// IsEmpty reports whether there is nothing to dequeue.
	IsEmpty() bool
}

// Sized is implemented by queues that can report their slot usage.
type Sized interface {
	// FreeSlots returns how many more elements can be enqueued before the queue is full.
	FreeSlots() uint64

	// UsedSlots returns how many elements are currently queued.
	UsedSlots() uint64
}

// QueueValidationInterface is a *type constraint* used by the bench harness.
// We never store Q in a runtime interface of this type; it only pins
// matching method sets at compile time.
type QueueValidationInterface[T any] interface {
	Queue[T]
	Sized
}
