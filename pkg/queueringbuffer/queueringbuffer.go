package queueringbuffer

import "github.com/i5heu/GoQueueClassics/pkg/ringbuffer"

// QueueRingBuffer is a bounded FIFO queue on top of a RingBuffer.
// Enqueue fails once capacity values are waiting.
type QueueRingBuffer[T any] struct {
	ring *ringbuffer.RingBuffer[T]
}

// New creates a queue holding at most capacity values.
// A zero capacity is rejected with ringbuffer.ErrInvalidCapacity.
func New[T any](capacity uint64) (*QueueRingBuffer[T], error) {
	ring, err := ringbuffer.New[T](capacity)
	if err != nil {
		return nil, err
	}
	return &QueueRingBuffer[T]{ring: ring}, nil
}

func (q *QueueRingBuffer[T]) IsEmpty() bool {
	return q.ring.IsEmpty()
}

func (q *QueueRingBuffer[T]) Peek() (T, bool) {
	return q.ring.PeekFirst()
}

func (q *QueueRingBuffer[T]) Enqueue(val T) bool {
	return q.ring.Write(val)
}

func (q *QueueRingBuffer[T]) Dequeue() (T, bool) {
	return q.ring.Read()
}

func (q *QueueRingBuffer[T]) FreeSlots() uint64 {
	return q.ring.FreeSlots()
}

func (q *QueueRingBuffer[T]) UsedSlots() uint64 {
	return q.ring.UsedSlots()
}

func (q *QueueRingBuffer[T]) String() string {
	return q.ring.String()
}
