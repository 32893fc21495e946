package ringbuffer

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrInvalidCapacity is returned by New for a zero capacity.
var ErrInvalidCapacity = errors.New("ringbuffer: capacity must be at least 1")

// RingBuffer is a bounded FIFO buffer with a fixed number of slots.
// It rejects writes when full instead of overwriting the oldest value.
//
// readPos and writePos only ever grow; the slot addressed is pos % capacity.
// That keeps "empty" (writePos == readPos) and "full"
// (writePos-readPos == capacity) distinct without a spare slot.
//
// A RingBuffer is not safe for concurrent use.
type RingBuffer[T any] struct {
	buffer   []T
	capacity uint64
	readPos  uint64
	writePos uint64
}

// New creates a RingBuffer holding at most capacity values.
func New[T any](capacity uint64) (*RingBuffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &RingBuffer[T]{
		buffer:   make([]T, capacity),
		capacity: capacity,
	}, nil
}

// Write stores val at the write cursor.
// It returns false and leaves the buffer untouched when the buffer is full.
func (r *RingBuffer[T]) Write(val T) bool {
	if r.IsFull() {
		return false
	}
	r.buffer[r.writePos%r.capacity] = val
	r.writePos++
	return true
}

// Read removes and returns the value at the read cursor.
// If the buffer is empty it returns the zero value and false.
func (r *RingBuffer[T]) Read() (T, bool) {
	var zero T
	if r.IsEmpty() {
		return zero, false
	}
	slot := &r.buffer[r.readPos%r.capacity]
	val := *slot
	// Drop the reference so a consumed value can be collected.
	*slot = zero
	r.readPos++
	return val, true
}

// PeekFirst returns the value Read would return, without consuming it.
func (r *RingBuffer[T]) PeekFirst() (T, bool) {
	if r.IsEmpty() {
		var zero T
		return zero, false
	}
	return r.buffer[r.readPos%r.capacity], true
}

func (r *RingBuffer[T]) IsEmpty() bool {
	return r.writePos == r.readPos
}

func (r *RingBuffer[T]) IsFull() bool {
	return r.writePos-r.readPos == r.capacity
}

// Cap returns the fixed capacity.
func (r *RingBuffer[T]) Cap() uint64 {
	return r.capacity
}

// Len returns the number of values waiting to be read.
func (r *RingBuffer[T]) Len() uint64 {
	return r.writePos - r.readPos
}

// FreeSlots returns how many more values can be written before the buffer is full.
func (r *RingBuffer[T]) FreeSlots() uint64 {
	return r.capacity - r.Len()
}

// UsedSlots is an alias of Len for the queue accounting interface.
func (r *RingBuffer[T]) UsedSlots() uint64 {
	return r.Len()
}

// Values yields the pending values from the read cursor to the write cursor.
// The buffer must not be modified while iterating.
func (r *RingBuffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for pos := r.readPos; pos < r.writePos; pos++ {
			if !yield(r.buffer[pos%r.capacity]) {
				return
			}
		}
	}
}

// String renders the pending values in read order, e.g. "[1, 2]".
func (r *RingBuffer[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for v := range r.Values() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
