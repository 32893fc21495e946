package queueringbuffer_test

import (
	"testing"

	"github.com/i5heu/GoQueueClassics/internal/queue"
	"github.com/i5heu/GoQueueClassics/pkg/queueringbuffer"
	"github.com/i5heu/GoQueueClassics/pkg/ringbuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ queue.QueueValidationInterface[int] = (*queueringbuffer.QueueRingBuffer[int])(nil)

func TestQueueRingBuffer_Bounded(t *testing.T) {
	q, err := queueringbuffer.New[int](2)
	require.NoError(t, err)

	assert.True(t, q.IsEmpty())
	assert.True(t, q.Enqueue(1))
	assert.True(t, q.Enqueue(2))
	assert.False(t, q.Enqueue(3))
	assert.Equal(t, uint64(0), q.FreeSlots())
	assert.Equal(t, "[1, 2]", q.String())

	val, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 1, val)
	assert.True(t, q.Enqueue(3))

	val, _ = q.Dequeue()
	assert.Equal(t, 2, val)
	val, _ = q.Dequeue()
	assert.Equal(t, 3, val)

	_, ok = q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), q.UsedSlots())
}

func TestQueueRingBuffer_InvalidCapacity(t *testing.T) {
	q, err := queueringbuffer.New[int](0)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, ringbuffer.ErrInvalidCapacity)
}
