package queuearray_test

import (
	"testing"

	"github.com/i5heu/GoQueueClassics/internal/queue"
	"github.com/i5heu/GoQueueClassics/pkg/queuearray"
	"github.com/stretchr/testify/assert"
)

var _ queue.Queue[int] = (*queuearray.QueueArray[int])(nil)

func TestQueueArray_EnqueueAndDequeue(t *testing.T) {
	q := queuearray.New[int]()

	assert.True(t, q.Enqueue(10))
	assert.True(t, q.Enqueue(20))
	assert.True(t, q.Enqueue(30))

	val, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 10, val)

	// { 10, 20, 30 }
	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 10, val)

	// { 20, 30 }
	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 20, val)
	assert.False(t, q.IsEmpty())

	// { 30 }
	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 30, val)
	assert.True(t, q.IsEmpty())

	// { }
	_, ok = q.Dequeue()
	assert.False(t, ok)
	_, ok = q.Peek()
	assert.False(t, ok)
}

func TestQueueArray_Reuse(t *testing.T) {
	q := queuearray.New[string]()
	for round := 0; round < 3; round++ {
		q.Enqueue("a")
		q.Enqueue("b")
		assert.Equal(t, uint64(2), q.UsedSlots())
		assert.Equal(t, "[a, b]", q.String())

		q.Dequeue()
		q.Dequeue()
		assert.True(t, q.IsEmpty())
		assert.Equal(t, "[]", q.String())
	}
	assert.Equal(t, uint64(queue.Unbounded), q.FreeSlots())
}
