package queuelinkedlist

import (
	"github.com/i5heu/GoQueueClassics/internal/queue"
	"github.com/i5heu/GoQueueClassics/pkg/linkedlist"
)

// QueueLinkedList is an unbounded FIFO queue on top of a DoublyLinkedList.
// Enqueue appends at the tail and Dequeue removes the head, both O(1).
type QueueLinkedList[T any] struct {
	list linkedlist.DoublyLinkedList[T]
}

func New[T any]() *QueueLinkedList[T] {
	return &QueueLinkedList[T]{}
}

func (q *QueueLinkedList[T]) IsEmpty() bool {
	return q.list.IsEmpty()
}

func (q *QueueLinkedList[T]) Peek() (T, bool) {
	head := q.list.First()
	if head == nil {
		var zero T
		return zero, false
	}
	return head.Value, true
}

// Enqueue always succeeds.
func (q *QueueLinkedList[T]) Enqueue(val T) bool {
	q.list.Append(val)
	return true
}

func (q *QueueLinkedList[T]) Dequeue() (T, bool) {
	head := q.list.First()
	if head == nil {
		var zero T
		return zero, false
	}
	// head comes from our own list, Remove cannot fail here.
	val, _ := q.list.Remove(head)
	return val, true
}

func (q *QueueLinkedList[T]) FreeSlots() uint64 {
	return queue.Unbounded
}

func (q *QueueLinkedList[T]) UsedSlots() uint64 {
	return uint64(q.list.Len())
}

func (q *QueueLinkedList[T]) String() string {
	return q.list.String()
}
