package linkedlist

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrNodeNotInList is returned by Remove for a node the list does not own,
// including one that was already removed.
var ErrNodeNotInList = errors.New("linkedlist: node does not belong to this list")

// Node is one element of a DoublyLinkedList. Only the list that created a
// node changes its links.
type Node[T any] struct {
	Value T

	next *Node[T]
	prev *Node[T]
	list *DoublyLinkedList[T]
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the preceding node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

func (n *Node[T]) String() string {
	return fmt.Sprint(n.Value)
}

// DoublyLinkedList is a sequence with O(1) append at the tail and O(1)
// removal of a node the caller holds. The zero value is an empty list.
//
// Invariant: head == nil iff tail == nil iff len == 0.
//
// A DoublyLinkedList is not safe for concurrent use, and it must not be
// modified while one of its iterators is in use.
type DoublyLinkedList[T any] struct {
	head *Node[T]
	tail *Node[T]
	len  int
}

func New[T any]() *DoublyLinkedList[T] {
	return &DoublyLinkedList[T]{}
}

func (l *DoublyLinkedList[T]) IsEmpty() bool {
	return l.head == nil
}

func (l *DoublyLinkedList[T]) Len() int {
	return l.len
}

// First returns the head node, or nil if the list is empty.
// The node can later be passed to Remove.
func (l *DoublyLinkedList[T]) First() *Node[T] {
	return l.head
}

// Last returns the tail node, or nil if the list is empty.
func (l *DoublyLinkedList[T]) Last() *Node[T] {
	return l.tail
}

// Append links a new node holding value after the tail and returns it.
func (l *DoublyLinkedList[T]) Append(value T) *Node[T] {
	n := &Node[T]{Value: value, list: l}
	l.len++

	if l.tail == nil {
		l.head = n
		l.tail = n
		return n
	}

	n.prev = l.tail
	l.tail.next = n
	l.tail = n
	return n
}

// Remove unlinks n and returns its value. The node's links are cleared, so
// removing it a second time fails with ErrNodeNotInList.
func (l *DoublyLinkedList[T]) Remove(n *Node[T]) (T, error) {
	if n == nil || n.list != l {
		var zero T
		return zero, ErrNodeNotInList
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	n.next = nil
	n.prev = nil
	n.list = nil
	l.len--

	return n.Value, nil
}

// All yields the nodes from head to tail. Every call starts again at the head.
func (l *DoublyLinkedList[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n) {
				return
			}
		}
	}
}

// Backward yields the nodes from tail to head.
func (l *DoublyLinkedList[T]) Backward() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n := l.tail; n != nil; n = n.prev {
			if !yield(n) {
				return
			}
		}
	}
}

// Values yields the stored values from head to tail.
func (l *DoublyLinkedList[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range l.All() {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Iterator returns a forward iterator positioned at the current head.
func (l *DoublyLinkedList[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{current: l.head}
}

// String renders the values head to tail, e.g. "10 -> 20 -> end".
func (l *DoublyLinkedList[T]) String() string {
	var sb strings.Builder
	for n := range l.All() {
		fmt.Fprintf(&sb, "%v -> ", n.Value)
	}
	sb.WriteString("end")
	return sb.String()
}

// Iterator walks a list forward one node at a time.
type Iterator[T any] struct {
	current *Node[T]
}

// Next returns the node under the iterator and advances past it.
// It returns nil and false once the tail has been passed.
func (it *Iterator[T]) Next() (*Node[T], bool) {
	n := it.current
	if n == nil {
		return nil, false
	}
	it.current = n.next
	return n, true
}
