package main

import (
	"github.com/i5heu/GoQueueClassics/internal/queue"
	"github.com/i5heu/GoQueueClassics/internal/report"
	"github.com/i5heu/GoQueueClassics/pkg/lockedqueue"
	"github.com/i5heu/GoQueueClassics/pkg/queuearray"
	"github.com/i5heu/GoQueueClassics/pkg/queuechannel"
	"github.com/i5heu/GoQueueClassics/pkg/queuedeque"
	"github.com/i5heu/GoQueueClassics/pkg/queuelinkedlist"
	"github.com/i5heu/GoQueueClassics/pkg/queueringbuffer"
)

// Implementation represents a queue implementation.
type Implementation[T any, Q queue.QueueValidationInterface[T]] struct {
	name        string
	description string
	pkgName     string
	features    []string
	// bounded queues reject Enqueue once capacity values are waiting.
	bounded bool
	// concurrentSafe queues are benchmarked without a lockedqueue wrapper.
	concurrentSafe bool
	newQueue       func(capacity uint64) (Q, error)
}

// benchQueue is the queue type every implementation is driven through.
type benchQueue = queue.QueueValidationInterface[*int]

// newShared returns a queue that producers and consumers on different
// goroutines can use at the same time.
func (impl Implementation[T, Q]) newShared(capacity uint64) (queue.QueueValidationInterface[T], error) {
	q, err := impl.newQueue(capacity)
	if err != nil {
		return nil, err
	}
	if impl.concurrentSafe {
		return q, nil
	}
	return lockedqueue.New[T](q), nil
}

func implementationMeta() map[string]report.ImplementationMeta {
	meta := make(map[string]report.ImplementationMeta)
	for _, impl := range getImplementations() {
		meta[impl.name] = report.ImplementationMeta{
			PkgName:  impl.pkgName,
			Features: impl.features,
		}
	}
	return meta
}

// getImplementations enumerates our different queue implementations.
func getImplementations() []Implementation[*int, benchQueue] {
	return []Implementation[*int, benchQueue]{
		{
			name:        "QueueArray",
			pkgName:     "queuearray",
			description: "A slice backed queue; dequeue reslices the front away.",
			features:    []string{"FIFO", "Unbounded"},
			newQueue: func(uint64) (benchQueue, error) {
				return queuearray.New[*int](), nil
			},
		},
		{
			name:        "QueueRingBuffer",
			pkgName:     "queueringbuffer",
			description: "A fixed capacity ring buffer that rejects writes when full.",
			features:    []string{"FIFO", "Bounded"},
			bounded:     true,
			newQueue: func(capacity uint64) (benchQueue, error) {
				return queueringbuffer.New[*int](capacity)
			},
		},
		{
			name:        "QueueLinkedList",
			pkgName:     "queuelinkedlist",
			description: "A doubly linked list; one allocation per enqueued value.",
			features:    []string{"FIFO", "Unbounded"},
			newQueue: func(uint64) (benchQueue, error) {
				return queuelinkedlist.New[*int](), nil
			},
		},
		{
			name:        "QueueDeque",
			pkgName:     "queuedeque",
			description: "eapache/queue, a growable power-of-two ring buffer.",
			features:    []string{"FIFO", "Unbounded"},
			newQueue: func(uint64) (benchQueue, error) {
				return queuedeque.New[*int](), nil
			},
		},
		{
			name:           "Golang Buffered Channel",
			pkgName:        "queuechannel",
			description:    "A buffered channel with non-blocking send and receive.",
			features:       []string{"FIFO", "Bounded", "Concurrent-Safe"},
			bounded:        true,
			concurrentSafe: true,
			newQueue: func(capacity uint64) (benchQueue, error) {
				return queuechannel.New[*int](capacity), nil
			},
		},
	}
}
