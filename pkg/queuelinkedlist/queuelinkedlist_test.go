package queuelinkedlist_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/i5heu/GoQueueClassics/internal/queue"
	"github.com/i5heu/GoQueueClassics/pkg/queuelinkedlist"
)

var _ queue.QueueValidationInterface[int] = (*queuelinkedlist.QueueLinkedList[int])(nil)

var _ = Describe("QueueLinkedList", func() {
	var q *queuelinkedlist.QueueLinkedList[int]

	BeforeEach(func() {
		q = queuelinkedlist.New[int]()
	})

	It("starts empty", func() {
		Expect(q.IsEmpty()).To(BeTrue())
		Expect(q.String()).To(Equal("end"))

		_, ok := q.Peek()
		Expect(ok).To(BeFalse())
		_, ok = q.Dequeue()
		Expect(ok).To(BeFalse())
	})

	It("dequeues in enqueue order", func() {
		for _, v := range []int{10, 20, 30} {
			Expect(q.Enqueue(v)).To(BeTrue())
		}
		Expect(q.String()).To(Equal("10 -> 20 -> 30 -> end"))
		Expect(q.UsedSlots()).To(Equal(uint64(3)))

		v, ok := q.Peek()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(10))

		for _, want := range []int{10, 20, 30} {
			v, ok = q.Dequeue()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(want))
		}
		Expect(q.IsEmpty()).To(BeTrue())
	})

	It("never reports itself as full", func() {
		for i := 0; i < 10000; i++ {
			Expect(q.Enqueue(i)).To(BeTrue())
		}
		Expect(q.FreeSlots()).To(Equal(uint64(queue.Unbounded)))
	})

	It("can be reused after draining", func() {
		q.Enqueue(1)
		q.Dequeue()
		q.Enqueue(2)

		v, ok := q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(2))
		Expect(q.IsEmpty()).To(BeTrue())
	})
})
