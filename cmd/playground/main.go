package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i5heu/GoQueueClassics/internal/logger"
	"github.com/i5heu/GoQueueClassics/pkg/linkedlist"
	"github.com/i5heu/GoQueueClassics/pkg/queuearray"
	"github.com/i5heu/GoQueueClassics/pkg/queuelinkedlist"
	"github.com/i5heu/GoQueueClassics/pkg/ringbuffer"
)

var (
	logLevel      string
	restoreLogger = func() {}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "playground",
		Short:        "Walk through the classic queue structures step by step",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			restore, err := logger.Setup(logLevel)
			if err != nil {
				return err
			}
			restoreLogger = restore
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			restoreLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, demo := range []func(io.Writer) error{arrayDemo, ringBufferDemo, linkedListDemo, linkedQueueDemo} {
				if err := demo(w); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	var capacity uint64
	ring := &cobra.Command{
		Use:   "ringbuffer",
		Short: "Fill, overflow and drain a ring buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ringBufferDemoCap(cmd.OutOrStdout(), capacity)
		},
	}
	ring.Flags().Uint64Var(&capacity, "capacity", 3, "ring buffer capacity")

	root.AddCommand(
		&cobra.Command{
			Use:   "array",
			Short: "Enqueue, peek and dequeue on the slice backed queue",
			RunE:  func(cmd *cobra.Command, args []string) error { return arrayDemo(cmd.OutOrStdout()) },
		},
		ring,
		&cobra.Command{
			Use:   "linkedlist",
			Short: "Append, remove and iterate a doubly linked list",
			RunE:  func(cmd *cobra.Command, args []string) error { return linkedListDemo(cmd.OutOrStdout()) },
		},
		&cobra.Command{
			Use:   "linkedqueue",
			Short: "Use the linked list as a queue",
			RunE:  func(cmd *cobra.Command, args []string) error { return linkedQueueDemo(cmd.OutOrStdout()) },
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func arrayDemo(w io.Writer) error {
	q := queuearray.New[int]()
	fmt.Fprintln(w, "== QueueArray ==")
	for _, v := range []int{10, 20, 30} {
		q.Enqueue(v)
		fmt.Fprintf(w, "enqueue(%d) -> %s\n", v, q)
	}
	if v, ok := q.Peek(); ok {
		fmt.Fprintf(w, "peek() -> %d\n", v)
	}
	if v, ok := q.Dequeue(); ok {
		fmt.Fprintf(w, "dequeue() -> %d, queue %s\n", v, q)
	}
	fmt.Fprintf(w, "isEmpty -> %t\n", q.IsEmpty())
	return nil
}

func ringBufferDemo(w io.Writer) error {
	return ringBufferDemoCap(w, 3)
}

// ringBufferDemoCap writes capacity+1 values, reads one, writes the rejected
// value again and then drains the buffer.
func ringBufferDemoCap(w io.Writer, capacity uint64) error {
	rb, err := ringbuffer.New[int](capacity)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "== RingBuffer (capacity %d) ==\n", rb.Cap())

	for i := 1; i <= int(capacity)+1; i++ {
		ok := rb.Write(i)
		fmt.Fprintf(w, "write(%d) -> %t\n", i, ok)
		if !ok {
			zap.S().Debugw("ring buffer full", "value", i, "used", rb.UsedSlots())
		}
	}
	printRead(w, rb)
	fmt.Fprintf(w, "write(%d) -> %t\n", capacity+1, rb.Write(int(capacity)+1))
	fmt.Fprintf(w, "buffer %s\n", rb)
	for !rb.IsEmpty() {
		printRead(w, rb)
	}
	printRead(w, rb)
	return nil
}

func printRead(w io.Writer, rb *ringbuffer.RingBuffer[int]) {
	if v, ok := rb.Read(); ok {
		fmt.Fprintf(w, "read() -> %d\n", v)
		return
	}
	fmt.Fprintln(w, "read() -> none")
}

func linkedListDemo(w io.Writer) error {
	l := linkedlist.New[int]()
	fmt.Fprintln(w, "== DoublyLinkedList ==")
	for _, v := range []int{10, 20, 30} {
		l.Append(v)
	}
	fmt.Fprintf(w, "list %s\n", l)
	fmt.Fprintf(w, "first -> %d\n", l.First().Value)

	v, err := l.Remove(l.First())
	if err != nil {
		return fmt.Errorf("remove first: %w", err)
	}
	fmt.Fprintf(w, "remove(first) -> %d, first -> %d\n", v, l.First().Value)

	fmt.Fprint(w, "iterate:")
	it := l.Iterator()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		fmt.Fprintf(w, " %d", n.Value)
	}
	fmt.Fprintln(w)

	other := linkedlist.New[int]()
	if _, err := l.Remove(other.Append(99)); err != nil {
		fmt.Fprintf(w, "remove(foreign node) -> %v\n", err)
	}
	return nil
}

func linkedQueueDemo(w io.Writer) error {
	q := queuelinkedlist.New[string]()
	fmt.Fprintln(w, "== QueueLinkedList ==")
	for _, v := range []string{"a", "b", "c"} {
		q.Enqueue(v)
	}
	fmt.Fprintf(w, "queue %s\n", q)
	for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
		fmt.Fprintf(w, "dequeue() -> %s\n", v)
	}
	fmt.Fprintf(w, "isEmpty -> %t\n", q.IsEmpty())
	return nil
}
