package testbench

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/i5heu/GoQueueClassics/internal/queue"
	"golang.org/x/sync/errgroup"
)

// Config is only about concurrency: how many producers, how many consumers.
type Config struct {
	NumProducers int `json:"num_producers"`
	NumConsumers int `json:"num_consumers"`
}

// RunTimedTest spawns producers and consumers that run for the specified
// duration, measuring how many messages are actually enqueued/dequeued
// in that window. Once the context expires, producers stop and consumers
// drain any remaining messages in the queue.
//
// q must be safe for concurrent use; wrap single-threaded backings in
// lockedqueue.Locked. A rejected Enqueue (bounded queue is full) is retried
// and not counted.
// Returns the total messages enqueued, total consumed, the actual elapsed
// time, and the first producer error. A panicking valueGenerator stops all
// producers and is reported as that error.
func RunTimedTest[T any, Q queue.QueueValidationInterface[T]](
	ctx context.Context,
	q Q,
	cfg Config,
	testDuration time.Duration,
	valueGenerator func(int) T,
) (producedCount int64, consumedCount int64, elapsed time.Duration, err error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, testDuration)
	defer cancel()

	var totalProduced, totalConsumed, msgIndex atomic.Int64
	// productionDone flips once every producer has returned.
	var productionDone atomic.Bool

	// Producers share the group context: the deadline or a cancelled parent
	// stops all of them, and so does the first producer that fails.
	producers, prodCtx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.NumProducers; i++ {
		producers.Go(func() error {
			for prodCtx.Err() == nil {
				idx := msgIndex.Add(1) - 1
				msg, err := produce(valueGenerator, int(idx))
				if err != nil {
					return err
				}
				for !q.Enqueue(msg) {
					if prodCtx.Err() != nil {
						return nil
					}
					runtime.Gosched()
				}
				totalProduced.Add(1)
			}
			return nil
		})
	}

	var consumers errgroup.Group
	for i := 0; i < cfg.NumConsumers; i++ {
		consumers.Go(func() error {
			for {
				if _, ok := q.Dequeue(); ok {
					totalConsumed.Add(1)
					continue
				}
				// Only stop on an empty queue after production is over,
				// so nothing enqueued is left behind.
				if productionDone.Load() {
					return nil
				}
				runtime.Gosched()
			}
		})
	}

	err = producers.Wait()
	productionDone.Store(true)
	_ = consumers.Wait()

	elapsed = time.Since(start)
	return totalProduced.Load(), totalConsumed.Load(), elapsed, err
}

// produce calls valueGenerator and turns a panic into an error.
func produce[T any](valueGenerator func(int) T, idx int) (msg T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("value generator panicked at message %d: %v", idx, r)
		}
	}()
	return valueGenerator(idx), nil
}

// RunFillDrain exercises q from a single goroutine: it enqueues batch values
// (or until the queue rejects one), then dequeues everything, repeating until
// testDuration is over. It returns the number of dequeued values and the
// actual elapsed time.
func RunFillDrain[T any, Q queue.QueueValidationInterface[T]](
	ctx context.Context,
	q Q,
	batch int,
	testDuration time.Duration,
	valueGenerator func(int) T,
) (consumedCount int64, elapsed time.Duration) {
	if batch < 1 {
		batch = 1
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, testDuration)
	defer cancel()

	idx := 0
	for ctx.Err() == nil {
		for i := 0; i < batch; i++ {
			if !q.Enqueue(valueGenerator(idx)) {
				break
			}
			idx++
		}
		for {
			if _, ok := q.Dequeue(); !ok {
				break
			}
			consumedCount++
		}
	}
	return consumedCount, time.Since(start)
}
