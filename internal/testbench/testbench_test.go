package testbench_test

import (
	"context"
	"testing"
	"time"

	"github.com/i5heu/GoQueueClassics/internal/testbench"
	"github.com/i5heu/GoQueueClassics/pkg/lockedqueue"
	"github.com/i5heu/GoQueueClassics/pkg/queuechannel"
	"github.com/i5heu/GoQueueClassics/pkg/queueringbuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestRunTimedTest_ProducedEqualsConsumed(t *testing.T) {
	rb, err := queueringbuffer.New[*int](64)
	require.NoError(t, err)
	q := lockedqueue.New[*int](rb)

	produced, consumed, elapsed, err := testbench.RunTimedTest(
		context.Background(),
		q,
		testbench.Config{NumProducers: 3, NumConsumers: 2},
		100*time.Millisecond,
		intPtr,
	)
	require.NoError(t, err)

	assert.Greater(t, produced, int64(0))
	assert.Equal(t, produced, consumed)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.True(t, q.IsEmpty())
}

func TestRunTimedTest_ChannelQueue(t *testing.T) {
	q := queuechannel.New[*int](16)

	produced, consumed, _, err := testbench.RunTimedTest(
		context.Background(),
		q,
		testbench.Config{NumProducers: 2, NumConsumers: 2},
		50*time.Millisecond,
		intPtr,
	)
	require.NoError(t, err)
	assert.Equal(t, produced, consumed)
}

func TestRunTimedTest_CancelledContext(t *testing.T) {
	rb, err := queueringbuffer.New[*int](8)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	produced, consumed, elapsed, err := testbench.RunTimedTest(
		ctx,
		lockedqueue.New[*int](rb),
		testbench.Config{NumProducers: 1, NumConsumers: 1},
		time.Minute,
		intPtr,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), produced)
	assert.Equal(t, int64(0), consumed)
	assert.Less(t, elapsed, time.Minute)
}

func TestRunTimedTest_ParentCancelStopsProducers(t *testing.T) {
	rb, err := queueringbuffer.New[*int](32)
	require.NoError(t, err)
	q := lockedqueue.New[*int](rb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(20*time.Millisecond, cancel)

	produced, consumed, elapsed, err := testbench.RunTimedTest(
		ctx,
		q,
		testbench.Config{NumProducers: 4, NumConsumers: 1},
		time.Minute,
		intPtr,
	)
	require.NoError(t, err)
	assert.Less(t, elapsed, 10*time.Second)
	assert.Greater(t, produced, int64(0))
	assert.Equal(t, produced, consumed)
	assert.True(t, q.IsEmpty())
}

func TestRunTimedTest_FailingGeneratorStopsAllProducers(t *testing.T) {
	rb, err := queueringbuffer.New[*int](32)
	require.NoError(t, err)
	q := lockedqueue.New[*int](rb)

	gen := func(i int) *int {
		if i == 100 {
			panic("generator exhausted")
		}
		return intPtr(i)
	}

	produced, consumed, elapsed, err := testbench.RunTimedTest(
		context.Background(),
		q,
		testbench.Config{NumProducers: 3, NumConsumers: 2},
		time.Minute,
		gen,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator exhausted")
	assert.Less(t, elapsed, 10*time.Second)
	assert.Equal(t, produced, consumed)
	assert.True(t, q.IsEmpty())
}

func TestRunFillDrain(t *testing.T) {
	q, err := queueringbuffer.New[*int](4)
	require.NoError(t, err)

	consumed, elapsed := testbench.RunFillDrain(context.Background(), q, 10, 20*time.Millisecond, intPtr)

	assert.Greater(t, consumed, int64(0))
	assert.Equal(t, int64(0), consumed%4, "a capacity-4 buffer drains in batches of 4")
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.True(t, q.IsEmpty())
}
