package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoQueueClassics/internal/report"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median([]float64{}))
	assert.Equal(t, 2.0, median([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	assert.Equal(t, float32(5), median([]float32{5}))
}

func TestAverageOfRange(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	assert.InDelta(t, 3.0, averageOfRange(vals, 0, 0.05), 1e-9)
	assert.InDelta(t, 98.0, averageOfRange(vals, 0.95, 1), 1e-9)

	// Too few values for a 5% slice: median.
	assert.Equal(t, 2.0, averageOfRange([]float64{1, 2, 3}, 0, 0.05))
	assert.Equal(t, 0.0, averageOfRange([]float64{}, 0, 1))
}

func TestBuildStats(t *testing.T) {
	stats := buildStats(map[float64][]float64{
		4: {30, 10, 20},
		2: {5},
		8: {},
	})
	require.Len(t, stats, 2)

	assert.Equal(t, 2.0, stats[0].orig)
	assert.Equal(t, 5.0, stats[0].median)

	assert.Equal(t, 4.0, stats[1].orig)
	assert.Equal(t, 20.0, stats[1].median)
	// With three values the bottom 5% is empty and falls back to the
	// median, while the top 5% still holds the largest value.
	assert.Equal(t, 20.0, stats[1].min)
	assert.Equal(t, 30.0, stats[1].max)
}

func TestFormatNs(t *testing.T) {
	assert.Equal(t, "12ns", formatNs(12))
	assert.Equal(t, "1.5µs", formatNs(1500))
	assert.Equal(t, "2.0ms", formatNs(2e6))
	assert.Equal(t, "3.00s", formatNs(3e9))
}

func TestGrouping(t *testing.T) {
	sessions := []report.FullReport{
		{
			SystemInfo: report.SystemInfo{NumCPU: 8, SimulatedCPUCount: 2},
			Benchmarks: []report.BenchmarkResult{
				{Implementation: "A", Mode: report.ModeConcurrent, NumProducers: 1, NumConsumers: 1, NumMessagesConsumed: 1000, ActualElapsed: "1ms"},
				{Implementation: "A", Mode: report.ModeFillDrain, NumMessagesConsumed: 10, ActualElapsed: "1ms", Throughput: 10000},
				{Implementation: "B", NumProducers: 2, NumConsumers: 2, NumMessagesConsumed: 10, ActualElapsed: "1ms"},
				{Implementation: "C", Mode: report.ModeConcurrent, NumProducers: 1, NumConsumers: 1, ActualElapsed: "1ms"},
			},
		},
		{
			SystemInfo: report.SystemInfo{NumCPU: 4},
			Benchmarks: []report.BenchmarkResult{
				{Implementation: "A", Mode: report.ModeConcurrent, NumProducers: 1, NumConsumers: 1, NumMessagesConsumed: 1, ActualElapsed: "1s"},
			},
		},
	}

	concurrent := groupConcurrentByCPU(sessions)
	require.Contains(t, concurrent, 2)
	require.Contains(t, concurrent, 4)
	assert.Equal(t, []float64{1000}, concurrent[2]["A"][2])
	assert.Equal(t, []float64{1e5}, concurrent[2]["B"][4], "results without a mode are concurrent")
	assert.NotContains(t, concurrent[2], "C", "runs without consumed messages are skipped")
	assert.Equal(t, []float64{1e9}, concurrent[4]["A"][2])

	fillDrain := groupFillDrainByCPU(sessions)
	require.Len(t, fillDrain, 1)
	assert.Equal(t, []float64{10000}, fillDrain[2]["A"])
}
