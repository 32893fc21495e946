package main

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/i5heu/GoQueueClassics/internal/report"
)

// concurrencyStats holds "5%-avg-min", median, and "5%-avg-max" for each concurrency level.
type concurrencyStats struct {
	concurrency float64 // x position: category index plus the per-implementation offset
	orig        float64 // original concurrency value
	min         float64 // "average of bottom 5%"
	median      float64
	max         float64 // "average of top 5%"
}

func sessionCPUs(session report.FullReport) int {
	if session.SystemInfo.SimulatedCPUCount > 0 {
		return session.SystemInfo.SimulatedCPUCount
	}
	return session.SystemInfo.NumCPU
}

// groupConcurrentByCPU groups concurrent runs as
// CPU count -> implementation -> producers+consumers -> ns/msg values.
// Results without a mode predate fill-drain runs and count as concurrent.
func groupConcurrentByCPU(sessions []report.FullReport) map[int]map[string]map[float64][]float64 {
	out := make(map[int]map[string]map[float64][]float64)
	for _, session := range sessions {
		cpus := sessionCPUs(session)
		for _, b := range session.Benchmarks {
			if b.Mode != report.ModeConcurrent && b.Mode != "" {
				continue
			}
			ns, err := b.NsPerMessage()
			if err != nil {
				zap.S().Debugw("skipping result", "implementation", b.Implementation, "error", err)
				continue
			}
			if out[cpus] == nil {
				out[cpus] = make(map[string]map[float64][]float64)
			}
			if out[cpus][b.Implementation] == nil {
				out[cpus][b.Implementation] = make(map[float64][]float64)
			}
			conc := float64(b.NumProducers + b.NumConsumers)
			out[cpus][b.Implementation][conc] = append(out[cpus][b.Implementation][conc], ns)
		}
	}
	return out
}

// groupFillDrainByCPU groups fill-drain throughputs as CPU count -> implementation -> msgs/sec.
func groupFillDrainByCPU(sessions []report.FullReport) map[int]map[string][]float64 {
	out := make(map[int]map[string][]float64)
	for _, session := range sessions {
		cpus := sessionCPUs(session)
		for _, b := range session.Benchmarks {
			if b.Mode != report.ModeFillDrain || b.Throughput <= 0 {
				continue
			}
			if out[cpus] == nil {
				out[cpus] = make(map[string][]float64)
			}
			out[cpus][b.Implementation] = append(out[cpus][b.Implementation], b.Throughput)
		}
	}
	return out
}

// buildStats computes "average of bottom 5%", median, and "average of top 5%".
func buildStats(concurrencyMap map[float64][]float64) []concurrencyStats {
	var out []concurrencyStats
	for x, vals := range concurrencyMap {
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		out = append(out, concurrencyStats{
			concurrency: x,
			orig:        x,
			min:         averageOfRange(vals, 0.0, 0.05),
			median:      median(vals),
			max:         averageOfRange(vals, 0.95, 1.0),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].orig < out[b].orig })
	return out
}

// averageOfRange returns the average of sortedVals in [startFrac, endFrac) of its length.
// A range too small to hold a value falls back to the median.
func averageOfRange[F constraints.Float](sortedVals []F, startFrac, endFrac float64) F {
	n := len(sortedVals)
	if n == 0 {
		return 0
	}
	startIndex := max(int(float64(n)*startFrac), 0)
	endIndex := min(int(float64(n)*endFrac), n)
	if startIndex >= endIndex {
		return median(sortedVals)
	}
	var sum F
	for _, v := range sortedVals[startIndex:endIndex] {
		sum += v
	}
	return sum / F(endIndex-startIndex)
}

func median[F constraints.Float](sorted []F) F {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// formatNs formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
