package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i5heu/GoQueueClassics/internal/config"
	"github.com/i5heu/GoQueueClassics/internal/logger"
	"github.com/i5heu/GoQueueClassics/internal/report"
	"github.com/i5heu/GoQueueClassics/internal/testbench"
)

var (
	configFile     string
	setupLogger    = logger.Setup
	restoreLogger  = func() {}
	commonCPUs     = []int{1, 2, 3, 4, 6, 8, 12, 16, 32, 48, 56, 64, 96, 128, 192, 256, 384, 512}
	valueGenerator = func(i int) *int {
		v := i
		return &v
	}
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the classic queue implementations",
	Long: `Runs every queue implementation single threaded (fill-drain) and shared
between producer and consumer goroutines (concurrent), once per GOMAXPROCS
setting, and prints the throughput of each run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfiguration(cmd, configFile); err != nil {
			return err
		}
		restore, err := logger.Setup(config.GetLogLevel())
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}
		restoreLogger = restore
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		restoreLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmarks(cmd.Context())
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print a markdown table of the last stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := resultFile()
		if err != nil {
			return err
		}
		sessions, err := report.Load(file)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions found in %q", file)
		}
		return report.WriteMarkdownTable(cmd.OutOrStdout(), sessions[len(sessions)-1], implementationMeta())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the queue implementations",
	Run: func(cmd *cobra.Command, args []string) {
		for _, impl := range getImplementations() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-16s %v\n    %s\n", impl.name, impl.pkgName, impl.features, impl.description)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	rootCmd.Flags().Int("iter", 5, "Number of test iterations per concurrency setting")
	rootCmd.Flags().Int("cpu", 0, "If non-zero, test only that GOMAXPROCS value; if 0, test common CPU/vCPU values up to runtime.NumCPU()")
	rootCmd.Flags().Duration("duration", 5*time.Second, "Duration of each run")
	rootCmd.Flags().Uint64("capacity", 1024, "Capacity of bounded queues")
	rootCmd.Flags().Int("batch", 256, "Values enqueued per round in fill-drain mode")
	rootCmd.Flags().String("concurrency", "", "Producer/consumer pairs, e.g. \"2x2,10x10\" (default: built-in list)")
	rootCmd.Flags().Bool("high-concurrency", false, "Include high concurrency configurations")
	rootCmd.Flags().Bool("export", false, "Append results to the result file")
	rootCmd.PersistentFlags().String("format", "json", "Result file format: json or yaml")
	rootCmd.Flags().Bool("progress", false, "Display a progress bar with ETA")
	rootCmd.PersistentFlags().String("jsonfile", "test-results.json", "Path of the result file")

	rootCmd.AddCommand(tableCmd, listCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup installs the logger from the --log-level flag before the
// configuration is read, and installs it again when the configuration
// asks for another level.
func setup(cmd *cobra.Command) error {
	level := cmd.Flag("log-level").Value.String()
	if err := installLogger(level); err != nil {
		return err
	}
	if err := config.InitConfiguration(cmd, configFile); err != nil {
		return err
	}
	if configured := config.GetLogLevel(); configured != level {
		return installLogger(configured)
	}
	return nil
}

func installLogger(level string) error {
	restoreLogger()
	restore, err := setupLogger(level)
	if err != nil {
		restoreLogger = func() {}
		return fmt.Errorf("setup logger: %w", err)
	}
	restoreLogger = restore
	return nil
}

// resultFile is the configured result file with the extension of the
// configured format.
func resultFile() (string, error) {
	format, err := config.GetOutputFormat()
	if err != nil {
		return "", err
	}
	return report.FileFor(config.GetResultFile(), format), nil
}

// cpuSweep returns the GOMAXPROCS values to test: only desired (capped at
// trueCPU) when it is set, otherwise every common value up to trueCPU.
func cpuSweep(desired, trueCPU int) []int {
	if desired > 0 {
		if desired > trueCPU {
			desired = trueCPU
		}
		return []int{desired}
	}
	var settings []int
	for _, v := range commonCPUs {
		if v <= trueCPU {
			settings = append(settings, v)
		}
	}
	return settings
}

func runBenchmarks(ctx context.Context) error {
	concurrencyConfigs, err := config.GetConcurrencyConfigs()
	if err != nil {
		return err
	}
	file, err := resultFile()
	if err != nil {
		return err
	}

	iterations := config.GetIterations()
	testDuration := config.GetTestDuration()
	capacity := config.GetCapacity()
	batch := config.GetFillDrainBatch()

	trueCPUCount := runtime.NumCPU()
	cpuSettings := cpuSweep(config.GetCPU(), trueCPUCount)
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(0))

	impls := getImplementations()
	// One fill-drain run plus one run per concurrency configuration.
	totalTests := len(cpuSettings) * iterations * len(impls) * (len(concurrencyConfigs) + 1)

	var bar *progressbar.ProgressBar
	if config.ProgressEnabled() {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}

	zap.S().Infow("starting benchmarks",
		"cpus", cpuSettings,
		"iterations", iterations,
		"duration", testDuration,
		"capacity", capacity,
		"implementations", len(impls),
		"total_runs", totalTests,
	)

	var allSessions []report.FullReport

	for _, cpus := range cpuSettings {
		runtime.GOMAXPROCS(cpus)
		sysInfo := report.GatherSystemInfo()
		sysInfo.NumCPU = cpus
		sysInfo.TrueCPU = trueCPUCount
		sysInfo.SimulatedCPUCount = cpus
		session := report.NewSession(sysInfo)

		fmt.Printf("\n=============================\n")
		fmt.Printf("GOMAXPROCS = %d\n", cpus)
		fmt.Printf("=============================\n")

		for iteration := 1; iteration <= iterations; iteration++ {
			fmt.Printf("  iteration %d/%d\n", iteration, iterations)
			for _, impl := range impls {
				if err := ctx.Err(); err != nil {
					return err
				}

				result, err := runFillDrain(ctx, impl, capacity, batch, testDuration)
				if err != nil {
					return err
				}
				session.Benchmarks = append(session.Benchmarks, result)
				printResult(result)
				advance(bar)

				for _, cfg := range concurrencyConfigs {
					result, err := runConcurrent(ctx, impl, capacity, cfg, testDuration)
					if err != nil {
						return err
					}
					session.Benchmarks = append(session.Benchmarks, result)
					printResult(result)
					advance(bar)
				}
			}
		}
		allSessions = append(allSessions, session)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if !config.ExportEnabled() {
		return nil
	}
	if err := report.Append(file, allSessions...); err != nil {
		zap.S().Errorw("cannot export results", "file", file, "error", err)
		return err
	}
	fmt.Printf("\nWrote results to %s\n", file)
	return nil
}

func runFillDrain(ctx context.Context, impl Implementation[*int, benchQueue], capacity uint64, batch int, testDuration time.Duration) (report.BenchmarkResult, error) {
	runtime.GC()
	q, err := impl.newQueue(capacity)
	if err != nil {
		return report.BenchmarkResult{}, fmt.Errorf("create %s: %w", impl.name, err)
	}

	consumed, elapsed := testbench.RunFillDrain(ctx, q, batch, testDuration, valueGenerator)
	zap.S().Debugw("fill-drain run done", "implementation", impl.name, "consumed", consumed, "elapsed", elapsed)

	return newResult(impl.name, report.ModeFillDrain, testbench.Config{NumProducers: 1, NumConsumers: 1},
		capacity, consumed, consumed, testDuration, elapsed), nil
}

func runConcurrent(ctx context.Context, impl Implementation[*int, benchQueue], capacity uint64, cfg testbench.Config, testDuration time.Duration) (report.BenchmarkResult, error) {
	runtime.GC()
	q, err := impl.newShared(capacity)
	if err != nil {
		return report.BenchmarkResult{}, fmt.Errorf("create %s: %w", impl.name, err)
	}

	produced, consumed, elapsed, err := testbench.RunTimedTest(ctx, q, cfg, testDuration, valueGenerator)
	if err != nil {
		return report.BenchmarkResult{}, fmt.Errorf("run %s: %w", impl.name, err)
	}
	if produced != consumed {
		zap.S().Warnw("queue lost messages", "implementation", impl.name, "produced", produced, "consumed", consumed)
	}

	return newResult(impl.name, report.ModeConcurrent, cfg, capacity, produced, consumed, testDuration, elapsed), nil
}

func newResult(name, mode string, cfg testbench.Config, capacity uint64, produced, consumed int64, testDuration, elapsed time.Duration) report.BenchmarkResult {
	return report.BenchmarkResult{
		Implementation:      name,
		Mode:                mode,
		NumProducers:        cfg.NumProducers,
		NumConsumers:        cfg.NumConsumers,
		Capacity:            capacity,
		NumMessages:         produced,
		NumMessagesConsumed: consumed,
		TestDuration:        testDuration.String(),
		ActualElapsed:       elapsed.String(),
		Throughput:          float64(consumed) / elapsed.Seconds(),
		Timestamp:           time.Now().Unix(),
		GoVersion:           runtime.Version(),
	}
}

func printResult(r report.BenchmarkResult) {
	fmt.Printf("    %-24s %-10s p=%-3d c=%-3d => produced=%d, consumed=%d, throughput=%.0f msg/s, took=%s\n",
		r.Implementation, r.Mode, r.NumProducers, r.NumConsumers,
		r.NumMessages, r.NumMessagesConsumed, r.Throughput, r.ActualElapsed)
}

func advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
