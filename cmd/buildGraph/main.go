package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/i5heu/GoQueueClassics/internal/logger"
	"github.com/i5heu/GoQueueClassics/internal/report"
)

var (
	resultFile   string
	outputPrefix string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:          "buildGraph",
	Short:        "Render benchmark graphs from stored sessions",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		restore, err := logger.Setup(logLevel)
		if err != nil {
			return err
		}
		defer restore()

		sessions, err := report.Load(resultFile)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions found in %s", resultFile)
		}
		return renderAll(sessions, outputPrefix)
	},
}

func init() {
	rootCmd.Flags().StringVar(&resultFile, "jsonfile", "test-results.json", "Path to the JSON or YAML file containing test sessions")
	rootCmd.Flags().StringVar(&outputPrefix, "out", "benchmark_graph", "Output graph image filename prefix")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// renderAll writes one concurrency graph and one fill-drain graph per CPU
// count found in sessions. A graph that fails is logged and skipped.
func renderAll(sessions []report.FullReport, prefix string) error {
	written := 0

	for cpus, implMap := range groupConcurrentByCPU(sessions) {
		filename := fmt.Sprintf("%s_%d.png", prefix, cpus)
		p, err := concurrencyPlot(cpus, implMap)
		if err == nil {
			err = p.Save(12*vg.Inch, 9*vg.Inch, filename)
		}
		if err != nil {
			zap.S().Errorw("cannot render concurrency graph", "cpus", cpus, "error", err)
			continue
		}
		written++
		fmt.Printf("Graph for %d CPU(s) saved to %s\n", cpus, filename)
	}

	for cpus, implMap := range groupFillDrainByCPU(sessions) {
		filename := fmt.Sprintf("%s_filldrain_%d.png", prefix, cpus)
		p, err := fillDrainPlot(cpus, implMap)
		if err == nil {
			err = p.Save(12*vg.Inch, 6*vg.Inch, filename)
		}
		if err != nil {
			zap.S().Errorw("cannot render fill-drain graph", "cpus", cpus, "error", err)
			continue
		}
		written++
		fmt.Printf("Fill-drain graph for %d CPU(s) saved to %s\n", cpus, filename)
	}

	if written == 0 {
		return fmt.Errorf("no graph could be rendered")
	}
	return nil
}
