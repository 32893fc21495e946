package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoQueueClassics/internal/config"
	"github.com/i5heu/GoQueueClassics/internal/testbench"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bench"}
	cmd.Flags().Int("iter", 5, "")
	cmd.Flags().Duration("duration", 5*time.Second, "")
	cmd.Flags().Uint64("capacity", 1024, "")
	cmd.Flags().String("concurrency", "", "")
	cmd.Flags().Bool("high-concurrency", false, "")
	cmd.Flags().String("format", "json", "")
	cmd.Flags().String("log-level", "info", "")
	return cmd
}

func TestInitConfiguration_Defaults(t *testing.T) {
	cmd := newCmd()
	require.NoError(t, config.InitConfiguration(cmd, ""))

	assert.Equal(t, 5, config.GetIterations())
	assert.Equal(t, 5*time.Second, config.GetTestDuration())
	assert.Equal(t, uint64(1024), config.GetCapacity())
	assert.Equal(t, "info", config.GetLogLevel())
	assert.Equal(t, "test-results.json", config.GetResultFile())
	assert.False(t, config.ExportEnabled())

	format, err := config.GetOutputFormat()
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, format)

	configs, err := config.GetConcurrencyConfigs()
	require.NoError(t, err)
	assert.Len(t, configs, 4)
}

func TestInitConfiguration_FlagsWin(t *testing.T) {
	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("iter", "2"))
	require.NoError(t, cmd.Flags().Set("high-concurrency", "true"))
	require.NoError(t, cmd.Flags().Set("format", "YAML"))
	require.NoError(t, config.InitConfiguration(cmd, ""))

	assert.Equal(t, 2, config.GetIterations())
	configs, err := config.GetConcurrencyConfigs()
	require.NoError(t, err)
	assert.Len(t, configs, 7)

	format, err := config.GetOutputFormat()
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, format)
}

func TestInitConfiguration_Environment(t *testing.T) {
	t.Setenv("QUEUE_BENCH_CAPACITY", "16")
	t.Setenv("QUEUE_BENCH_LOG_LEVEL", "debug")

	cmd := newCmd()
	require.NoError(t, config.InitConfiguration(cmd, ""))

	assert.Equal(t, uint64(16), config.GetCapacity())
	assert.Equal(t, "debug", config.GetLogLevel())

	// The flag itself now carries the environment value.
	capFlag, err := cmd.Flags().GetUint64("capacity")
	require.NoError(t, err)
	assert.Equal(t, uint64(16), capFlag)
}

func TestInitConfiguration_ConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bench.yaml")
	content := "duration: 250ms\nconcurrency: 1x2, 3x4\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cmd := newCmd()
	require.NoError(t, config.InitConfiguration(cmd, file))

	assert.Equal(t, 250*time.Millisecond, config.GetTestDuration())
	configs, err := config.GetConcurrencyConfigs()
	require.NoError(t, err)
	assert.Equal(t, []testbench.Config{
		{NumProducers: 1, NumConsumers: 2},
		{NumProducers: 3, NumConsumers: 4},
	}, configs)
}

func TestInitConfiguration_MissingFile(t *testing.T) {
	err := config.InitConfiguration(newCmd(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetOutputFormat_Unknown(t *testing.T) {
	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("format", "xml"))
	require.NoError(t, config.InitConfiguration(cmd, ""))

	_, err := config.GetOutputFormat()
	assert.Error(t, err)
}

func TestParseConcurrency(t *testing.T) {
	configs, err := config.ParseConcurrency("2x2, 10x1")
	require.NoError(t, err)
	assert.Equal(t, []testbench.Config{
		{NumProducers: 2, NumConsumers: 2},
		{NumProducers: 10, NumConsumers: 1},
	}, configs)

	for _, bad := range []string{"", ",", "2", "0x1", "ax2"} {
		_, err := config.ParseConcurrency(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
