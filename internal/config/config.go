package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/i5heu/GoQueueClassics/internal/testbench"
)

const (
	prefix = "QUEUE_BENCH"

	logLevel      = "log_level"
	iterations    = "iter"
	duration      = "duration"
	capacity      = "capacity"
	cpu           = "cpu"
	concurrency   = "concurrency"
	highConc      = "high_concurrency"
	outputFormat  = "format"
	resultFile    = "jsonfile"
	export        = "export"
	progress      = "progress"
	fillDrainSize = "batch"

	defaultLogLevel     = "info"
	defaultIterations   = 5
	defaultDuration     = 5 * time.Second
	defaultCapacity     = 1024
	defaultFormat       = "json"
	defaultResultFile   = "test-results.json"
	defaultFillDrainLen = 256
)

// Output formats accepted by OutputFormat.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var defaultConcurrency = []testbench.Config{
	{NumProducers: 1, NumConsumers: 1},
	{NumProducers: 2, NumConsumers: 2},
	{NumProducers: 10, NumConsumers: 10},
	{NumProducers: 50, NumConsumers: 50},
}

var highConcurrency = []testbench.Config{
	{NumProducers: 100, NumConsumers: 100},
	{NumProducers: 250, NumConsumers: 250},
	{NumProducers: 500, NumConsumers: 500},
}

var v = viper.New()

// InitConfiguration reads the optional config file and the QUEUE_BENCH_*
// environment, then binds the command's flags to them.
func InitConfiguration(cmd *cobra.Command, configFile string) error {
	v = viper.New()

	v.SetEnvPrefix(prefix)
	v.AutomaticEnv() // read in environment variables that match

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)

		err := v.ReadInConfig()
		if err != nil {
			zap.S().Errorw("cannot read config file", "error", err, "config file", configFile)
			return fmt.Errorf("fail to read config file %q: %w", configFile, err)
		}
		zap.S().Infof("using config file: %v", v.ConfigFileUsed())
	}

	// Bind the current command's flags to viper
	bindFlags(cmd, v)

	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// replace - with _ to match yaml format
		flagName := f.Name
		if strings.Contains(f.Name, "-") {
			// Environment variables can't have dashes in them, so bind them to their equivalent
			// keys with underscores.
			flagName = strings.ReplaceAll(f.Name, "-", "_")
		}
		_ = v.BindEnv(flagName, fmt.Sprintf("%s_%s", prefix, strings.ToUpper(flagName)))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		// and the other way around.
		if !f.Changed && v.IsSet(flagName) {
			val := v.Get(flagName)
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
		} else if f.Changed {
			v.Set(flagName, f.Value.String())
		}
	})
}

func GetLogLevel() string {
	if !v.IsSet(logLevel) {
		return defaultLogLevel
	}
	return v.GetString(logLevel)
}

// GetIterations returns how many times every configuration is run.
func GetIterations() int {
	if n := v.GetInt(iterations); n > 0 {
		return n
	}
	return defaultIterations
}

func GetTestDuration() time.Duration {
	if d := v.GetDuration(duration); d > 0 {
		return d
	}
	return defaultDuration
}

// GetCapacity is the capacity handed to bounded queues.
func GetCapacity() uint64 {
	if c := v.GetUint64(capacity); c > 0 {
		return c
	}
	return defaultCapacity
}

// GetFillDrainBatch is the number of values enqueued per single-thread round.
func GetFillDrainBatch() int {
	if b := v.GetInt(fillDrainSize); b > 0 {
		return b
	}
	return defaultFillDrainLen
}

// GetCPU returns the single GOMAXPROCS value to test, or 0 for the default sweep.
func GetCPU() int {
	return v.GetInt(cpu)
}

// GetConcurrencyConfigs returns the producer/consumer pairs to run.
// An explicit list ("2x2,10x4") wins over the defaults.
func GetConcurrencyConfigs() ([]testbench.Config, error) {
	if raw := strings.TrimSpace(v.GetString(concurrency)); raw != "" {
		return ParseConcurrency(raw)
	}
	configs := append([]testbench.Config{}, defaultConcurrency...)
	if v.GetBool(highConc) {
		configs = append(configs, highConcurrency...)
	}
	return configs, nil
}

// ParseConcurrency parses a comma separated list of PRODUCERSxCONSUMERS pairs.
func ParseConcurrency(raw string) ([]testbench.Config, error) {
	var configs []testbench.Config
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var c testbench.Config
		if _, err := fmt.Sscanf(part, "%dx%d", &c.NumProducers, &c.NumConsumers); err != nil {
			return nil, fmt.Errorf("invalid concurrency %q, want PRODUCERSxCONSUMERS: %w", part, err)
		}
		if c.NumProducers < 1 || c.NumConsumers < 1 {
			return nil, fmt.Errorf("invalid concurrency %q: producers and consumers must be positive", part)
		}
		configs = append(configs, c)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("empty concurrency list %q", raw)
	}
	return configs, nil
}

// GetOutputFormat returns FormatJSON or FormatYAML.
func GetOutputFormat() (string, error) {
	if !v.IsSet(outputFormat) {
		return defaultFormat, nil
	}
	switch f := strings.ToLower(v.GetString(outputFormat)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

func GetResultFile() string {
	if f := v.GetString(resultFile); f != "" {
		return f
	}
	return defaultResultFile
}

func ExportEnabled() bool {
	return v.GetBool(export)
}

func ProgressEnabled() bool {
	return v.GetBool(progress)
}
