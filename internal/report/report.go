package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"sigs.k8s.io/yaml"
)

// Modes a BenchmarkResult can be measured in.
const (
	ModeConcurrent = "concurrent"
	ModeFillDrain  = "fill-drain"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation      string  `json:"implementation"`
	Mode                string  `json:"mode"`
	NumProducers        int     `json:"num_producers"`
	NumConsumers        int     `json:"num_consumers"`
	Capacity            uint64  `json:"capacity"`
	NumMessages         int64   `json:"num_messages"`          // produced count
	NumMessagesConsumed int64   `json:"num_messages_consumed"` // consumed count
	TestDuration        string  `json:"test_duration"`         // e.g. "10s"
	ActualElapsed       string  `json:"actual_elapsed"`        // measured time
	Throughput          float64 `json:"throughput_msgs_sec"`   // based on consumed count
	Timestamp           int64   `json:"timestamp"`
	GoVersion           string  `json:"go_version"`
}

// NsPerMessage returns the elapsed time divided by the consumed count.
func (b BenchmarkResult) NsPerMessage() (float64, error) {
	if b.NumMessagesConsumed == 0 {
		return 0, errors.New("no messages consumed")
	}
	dur, err := time.ParseDuration(b.ActualElapsed)
	if err != nil {
		return 0, fmt.Errorf("invalid elapsed %q: %w", b.ActualElapsed, err)
	}
	return float64(dur.Nanoseconds()) / float64(b.NumMessagesConsumed), nil
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU            int     `json:"num_cpu"`
	TrueCPU           int     `json:"true_cpu,omitempty"`
	SimulatedCPUCount int     `json:"simulated_cpu_count,omitempty"`
	CPUModel          string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz       float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH            string  `json:"go_arch"`
	TotalMemory       uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionID   string            `json:"session_id"`
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// NewSession starts an empty report stamped with a fresh id and the current time.
func NewSession(info SystemInfo) FullReport {
	return FullReport{
		SessionID:   uuid.New().String(),
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  info,
	}
}

// GatherSystemInfo collects basic CPU and memory details. Fields gopsutil
// cannot read on this platform are left empty.
func GatherSystemInfo() SystemInfo {
	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      runtime.NumCPU(),
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      runtime.GOARCH,
		TotalMemory: totalMemory,
	}
}

// Load reads the sessions stored in file. JSON and YAML are told apart by
// the file extension. A missing file yields no sessions and no error.
func Load(file string) ([]FullReport, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", file, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var sessions []FullReport
	if isYAML(file) {
		// sigs.k8s.io/yaml converts to JSON first, so the json tags apply.
		err = yaml.Unmarshal(data, &sessions)
	} else {
		err = json.Unmarshal(data, &sessions)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", file, err)
	}
	return sessions, nil
}

// Append adds sessions to the ones already stored in file and writes the result back.
func Append(file string, sessions ...FullReport) error {
	previous, err := Load(file)
	if err != nil {
		return err
	}
	return Save(file, append(previous, sessions...))
}

// Save overwrites file with sessions, as YAML or indented JSON depending on the extension.
func Save(file string, sessions []FullReport) error {
	var (
		data []byte
		err  error
	)
	if isYAML(file) {
		data, err = yaml.Marshal(sessions)
	} else {
		data, err = json.MarshalIndent(sessions, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", file, err)
	}
	return nil
}

// FileFor returns base with the extension matching format ("json" or "yaml").
func FileFor(base, format string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if strings.EqualFold(format, "yaml") {
		return stem + ".yaml"
	}
	return stem + ".json"
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
