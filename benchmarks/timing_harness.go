// Package benchmarks runs synthetic workloads through the out-of-order core
// and reports timing statistics.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/timing/config"
	"github.com/sarchlab/r10ksim/timing/core"
	"github.com/sarchlab/r10ksim/timing/pipeline"
)

// BenchmarkResult holds the timing results for a single workload run.
type BenchmarkResult struct {
	// Name identifies the workload
	Name string `json:"name"`

	// Description explains what the workload measures
	Description string `json:"description"`

	// TraceLength is the number of instructions in the trace
	TraceLength int `json:"trace_length"`

	// SimulatedCycles is the total cycle count from the timing simulator
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of retired instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// IPC is instructions per cycle
	IPC float64 `json:"ipc"`

	// StallCycles is the number of cycles dispatch stalled on a resource
	StallCycles uint64 `json:"stall_cycles"`

	ROBFullStalls  uint64 `json:"rob_full_stalls"`
	FreeListStalls uint64 `json:"free_list_stalls"`
	StationStalls  uint64 `json:"station_stalls"`

	// FUConflicts counts executing instructions that lost their port
	FUConflicts uint64 `json:"fu_conflicts"`

	// Drained is false if the run hit the cycle limit first
	Drained bool `json:"drained"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Workload defines a single benchmark trace.
type Workload struct {
	// Name identifies the workload
	Name string

	// Description explains what the workload measures
	Description string

	// Trace is the instruction trace to run
	Trace []insts.Instruction

	// Core overrides the harness core configuration when set
	Core *config.CoreConfig
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Core is the core configuration workloads run on
	Core *config.CoreConfig

	// MaxCycles stops a run that has not drained (0 = no limit)
	MaxCycles uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Core:      config.DefaultCoreConfig(),
		MaxCycles: 1_000_000,
		Output:    os.Stdout,
		Verbose:   false,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config    HarnessConfig
	workloads []Workload
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:    config,
		workloads: []Workload{},
	}
}

// AddWorkload adds a workload to the harness.
func (h *Harness) AddWorkload(w Workload) {
	h.workloads = append(h.workloads, w)
}

// AddWorkloads adds multiple workloads to the harness.
func (h *Harness) AddWorkloads(workloads []Workload) {
	h.workloads = append(h.workloads, workloads...)
}

// RunAll executes all workloads and returns results. It stops at the first
// workload whose core configuration is invalid.
func (h *Harness) RunAll() ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(h.workloads))

	for _, w := range h.workloads {
		result, err := h.runWorkload(w)
		if err != nil {
			return results, fmt.Errorf("workload %s: %w", w.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// runWorkload executes a single workload on a fresh core.
func (h *Harness) runWorkload(w Workload) (BenchmarkResult, error) {
	cfg := h.config.Core
	if w.Core != nil {
		cfg = w.Core
	}
	if cfg == nil {
		cfg = config.DefaultCoreConfig()
	}

	params, err := cfg.Params()
	if err != nil {
		return BenchmarkResult{}, err
	}

	pipe, err := pipeline.NewEngine(params, w.Trace)
	if err != nil {
		return BenchmarkResult{}, err
	}

	c := core.NewBuilder().
		WithCycleBudget(h.config.MaxCycles).
		WithStopOnDrain(true).
		Build("Core", pipe)

	// Run simulation and measure time
	start := time.Now()
	if err := c.Run(); err != nil {
		return BenchmarkResult{}, err
	}
	wallTime := time.Since(start)

	stats := c.Stats()
	result := BenchmarkResult{
		Name:                w.Name,
		Description:         w.Description,
		TraceLength:         len(w.Trace),
		SimulatedCycles:     stats.Cycles,
		InstructionsRetired: stats.Retired,
		CPI:                 stats.CPI(),
		IPC:                 stats.IPC(),
		StallCycles:         stats.Stalls(),
		ROBFullStalls:       stats.ROBFullStalls,
		FreeListStalls:      stats.FreeListStalls,
		StationStalls:       stats.StationStalls,
		FUConflicts:         stats.FUConflicts,
		Drained:             c.Drained(),
		WallTime:            wallTime,
	}

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d cycles\n", w.Name, stats.Cycles)
	}

	return result, nil
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== R10K Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Trace Length: %d\n", r.TraceLength)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  IPC:                  %.3f\n", r.IPC)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Stalls ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Total:                %d\n", r.StallCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  ROB Full:             %d\n", r.ROBFullStalls)
		_, _ = fmt.Fprintf(h.config.Output, "  Free List Empty:      %d\n", r.FreeListStalls)
		_, _ = fmt.Fprintf(h.config.Output, "  No Station:           %d\n", r.StationStalls)
		_, _ = fmt.Fprintf(h.config.Output, "  FU Conflicts:         %d\n", r.FUConflicts)
		if !r.Drained {
			_, _ = fmt.Fprintln(h.config.Output, "  WARNING: cycle limit reached before drain")
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,trace_length,cycles,instructions,cpi,ipc,stalls,rob_full,free_list,station,fu_conflicts,drained")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%.3f,%.3f,%d,%d,%d,%d,%d,%t\n",
			r.Name,
			r.TraceLength,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.IPC,
			r.StallCycles,
			r.ROBFullStalls,
			r.FreeListStalls,
			r.StationStalls,
			r.FUConflicts,
			r.Drained,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// Version of the simulator
	Version string `json:"version"`

	// Core is the harness core configuration
	Core *config.CoreConfig `json:"core"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageCPI is the average cycles per instruction
	AverageCPI float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// Version is reported in JSON output.
const Version = "0.1.0"

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	var totalCycles, totalInstructions uint64
	var totalWallTime time.Duration
	for _, r := range results {
		totalCycles += r.SimulatedCycles
		totalInstructions += r.InstructionsRetired
		totalWallTime += r.WallTime
	}

	avgCPI := float64(0)
	if totalInstructions > 0 {
		avgCPI = float64(totalCycles) / float64(totalInstructions)
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
			Core:      h.config.Core,
		},
		Results: results,
		Summary: ReportSummary{
			TotalBenchmarks:   len(results),
			TotalCycles:       totalCycles,
			TotalInstructions: totalInstructions,
			AverageCPI:        avgCPI,
			TotalWallTime:     totalWallTime,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
