// Command benchmark runs the r10ksim timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv         Output results in CSV format (default: human-readable)
//	-json        Output results in JSON format
//	-config      Core configuration file (JSON or YAML)
//	-max-cycles  Cycle limit per workload
//
// Example:
//
//	# Run all workloads with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/r10ksim/benchmarks"
	"github.com/sarchlab/r10ksim/timing/config"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	configPath := flag.String("config", "", "Core configuration file (JSON or YAML)")
	maxCycles := flag.Uint64("max-cycles", 1_000_000, "Cycle limit per workload")
	flag.Parse()

	harnessConfig := benchmarks.DefaultConfig()
	harnessConfig.MaxCycles = *maxCycles
	harnessConfig.Output = os.Stdout

	if *configPath != "" {
		core, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading core config: %v\n", err)
			atexit.Exit(1)
		}
		harnessConfig.Core = core
	}

	harness := benchmarks.NewHarness(harnessConfig)
	harness.AddWorkloads(benchmarks.GetWorkloads())

	if !*csvOutput && !*jsonOutput {
		fmt.Println("R10K Timing Benchmark Harness")
		fmt.Println("=============================")
		fmt.Printf("Physical registers: %d\n", harnessConfig.Core.PhysRegs)
		fmt.Printf("ROB entries:        %d\n", harnessConfig.Core.ROBEntries)
		fmt.Printf("Stations:           %d\n", len(harnessConfig.Core.Stations))
		fmt.Println("")
	}

	results, err := harness.RunAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			atexit.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)

		fmt.Println("=== Summary ===")
		fmt.Println("")
		fmt.Println("Expected characteristics:")
		fmt.Println("- reference: 18 cycles, one station stall")
		fmt.Println("- independent_ops: CPI close to 1")
		fmt.Println("- dependency_chain: Higher CPI from wakeup latency")
		fmt.Println("- station_pressure: Station stalls and port conflicts")
		fmt.Println("- free_list_pressure: Stalls on physical register exhaustion")
		fmt.Println("- random: Balanced characteristics")
	}

	atexit.Exit(0)
}
