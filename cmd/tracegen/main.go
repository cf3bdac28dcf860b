// Command tracegen writes a random instruction trace.
//
// Usage:
//
//	go run ./cmd/tracegen [flags]
//
// Flags:
//
//	-n            Number of instructions (default 1000)
//	-seed         Random seed (default 1)
//	-fu           Number of functional-unit classes (default 3)
//	-max-latency  Largest instruction latency (default 10)
//	-store-ratio  Fraction of instructions without a destination
//	-o            Output file (default: stdout)
//
// Example:
//
//	go run ./cmd/tracegen -n 200 -seed 7 -o r10k.trace
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/r10ksim/loader"
	"github.com/sarchlab/r10ksim/tracegen"
)

func main() {
	defaults := tracegen.DefaultConfig()

	count := flag.Int("n", defaults.Count, "Number of instructions")
	seed := flag.Uint64("seed", defaults.Seed, "Random seed")
	fuClasses := flag.Int("fu", defaults.FUClasses, "Number of functional-unit classes")
	maxLatency := flag.Uint64("max-latency", defaults.MaxLatency, "Largest instruction latency")
	storeRatio := flag.Float64("store-ratio", defaults.StoreRatio, "Fraction of instructions without a destination")
	outPath := flag.String("o", "", "Output file (default: stdout)")
	flag.Parse()

	cfg := defaults
	cfg.Count = *count
	cfg.Seed = *seed
	cfg.FUClasses = *fuClasses
	cfg.MaxLatency = *maxLatency
	cfg.StoreRatio = *storeRatio

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			atexit.Exit(1)
		}
		atexit.Register(func() { _ = f.Close() })
		out = f
	}

	if err := generate(cfg, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func generate(cfg tracegen.Config, out io.Writer) error {
	trace, err := tracegen.Generate(cfg)
	if err != nil {
		return err
	}
	return loader.Write(out, trace)
}
