// Package main provides the entry point for r10ksim, a cycle-accurate
// out-of-order core simulator driven by instruction traces.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/r10ksim/loader"
	"github.com/sarchlab/r10ksim/report"
	"github.com/sarchlab/r10ksim/timing/config"
	"github.com/sarchlab/r10ksim/timing/core"
	"github.com/sarchlab/r10ksim/timing/pipeline"
)

var (
	configPath = flag.String("config", "", "Path to core configuration file (JSON or YAML)")
	cycles     = flag.Uint64("cycles", 0, "Run exactly this many cycles")
	drain      = flag.Bool("drain", false, "Stop once every instruction has retired")
	maxCycles  = flag.Uint64("max-cycles", 1_000_000, "Cycle limit when running until drained")
	verbose    = flag.Bool("v", false, "Log every cycle")
	logPath    = flag.String("log", "", "Write logs as JSON to this file instead of stderr")
)

type options struct {
	tracePath  string
	configPath string
	cycles     uint64
	drain      bool
	maxCycles  uint64
	verbose    bool
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: r10ksim [options] <trace>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	if err := setupLogger(*logPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	opts := options{
		tracePath:  flag.Arg(0),
		configPath: *configPath,
		cycles:     *cycles,
		drain:      *drain,
		maxCycles:  *maxCycles,
		verbose:    *verbose,
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func setupLogger(path string, verbose bool) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	atexit.Register(func() { _ = f.Close() })

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, opts)))
	return nil
}

func loadConfig(path string) (*config.CoreConfig, error) {
	if path == "" {
		return config.DefaultCoreConfig(), nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildCore picks the stopping rule: a fixed cycle count, run until drained
// under a limit, or both.
func buildCore(opts options, pipe *pipeline.Engine) *core.Core {
	builder := core.NewBuilder()

	switch {
	case opts.cycles > 0:
		builder = builder.WithCycleBudget(opts.cycles).WithStopOnDrain(opts.drain)
	default:
		builder = builder.WithCycleBudget(opts.maxCycles).WithStopOnDrain(true)
	}

	return builder.Build("Core", pipe)
}

func run(opts options, out io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}

	trace, err := loader.Load(opts.tracePath)
	if err != nil {
		return err
	}
	if trace.Dropped > 0 {
		slog.Debug("TraceLinesDropped",
			"Path", opts.tracePath,
			"Dropped", trace.Dropped,
		)
	}
	slog.Info("TraceLoaded",
		"Path", opts.tracePath,
		"Instructions", len(trace.Insts),
	)

	pipe, err := pipeline.NewEngine(params, trace.Insts)
	if err != nil {
		return err
	}

	c := buildCore(opts, pipe)
	if opts.verbose {
		c.AcceptHook(core.NewTraceHook(nil))
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if err := report.Render(out, pipe.Snapshot()); err != nil {
		return err
	}
	if err := report.Summary(out, pipe.Stats()); err != nil {
		return err
	}

	if !pipe.Drained() {
		slog.Warn("NotDrained",
			"Cycles", pipe.Stats().Cycles,
			"Retired", pipe.Stats().Retired,
			"TraceLength", pipe.TraceLen(),
		)
	}

	return nil
}
