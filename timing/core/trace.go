package core

import (
	"context"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/r10ksim/timing/pipeline"
)

// LevelTrace sits between info and warn so per-cycle records can be enabled
// without debug noise.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

type traceHook struct {
	logger *slog.Logger
}

// NewTraceHook returns a hook that logs every cycle's pipeline events at
// LevelTrace. A nil logger means the default logger.
func NewTraceHook(logger *slog.Logger) sim.Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return &traceHook{logger: logger}
}

// Func implements sim.Hook.
func (h *traceHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosCycle {
		return
	}

	ev, ok := ctx.Item.(pipeline.CycleEvents)
	if !ok {
		return
	}

	h.logger.Log(context.Background(), LevelTrace, "Cycle",
		slog.Uint64("Cycle", ev.Cycle),
		slog.Int("Retired", ev.Retired),
		slog.Int("Completed", ev.Completed),
		slog.Any("Started", ev.Started),
		slog.Int("Issued", ev.Issued),
		slog.Int("Dispatched", ev.Dispatched),
		slog.String("Stall", ev.Stall.String()),
		slog.Uint64("FreedTag", uint64(ev.FreedTag)),
	)
}
