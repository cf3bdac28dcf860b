// Package core runs the out-of-order pipeline as an akita component.
package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/r10ksim/timing/pipeline"
)

// HookPosCycle marks the end of a simulated cycle. The hook item is the
// cycle's pipeline.CycleEvents.
var HookPosCycle = &sim.HookPos{Name: "Core Cycle"}

// Core is a ticking component that advances the pipeline one cycle per tick.
type Core struct {
	*sim.TickingComponent

	pipe *pipeline.Engine

	cycleBudget uint64
	stopOnDrain bool
	finished    bool
}

// Tick simulates one cycle. It returns false once the run is over.
func (c *Core) Tick() (madeProgress bool) {
	if c.done() {
		c.finish()
		return false
	}

	ev := c.pipe.Tick()
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosCycle,
		Item:   ev,
	})

	return true
}

func (c *Core) done() bool {
	if c.cycleBudget > 0 && c.pipe.Stats().Cycles >= c.cycleBudget {
		return true
	}

	return c.stopOnDrain && c.pipe.Drained()
}

func (c *Core) finish() {
	if c.finished {
		return
	}
	c.finished = true

	stats := c.pipe.Stats()
	Trace("CoreFinished",
		"Core", c.Name(),
		"Cycles", stats.Cycles,
		"Retired", stats.Retired,
		"Drained", c.pipe.Drained(),
	)
}

// Run schedules the first tick and runs the simulation engine until the
// core stops ticking.
func (c *Core) Run() error {
	c.TickNow()
	return c.Engine.Run()
}

// Pipeline returns the simulated pipeline.
func (c *Core) Pipeline() *pipeline.Engine {
	return c.pipe
}

// Stats returns the pipeline statistics.
func (c *Core) Stats() pipeline.Statistics {
	return c.pipe.Stats()
}

// Drained returns true if the whole trace has retired.
func (c *Core) Drained() bool {
	return c.pipe.Drained()
}
