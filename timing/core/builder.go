package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/r10ksim/timing/pipeline"
)

// Builder can create new cores.
type Builder struct {
	engine      sim.Engine
	freq        sim.Freq
	cycleBudget uint64
	stopOnDrain bool
}

// NewBuilder returns a builder for a 1 GHz core.
func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine. A serial engine is created if none is set.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithCycleBudget stops the core after the given number of cycles.
// Zero means no budget.
func (b Builder) WithCycleBudget(cycles uint64) Builder {
	b.cycleBudget = cycles
	return b
}

// WithStopOnDrain stops the core once every trace instruction has retired.
func (b Builder) WithStopOnDrain(stop bool) Builder {
	b.stopOnDrain = stop
	return b
}

// Build creates a core that drives the given pipeline. Without a cycle
// budget the core always stops on drain.
func (b Builder) Build(name string, pipe *pipeline.Engine) *Core {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	c := &Core{
		pipe:        pipe,
		cycleBudget: b.cycleBudget,
		stopOnDrain: b.stopOnDrain || b.cycleBudget == 0,
	}
	c.TickingComponent = sim.NewTickingComponent(name, engine, b.freq, c)

	return c
}
