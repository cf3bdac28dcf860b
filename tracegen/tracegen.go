// Package tracegen generates random instruction traces for the timing core.
package tracegen

import (
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/r10ksim/insts"
)

// Config controls trace generation.
type Config struct {
	// Count is the number of instructions to generate.
	Count int
	// Seed makes generation reproducible.
	Seed uint64
	// FUClasses is the number of functional-unit classes; FU is drawn from
	// 0..FUClasses-1.
	FUClasses int
	// MaxLatency is the largest latency drawn; latencies are 0..MaxLatency.
	MaxLatency uint64
	// StoreRatio is the fraction of instructions without a destination.
	// Those always have two sources.
	StoreRatio float64
	// ArchRegs is the register pool operands are drawn from.
	ArchRegs []insts.Reg
}

// DefaultConfig returns a configuration matching the reference core: 1000
// instructions over 3 functional-unit classes, latency up to 10, roughly
// 3 in 11 instructions without destination.
func DefaultConfig() Config {
	return Config{
		Count:      1000,
		Seed:       1,
		FUClasses:  3,
		MaxLatency: 10,
		StoreRatio: 3.0 / 11.0,
		ArchRegs:   insts.ReferenceArchRegs(),
	}
}

// Validate checks that the configuration can generate a trace.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must be >= 0")
	}
	if c.FUClasses < 1 {
		return fmt.Errorf("fu classes must be > 0")
	}
	if c.StoreRatio < 0 || c.StoreRatio > 1 {
		return fmt.Errorf("store ratio must be within [0, 1]")
	}
	if len(c.ArchRegs) == 0 {
		return fmt.Errorf("no architectural registers to draw from")
	}
	return nil
}

// Generator draws instructions from a seeded source.
type Generator struct {
	config Config
	rng    *rand.Rand
}

// NewGenerator creates a generator. The config must be valid.
func NewGenerator(config Config) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15)),
	}
}

// Next draws one instruction.
func (g *Generator) Next() insts.Instruction {
	inst := insts.Instruction{
		FU: g.rng.IntN(g.config.FUClasses),
	}

	if g.rng.Float64() < g.config.StoreRatio {
		inst.Src1 = g.reg()
		inst.Src2 = g.reg()
	} else {
		inst.Dest = g.reg()
		inst.Src1 = g.regOrNone()
		inst.Src2 = g.regOrNone()
	}

	inst.Latency = g.rng.Uint64N(g.config.MaxLatency + 1)

	return inst
}

func (g *Generator) reg() insts.Reg {
	return g.config.ArchRegs[g.rng.IntN(len(g.config.ArchRegs))]
}

// regOrNone picks uniformly among the registers and "none".
func (g *Generator) regOrNone() insts.Reg {
	i := g.rng.IntN(len(g.config.ArchRegs) + 1)
	if i == len(g.config.ArchRegs) {
		return insts.NoReg
	}
	return g.config.ArchRegs[i]
}

// Generate returns config.Count instructions.
func Generate(config Config) ([]insts.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := NewGenerator(config)
	trace := make([]insts.Instruction, config.Count)
	for i := range trace {
		trace[i] = g.Next()
	}
	return trace, nil
}
