package benchmarks

import (
	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/timing/config"
	"github.com/sarchlab/r10ksim/tracegen"
)

// GetWorkloads returns the standard set of synthetic workloads. Each
// workload stresses one part of the core.
func GetWorkloads() []Workload {
	return []Workload{
		referenceTrace(),
		independentOps(),
		dependencyChain(),
		stationPressure(),
		freeListPressure(),
		randomTrace(),
	}
}

// GetCoreWorkloads returns a small set for quick validation.
func GetCoreWorkloads() []Workload {
	return []Workload{
		referenceTrace(),
		dependencyChain(),
		stationPressure(),
	}
}

// 1. Reference - the 8-instruction calibration trace
func referenceTrace() Workload {
	return Workload{
		Name:        "reference",
		Description: "8-instruction calibration trace - 18 cycles on the reference core",
		Trace:       insts.ReferenceTrace(),
	}
}

// 2. Independent Ops - no true dependencies, rotating destinations
func independentOps() Workload {
	regs := insts.ReferenceArchRegs()
	trace := make([]insts.Instruction, 64)
	for i := range trace {
		trace[i] = insts.Instruction{
			FU:      i % 3,
			Dest:    regs[i%len(regs)],
			Latency: 1,
		}
	}

	return Workload{
		Name:        "independent_ops",
		Description: "64 independent single-cycle ops - measures dispatch/retire throughput",
		Trace:       trace,
	}
}

// 3. Dependency Chain - every op reads the previous result
func dependencyChain() Workload {
	trace := make([]insts.Instruction, 32)
	for i := range trace {
		trace[i] = insts.Instruction{
			FU:      0,
			Dest:    insts.IntReg(1),
			Src1:    insts.IntReg(1),
			Latency: 1,
		}
	}

	return Workload{
		Name:        "dependency_chain",
		Description: "32 dependent ops (r1 = r1 op r1) - measures wakeup latency",
		Trace:       trace,
	}
}

// 4. Station Pressure - everything wants the single fu0 station
func stationPressure() Workload {
	regs := insts.ReferenceArchRegs()
	trace := make([]insts.Instruction, 32)
	for i := range trace {
		trace[i] = insts.Instruction{
			FU:      0,
			Dest:    regs[i%len(regs)],
			Latency: 4,
		}
	}

	return Workload{
		Name:        "station_pressure",
		Description: "32 independent 4-cycle ops on one unit - measures station and port stalls",
		Trace:       trace,
	}
}

// 5. Free List Pressure - a long op blocks retirement on a core with two
// spare physical registers
func freeListPressure() Workload {
	regs := insts.ReferenceArchRegs()
	trace := []insts.Instruction{
		{FU: 2, Dest: insts.FloatReg(0), Latency: 20},
	}
	for i := 0; i < 16; i++ {
		trace = append(trace, insts.Instruction{
			FU:      1,
			Dest:    regs[1+i%(len(regs)-1)],
			Latency: 1,
		})
	}

	core := config.DefaultCoreConfig()
	core.PhysRegs = len(core.ArchRegs) + 2

	return Workload{
		Name:        "free_list_pressure",
		Description: "20-cycle head op, 16 writers, 2 spare registers - measures rename stalls",
		Trace:       trace,
		Core:        core,
	}
}

// 6. Random - generated mix over the reference registers
func randomTrace() Workload {
	cfg := tracegen.DefaultConfig()
	cfg.Count = 500
	cfg.Seed = 42

	g := tracegen.NewGenerator(cfg)
	trace := make([]insts.Instruction, cfg.Count)
	for i := range trace {
		trace[i] = g.Next()
	}

	return Workload{
		Name:        "random",
		Description: "500 generated instructions (seed 42) - general mix",
		Trace:       trace,
	}
}
