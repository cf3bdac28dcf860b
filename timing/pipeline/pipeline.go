// Package pipeline provides the register-renaming out-of-order core for
// cycle-accurate timing simulation.
//
// The core follows the R10K organization: a reorder buffer, a map table
// from architectural to physical registers, a free list of physical
// registers and a pool of reservation stations. Each cycle runs the stages
// Retire, Complete, Execute, Issue and Dispatch in that order.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/sarchlab/r10ksim/insts"
)

var (
	// ErrTooFewPhysRegs is returned when the physical register file cannot
	// hold one register per architectural register plus at least one spare.
	ErrTooFewPhysRegs = errors.New("physical register count must exceed architectural register count")

	// ErrInvalidParams is returned for any other unusable configuration.
	ErrInvalidParams = errors.New("invalid core parameters")
)

// Params configures an Engine.
type Params struct {
	// ArchRegs lists the architectural registers. The i-th register is
	// initially mapped to physical register i+1.
	ArchRegs []insts.Reg

	// PhysRegs is the total number of physical registers.
	PhysRegs int

	// ROBEntries is the reorder buffer capacity.
	ROBEntries int

	// Stations lists the reservation stations in allocation order.
	Stations []StationDesc
}

// ReferenceParams returns the reference configuration: f0..f3 and r1..r4,
// 16 physical registers, 8 ROB entries, and stations fu0 x1, fu1 x2, fu2 x2.
func ReferenceParams() Params {
	return Params{
		ArchRegs:   insts.ReferenceArchRegs(),
		PhysRegs:   16,
		ROBEntries: 8,
		Stations: []StationDesc{
			{FU: 0, Instance: 0},
			{FU: 1, Instance: 0},
			{FU: 1, Instance: 1},
			{FU: 2, Instance: 0},
			{FU: 2, Instance: 1},
		},
	}
}

// Validate checks that the parameters describe a core that can be built.
func (p Params) Validate() error {
	if len(p.ArchRegs) == 0 {
		return fmt.Errorf("%w: no architectural registers", ErrInvalidParams)
	}

	seen := make(map[insts.Reg]bool, len(p.ArchRegs))
	for _, r := range p.ArchRegs {
		if !r.Valid() {
			return fmt.Errorf("%w: invalid architectural register %v", ErrInvalidParams, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: duplicate architectural register %v", ErrInvalidParams, r)
		}
		seen[r] = true
	}

	if p.PhysRegs <= len(p.ArchRegs) {
		return fmt.Errorf("%w: %d physical, %d architectural",
			ErrTooFewPhysRegs, p.PhysRegs, len(p.ArchRegs))
	}

	if p.ROBEntries < 1 {
		return fmt.Errorf("%w: rob entries must be > 0", ErrInvalidParams)
	}

	if len(p.Stations) == 0 {
		return fmt.Errorf("%w: no reservation stations", ErrInvalidParams)
	}
	for _, s := range p.Stations {
		if s.FU < 0 || s.Instance < 0 {
			return fmt.Errorf("%w: station fu %d instance %d", ErrInvalidParams, s.FU, s.Instance)
		}
	}

	return nil
}

func (p Params) clone() Params {
	c := p
	c.ArchRegs = append([]insts.Reg(nil), p.ArchRegs...)
	c.Stations = append([]StationDesc(nil), p.Stations...)
	return c
}

// Statistics holds core performance statistics.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Dispatched is the number of instructions renamed into the ROB.
	Dispatched uint64
	// Issued is the number of instructions selected for execution.
	Issued uint64
	// Completed is the number of instructions that wrote back.
	Completed uint64
	// Retired is the number of instructions retired.
	Retired uint64
	// ROBFullStalls is the number of dispatch stalls on a full ROB.
	ROBFullStalls uint64
	// FreeListStalls is the number of dispatch stalls on an empty free list.
	FreeListStalls uint64
	// StationStalls is the number of dispatch stalls on busy stations.
	StationStalls uint64
	// FUConflicts counts cycles an executing instruction lost its
	// functional-unit port to an older one.
	FUConflicts uint64
}

// CPI returns the cycles per retired instruction.
func (s Statistics) CPI() float64 {
	if s.Retired == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Retired)
}

// IPC returns the retired instructions per cycle.
func (s Statistics) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Retired) / float64(s.Cycles)
}

// Stalls returns the number of structural dispatch stalls.
func (s Statistics) Stalls() uint64 {
	return s.ROBFullStalls + s.FreeListStalls + s.StationStalls
}

// CycleEvents reports what each stage did during one cycle. Entry fields
// hold a ROB index, or -1 when the stage did nothing.
type CycleEvents struct {
	Cycle uint64

	Retired    int
	Completed  int
	Issued     int
	Dispatched int

	// Started lists entries that began executing.
	Started []int

	// FreedTag is the physical register returned to the free list.
	FreedTag TagID

	// Stall is the reason nothing was dispatched, StallNone otherwise.
	Stall StallReason

	// FUConflicts is the number of port conflicts in Execute.
	FUConflicts int
}

// Engine is the out-of-order core. It owns the trace and all renaming and
// scheduling state; nothing outside the engine mutates it.
type Engine struct {
	params   Params
	original []insts.Instruction

	trace      []insts.Instruction
	traceIndex int
	cycle      uint64

	rob      *ROB
	mapTable *MapTable
	freeList *FreeList
	stations []Station

	stats Statistics
}

// NewEngine creates a core that will run the given trace. The trace is
// copied. Registers outside params.ArchRegs are treated as absent.
func NewEngine(params Params, trace []insts.Instruction) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		params:   params.clone(),
		original: make([]insts.Instruction, len(trace)),
	}
	copy(e.original, trace)

	arch := make(map[insts.Reg]bool, len(params.ArchRegs))
	for _, r := range params.ArchRegs {
		arch[r] = true
	}
	for i := range e.original {
		inst := &e.original[i]
		if !arch[inst.Dest] {
			inst.Dest = insts.NoReg
		}
		if !arch[inst.Src1] {
			inst.Src1 = insts.NoReg
		}
		if !arch[inst.Src2] {
			inst.Src2 = insts.NoReg
		}
	}

	e.Reset()

	return e, nil
}

// Reset restores the state right after construction.
func (e *Engine) Reset() {
	e.trace = make([]insts.Instruction, len(e.original))
	copy(e.trace, e.original)
	e.traceIndex = 0
	e.cycle = 1

	numArch := len(e.params.ArchRegs)
	e.rob = newROB(e.params.ROBEntries)
	e.mapTable = newMapTable(e.params.ArchRegs)
	e.freeList = newFreeList(TagID(numArch+1), TagID(e.params.PhysRegs))
	e.stations = newStations(e.params.Stations)

	e.stats = Statistics{}
}

// Params returns a copy of the engine's configuration.
func (e *Engine) Params() Params {
	return e.params.clone()
}

// Cycle returns the number of the next cycle to run. It starts at 1.
func (e *Engine) Cycle() uint64 {
	return e.cycle
}

// TraceIndex returns the index of the next instruction to dispatch.
func (e *Engine) TraceIndex() int {
	return e.traceIndex
}

// TraceLen returns the number of instructions in the trace.
func (e *Engine) TraceLen() int {
	return len(e.trace)
}

// Instruction returns the trace instruction at i with its remaining latency.
func (e *Engine) Instruction(i int) insts.Instruction {
	return e.trace[i]
}

// Stats returns core statistics.
func (e *Engine) Stats() Statistics {
	return e.stats
}

// Drained returns true if every trace instruction has been dispatched and
// retired.
func (e *Engine) Drained() bool {
	return e.traceIndex >= len(e.trace) && e.rob.Empty()
}

// Tick simulates one cycle.
func (e *Engine) Tick() CycleEvents {
	ev := CycleEvents{Cycle: e.cycle}

	ev.Retired, ev.FreedTag = e.retire()
	ev.Completed = e.complete()
	ev.Started, ev.FUConflicts = e.execute()
	ev.Issued = e.issue()
	ev.Dispatched, ev.Stall = e.dispatch()

	e.record(&ev)
	e.cycle++

	return ev
}

func (e *Engine) record(ev *CycleEvents) {
	e.stats.Cycles++
	if ev.Retired >= 0 {
		e.stats.Retired++
	}
	if ev.Completed >= 0 {
		e.stats.Completed++
	}
	if ev.Issued >= 0 {
		e.stats.Issued++
	}
	if ev.Dispatched >= 0 {
		e.stats.Dispatched++
	}
	e.stats.FUConflicts += uint64(ev.FUConflicts)

	switch ev.Stall {
	case StallROBFull:
		e.stats.ROBFullStalls++
	case StallFreeList:
		e.stats.FreeListStalls++
	case StallStation:
		e.stats.StationStalls++
	}
}

// RunCycles simulates the given number of cycles, whether or not the trace
// has drained.
func (e *Engine) RunCycles(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		e.Tick()
	}
}

// RunUntilDrained simulates until the core is drained or limit cycles have
// run. A limit of 0 means no limit. Returns true if the core drained.
func (e *Engine) RunUntilDrained(limit uint64) bool {
	for n := uint64(0); !e.Drained(); n++ {
		if limit > 0 && n >= limit {
			return false
		}
		e.Tick()
	}
	return true
}
