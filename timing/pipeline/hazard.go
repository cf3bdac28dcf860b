package pipeline

import "github.com/sarchlab/r10ksim/insts"

// StallReason explains why Dispatch admitted nothing in a cycle.
type StallReason int

const (
	// StallNone means an instruction was dispatched.
	StallNone StallReason = iota
	// StallTraceDrained means every trace instruction has been dispatched.
	StallTraceDrained
	// StallROBFull means the reorder buffer has no free entry.
	StallROBFull
	// StallFreeList means the instruction needs a physical register and the
	// free list is empty.
	StallFreeList
	// StallStation means every reservation station of the instruction's
	// functional-unit class is busy.
	StallStation
)

// String returns a short name for the stall reason.
func (s StallReason) String() string {
	switch s {
	case StallNone:
		return "none"
	case StallTraceDrained:
		return "trace-drained"
	case StallROBFull:
		return "rob-full"
	case StallFreeList:
		return "free-list-empty"
	case StallStation:
		return "no-station"
	default:
		return "unknown"
	}
}

// IsStructural returns true for stalls caused by an exhausted resource.
func (s StallReason) IsStructural() bool {
	return s == StallROBFull || s == StallFreeList || s == StallStation
}

// detectDispatchHazard checks the dispatch preconditions in order and
// returns the first one that fails. When none fails it returns StallNone and
// the index of the first free station of the instruction's class.
func (e *Engine) detectDispatchHazard() (StallReason, int) {
	if e.traceIndex >= len(e.trace) {
		return StallTraceDrained, -1
	}

	if e.rob.Full() {
		return StallROBFull, -1
	}

	inst := &e.trace[e.traceIndex]

	// Only instructions that write a register need a new physical register.
	if inst.HasDest() && e.freeList.Len() == 0 {
		return StallFreeList, -1
	}

	slot := e.findFreeStation(inst)
	if slot < 0 {
		return StallStation, -1
	}

	return StallNone, slot
}

// findFreeStation returns the first free station, in configuration order,
// of the instruction's functional-unit class, or -1.
func (e *Engine) findFreeStation(inst *insts.Instruction) int {
	for i := range e.stations {
		if e.stations[i].FU == inst.FU && !e.stations[i].Busy {
			return i
		}
	}
	return -1
}

// portArbiter grants each functional-unit instance to at most one
// instruction per cycle.
type portArbiter struct {
	granted map[StationDesc]bool
}

func newPortArbiter() *portArbiter {
	return &portArbiter{granted: make(map[StationDesc]bool)}
}

// acquire returns false if the port was already granted this cycle.
func (a *portArbiter) acquire(port StationDesc) bool {
	if a.granted[port] {
		return false
	}
	a.granted[port] = true
	return true
}
