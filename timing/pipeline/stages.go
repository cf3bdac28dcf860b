package pipeline

import "github.com/sarchlab/r10ksim/insts"

// The five stage procedures. Tick runs them in the order
// retire, complete, execute, issue, dispatch, so each stage sees what the
// stages before it did this cycle and nothing a later stage does.

// retire retires the ROB head if it has completed and frees the physical
// register its destination used to map to. It returns the retired entry
// index (or -1) and the freed tag.
func (e *Engine) retire() (int, TagID) {
	if e.rob.Empty() {
		return -1, NoTag
	}

	idx := e.rob.head
	entry := &e.rob.entries[idx]

	// In-order: a completed younger entry waits for the head.
	if !entry.HasCompleted() {
		return -1, NoTag
	}

	entry.Retired = e.cycle
	e.rob.head++

	if entry.OldTag != NoTag {
		e.freeList.push(entry.OldTag)
	}

	return idx, entry.OldTag
}

// complete writes back the oldest executing entry whose latency has run out
// and wakes up its consumers. Returns the completed entry index or -1.
func (e *Engine) complete() int {
	for i := e.rob.head; i < e.rob.Tail(); i++ {
		entry := &e.rob.entries[i]
		if !entry.HasStarted() || entry.HasCompleted() {
			continue
		}
		if e.trace[entry.TraceIndex].Latency != 0 {
			continue
		}

		entry.Completed = e.cycle
		e.broadcast(entry.NewTag)
		return i
	}
	return -1
}

// broadcast marks id ready in the map table and in every station operand
// that copied it.
func (e *Engine) broadcast(id TagID) {
	if id == NoTag {
		return
	}

	e.mapTable.markReady(id)
	for i := range e.stations {
		e.stations[i].wakeup(id)
	}
}

// execute starts entries issued in an earlier cycle, releasing their
// stations, and counts down latency with one instruction per functional-unit
// instance per cycle. Returns the entries that started this cycle and the
// number of port conflicts.
func (e *Engine) execute() ([]int, int) {
	var started []int
	conflicts := 0
	ports := newPortArbiter()

	for i := e.rob.head; i < e.rob.Tail(); i++ {
		entry := &e.rob.entries[i]

		// Issue-to-execute takes one cycle.
		if !entry.HasIssued() || entry.Issued == e.cycle {
			continue
		}

		station := &e.stations[entry.Station]
		if !entry.HasStarted() {
			entry.ExecStarted = e.cycle
			station.release()
			started = append(started, i)
		}

		inst := &e.trace[entry.TraceIndex]
		if inst.Latency == 0 {
			continue
		}

		if !ports.acquire(station.StationDesc) {
			conflicts++
			continue
		}
		inst.Latency--
	}

	return started, conflicts
}

// issue selects the oldest unissued entry whose operands are satisfied.
// Returns its index or -1.
func (e *Engine) issue() int {
	for i := e.rob.head; i < e.rob.Tail(); i++ {
		entry := &e.rob.entries[i]
		if entry.HasIssued() {
			continue
		}

		if e.stations[entry.Station].Ready() {
			entry.Issued = e.cycle
			return i
		}
	}
	return -1
}

// dispatch renames the next trace instruction and places it in a
// reservation station and the ROB. On a hazard nothing changes and the
// stall reason is returned.
func (e *Engine) dispatch() (int, StallReason) {
	reason, slot := e.detectDispatchHazard()
	if reason != StallNone {
		return -1, reason
	}

	inst := &e.trace[e.traceIndex]

	// Operands copy the mappings from before this instruction's own rename.
	op1 := e.operandFor(inst.Src1)
	op2 := e.operandFor(inst.Src2)

	newTag, oldTag := NoTag, NoTag
	if inst.HasDest() {
		newTag, _ = e.freeList.pop()
		prev, _ := e.mapTable.Lookup(inst.Dest)
		oldTag = prev.ID
	}

	e.stations[slot].occupy(newTag, op1, op2)

	idx := e.rob.push(ROBEntry{
		TraceIndex: e.traceIndex,
		Station:    slot,
		NewTag:     newTag,
		OldTag:     oldTag,
	})

	if inst.HasDest() {
		e.mapTable.set(inst.Dest, PhysTag{ID: newTag, Ready: false})
	}

	e.traceIndex++

	return idx, StallNone
}

// operandFor copies the current mapping of a source register.
func (e *Engine) operandFor(r insts.Reg) Operand {
	if !r.Valid() {
		return Operand{}
	}

	tag, ok := e.mapTable.Lookup(r)
	if !ok {
		return Operand{}
	}
	return Operand{Present: true, Tag: tag}
}
