package pipeline

import "fmt"

// Snapshot is a copy of the engine state between cycles. Changing a
// snapshot does not affect the engine.
type Snapshot struct {
	// Cycle is the number of the next cycle to run.
	Cycle      uint64
	TraceIndex int
	TraceLen   int

	Head     int
	Tail     int
	Capacity int

	// Entries holds every ROB entry ever dispatched, retired ones included.
	Entries  []ROBEntry
	Stations []Station
	MapTable []MapEntry
	FreeList []TagID

	Stats Statistics
}

// Live returns the entries from head to tail.
func (s Snapshot) Live() []ROBEntry {
	return s.Entries[s.Head:s.Tail]
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Cycle:      e.cycle,
		TraceIndex: e.traceIndex,
		TraceLen:   len(e.trace),
		Head:       e.rob.Head(),
		Tail:       e.rob.Tail(),
		Capacity:   e.rob.Capacity(),
		Entries:    e.rob.Entries(),
		Stations:   e.Stations(),
		MapTable:   e.mapTable.Entries(),
		FreeList:   e.freeList.Contents(),
		Stats:      e.stats,
	}
}

// ROBEntries returns a copy of all ROB entries.
func (e *Engine) ROBEntries() []ROBEntry {
	return e.rob.Entries()
}

// ROBHead returns the index of the oldest live ROB entry.
func (e *Engine) ROBHead() int {
	return e.rob.Head()
}

// Stations returns a copy of the reservation stations.
func (e *Engine) Stations() []Station {
	out := make([]Station, len(e.stations))
	copy(out, e.stations)
	return out
}

// MapTable returns a copy of the map table rows.
func (e *Engine) MapTable() []MapEntry {
	return e.mapTable.Entries()
}

// FreeList returns a copy of the free list, head first.
func (e *Engine) FreeList() []TagID {
	return e.freeList.Contents()
}

// CheckInvariants verifies the bookkeeping the renaming scheme depends on:
//   - the free list, the map table and the old tags of live ROB entries
//     partition the physical registers;
//   - no live entry's new tag is on the free list;
//   - the ROB is within capacity;
//   - every entry's timestamps are in pipeline order.
func (e *Engine) CheckInvariants() error {
	owner := make(map[TagID]string, e.params.PhysRegs)
	claim := func(id TagID, who string) error {
		if id == NoTag || int(id) > e.params.PhysRegs {
			return fmt.Errorf("%s holds out-of-range tag %d", who, id)
		}
		if prev, ok := owner[id]; ok {
			return fmt.Errorf("tag %d held by both %s and %s", id, prev, who)
		}
		owner[id] = who
		return nil
	}

	for _, id := range e.freeList.ids {
		if err := claim(id, "free list"); err != nil {
			return err
		}
	}
	for _, m := range e.mapTable.entries {
		if err := claim(m.Tag.ID, "map table "+m.Reg.String()); err != nil {
			return err
		}
	}
	for i := e.rob.head; i < e.rob.Tail(); i++ {
		id := e.rob.entries[i].OldTag
		if id == NoTag {
			continue
		}
		if err := claim(id, fmt.Sprintf("rob entry %d", i)); err != nil {
			return err
		}
	}

	if len(owner) != e.params.PhysRegs {
		return fmt.Errorf("%d of %d physical registers accounted for", len(owner), e.params.PhysRegs)
	}

	for i := e.rob.head; i < e.rob.Tail(); i++ {
		id := e.rob.entries[i].NewTag
		if id != NoTag && owner[id] == "free list" {
			return fmt.Errorf("tag %d of live rob entry %d is on the free list", id, i)
		}
	}

	if e.rob.Occupancy() > e.rob.Capacity() {
		return fmt.Errorf("rob holds %d entries, capacity %d", e.rob.Occupancy(), e.rob.Capacity())
	}

	for i, entry := range e.rob.entries {
		if err := checkTimestamps(entry); err != nil {
			return fmt.Errorf("rob entry %d: %w", i, err)
		}
	}

	return nil
}

func checkTimestamps(e ROBEntry) error {
	stamps := []uint64{e.Issued, e.ExecStarted, e.Completed, e.Retired}
	names := []string{"issued", "exec-started", "completed", "retired"}
	for i := 1; i < len(stamps); i++ {
		if stamps[i] == 0 {
			continue
		}
		if stamps[i-1] == 0 || stamps[i-1] >= stamps[i] {
			return fmt.Errorf("%s at %d without earlier %s", names[i], stamps[i], names[i-1])
		}
	}
	return nil
}
