package pipeline

// ROBEntry tracks one in-flight instruction. Cycle fields are 0 until the
// instruction reaches that point, and each is written once.
type ROBEntry struct {
	// TraceIndex is the position of the instruction in the trace.
	TraceIndex int
	// Station is the index of the reservation station the instruction was
	// dispatched to.
	Station int

	// NewTag is the physical register allocated for the destination.
	NewTag TagID
	// OldTag is the physical register the destination was mapped to before
	// this instruction. It is freed when this instruction retires.
	OldTag TagID

	Issued      uint64 // S
	ExecStarted uint64 // X
	Completed   uint64 // C
	Retired     uint64 // R
}

// HasIssued returns true if the entry has been selected for execution.
func (e *ROBEntry) HasIssued() bool { return e.Issued != 0 }

// HasStarted returns true if the entry has begun executing.
func (e *ROBEntry) HasStarted() bool { return e.ExecStarted != 0 }

// HasCompleted returns true if the entry has written back its result.
func (e *ROBEntry) HasCompleted() bool { return e.Completed != 0 }

// HasRetired returns true if the entry has left the ROB.
func (e *ROBEntry) HasRetired() bool { return e.Retired != 0 }

// ROB is the reorder buffer. Entries are appended in program order and are
// never removed; the head index marks the oldest entry not yet retired, and
// only entries from head to tail are live.
type ROB struct {
	entries  []ROBEntry
	capacity int
	head     int
}

func newROB(capacity int) *ROB {
	return &ROB{
		entries:  make([]ROBEntry, 0, capacity),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of live entries.
func (r *ROB) Capacity() int { return r.capacity }

// Head returns the index of the oldest live entry.
func (r *ROB) Head() int { return r.head }

// Tail returns the index the next entry will be written to.
func (r *ROB) Tail() int { return len(r.entries) }

// Occupancy returns the number of live entries.
func (r *ROB) Occupancy() int { return len(r.entries) - r.head }

// Full returns true if no entry can be appended.
func (r *ROB) Full() bool { return r.Occupancy() >= r.capacity }

// Empty returns true if no entry is live.
func (r *ROB) Empty() bool { return r.Occupancy() == 0 }

// Entry returns a copy of entry i.
func (r *ROB) Entry(i int) ROBEntry { return r.entries[i] }

// Entries returns a copy of every entry ever appended, retired ones included.
func (r *ROB) Entries() []ROBEntry {
	out := make([]ROBEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// push appends an entry at the tail and returns its index.
func (r *ROB) push(e ROBEntry) int {
	r.entries = append(r.entries, e)
	return len(r.entries) - 1
}
