package pipeline

import "github.com/sarchlab/r10ksim/insts"

// MapEntry is one row of the map table.
type MapEntry struct {
	Reg insts.Reg
	Tag PhysTag
}

// MapTable maps every architectural register to the physical register that
// holds its most recent definition. Rows keep the order of the architectural
// register list they were built from.
type MapTable struct {
	entries []MapEntry
	index   map[insts.Reg]int
}

// newMapTable maps the i-th architectural register to tag i+1, ready.
func newMapTable(regs []insts.Reg) *MapTable {
	m := &MapTable{
		entries: make([]MapEntry, len(regs)),
		index:   make(map[insts.Reg]int, len(regs)),
	}
	for i, r := range regs {
		m.entries[i] = MapEntry{Reg: r, Tag: PhysTag{ID: TagID(i + 1), Ready: true}}
		m.index[r] = i
	}
	return m
}

// Lookup returns the current mapping of r.
func (m *MapTable) Lookup(r insts.Reg) (PhysTag, bool) {
	i, ok := m.index[r]
	if !ok {
		return PhysTag{}, false
	}
	return m.entries[i].Tag, true
}

// Contains returns true if r is an architectural register of this table.
func (m *MapTable) Contains(r insts.Reg) bool {
	_, ok := m.index[r]
	return ok
}

// set overwrites the mapping of an architectural register.
func (m *MapTable) set(r insts.Reg, tag PhysTag) {
	m.entries[m.index[r]].Tag = tag
}

// markReady sets Ready on every row mapped to id.
func (m *MapTable) markReady(id TagID) {
	for i := range m.entries {
		if m.entries[i].Tag.ID == id {
			m.entries[i].Tag.Ready = true
		}
	}
}

// Len returns the number of architectural registers.
func (m *MapTable) Len() int {
	return len(m.entries)
}

// Entries returns a copy of all rows in architectural register order.
func (m *MapTable) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// FreeList is the FIFO of physical registers that no architectural register
// and no in-flight instruction owns.
type FreeList struct {
	ids []TagID
}

// newFreeList holds first..last in ascending order.
func newFreeList(first, last TagID) *FreeList {
	f := &FreeList{}
	for id := first; id <= last; id++ {
		f.ids = append(f.ids, id)
	}
	return f
}

// Len returns the number of free registers.
func (f *FreeList) Len() int {
	return len(f.ids)
}

// push returns a register to the tail.
func (f *FreeList) push(id TagID) {
	f.ids = append(f.ids, id)
}

// pop takes the register at the head.
func (f *FreeList) pop() (TagID, bool) {
	if len(f.ids) == 0 {
		return NoTag, false
	}
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id, true
}

// Contents returns a copy of the free registers, head first.
func (f *FreeList) Contents() []TagID {
	out := make([]TagID, len(f.ids))
	copy(out, f.ids)
	return out
}
