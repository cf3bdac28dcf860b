package pipeline

// TagID names a physical register. IDs start at 1; NoTag means "none".
type TagID uint32

// NoTag is the absent physical register.
const NoTag TagID = 0

// PhysTag is a physical register reference together with the readiness of
// its value. Two tags are the same register when their IDs match; Ready is
// state, not identity.
type PhysTag struct {
	ID    TagID
	Ready bool
}

// SameTag returns true if t and o name the same physical register.
func (t PhysTag) SameTag(o PhysTag) bool {
	return t.ID == o.ID
}

// Operand is a reservation station's copy of a source operand's tag, taken
// at dispatch.
type Operand struct {
	// Present is false when the instruction had no such source.
	Present bool
	Tag     PhysTag
}

// Satisfied returns true if the operand does not hold up issue: it is either
// absent or its producer has completed.
func (o Operand) Satisfied() bool {
	return !o.Present || o.Tag.Ready
}

// wakeup marks the operand ready if it waits on id.
func (o *Operand) wakeup(id TagID) bool {
	if o.Present && o.Tag.ID == id && !o.Tag.Ready {
		o.Tag.Ready = true
		return true
	}
	return false
}
