package pipeline

// StationDesc names the functional unit a reservation station feeds: the
// unit class and which instance of that class. Stations sharing a descriptor
// share an execution port.
type StationDesc struct {
	FU       int
	Instance int
}

// Station is one reservation station slot.
type Station struct {
	StationDesc

	// Busy indicates the slot holds an instruction that has not started
	// executing.
	Busy bool

	// Dest is the physical register the held instruction writes.
	Dest TagID

	// Source operand copies taken at dispatch.
	Op1 Operand
	Op2 Operand
}

// Ready returns true if both operands allow issue.
func (s *Station) Ready() bool {
	return s.Op1.Satisfied() && s.Op2.Satisfied()
}

func (s *Station) occupy(dest TagID, op1, op2 Operand) {
	s.Busy = true
	s.Dest = dest
	s.Op1 = op1
	s.Op2 = op2
}

// release frees the slot. The descriptor is kept.
func (s *Station) release() {
	s.Busy = false
	s.Dest = NoTag
	s.Op1 = Operand{}
	s.Op2 = Operand{}
}

// wakeup marks operands waiting on id ready.
func (s *Station) wakeup(id TagID) {
	s.Op1.wakeup(id)
	s.Op2.wakeup(id)
}

func newStations(descs []StationDesc) []Station {
	stations := make([]Station, len(descs))
	for i, d := range descs {
		stations[i] = Station{StationDesc: d}
	}
	return stations
}
