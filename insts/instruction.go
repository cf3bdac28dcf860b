package insts

import "fmt"

// Instruction is one trace entry.
type Instruction struct {
	FU   int // Functional-unit class
	Dest Reg // Destination register, NoReg if none (e.g. stores)
	Src1 Reg // First source register, NoReg if absent
	Src2 Reg // Second source register, NoReg if absent

	// Latency is the number of execute cycles. The timing core keeps its own
	// copy of each instruction and counts this down while executing.
	Latency uint64
}

// HasDest returns true if the instruction writes a register.
func (i Instruction) HasDest() bool {
	return i.Dest.Valid()
}

// String formats the instruction in trace syntax.
func (i Instruction) String() string {
	return fmt.Sprintf("%d %v %v %v %d", i.FU, i.Dest, i.Src1, i.Src2, i.Latency)
}

// ReferenceTrace returns the 8-instruction reference trace used for
// calibration and examples.
func ReferenceTrace() []Instruction {
	return []Instruction{
		{FU: 1, Dest: FloatReg(2), Src2: IntReg(2), Latency: 2},
		{FU: 2, Dest: FloatReg(0), Src1: FloatReg(2), Src2: FloatReg(3), Latency: 4},
		{FU: 1, Dest: FloatReg(1), Src2: IntReg(1), Latency: 2},
		{FU: 2, Dest: FloatReg(2), Src1: FloatReg(1), Src2: FloatReg(0), Latency: 2},
		{FU: 0, Dest: IntReg(1), Src2: IntReg(1), Latency: 1},
		{FU: 0, Dest: IntReg(2), Src2: IntReg(2), Latency: 1},
		{FU: 1, Src1: FloatReg(2), Src2: IntReg(1), Latency: 2},
		{FU: 0, Dest: IntReg(4), Src1: IntReg(1), Src2: IntReg(3), Latency: 1},
	}
}
