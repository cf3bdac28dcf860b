// Package insts provides the instruction records consumed by the renaming core.
//
// An instruction names a functional-unit class, an optional destination
// register, up to two optional source registers and an execution latency.
// Registers are architectural: a register class (float or integer) plus an
// index.
//
// Usage:
//
//	dst := insts.ParseReg("f2")
//	inst := insts.Instruction{FU: 1, Dest: dst, Src2: insts.IntReg(2), Latency: 2}
//	fmt.Printf("FU: %d, Dest: %v, HasDest: %v\n", inst.FU, inst.Dest, inst.HasDest())
package insts
