package insts

import (
	"fmt"
	"strconv"
)

// RegClass identifies the architectural register file a register belongs to.
type RegClass uint8

// Register classes.
const (
	RegNone  RegClass = iota // No register (operand or destination absent)
	RegFloat                 // Floating-point register file, written as f<N>
	RegInt                   // Integer register file, written as r<N>
)

// String returns the one-letter token prefix of the class.
func (c RegClass) String() string {
	switch c {
	case RegFloat:
		return "f"
	case RegInt:
		return "r"
	default:
		return "X"
	}
}

// Reg identifies one architectural register. The zero value is "no register".
type Reg struct {
	Class RegClass
	Index uint32
}

// NoReg is the absent register.
var NoReg = Reg{}

// FloatReg returns the float-class register with the given index.
func FloatReg(index uint32) Reg {
	return Reg{Class: RegFloat, Index: index}
}

// IntReg returns the integer-class register with the given index.
func IntReg(index uint32) Reg {
	return Reg{Class: RegInt, Index: index}
}

// Valid returns true if r names a register.
func (r Reg) Valid() bool {
	return r.Class == RegFloat || r.Class == RegInt
}

// String formats the register as its trace token ("f2", "r1", or "X").
func (r Reg) String() string {
	if !r.Valid() {
		return "X"
	}
	return fmt.Sprintf("%s%d", r.Class, r.Index)
}

// ParseReg decodes a register token. Empty, "X" and malformed tokens all
// decode to NoReg.
func ParseReg(token string) Reg {
	if len(token) < 2 {
		return NoReg
	}

	var class RegClass
	switch token[0] {
	case 'f':
		class = RegFloat
	case 'r':
		class = RegInt
	default:
		return NoReg
	}

	// Only plain decimal digits; no sign, no spaces.
	for _, ch := range token[1:] {
		if ch < '0' || ch > '9' {
			return NoReg
		}
	}

	index, err := strconv.ParseUint(token[1:], 10, 32)
	if err != nil {
		return NoReg
	}

	return Reg{Class: class, Index: uint32(index)}
}

// ParseRegs decodes a list of register tokens, failing on the first token
// that does not name a register.
func ParseRegs(tokens []string) ([]Reg, error) {
	regs := make([]Reg, 0, len(tokens))
	for _, tok := range tokens {
		r := ParseReg(tok)
		if !r.Valid() {
			return nil, fmt.Errorf("invalid register token %q", tok)
		}
		regs = append(regs, r)
	}
	return regs, nil
}

// ReferenceArchRegs returns the reference architectural register set:
// f0..f3 followed by r1..r4.
func ReferenceArchRegs() []Reg {
	return []Reg{
		FloatReg(0), FloatReg(1), FloatReg(2), FloatReg(3),
		IntReg(1), IntReg(2), IntReg(3), IntReg(4),
	}
}
