package electron

import (
	"github.com/eliperez-dev/electron/common"
	"github.com/eliperez-dev/electron/isa"
)

// executeALU runs one arithmetic/logic instruction during EXECUTE. The
// accumulator and flags update here, not in WRITE_BACK, which is why an ALU
// result is usable by the very next instruction through the U and X
// prefixes while a register destination is not. Returns the result and
// whether it is committed to register A at write-back.
func (m *Machine) executeALU(ins isa.Instruction) (uint8, bool) {
	var opA uint8
	if ins.Prefix == isa.PrefixU || ins.Prefix == isa.PrefixX {
		opA = m.acc
	} else {
		opA = m.readReg(ins.A.Value)
	}
	opB := m.readReg(ins.B.Value)

	// ADDC consumes the overflow of the previous ALU op; sample it before
	// the flags are replaced below.
	carry := 0
	if m.flags.OV {
		carry = 1
	}

	var result int
	switch ins.Op {
	case isa.ADD:
		result = int(opA) + int(opB)
	case isa.ADDC:
		result = int(opA) + int(opB) + carry
	case isa.SUB:
		result = int(opA) - int(opB)
	case isa.OR:
		result = int(opA | opB)
	case isa.XOR:
		result = int(opA ^ opB)
	case isa.AND:
		result = int(opA & opB)
	case isa.SHR:
		result = int(opB >> 1)
	case isa.NOT:
		result = int(^opB)
	}

	m.flags = common.Flags{
		EQ: opA == opB,
		GT: opA > opB,
		LT: opA < opB,
		OV: result < 0 || result > 255,
	}
	m.acc = uint8(result)

	return m.acc, aluStores(ins)
}

// aluStores reports whether the variant commits its result to register A.
// The bare and X forms of the two-source ops are flags/accumulator-only;
// SHR and NOT store unless X-prefixed.
func aluStores(ins isa.Instruction) bool {
	if ins.Prefix == isa.PrefixX {
		return false
	}
	if ins.Op == isa.SHR || ins.Op == isa.NOT {
		return true
	}
	return ins.Prefix == isa.PrefixS || ins.Prefix == isa.PrefixU
}
