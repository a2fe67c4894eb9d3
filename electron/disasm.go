package electron

import (
	"fmt"
	"strings"

	"github.com/eliperez-dev/electron/isa"
)

// Disassembler. Dumps the ROM to stdout, one slot per line:
// ADDR: B0 B1 B2   MNEMONIC operands

// DisassembleOp prints the instruction at one ROM address.
func (m *Machine) DisassembleOp(at uint8) {
	w := m.rom[int(at)&(m.arch.ROMSize()-1)]
	b := w.Bytes()
	fmt.Printf("%02x: %02x %02x %02x   %s\n", at, b[0], b[1], b[2], FormatIns(m.arch.Decode(w)))
}

// Disassemble dumps the whole ROM.
func (m *Machine) Disassemble() {
	for i := 0; i < m.arch.ROMSize(); i++ {
		m.DisassembleOp(uint8(i))
	}
}

// FormatIns renders one structured instruction the way it is written in
// source: prefix glued to the mnemonic, operands space-separated with their
// sigils.
func FormatIns(ins isa.Instruction) string {
	var sb strings.Builder
	sb.WriteString(ins.Prefix.String())
	sb.WriteString(ins.Op.String())

	args := isa.Specs[ins.Op].Args
	for i, spec := range args {
		operand := ins.A
		if i == 1 {
			operand = ins.B
		}
		// X-variants carry their only source in the B slot.
		if ins.Prefix == isa.PrefixX && ins.Op.IsALU() {
			if i == 0 {
				continue
			}
			operand = ins.B
		}
		sb.WriteByte(' ')
		sb.WriteString(formatOperand(spec.Wire, operand.Value))
	}
	return sb.String()
}

func formatOperand(kind isa.Kind, v uint8) string {
	switch kind {
	case isa.KindRegister:
		return fmt.Sprintf("R%d", v)
	case isa.KindPort:
		return fmt.Sprintf("%%%d", v)
	case isa.KindAddress:
		return fmt.Sprintf("#%d", v)
	}
	return fmt.Sprintf("%d", v)
}
