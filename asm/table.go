package asm

import "github.com/eliperez-dev/electron/isa"

// Mnemonic lookup. ALU mnemonics accept a single-letter S/U/X prefix; the
// bare spelling is tried first so SUB never parses as an S-prefixed "UB".

var mnemonics = map[string]isa.Op{}

func init() {
	for op := isa.Op(0); op < isa.Op(len(isa.Specs)); op++ {
		if isa.Specs[op].Name != "" {
			mnemonics[isa.Specs[op].Name] = op
		}
	}
	mnemonics["NOP"] = isa.NOOP
}

// LookupMnemonic resolves an uppercased mnemonic, stripping an ALU prefix if
// one is present. ok is false when nothing matches; the caller decides
// between UnknownMnemonic and architecture availability.
func LookupMnemonic(name string) (op isa.Op, prefix isa.Prefix, ok bool) {
	if op, ok := mnemonics[name]; ok {
		return op, isa.PrefixNone, true
	}

	if len(name) < 2 {
		return 0, 0, false
	}
	var p isa.Prefix
	switch name[0] {
	case 'S':
		p = isa.PrefixS
	case 'U':
		p = isa.PrefixU
	case 'X':
		p = isa.PrefixX
	default:
		return 0, 0, false
	}
	op, ok = mnemonics[name[1:]]
	if !ok || !isa.Specs[op].Prefixable {
		return 0, 0, false
	}
	return op, p, true
}

// argSpecs returns the operand slots the assembler expects for an op with the
// given prefix. X-variants take a single source operand; op_a is the
// accumulator and there is no destination.
func argSpecs(op isa.Op, prefix isa.Prefix) []isa.ArgSpec {
	args := isa.Specs[op].Args
	if prefix == isa.PrefixX && op.IsALU() {
		return args[1:]
	}
	return args
}
