// Package asm implements the two-pass Electron assembler: source text in,
// a padded ROM image plus diagnostics out. Pass one collects label
// addresses, pass two classifies operands against the mnemonic table and
// emits machine words, accumulating non-fatal hazard warnings as it goes.
package asm

import (
	"fmt"
	"strings"

	"github.com/eliperez-dev/electron/isa"
)

// Result is a successful assembly.
type Result struct {
	Arch isa.Arch

	// ROM is the full image, NOOP-padded to the architecture's size.
	ROM []isa.Word

	// Instructions are the emitted instructions in source order, unpadded.
	Instructions []isa.Instruction

	Warnings []Warning
}

type srcLine struct {
	num    int
	labels []string
	toks   []Token // mnemonic + operands; empty for label-only lines
}

// Assemble runs both passes over the source. On failure the returned error
// is an ErrorList holding every fatal diagnostic found.
func Assemble(arch isa.Arch, source string) (*Result, error) {
	var errs ErrorList
	var lines []srcLine

	// Pass 1: lex, split off label definitions, assign code addresses.
	labels := map[string]int{}
	addr := 0
	for i, raw := range strings.Split(source, "\n") {
		num := i + 1
		toks, err := LexLine(raw)
		if err != nil {
			errs = append(errs, &Error{LexError, num, err.Error()})
			continue
		}

		ln := srcLine{num: num}
		for len(toks) > 0 && toks[0].Kind == TokLabelDef {
			ln.labels = append(ln.labels, toks[0].Text)
			toks = toks[1:]
		}
		ln.toks = toks

		for _, name := range ln.labels {
			if _, dup := labels[name]; dup {
				errs = append(errs, &Error{DuplicateLabel, num, fmt.Sprintf("label %s is already defined", name)})
				continue
			}
			labels[name] = addr
		}
		if len(ln.toks) > 0 {
			addr++
		}
		lines = append(lines, ln)
	}

	if addr > arch.ROMSize() {
		errs = append(errs, &Error{AddressRange, 0,
			fmt.Sprintf("program has %d instructions, %s ROM holds %d", addr, arch, arch.ROMSize())})
	}

	// Pass 2: emission and hazard checks.
	res := &Result{Arch: arch}
	sp := newStackTracker()
	for _, ln := range lines {
		if len(ln.toks) == 0 {
			continue
		}
		ins, err := assembleLine(arch, ln, labels)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		res.Warnings = append(res.Warnings, checkHazards(ins, res.Instructions, ln.num)...)
		res.Warnings = append(res.Warnings, sp.check(ins, ln.num)...)
		res.Instructions = append(res.Instructions, ins)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	res.ROM = make([]isa.Word, arch.ROMSize())
	for i, ins := range res.Instructions {
		res.ROM[i] = isa.Encode(ins)
	}
	return res, nil
}

func assembleLine(arch isa.Arch, ln srcLine, labels map[string]int) (isa.Instruction, *Error) {
	var ins isa.Instruction

	head := ln.toks[0]
	if head.Kind != TokIdent {
		return ins, &Error{UnknownMnemonic, ln.num, "expected a mnemonic"}
	}
	op, prefix, ok := LookupMnemonic(head.Text)
	if !ok {
		return ins, &Error{UnknownMnemonic, ln.num, head.Text}
	}
	if !arch.Has(op) {
		return ins, &Error{UnknownMnemonic, ln.num, fmt.Sprintf("%s is not available on %s", head.Text, arch)}
	}

	args := argSpecs(op, prefix)
	operands := ln.toks[1:]
	if len(operands) != len(args) {
		return ins, &Error{Arity, ln.num,
			fmt.Sprintf("%s takes %d operand(s), got %d", head.Text, len(args), len(operands))}
	}

	ins.Op = op
	ins.Prefix = prefix
	for i, tok := range operands {
		operand, err := classifyOperand(arch, tok, args[i], labels, ln.num)
		if err != nil {
			return ins, err
		}
		// X-variant ALU ops carry their single source in the B slot.
		if prefix == isa.PrefixX && op.IsALU() {
			ins.B = operand
		} else if i == 0 {
			ins.A = operand
		} else {
			ins.B = operand
		}
	}
	return ins, nil
}

func classifyOperand(arch isa.Arch, tok Token, spec isa.ArgSpec, labels map[string]int, num int) (isa.Operand, *Error) {
	var kind isa.Kind
	value := tok.Value

	switch tok.Kind {
	case TokRegister:
		kind = isa.KindRegister
	case TokPort:
		kind = isa.KindPort
	case TokAddress:
		kind = isa.KindAddress
	case TokImmediate:
		kind = isa.KindImmediate
	case TokIdent:
		addr, ok := labels[tok.Text]
		if !ok {
			return isa.Operand{}, &Error{UnknownLabel, num, tok.Text}
		}
		kind = isa.KindCodeAddr
		value = addr
	default:
		return isa.Operand{}, &Error{OperandKind, num, "unexpected token"}
	}

	if !spec.Accepts.Has(kind) {
		return isa.Operand{}, &Error{OperandKind, num,
			fmt.Sprintf("%s operand where %s is expected", kind, spec.Wire)}
	}

	// Immediates used as branch targets must land inside the ROM; everything
	// else is 8-bit. Ports and RAM slots past their banks stay in range here
	// and come out as warnings instead.
	limit := 255
	if spec.Wire == isa.KindCodeAddr {
		limit = arch.ROMSize() - 1
	}
	if value < 0 || value > limit {
		return isa.Operand{}, &Error{AddressRange, num,
			fmt.Sprintf("%d does not fit (0-%d)", value, limit)}
	}
	// Normalize to the wire kind so emitted and decoded instructions agree
	// (an immediate used as a branch target becomes a code address).
	return isa.Operand{Kind: spec.Wire, Value: uint8(value)}, nil
}

// writtenRegister reports the register an instruction commits to in
// WRITE_BACK, if any. ALU results only land in a register under the S and U
// prefixes; the bare and X forms are flags/accumulator-only. SHR and NOT
// always store unless X-prefixed.
func writtenRegister(ins isa.Instruction) (uint8, bool) {
	switch ins.Op {
	case isa.IMM, isa.MOV, isa.LOAD, isa.POP, isa.INP:
		return ins.A.Value, true
	case isa.SHR, isa.NOT:
		if ins.Prefix == isa.PrefixX {
			return 0, false
		}
		return ins.A.Value, true
	case isa.ADD, isa.ADDC, isa.SUB, isa.OR, isa.XOR, isa.AND:
		if ins.Prefix == isa.PrefixS || ins.Prefix == isa.PrefixU {
			return ins.A.Value, true
		}
	}
	return 0, false
}

// readRegisters lists the registers an instruction reads. ALU sources are
// sampled in EXECUTE; MOV, OUT, ROUT, STORE and PUSH sample theirs in
// WRITE_BACK but are listed too, so the hazard check is conservative.
func readRegisters(ins isa.Instruction) []uint8 {
	var reads []uint8

	switch ins.Op {
	case isa.ADD, isa.ADDC, isa.SUB, isa.OR, isa.XOR, isa.AND:
		if ins.Prefix != isa.PrefixU && ins.Prefix != isa.PrefixX {
			reads = append(reads, ins.A.Value)
		}
	case isa.PUSH, isa.ROUT:
		reads = append(reads, ins.A.Value)
	}

	switch ins.Op {
	case isa.MOV, isa.ADD, isa.ADDC, isa.SUB, isa.OR, isa.XOR, isa.AND,
		isa.SHR, isa.NOT, isa.OUT, isa.ROUT, isa.STORE:
		reads = append(reads, ins.B.Value)
	}
	return reads
}

func checkHazards(ins isa.Instruction, emitted []isa.Instruction, num int) []Warning {
	var warns []Warning

	if r, ok := writtenRegister(ins); ok && r == 0 {
		warns = append(warns, Warning{WriteToZeroRegister, num,
			"writing to R0 (the zero register) is silently ignored"})
	}

	if ins.Op == isa.OUT && ins.A.Value > 7 {
		warns = append(warns, Warning{PortOutOfRange, num,
			fmt.Sprintf("port %%%d is out of range (0-7)", ins.A.Value)})
	}

	if ins.Op == isa.STORE && ins.A.Value > 15 {
		warns = append(warns, Warning{AddressOutOfRange, num,
			fmt.Sprintf("memory address #%d is out of RAM range (0-15)", ins.A.Value)})
	}
	if ins.Op == isa.LOAD && ins.B.Value > 15 {
		warns = append(warns, Warning{AddressOutOfRange, num,
			fmt.Sprintf("memory address #%d is out of RAM range (0-15)", ins.B.Value)})
	}

	// Read-after-write: a register committed by the previous instruction is
	// not yet visible to this one's EXECUTE. R0 never counts; it always
	// reads 0.
	if len(emitted) > 0 {
		if w, ok := writtenRegister(emitted[len(emitted)-1]); ok && w != 0 {
			for _, r := range readRegisters(ins) {
				if r == w {
					warns = append(warns, Warning{PipelineHazard, num,
						fmt.Sprintf("reading R%d immediately after writing it sees the old value; insert a NOOP", w)})
					break
				}
			}
		}
	}
	return warns
}

// stackTracker is the best-effort static SP model: a straight-line walk that
// ignores control flow, good enough to catch the obvious push/pop imbalance.
type stackTracker struct {
	depth int
}

func newStackTracker() *stackTracker {
	return &stackTracker{}
}

func (t *stackTracker) check(ins isa.Instruction, num int) []Warning {
	switch ins.Op {
	case isa.PUSH, isa.CALL:
		if t.depth >= 16 {
			return []Warning{{StackOverflowStatic, num,
				fmt.Sprintf("%s with the 16-byte stack already full", ins.Op)}}
		}
		t.depth++
	case isa.POP, isa.RET:
		if t.depth <= 0 {
			return []Warning{{StackUnderflowStatic, num,
				fmt.Sprintf("%s with nothing on the stack", ins.Op)}}
		}
		t.depth--
	}
	return nil
}
