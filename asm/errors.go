package asm

import (
	"fmt"
	"strings"
)

// ErrorKind enumerates the fatal assembly diagnostics.
type ErrorKind int

const (
	LexError ErrorKind = iota
	UnknownMnemonic
	UnknownLabel
	DuplicateLabel
	Arity
	OperandKind
	AddressRange
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case UnknownMnemonic:
		return "unknown mnemonic"
	case UnknownLabel:
		return "unknown label"
	case DuplicateLabel:
		return "duplicate label"
	case Arity:
		return "wrong operand count"
	case OperandKind:
		return "bad operand kind"
	case AddressRange:
		return "address out of range"
	}
	return "error"
}

// Error is one fatal diagnostic, tied to a 1-based source line. Line 0 marks
// a whole-program diagnostic (a program too long for the ROM).
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
}

// ErrorList collects every fatal diagnostic from a run; emission is aborted
// but the whole program is still checked so the programmer sees all of them.
type ErrorList []*Error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// WarningKind enumerates the non-fatal hazards.
type WarningKind int

const (
	WriteToZeroRegister WarningKind = iota
	PortOutOfRange
	AddressOutOfRange
	PipelineHazard
	StackUnderflowStatic
	StackOverflowStatic
)

// Warning is one non-fatal diagnostic. The program still assembles.
type Warning struct {
	Kind WarningKind
	Line int
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: warning: %s", w.Line, w.Msg)
}
