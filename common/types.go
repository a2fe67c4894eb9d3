// Package common holds the interfaces shared between the machine core, the
// hardware devices, and the front end.
package common

import (
	"bufio"

	"github.com/eliperez-dev/electron/isa"
)

// Flags is the ALU flag bank. Only ALU operations write it.
type Flags struct {
	EQ, GT, LT, OV bool
}

// CPU is the interface to an Electron machine, used by the hardware devices
// and the front end to abstract over the two architectures.
type CPU interface {
	Arch() isa.Arch

	// Tick advances the pipeline by one clock cycle. While the machine is
	// waiting on the input latch it is a no-op.
	Tick()
	Ticks() uint64
	Reset()

	PC() uint8
	SP() uint8
	Reg(i int) uint8
	Accumulator() uint8
	Flags() Flags
	RAM(i int) uint8
	Port(p int) uint8
	Framebuffer() [8]uint8

	SetInput(v uint8)
	WaitingForInput() bool

	ROM() []isa.Word
	LoadROM(rom []isa.Word) error

	// StageNames reports the operation sitting in each stage, FETCH first.
	StageNames() [4]string

	AddDevice(Device)
	Devices() []Device
	AddSink(DisplaySink)

	AddBreakpoint(at uint8)
	Debugging() *bool
	Disassemble()
	DisassembleOp(at uint8)
	Exit()
}

// Device is the interface to all hardware. Devices are ticked by the run
// loop, not by the pipeline.
type Device interface {
	Tick(CPU)
	Cleanup()
}

// DisplaySink receives port writes as they commit in WRITE_BACK. Port r is
// row r of the 8x8 display, bit 7 leftmost.
type DisplaySink interface {
	PortWrite(port, value uint8)
}

// InputReader is shared by the inputs, since os.Stdin is global.
var InputReader *bufio.Reader
