// Package electron implements the Electron machine core: the register file,
// accumulator and flags, the 16-byte RAM with its descending stack, the
// output port bank, and the 4-stage waterfall pipeline that ties them
// together. One Machine serves both architectures; the isa.Arch it is built
// with fixes the ROM size, PC width and operation set.
package electron

import (
	"os"

	"github.com/eliperez-dev/electron/common"
	"github.com/eliperez-dev/electron/isa"
)

// fetchLatch is the FETCH -> DECODE latch: the raw word and its address.
type fetchLatch struct {
	word  isa.Word
	addr  uint8
	valid bool
}

// decodeLatch is the DECODE -> EXECUTE latch: the structured instruction.
type decodeLatch struct {
	ins   isa.Instruction
	addr  uint8
	valid bool
}

// wbLatch is the EXECUTE -> WRITE_BACK latch. The instruction rides along
// whole: register, RAM and port commits read their source operands at
// write-back time, the way the hardware's final stage does. ALU results are
// precomputed in EXECUTE and carried in result.
type wbLatch struct {
	ins    isa.Instruction
	addr   uint8
	result uint8
	stores bool
	valid  bool
}

type inputLatch struct {
	value uint8
	fresh bool
}

// Machine is one Electron CPU instance plus its I/O bank. It implements
// common.CPU. All state is owned by the machine and observed through
// snapshot accessors between ticks.
type Machine struct {
	arch isa.Arch
	rom  []isa.Word

	pc uint8
	sp uint8 // 16 means empty; the stack grows down through RAM

	// The register file is double buffered: writes land in next and the
	// tick boundary commits them. A register written by instruction N is
	// therefore stale for instruction N+1's EXECUTE, which runs in the same
	// tick as N's WRITE_BACK.
	regs [8]uint8
	next [8]uint8

	acc   uint8
	flags common.Flags

	ram   [16]uint8
	ports [8]uint8

	fetched fetchLatch
	decoded decodeLatch
	pending wbLatch
	lastWB  wbLatch

	input   inputLatch
	waiting bool

	ticks       uint64
	debug       bool
	breakpoints []uint8
	devices     []common.Device
	sinks       []common.DisplaySink
}

// New returns a reset machine for the given architecture with an empty
// (all-NOOP) ROM.
func New(arch isa.Arch) *Machine {
	return &Machine{
		arch: arch,
		rom:  make([]isa.Word, arch.ROMSize()),
		sp:   stackEmpty,
	}
}

const stackEmpty = 16

// Tick advances the pipeline by exactly one clock cycle. The four stages
// run in reverse so each consumes the latch its predecessor filled on the
// previous tick. While the machine waits on the input latch the whole
// pipeline is frozen and Tick does nothing.
func (m *Machine) Tick() {
	if m.waiting {
		if !m.input.fresh {
			return
		}
		m.acc = m.input.value
		m.input.fresh = false
		m.waiting = false
	}

	m.next = m.regs

	m.writeBackStage()
	m.executeStage()
	m.decodeStage()
	m.fetchStage()

	m.regs = m.next
	m.ticks++

	for _, bp := range m.breakpoints {
		if bp == m.pc {
			m.debug = true
		}
	}
}

func (m *Machine) fetchStage() {
	m.fetched = fetchLatch{word: m.rom[m.pc], addr: m.pc, valid: true}
	m.pc = (m.pc + 1) & m.arch.PCMask()
}

// DECODE does nothing but translate; the hardware spends this stage on
// register transfer delay.
func (m *Machine) decodeStage() {
	m.decoded = decodeLatch{
		ins:   m.arch.Decode(m.fetched.word),
		addr:  m.fetched.addr,
		valid: m.fetched.valid,
	}
}

// executeStage runs one instruction. ALU ops update the accumulator and
// flags here, so the next EXECUTE already sees them. Control ops overwrite
// PC here: the same tick's FETCH follows the new address, while the
// instruction already latched behind the branch is not flushed and commits
// normally. That surviving instruction is the branch shadow.
func (m *Machine) executeStage() {
	lat := m.decoded
	if !lat.valid {
		m.pending = wbLatch{}
		return
	}

	ins := lat.ins
	wb := wbLatch{ins: ins, addr: lat.addr, valid: true}

	switch {
	case ins.Op.IsALU():
		wb.result, wb.stores = m.executeALU(ins)

	case ins.Op == isa.INP:
		if m.input.fresh {
			m.acc = m.input.value
			m.input.fresh = false
		} else {
			m.waiting = true
		}

	case ins.Op == isa.JMP:
		m.setPC(ins.A.Value)
	case ins.Op == isa.BIE:
		if m.flags.EQ {
			m.setPC(ins.A.Value)
		}
	case ins.Op == isa.BIG:
		if m.flags.GT {
			m.setPC(ins.A.Value)
		}
	case ins.Op == isa.BIL:
		if m.flags.LT {
			m.setPC(ins.A.Value)
		}
	case ins.Op == isa.BIO:
		if m.flags.OV {
			m.setPC(ins.A.Value)
		}

	case ins.Op == isa.CALL:
		m.setPC(ins.A.Value)

	case ins.Op == isa.RET:
		m.setPC(m.pop())
	}

	m.pending = wb
}

// writeBackStage commits the instruction that executed last tick. Source
// registers for MOV, OUT, ROUT, STORE and PUSH are sampled here, in the
// final stage, so a value written by the directly preceding instruction is
// already visible to them.
func (m *Machine) writeBackStage() {
	wb := m.pending
	m.lastWB = wb
	if !wb.valid {
		return
	}

	ins := wb.ins
	a, b := ins.A.Value, ins.B.Value

	switch {
	case ins.Op.IsALU():
		if wb.stores {
			m.writeReg(a, wb.result)
		}

	case ins.Op == isa.IMM:
		m.writeReg(a, b)

	case ins.Op == isa.MOV:
		m.writeReg(a, m.readReg(b))

	case ins.Op == isa.INP:
		// The accumulator holds the latched input byte by the time the
		// frozen pipeline thaws and this commit runs.
		m.writeReg(a, m.acc)

	case ins.Op == isa.OUT:
		m.writePort(a, m.readReg(b))

	case ins.Op == isa.ROUT:
		// The port index is the low 3 bits of R[a].
		m.writePort(m.readReg(a)&7, m.readReg(b))

	case ins.Op == isa.STORE:
		if a < 16 {
			m.ram[a] = m.readReg(b)
		}

	case ins.Op == isa.LOAD:
		if b < 16 {
			m.writeReg(a, m.ram[b])
		}

	case ins.Op == isa.PUSH:
		m.push(m.readReg(a))

	case ins.Op == isa.CALL:
		m.push((wb.addr + 1) & m.arch.PCMask())

	case ins.Op == isa.POP:
		m.writeReg(a, m.pop())
	}
}

func (m *Machine) setPC(v uint8) {
	m.pc = v & m.arch.PCMask()
}

// readReg samples the committed register file. R0 is hardwired to zero and
// indices past the file read as zero too.
func (m *Machine) readReg(i uint8) uint8 {
	if i == 0 || i > 7 {
		return 0
	}
	return m.regs[i]
}

// writeReg lands in the next-tick buffer. Writes to R0 (and to indices past
// the file, which only a hand-built ROM can produce) are dropped.
func (m *Machine) writeReg(i, v uint8) {
	if i == 0 || i > 7 {
		return
	}
	m.next[i] = v
}

func (m *Machine) writePort(p, v uint8) {
	if p > 7 {
		return
	}
	m.ports[p] = v
	for _, s := range m.sinks {
		s.PortWrite(p, v)
	}
}

// push stores below SP. A push onto a full stack is dropped; the assembler
// warns about the statically visible cases.
func (m *Machine) push(v uint8) {
	if m.sp == 0 {
		return
	}
	m.sp--
	m.ram[m.sp] = v
}

// pop reads the top of stack. A pop from an empty stack yields 0 and leaves
// SP alone.
func (m *Machine) pop() uint8 {
	if m.sp >= stackEmpty {
		return 0
	}
	v := m.ram[m.sp]
	m.sp++
	return v
}

// Reset returns the machine to power-on state, keeping the loaded ROM and
// the attached devices. Resetting twice is the same as resetting once.
func (m *Machine) Reset() {
	m.pc = 0
	m.sp = stackEmpty
	m.regs = [8]uint8{}
	m.next = [8]uint8{}
	m.acc = 0
	m.flags = common.Flags{}
	m.ram = [16]uint8{}
	m.ports = [8]uint8{}
	m.fetched = fetchLatch{}
	m.decoded = decodeLatch{}
	m.pending = wbLatch{}
	m.lastWB = wbLatch{}
	m.input = inputLatch{}
	m.waiting = false
	m.ticks = 0
}

// Interface plumbing for common.CPU.

func (m *Machine) Arch() isa.Arch { return m.arch }
func (m *Machine) Ticks() uint64  { return m.ticks }
func (m *Machine) PC() uint8      { return m.pc }
func (m *Machine) SP() uint8      { return m.sp }

func (m *Machine) Reg(i int) uint8 {
	if i <= 0 || i > 7 {
		return 0
	}
	return m.regs[i]
}

func (m *Machine) Accumulator() uint8  { return m.acc }
func (m *Machine) Flags() common.Flags { return m.flags }

func (m *Machine) RAM(i int) uint8 {
	if i < 0 || i > 15 {
		return 0
	}
	return m.ram[i]
}

func (m *Machine) Port(p int) uint8 {
	if p < 0 || p > 7 {
		return 0
	}
	return m.ports[p]
}

func (m *Machine) Framebuffer() [8]uint8 { return m.ports }

// SetInput latches a byte from the host and marks it fresh for INP.
func (m *Machine) SetInput(v uint8) {
	m.input = inputLatch{value: v, fresh: true}
}

func (m *Machine) WaitingForInput() bool { return m.waiting }

func (m *Machine) StageNames() [4]string {
	names := [4]string{"NOOP", "NOOP", "NOOP", "NOOP"}
	if m.fetched.valid {
		names[0] = m.arch.Decode(m.fetched.word).Op.String()
	}
	if m.decoded.valid {
		names[1] = m.decoded.ins.Op.String()
	}
	if m.pending.valid {
		names[2] = m.pending.ins.Op.String()
	}
	if m.lastWB.valid {
		names[3] = m.lastWB.ins.Op.String()
	}
	return names
}

func (m *Machine) AddDevice(d common.Device)    { m.devices = append(m.devices, d) }
func (m *Machine) Devices() []common.Device     { return m.devices }
func (m *Machine) AddSink(s common.DisplaySink) { m.sinks = append(m.sinks, s) }
func (m *Machine) AddBreakpoint(at uint8)       { m.breakpoints = append(m.breakpoints, at) }
func (m *Machine) Debugging() *bool             { return &m.debug }

func (m *Machine) Exit() {
	for _, d := range m.devices {
		d.Cleanup()
	}
	os.Exit(0)
}
