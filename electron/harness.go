package electron

import (
	"github.com/eliperez-dev/electron/asm"
	"github.com/eliperez-dev/electron/common"
	"github.com/eliperez-dev/electron/isa"
)

// Snapshot is a copy of every host-observable piece of machine state, taken
// between ticks.
type Snapshot struct {
	Ticks       uint64
	PC, SP      uint8
	Accumulator uint8
	Regs        [8]uint8
	Flags       common.Flags
	RAM         [16]uint8
	Framebuffer [8]uint8
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Ticks:       m.ticks,
		PC:          m.pc,
		SP:          m.sp,
		Accumulator: m.acc,
		Regs:        m.regs,
		Flags:       m.flags,
		RAM:         m.ram,
		Framebuffer: m.ports,
	}
}

// Run ticks the machine n times and snapshots the result. Frozen ticks
// (waiting on input) count as calls but not as cycles.
func (m *Machine) Run(n int) Snapshot {
	for i := 0; i < n; i++ {
		m.Tick()
	}
	return m.Snapshot()
}

// RunUntil ticks the machine until done reports true or limit ticks have
// elapsed, whichever is first. It reports whether done was reached.
func (m *Machine) RunUntil(limit int, done func(Snapshot) bool) (Snapshot, bool) {
	for i := 0; i < limit; i++ {
		m.Tick()
		if s := m.Snapshot(); done(s) {
			return s, true
		}
	}
	return m.Snapshot(), false
}

// RunSource is the one-call conformance entry point: assemble, load, run a
// fixed number of ticks, snapshot.
func RunSource(arch isa.Arch, source string, ticks int) (Snapshot, []asm.Warning, error) {
	m := New(arch)
	warns, err := m.LoadSource(source)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return m.Run(ticks), warns, nil
}
