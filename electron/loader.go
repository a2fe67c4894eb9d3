package electron

import (
	"io"

	"github.com/pkg/errors"

	"github.com/eliperez-dev/electron/asm"
	"github.com/eliperez-dev/electron/isa"
)

// ROM exposes the loaded image. The slice is the machine's own storage, not
// a copy, so writes through it change the running program.
func (m *Machine) ROM() []isa.Word {
	return m.rom
}

// LoadROM copies a program into ROM, padding the remainder with NOOP, and
// resets the machine. Programs longer than the ROM are refused.
func (m *Machine) LoadROM(rom []isa.Word) error {
	if len(rom) > m.arch.ROMSize() {
		return errors.Errorf("program has %d words, %s ROM holds %d", len(rom), m.arch, m.arch.ROMSize())
	}
	copy(m.rom, rom)
	for i := len(rom); i < len(m.rom); i++ {
		m.rom[i] = 0
	}
	m.Reset()
	return nil
}

// LoadSource assembles Electron assembly for this machine's architecture
// and loads the result. Warnings are returned even on success.
func (m *Machine) LoadSource(source string) ([]asm.Warning, error) {
	res, err := asm.Assemble(m.arch, source)
	if err != nil {
		return nil, err
	}
	return res.Warnings, m.LoadROM(res.ROM)
}

// SaveImage persists the ROM in the on-disk image format.
func (m *Machine) SaveImage(w io.Writer) error {
	return isa.WriteImage(w, m.arch, m.rom)
}

// LoadImage loads a previously saved ROM image. The image must have been
// built for this machine's architecture.
func (m *Machine) LoadImage(r io.Reader) error {
	a, rom, err := isa.ReadImage(r)
	if err != nil {
		return err
	}
	if a != m.arch {
		return errors.Errorf("ROM image is for %s, machine is %s", a, m.arch)
	}
	return m.LoadROM(rom)
}
