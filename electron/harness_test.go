package electron

import (
	"bytes"
	"testing"

	"github.com/eliperez-dev/electron/isa"
)

func TestRunSource(t *testing.T) {
	s, warns, err := RunSource(isa.V1, "IMM R1 5\nNOOP\nOUT %0 R1", 10)
	if err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if s.Framebuffer[0] != 5 {
		t.Fatalf("port 0 = %d, want 5", s.Framebuffer[0])
	}
}

func TestRunSourceSurfacesAssemblyErrors(t *testing.T) {
	if _, _, err := RunSource(isa.V1, "FROB R1", 10); err == nil {
		t.Fatal("expected an assembly error")
	}
}

func TestRunUntilHitsLimit(t *testing.T) {
	m := New(isa.V1)
	s, ok := m.RunUntil(25, func(Snapshot) bool { return false })
	if ok {
		t.Fatal("done should never have been reported")
	}
	if s.Ticks != 25 {
		t.Fatalf("ran %d ticks, want 25", s.Ticks)
	}
}

func TestLoadROMRejectsOversizedPrograms(t *testing.T) {
	m := New(isa.V1)
	if err := m.LoadROM(make([]isa.Word, 33)); err == nil {
		t.Fatal("expected an error for 33 words on V1")
	}
}

func TestLoadROMReplacesPreviousProgram(t *testing.T) {
	m := load(t, isa.V1, "IMM R1 5\nOUT %0 R1")
	m.Run(10)

	if _, err := m.LoadSource("IMM R2 9"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	s := m.Snapshot()
	if s.Ticks != 0 || s.Framebuffer[0] != 0 {
		t.Fatalf("reload did not reset: %+v", s)
	}
	if m.arch.Decode(m.ROM()[1]).Op != isa.NOOP {
		t.Fatal("old program left residue past the new one")
	}
}

func TestMachineImageRoundTrip(t *testing.T) {
	m := load(t, isa.V2, "IMM R1 5\nOUT %0 R1\nJMP 0")

	var buf bytes.Buffer
	if err := m.SaveImage(&buf); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	n := New(isa.V2)
	if err := n.LoadImage(&buf); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	a, b := m.Run(20), n.Run(20)
	if a != b {
		t.Fatalf("image copy diverged: %+v vs %+v", a, b)
	}
}

func TestLoadImageChecksArch(t *testing.T) {
	m := load(t, isa.V1, "NOOP")
	var buf bytes.Buffer
	if err := m.SaveImage(&buf); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if err := New(isa.V2).LoadImage(&buf); err == nil {
		t.Fatal("expected an architecture mismatch error")
	}
}

func TestFormatIns(t *testing.T) {
	cases := []struct {
		ins  isa.Instruction
		want string
	}{
		{isa.Instruction{Op: isa.NOOP}, "NOOP"},
		{isa.Instruction{Op: isa.IMM,
			A: isa.Operand{Kind: isa.KindRegister, Value: 1},
			B: isa.Operand{Kind: isa.KindImmediate, Value: 5}}, "IMM R1 5"},
		{isa.Instruction{Op: isa.ADD, Prefix: isa.PrefixU,
			A: isa.Operand{Kind: isa.KindRegister, Value: 2},
			B: isa.Operand{Kind: isa.KindRegister, Value: 1}}, "UADD R2 R1"},
		{isa.Instruction{Op: isa.XOR, Prefix: isa.PrefixX,
			B: isa.Operand{Kind: isa.KindRegister, Value: 3}}, "XXOR R3"},
		{isa.Instruction{Op: isa.OUT,
			A: isa.Operand{Kind: isa.KindPort, Value: 0},
			B: isa.Operand{Kind: isa.KindRegister, Value: 1}}, "OUT %0 R1"},
		{isa.Instruction{Op: isa.STORE,
			A: isa.Operand{Kind: isa.KindAddress, Value: 3},
			B: isa.Operand{Kind: isa.KindRegister, Value: 1}}, "STORE #3 R1"},
		{isa.Instruction{Op: isa.JMP,
			A: isa.Operand{Kind: isa.KindCodeAddr, Value: 12}}, "JMP 12"},
	}

	for _, c := range cases {
		if got := FormatIns(c.ins); got != c.want {
			t.Errorf("FormatIns: got %q, want %q", got, c.want)
		}
	}
}
