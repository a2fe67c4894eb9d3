package isa

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Instruction{
		{Op: NOOP},
		{Op: IMM, A: Operand{KindRegister, 1}, B: Operand{KindImmediate, 200}},
		{Op: MOV, A: Operand{KindRegister, 2}, B: Operand{KindRegister, 3}},
		{Op: ADD, A: Operand{KindRegister, 1}, B: Operand{KindRegister, 1}},
		{Op: ADD, Prefix: PrefixS, A: Operand{KindRegister, 4}, B: Operand{KindRegister, 5}},
		{Op: SUB, Prefix: PrefixU, A: Operand{KindRegister, 7}, B: Operand{KindRegister, 0}},
		{Op: XOR, Prefix: PrefixX, B: Operand{KindRegister, 6}},
		{Op: SHR, A: Operand{KindRegister, 1}, B: Operand{KindRegister, 2}},
		{Op: OUT, A: Operand{KindPort, 7}, B: Operand{KindRegister, 1}},
		{Op: ROUT, A: Operand{KindRegister, 1}, B: Operand{KindRegister, 2}},
		{Op: INP, A: Operand{KindRegister, 3}},
		{Op: JMP, A: Operand{KindCodeAddr, 31}},
		{Op: BIE, A: Operand{KindCodeAddr, 200}},
		{Op: STORE, A: Operand{KindAddress, 15}, B: Operand{KindRegister, 2}},
		{Op: LOAD, A: Operand{KindRegister, 2}, B: Operand{KindAddress, 9}},
		{Op: PUSH, A: Operand{KindRegister, 5}},
		{Op: POP, A: Operand{KindRegister, 6}},
		{Op: CALL, A: Operand{KindCodeAddr, 100}},
		{Op: RET},
	}

	for _, ins := range cases {
		got := V2.Decode(Encode(ins))
		if got != ins {
			t.Errorf("%s: round trip mismatch: got %+v, want %+v", ins.Op, got, ins)
		}
	}
}

func TestDecodeUnknownOpcodeIsNOOP(t *testing.T) {
	w := Word(0x3f) << 18 // opcode 63 does not exist
	if got := V2.Decode(w).Op; got != NOOP {
		t.Fatalf("invalid opcode decoded as %s, want NOOP", got)
	}
}

func TestDecodeV2OpOnV1IsNOOP(t *testing.T) {
	w := Encode(Instruction{Op: PUSH, A: Operand{KindRegister, 1}})
	if got := V1.Decode(w).Op; got != NOOP {
		t.Fatalf("PUSH on V1 decoded as %s, want NOOP", got)
	}
	if got := V2.Decode(w).Op; got != PUSH {
		t.Fatalf("PUSH on V2 decoded as %s, want PUSH", got)
	}
}

func TestWordBytesRoundTrip(t *testing.T) {
	w := Encode(Instruction{Op: IMM, A: Operand{KindRegister, 3}, B: Operand{KindImmediate, 0xAB}})
	if got := WordFromBytes(w.Bytes()); got != w {
		t.Fatalf("bytes round trip: got %06x, want %06x", got, w)
	}
}

func TestNOOPEncodesToZero(t *testing.T) {
	if w := Encode(Instruction{Op: NOOP}); w != 0 {
		t.Fatalf("NOOP encoded as %06x, want 0", w)
	}
}

func TestArchProperties(t *testing.T) {
	if V1.ROMSize() != 32 || V2.ROMSize() != 256 {
		t.Fatalf("ROM sizes: V1 %d, V2 %d", V1.ROMSize(), V2.ROMSize())
	}
	if V1.PCMask() != 0x1f || V2.PCMask() != 0xff {
		t.Fatalf("PC masks: V1 %02x, V2 %02x", V1.PCMask(), V2.PCMask())
	}
	if V1.Has(CALL) {
		t.Fatal("V1 should not have CALL")
	}
	if !V1.Has(JMP) || !V1.Has(ADDC) {
		t.Fatal("V1 is missing a core op")
	}
	for op := Op(0); op < opCount; op++ {
		if !V2.Has(op) {
			t.Fatalf("V2 is missing %s", op)
		}
	}
}

func TestImageRoundTrip(t *testing.T) {
	rom := make([]Word, V1.ROMSize())
	rom[0] = Encode(Instruction{Op: IMM, A: Operand{KindRegister, 1}, B: Operand{KindImmediate, 5}})
	rom[1] = Encode(Instruction{Op: JMP, A: Operand{KindCodeAddr, 0}})

	var buf bytes.Buffer
	if err := WriteImage(&buf, V1, rom); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	arch, got, err := ReadImage(&buf)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if arch != V1 {
		t.Fatalf("arch: got %s, want %s", arch, V1)
	}
	if len(got) != len(rom) {
		t.Fatalf("length: got %d, want %d", len(got), len(rom))
	}
	for i := range rom {
		if got[i] != rom[i] {
			t.Fatalf("slot %d: got %06x, want %06x", i, got[i], rom[i])
		}
	}
}

func TestImageRejectsGarbage(t *testing.T) {
	if _, _, err := ReadImage(bytes.NewReader([]byte("not a rom image"))); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}
