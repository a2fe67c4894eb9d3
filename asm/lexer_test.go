package asm

import "testing"

func TestLexOperandPrefixes(t *testing.T) {
	cases := []struct {
		in   string
		kind TokenKind
		val  int
	}{
		{"R3", TokRegister, 3},
		{"r3", TokRegister, 3},
		{"$5", TokRegister, 5},
		{"%7", TokPort, 7},
		{"#12", TokAddress, 12},
		{"@12", TokAddress, 12},
		{"42", TokImmediate, 42},
		{"B1010", TokImmediate, 10},
		{"b1111_1110", TokImmediate, 254},
		{"B0110_1100", TokImmediate, 108},
	}

	for _, c := range cases {
		toks, err := LexLine(c.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", c.in, err)
			continue
		}
		if len(toks) != 1 {
			t.Errorf("%q: got %d tokens, want 1", c.in, len(toks))
			continue
		}
		if toks[0].Kind != c.kind || toks[0].Value != c.val {
			t.Errorf("%q: got kind %d value %d, want kind %d value %d",
				c.in, toks[0].Kind, toks[0].Value, c.kind, c.val)
		}
	}
}

func TestLexErrors(t *testing.T) {
	for _, in := range []string{"R9", "R12", "$abc", "%abc", "#banana", "B2", "B102", "12ab", "!!"} {
		if _, err := LexLine(in); err == nil {
			t.Errorf("%q: expected a lex error", in)
		}
	}
}

func TestLexCommentsAndBlanks(t *testing.T) {
	for _, in := range []string{"", "   ", "; a full comment line", "\t; indented"} {
		toks, err := LexLine(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if len(toks) != 0 {
			t.Fatalf("%q: got %d tokens, want none", in, len(toks))
		}
	}

	toks, err := LexLine("imm r1 5 ; load five")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[0].Kind != TokIdent || toks[0].Text != "IMM" {
		t.Fatalf("mnemonic token: %+v", toks[0])
	}
}

func TestLexLabels(t *testing.T) {
	toks, err := LexLine("loop: OUT %0 R1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	if toks[0].Kind != TokLabelDef || toks[0].Text != "LOOP" {
		t.Fatalf("label token: %+v", toks[0])
	}
	if toks[1].Kind != TokIdent || toks[1].Text != "OUT" {
		t.Fatalf("mnemonic token: %+v", toks[1])
	}
}

func TestLexMnemonicsAreIdents(t *testing.T) {
	// RET starts with R and BIE starts with B; neither is a register or a
	// binary literal.
	for _, in := range []string{"RET", "BIE", "B2B"} {
		toks, err := LexLine(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if len(toks) != 1 || toks[0].Kind != TokIdent {
			t.Fatalf("%q: got %+v, want a single ident", in, toks)
		}
	}
}
