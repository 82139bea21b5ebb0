package isa

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		mn   string
		ops  []Operand
	}{
		{"add", "ADD", []Operand{Reg(3), Reg(1), Reg(2)}},
		{"not", "NOT", []Operand{Reg(1), Reg(2)}},
		{"cmp2", "CMP", []Operand{Reg(1), Reg(2)}},
		{"addi", "ADDI", []Operand{Reg(1), Reg(2), Imm(-5)}},
		{"movi-imm", "MOVI", []Operand{Reg(1), Imm(10)}},
		{"movi-reg", "MOVI", []Operand{Reg(1), Reg(2)}},
		{"ld-abs", "LD", []Operand{Reg(1), Imm(1000)}},
		{"ld-offset", "LD", []Operand{Reg(1), Reg(2), Imm(8)}},
		{"cp", "CP", []Operand{Reg(1), Reg(2)}},
		{"push-imm", "PUSH", []Operand{Imm(30)}},
		{"push-reg", "PUSH", []Operand{Reg(4)}},
		{"pop", "POP", []Operand{Reg(0)}},
		{"jmp", "JMP", []Operand{Imm(64)}},
		{"ret", "RET", nil},
		{"halt", "HALT", nil},
		{"out-mmio", "OUT", []Operand{Reg(3), Imm(0xFFFF0008), Imm(int64(IOFunc(false, 0, 0)))}},
		{"in-port", "IN", []Operand{Reg(1), Imm(2), Imm(int64(IOFunc(true, 0, 0)))}},
		{"ins", "INS", []Operand{Reg(1), Imm(1)}},
		{"outs", "OUTS", []Operand{Reg(1), Imm(1)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			word, err := Encode(c.mn, c.ops)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			d := Decode(word)
			if d.Encode() != word {
				t.Fatalf("round trip mismatch: got %#x want %#x", d.Encode(), word)
			}
		})
	}
}

func TestEncodeInArrayFormUsesDistinctRegisters(t *testing.T) {
	word, err := Encode("IN", []Operand{Reg(5), Reg(6), Imm(10), Imm(int64(IOFunc(false, IOSubArray, ',')))})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := Decode(word)
	if d.RS1 != 5 {
		t.Fatalf("RS1 = %d, want 5 (base address register)", d.RS1)
	}
	if d.RD != 6 {
		t.Fatalf("RD = %d, want 6 (count-out register)", d.RD)
	}
	if d.Imm32 != 10 {
		t.Fatalf("Imm32 = %d, want 10 (max count)", d.Imm32)
	}
	subop := uint8((d.Func >> IOSubShift) & IOSubMask)
	if subop != IOSubArray {
		t.Fatalf("subop = %d, want IOSubArray", subop)
	}
}

func TestEncodeCPDisambiguator(t *testing.T) {
	word, err := Encode("CP", []Operand{Reg(1), Reg(2)})
	if err != nil {
		t.Fatal(err)
	}
	d := Decode(word)
	if d.Func != 1 {
		t.Fatalf("CP must encode FUNC=1 disambiguator, got %d", d.Func)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode("BOGUS", nil); err != ErrUnknownMnemonic {
		t.Fatalf("expected ErrUnknownMnemonic, got %v", err)
	}
	if _, err := Encode("ADD", []Operand{Reg(1), Reg(2)}); err != ErrOperandCount {
		t.Fatalf("expected ErrOperandCount, got %v", err)
	}
	if _, err := Encode("ADD", []Operand{Reg(16), Reg(1), Reg(2)}); err != ErrRegisterRange {
		t.Fatalf("expected ErrRegisterRange, got %v", err)
	}
	if _, err := Encode("JMP", []Operand{Imm(1 << 33)}); err != ErrImmediateRange {
		t.Fatalf("expected ErrImmediateRange, got %v", err)
	}
}

func TestDecodeUnknownOpcodeFallsToFormS(t *testing.T) {
	d := Decode(uint64(0xFF) << 56)
	if d.Form != FormS {
		t.Fatalf("unknown opcode should decode to FormS, got %v", d.Form)
	}
	if IsKnownOpcode(0xFF) {
		t.Fatalf("0xFF should not be a known opcode")
	}
}
