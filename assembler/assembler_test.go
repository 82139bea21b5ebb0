package assembler

import (
	"strconv"
	"strings"
	"testing"
)

func TestAssembleSumThenHalt(t *testing.T) {
	src := `
start:
	MOVI R1, 20
	MOVI R2, 22
	ADD  R3, R1, R2
	HALT
`
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.Bin, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("bin line count = %d, want 4", len(lines))
	}
	for _, l := range lines {
		if len(l) != 64 {
			t.Fatalf("line %q is not a 64-bit absolute word", l)
		}
	}

	mapLines := strings.Split(strings.TrimRight(out.Map, "\n"), "\n")
	if len(mapLines) != 4 {
		t.Fatalf("map line count = %d, want 4", len(mapLines))
	}
	if !strings.HasSuffix(mapLines[0], ",1") {
		t.Fatalf("first map line %q not flagged executable", mapLines[0])
	}
}

func TestAssembleForwardLabelBranch(t *testing.T) {
	src := `
	CMP  R1, R1
	JZ   target
	MOVI R2, 1
target:
	MOVI R2, 99
	HALT
`
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.Bin, "\n"), "\n")
	// JZ is the second line; its target is a forward label, so it must be
	// emitted as a 32-bit-prefixed relocation.
	if !strings.Contains(lines[1], "{") {
		t.Fatalf("JZ line %q is not a relocation", lines[1])
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	src := "JMP nowhere\n"
	_, err := Assemble(src)
	if err == nil {
		t.Fatal("expected an error for an undefined label")
	}
}

func TestAssembleDataDirectives(t *testing.T) {
	src := `
	ORG 0
count:
	DW 3
buf:
	RESW 4
msg:
	DB "hi", 0
	HALT
`
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.Bin, "\n"), "\n")
	// DW(1) + RESW(4) + DB(1, "hi\0" padded to 8 bytes) + HALT(1) = 7 words.
	if len(lines) != 7 {
		t.Fatalf("line count = %d, want 7", len(lines))
	}
	v, err := strconv.ParseUint(lines[0], 2, 64)
	if err != nil || v != 3 {
		t.Fatalf("DW value = %v, %v, want 3", v, err)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := "a: HALT\na: HALT\n"
	_, err := Assemble(src)
	if err == nil {
		t.Fatal("expected ErrSymbol for duplicate label")
	}
}
