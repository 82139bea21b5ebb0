package linker

import (
	"testing"

	"github.com/rcornwell/euclid64/assembler"
	"github.com/rcornwell/euclid64/cpu"
	"github.com/rcornwell/euclid64/memory"
)

func TestLoadAndRunRoundTrip(t *testing.T) {
	src := `
	MOVI R1, 20
	MOVI R2, 22
	ADD  R3, R1, R2
	HALT
`
	out, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	mem := memory.New(4096)
	c := cpu.New(mem)

	if err := Load(c, out.Bin, out.Map, LoadOptions{Name: "test"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[3] != 42 {
		t.Fatalf("r3 = %d, want 42", c.Regs[3])
	}
	if len(c.Segments) != 1 || c.Segments[0].Name != "test" {
		t.Fatalf("segments = %+v", c.Segments)
	}
}

func TestLoadForwardBranchRelocation(t *testing.T) {
	src := `
	CMP  R1, R1
	JZ   target
	MOVI R2, 1
target:
	MOVI R2, 99
	HALT
`
	out, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	mem := memory.New(4096)
	c := cpu.New(mem)
	if err := Load(c, out.Bin, out.Map, LoadOptions{Name: "branch"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[2] != 99 {
		t.Fatalf("r2 = %d, want 99", c.Regs[2])
	}
}

func TestParseBinRejectsBadWidth(t *testing.T) {
	bin := "00000000000000000000000000000000000000000000000000000000000000000000\n"
	_, err := parseBin(bin)
	if err == nil {
		t.Fatal("expected error for a 68-bit line")
	}
}

func TestLoadRejectsOverlapByDefault(t *testing.T) {
	src := "HALT\n"
	out, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	mem := memory.New(4096)
	c := cpu.New(mem)
	if err := Load(c, out.Bin, out.Map, LoadOptions{Name: "first"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Load(c, out.Bin, out.Map, LoadOptions{Name: "second"}); err == nil {
		t.Fatal("expected overlap rejection on second load")
	}
	if err := Load(c, out.Bin, out.Map, LoadOptions{Name: "third", Force: true}); err != nil {
		t.Fatalf("forced reload should succeed: %v", err)
	}
}

func TestLegacyImageLoad(t *testing.T) {
	img := "0x0: 0x7100000000000000\n"
	mem := memory.New(4096)
	c := cpu.New(mem)
	if err := LoadLegacyImage(c, img, "legacy"); err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if !c.ExecSet[0] {
		t.Fatal("legacy loader did not mark address 0 executable")
	}
	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
}
