package assembler_test

import (
	"strings"
	"testing"

	"github.com/rcornwell/euclid64/assembler"
	"github.com/rcornwell/euclid64/cpu"
	"github.com/rcornwell/euclid64/linker"
	"github.com/rcornwell/euclid64/memory"
)

// TestAssembleAndRunSumThenHalt assembles and runs the mandatory
// sum-then-halt scenario, including the OUT line, and checks both the
// register result and the output-int callback.
func TestAssembleAndRunSumThenHalt(t *testing.T) {
	src := `
	ORG 0
	MOVI R1, 10
	MOVI R2, 20
	ADD  R3, R1, R2
	OUT  R3, 0xFFFF0008
	HALT
`
	out, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.Bin, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("bin line count = %d, want 5", len(lines))
	}

	c := cpu.New(memory.New(4096))
	var outputs []int64
	c.Callbacks.OutputInt = func(v int64) { outputs = append(outputs, v) }

	if err := linker.Load(c, out.Bin, out.Map, linker.LoadOptions{Name: "sum"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}

	if c.Regs[3] != 30 {
		t.Fatalf("r3 = %d, want 30", c.Regs[3])
	}
	if len(outputs) != 1 || outputs[0] != 30 {
		t.Fatalf("output-int callback = %v, want [30]", outputs)
	}
	if c.Cycles != 5 {
		t.Fatalf("cycles = %d, want 5", c.Cycles)
	}
}
