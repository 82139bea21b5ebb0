package cpu

import (
	"math"
	"testing"

	"github.com/rcornwell/euclid64/isa"
	"github.com/rcornwell/euclid64/memory"
)

func asm(t *testing.T, mnemonic string, ops ...isa.Operand) uint64 {
	t.Helper()
	w, err := isa.Encode(mnemonic, ops)
	if err != nil {
		t.Fatalf("encode %s: %v", mnemonic, err)
	}
	return w
}

func load(t *testing.T, mem *memory.Memory, addr uint64, words ...uint64) {
	t.Helper()
	for i, w := range words {
		if err := mem.WriteDouble(addr+uint64(i)*8, w); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
}

// TestSumThenHalt covers: MOVI two constants, ADD, HALT.
func TestSumThenHalt(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.Imm(20)),
		asm(t, "MOVI", isa.Reg(2), isa.Imm(22)),
		asm(t, "ADD", isa.Reg(3), isa.Reg(1), isa.Reg(2)),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[3] != 42 {
		t.Fatalf("r3 = %d, want 42", c.Regs[3])
	}
	if !c.PositiveSet() || c.Cycles != 4 {
		t.Fatalf("flags/cycles mismatch: flags=%#x cycles=%d", c.Flags, c.Cycles)
	}
}

// TestConditionalBranch covers the JZ taken path.
func TestConditionalBranch(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.Imm(0)),
		asm(t, "CMP", isa.Reg(1), isa.Reg(1)),
		asm(t, "JZ", isa.Imm(32)),
		asm(t, "MOVI", isa.Reg(2), isa.Imm(1)), // skipped
	)
	load(t, mem, 32,
		asm(t, "MOVI", isa.Reg(2), isa.Imm(99)),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[2] != 99 {
		t.Fatalf("r2 = %d, want 99 (branch not taken)", c.Regs[2])
	}
}

// TestCallReturn covers CALL pushing the return address and RET resuming
// the caller.
func TestCallReturn(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "CALL", isa.Imm(64)),
		asm(t, "MOVI", isa.Reg(1), isa.Imm(7)),
		asm(t, "HALT"),
	)
	load(t, mem, 64,
		asm(t, "MOVI", isa.Reg(2), isa.Imm(3)),
		asm(t, "RET"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[1] != 7 || c.Regs[2] != 3 {
		t.Fatalf("r1=%d r2=%d, want 7,3", c.Regs[1], c.Regs[2])
	}
	if c.SP != mem.Size() {
		t.Fatalf("sp = %#x, want restored to top of memory", c.SP)
	}
}

// TestPushPopOrdering covers LIFO ordering and overflow/underflow bounds.
func TestPushPopOrdering(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)

	if err := c.Push(0x11); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := c.Push(0x22); err != nil {
		t.Fatalf("push: %v", err)
	}
	v, err := c.Pop()
	if err != nil || v != 0x22 {
		t.Fatalf("pop = %#x, %v, want 0x22", v, err)
	}
	v, err = c.Pop()
	if err != nil || v != 0x11 {
		t.Fatalf("pop = %#x, %v, want 0x11", v, err)
	}
	if _, err := c.Pop(); err != ErrStackUnderflow {
		t.Fatalf("pop on empty stack = %v, want ErrStackUnderflow", err)
	}

	c.SP = 4
	if err := c.Push(1); err != ErrStackOverflow {
		t.Fatalf("push near base = %v, want ErrStackOverflow", err)
	}
}

// TestMemoryRoundTrip covers ST/LD through both absolute and
// register+offset addressing forms.
func TestMemoryRoundTrip(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.Imm(123456)),
		asm(t, "ST", isa.Reg(1), isa.Imm(256)),
		asm(t, "LD", isa.Reg(2), isa.Imm(256)),
		asm(t, "MOVI", isa.Reg(3), isa.Imm(256)),
		asm(t, "ST", isa.Reg(1), isa.Reg(3), isa.Imm(8)),
		asm(t, "LD", isa.Reg(4), isa.Reg(3), isa.Imm(8)),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[2] != 123456 {
		t.Fatalf("r2 = %d, want 123456", c.Regs[2])
	}
	if c.Regs[4] != 123456 {
		t.Fatalf("r4 = %d, want 123456 (offset form)", c.Regs[4])
	}
}

// TestFloatDivideByZero covers FDIV-by-zero yielding signed infinity
// instead of an error.
func TestFloatDivideByZero(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.FloatImm(5.0)),
		asm(t, "MOVI", isa.Reg(2), isa.FloatImm(0.0)),
		asm(t, "FDIV", isa.Reg(3), isa.Reg(1), isa.Reg(2)),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	result := math.Float64frombits(c.Regs[3])
	if !math.IsInf(result, 1) {
		t.Fatalf("r3 = %v, want +Inf", result)
	}
	if !c.OverflowSet() {
		t.Fatal("overflow flag not set on float divide by zero")
	}
}

// TestDivisionByZeroFails covers the integer DIV error path: no result is
// written on error.
func TestDivisionByZeroFails(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.Imm(10)),
		asm(t, "MOVI", isa.Reg(2), isa.Imm(0)),
		asm(t, "DIV", isa.Reg(3), isa.Reg(1), isa.Reg(2)),
	)

	err := c.Run(0)
	if err != ErrDivisionByZero {
		t.Fatalf("run = %v, want ErrDivisionByZero", err)
	}
	if c.Regs[3] != 0 {
		t.Fatalf("r3 = %d, want untouched (0)", c.Regs[3])
	}
}

// TestInArraySplitsBaseAndCount covers the IN extended array form: RS1
// supplies the base address the parsed integers are written to, and RD
// receives the count actually parsed, not the same register as the base.
func TestInArraySplitsBaseAndCount(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)
	c.Callbacks.InputLine = func() string { return "5, 6, 7" }

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.Imm(256)), // R1 = base address
		asm(t, "IN", isa.Reg(1), isa.Reg(2), isa.Imm(10), isa.Imm(int64(isa.IOFunc(false, isa.IOSubArray, ',')))),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[2] != 3 {
		t.Fatalf("r2 (count) = %d, want 3", c.Regs[2])
	}
	for i, want := range []uint64{5, 6, 7} {
		v, err := mem.ReadDouble(256 + uint64(i)*8)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if v != want {
			t.Fatalf("memory[%d] = %d, want %d", i, v, want)
		}
	}
}

// TestNonExecutableFetch covers the executable-address-set enforcement:
// fetching PC outside the set advances to the next member or fails.
func TestNonExecutableFetch(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)
	load(t, mem, 0, asm(t, "HALT"))
	c.ExecSet = map[uint64]bool{0: true}

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}

	c.Reset()
	c.ExecSet = map[uint64]bool{128: true}
	c.PC = 256
	if _, err := c.Fetch(); err != ErrNonExecutableFetch {
		t.Fatalf("fetch = %v, want ErrNonExecutableFetch", err)
	}
}

// TestMoviNegativeImmediateZeroExtends covers MOVI FUNC=0: IMM32 is
// zero-extended into RD, never sign-extended, even when the high bit of
// the 32-bit immediate is set.
func TestMoviNegativeImmediateZeroExtends(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "MOVI", isa.Reg(1), isa.Imm(-1)),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[1] != 0x00000000FFFFFFFF {
		t.Fatalf("r1 = %#x, want %#x (zero-extended, not sign-extended)", c.Regs[1], uint64(0xFFFFFFFF))
	}
}

// TestPushImmediateZeroExtends covers PUSH FUNC=0: the immediate is
// pushed zero-extended, matching MOVI's decode semantics rather than
// sign-extending like ADDI/LD/ST's offset forms.
func TestPushImmediateZeroExtends(t *testing.T) {
	mem := memory.New(4096)
	c := New(mem)

	load(t, mem, 0,
		asm(t, "PUSH", isa.Imm(-1)),
		asm(t, "POP", isa.Reg(1)),
		asm(t, "HALT"),
	)

	if err := c.Run(0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Regs[1] != 0x00000000FFFFFFFF {
		t.Fatalf("r1 = %#x, want %#x (zero-extended, not sign-extended)", c.Regs[1], uint64(0xFFFFFFFF))
	}
}
