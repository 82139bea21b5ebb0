/*
 * EUCLID-64 - CPU state and the fetch-decode-execute loop.
 *
 * Grounded on the dispatch-table idiom of emu/cpu/cpudefs.go's
 * `table [256]func(*stepInfo) uint16`, re-expressed over EUCLID-64's
 * decoded-instruction shape instead of IBM/370 semantics.
 */

package cpu

import (
	"os"

	"github.com/rcornwell/euclid64/isa"
	"github.com/rcornwell/euclid64/memory"
)

// Segment records a loaded program image's address range (§4.9).
type Segment struct {
	Min, Max uint64
	Name     string
}

// CPU is the EUCLID-64 machine state: memory, registers, flags, stack
// pointer, and the execution bookkeeping described in §3.
type CPU struct {
	Mem *memory.Memory

	PC    uint64
	IR    uint64
	Flags uint8
	Regs  [16]uint64
	SP    uint64

	Running bool
	Cycles  uint64

	StepMode bool
	Callbacks IOCallbacks

	ExecSet  map[uint64]bool // nil means "no restriction"
	Segments []Segment

	OutputBuffer    []byte
	OutputIntBuffer []int64
	PortFiles       map[uint32]*os.File

	DebugMask int
	Logf      func(format string, args ...any)

	table [256]func(*CPU, isa.Decoded) (bool, error)
}

// New constructs a CPU over mem, with SP at the top of memory, per §3's
// lifecycle rule ("stack pointer, initialized to memory size").
func New(mem *memory.Memory) *CPU {
	c := &CPU{Mem: mem}
	c.buildDispatchTable()
	c.Reset()
	return c
}

// Reset zeroes registers, flags, stack pointer (to top of memory), memory
// contents, cycle count, and cached segment/executable-address state, per
// §3's lifecycle rule.
func (c *CPU) Reset() {
	c.Mem.Reset()
	c.Regs = [16]uint64{}
	c.Flags = 0
	c.PC = 0
	c.IR = 0
	c.SP = c.Mem.Size()
	c.Cycles = 0
	c.Running = false
	c.ExecSet = nil
	c.Segments = nil
	c.OutputBuffer = nil
	c.OutputIntBuffer = nil
}

func (c *CPU) trace(category string, mask int, format string, args ...any) {
	if c.Logf == nil || c.DebugMask&mask == 0 {
		return
	}
	c.Logf("["+category+"] "+format, args...)
}

// nextExecAddr returns the smallest address in ExecSet that is >= addr,
// and whether one exists.
func (c *CPU) nextExecAddr(addr uint64) (uint64, bool) {
	best, found := uint64(0), false
	for a := range c.ExecSet {
		if a >= addr && (!found || a < best) {
			best, found = a, true
		}
	}
	return best, found
}

// Fetch reads the 64-bit word at PC and advances PC by 8. When an
// executable-address set is attached and PC is not a member, the fetch
// advances PC to the smallest member >= PC, failing with
// ErrNonExecutableFetch if none exists (§4.5).
func (c *CPU) Fetch() (uint64, error) {
	if c.ExecSet != nil && !c.ExecSet[c.PC] {
		next, ok := c.nextExecAddr(c.PC)
		if !ok {
			return 0, ErrNonExecutableFetch
		}
		c.PC = next
	}
	word, err := c.Mem.ReadDouble(c.PC)
	if err != nil {
		return 0, err
	}
	c.IR = word
	c.PC += 8
	return word, nil
}

// Execute dispatches a decoded instruction to its executor. It returns
// false (with a nil error) on HALT, causing the run loop to stop; true
// otherwise. Unknown opcodes report ErrUnknownOpcode.
func (c *CPU) Execute(d isa.Decoded) (bool, error) {
	handler := c.table[d.Opcode]
	if handler == nil {
		return false, ErrUnknownOpcode
	}
	return handler(c, d)
}

// Step executes one fetch-decode-execute cycle, increments the cycle
// counter, and invokes the step-mode observer when enabled (§4.5).
func (c *CPU) Step() (bool, error) {
	word, err := c.Fetch()
	if err != nil {
		return false, err
	}
	d := isa.Decode(word)
	c.trace("cpu", debugInst, "pc=%#x opcode=%#x func=%#x imm32=%#x", c.PC-8, d.Opcode, d.Func, d.Imm32)

	cont, err := c.Execute(d)
	c.Cycles++

	if c.StepMode && c.Callbacks.Step != nil {
		c.Callbacks.Step(c)
	}
	return cont, err
}

// Run loops Step until it returns false, an error occurs, the running
// flag is cleared externally, or maxCycles is reached (0 means
// unbounded).
func (c *CPU) Run(maxCycles uint64) error {
	c.Running = true
	for c.Running {
		if maxCycles != 0 && c.Cycles >= maxCycles {
			return nil
		}
		cont, err := c.Step()
		if err != nil {
			c.Running = false
			return err
		}
		if !cont {
			c.Running = false
			return nil
		}
	}
	return nil
}

// Stop clears the running flag; checked by Run between cycles.
func (c *CPU) Stop() {
	c.Running = false
}

// regRange reports whether r is a valid register index (0..15). Indices
// from decoded instruction words are always masked to 4 bits by the
// decoder, so this only guards against direct API misuse.
func regRange(r uint8) bool { return r <= 15 }
