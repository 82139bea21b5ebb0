/*
 * EUCLID-64 - Console-facing machine: a CPU plus the breakpoint set and
 * load bookkeeping the interactive console needs (§5.13).
 *
 * Breakpoints are a console-only addition layered on top of the core's
 * executable-address-set machinery; package cpu itself knows nothing
 * about them.
 */

package machine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcornwell/euclid64/cpu"
	"github.com/rcornwell/euclid64/linker"
	"github.com/rcornwell/euclid64/memory"
)

// Machine wraps a CPU with console-level state: breakpoints and the name
// of the most recently loaded image.
type Machine struct {
	CPU         *cpu.CPU
	Breakpoints map[uint64]bool
	LastBase    string
}

// New builds a Machine over a freshly allocated memory of size bytes.
func New(size int) *Machine {
	mem := memory.New(size)
	return &Machine{
		CPU:         cpu.New(mem),
		Breakpoints: make(map[uint64]bool),
	}
}

// Load reads base+".bin" and base+".map" and loads them into the CPU.
func (m *Machine) Load(base string) error {
	binText, err := os.ReadFile(base + ".bin")
	if err != nil {
		return fmt.Errorf("reading %s.bin: %w", base, err)
	}
	mapText, err := os.ReadFile(base + ".map")
	if err != nil {
		return fmt.Errorf("reading %s.map: %w", base, err)
	}
	name := filepath.Base(base)
	if err := linker.Load(m.CPU, string(binText), string(mapText), linker.LoadOptions{Name: name}); err != nil {
		return err
	}
	m.LastBase = base
	return nil
}

// LoadLegacy loads a ".img" image instead of a .bin/.map pair.
func (m *Machine) LoadLegacy(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	if err := linker.LoadLegacyImage(m.CPU, string(text), name); err != nil {
		return err
	}
	m.LastBase = path
	return nil
}

// SetBreak adds a breakpoint at addr.
func (m *Machine) SetBreak(addr uint64) {
	m.Breakpoints[addr] = true
}

// ClearBreak removes a breakpoint at addr.
func (m *Machine) ClearBreak(addr uint64) {
	delete(m.Breakpoints, addr)
}

// Run steps the CPU until HALT, an error, maxCycles is reached (0 means
// unbounded), or PC lands on a breakpoint after at least one step.
func (m *Machine) Run(maxCycles uint64) error {
	c := m.CPU
	c.Running = true
	first := true
	for c.Running {
		if maxCycles != 0 && c.Cycles >= maxCycles {
			return nil
		}
		if !first && m.Breakpoints[c.PC] {
			return nil
		}
		first = false
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

// StepN runs exactly n fetch-decode-execute cycles, stopping early on
// HALT or error.
func (m *Machine) StepN(n int) error {
	for i := 0; i < n; i++ {
		cont, err := m.CPU.Step()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// Reset resets the underlying CPU, clearing breakpoints as well: a fresh
// load is required before the next run.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Breakpoints = make(map[uint64]bool)
}
