/*
 * EUCLID-64 - MMIO, port, and string I/O (§4.7).
 *
 * Grounded on original_source/src/cpu/io_ports.py's IOPorts.
 */

package cpu

import (
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/euclid64/isa"
)

// maxStringLength caps INS/OUTS and the string-file helpers, matching
// io_ports.py's max_length=1000 default.
const maxStringLength = 1000

// maxArrayCount caps the extended OUT array form, matching
// io_ports.py's _output_int_array clamp.
const maxArrayCount = 1_000_000

// IOCallbacks holds the four optional host callbacks named in §4.7, an
// InputLine callback used by the IN array form and string input, plus
// the step-mode observer (§4.5). All are optional: unset callbacks fall
// back to buffering (output) or zero/empty input.
type IOCallbacks struct {
	OutputChar func(byte)
	OutputInt  func(int64)
	InputChar  func() byte
	InputInt   func() int64
	InputLine  func() string

	Step func(*CPU)
}

func (c *CPU) outputChar(b byte) {
	if c.Callbacks.OutputChar != nil {
		c.Callbacks.OutputChar(b)
		return
	}
	c.OutputBuffer = append(c.OutputBuffer, b)
}

func (c *CPU) outputIntValue(v int64) {
	if c.Callbacks.OutputInt != nil {
		c.Callbacks.OutputInt(v)
		return
	}
	c.OutputIntBuffer = append(c.OutputIntBuffer, v)
}

func (c *CPU) inputChar() byte {
	if c.Callbacks.InputChar != nil {
		return c.Callbacks.InputChar()
	}
	return 0
}

func (c *CPU) inputIntValue() int64 {
	if c.Callbacks.InputInt != nil {
		return c.Callbacks.InputInt()
	}
	return 0
}

func (c *CPU) inputLine() string {
	if c.Callbacks.InputLine != nil {
		return c.Callbacks.InputLine()
	}
	return ""
}

// writeOutput implements OUT's FUNC-selected modes.
func (c *CPU) writeOutput(value uint64, target uint32, fn uint16) error {
	subop := uint8((fn >> isa.IOSubShift) & isa.IOSubMask)
	sep := byte((fn >> isa.IOSepShift) & isa.IOSepMask)

	switch subop {
	case isa.IOSubArray:
		return c.outputIntArray(value, target, sep)
	case isa.IOSubNoNewline:
		c.outputIntValue(int64(value))
		return nil
	}

	if fn&isa.IOModePort != 0 {
		return c.outputToPort(value, target)
	}
	return c.outputToMMIO(value, target)
}

func (c *CPU) outputToPort(value uint64, port uint32) error {
	switch port {
	case isa.PortChar:
		c.outputChar(byte(value))
	case isa.PortInt:
		c.outputIntValue(int64(value))
	default:
		if f, ok := c.PortFiles[port]; ok {
			_, err := f.WriteString(strconv.FormatInt(int64(value), 10) + "\n")
			return err
		}
		return ErrIOUnbound
	}
	return nil
}

func (c *CPU) outputToMMIO(value uint64, addr uint32) error {
	switch addr {
	case isa.MMIOConsoleOutChar:
		c.outputChar(byte(value))
	case isa.MMIOConsoleOutInt:
		c.outputIntValue(int64(value))
	default:
		if uint64(addr)+8 <= c.Mem.Size() {
			return c.Mem.WriteDouble(uint64(addr), value)
		}
		return ErrIOUnbound
	}
	return nil
}

func (c *CPU) outputIntArray(base uint64, count uint32, sep byte) error {
	n := int(count)
	if n > maxArrayCount {
		n = maxArrayCount
	}
	for i := 0; i < n; i++ {
		addr := base + uint64(i)*8
		if addr+8 > c.Mem.Size() {
			break
		}
		v, err := c.Mem.ReadDouble(addr)
		if err != nil {
			return err
		}
		c.outputIntValue(int64(v))
		if sep != 0 && i < n-1 {
			c.outputChar(sep)
		}
	}
	return nil
}

// readInput implements IN's FUNC-selected modes, excluding the extended
// array form handled separately by the data-transfer executor.
func (c *CPU) readInput(source uint32, fn uint16) uint64 {
	if fn&isa.IOModePort != 0 {
		switch source {
		case isa.PortChar:
			return uint64(c.inputChar())
		case isa.PortInt:
			return uint64(c.inputIntValue())
		}
		return 0
	}

	switch source {
	case isa.MMIOConsoleInChar:
		return uint64(c.inputChar())
	case isa.MMIOConsoleInInt:
		return uint64(c.inputIntValue())
	}
	if uint64(source)+8 <= c.Mem.Size() {
		v, err := c.Mem.ReadDouble(uint64(source))
		if err == nil {
			return v
		}
	}
	return 0
}

// readIntArray implements IN's extended array form (subop=1): read one
// line, split on sep (or whitespace if sep==0), parse each field as a
// signed integer (0 on parse failure), write up to max words starting at
// base. Returns the count actually written.
func (c *CPU) readIntArray(base uint64, max uint32, sep byte) (uint32, error) {
	line := c.inputLine()
	var fields []string
	if sep == 0 {
		fields = strings.Fields(line)
	} else {
		fields = strings.Split(line, string(sep))
	}

	count := uint32(len(fields))
	if count > max {
		count = max
	}
	for i := uint32(0); i < count; i++ {
		v, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 0, 64)
		if err != nil {
			v = 0
		}
		if err := c.Mem.WriteDouble(base+uint64(i)*8, uint64(v)); err != nil {
			return i, err
		}
	}
	return count, nil
}

// readStringFromMemory reads a null-terminated byte sequence, stopping at
// maxStringLength or the end of memory.
func (c *CPU) readStringFromMemory(base uint64) (string, error) {
	var sb strings.Builder
	for i := 0; i < maxStringLength; i++ {
		addr := base + uint64(i)
		if addr >= c.Mem.Size() {
			break
		}
		b, err := c.Mem.ReadByte(addr)
		if err != nil {
			return sb.String(), err
		}
		if b == 0 {
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

// writeStringToMemory writes text followed by a null terminator,
// truncating at maxStringLength or the end of memory.
func (c *CPU) writeStringToMemory(base uint64, text string) error {
	limit := maxStringLength
	if limit > len(text) {
		limit = len(text)
	}
	i := 0
	for ; i < limit; i++ {
		addr := base + uint64(i)
		if addr >= c.Mem.Size() {
			return nil
		}
		if err := c.Mem.WriteByte(addr, text[i]); err != nil {
			return err
		}
	}
	addr := base + uint64(i)
	if addr < c.Mem.Size() {
		return c.Mem.WriteByte(addr, 0)
	}
	return nil
}

// readStringPort returns the text available on port, console lines for
// the console-mapped ports and file-backed lines for bound ports.
func (c *CPU) readStringPort(port uint32) string {
	if port == isa.MMIOConsoleInInt || port == 0 {
		return c.inputLine()
	}
	if f, ok := c.PortFiles[port]; ok {
		buf := make([]byte, maxStringLength)
		n, _ := f.Read(buf)
		return string(buf[:n])
	}
	return ""
}

// writeStringPort writes text to the console or a bound port file.
func (c *CPU) writeStringPort(text string, port uint32) error {
	if port == isa.MMIOConsoleOutInt {
		for i := 0; i < len(text); i++ {
			c.outputChar(text[i])
		}
		return nil
	}
	if f, ok := c.PortFiles[port]; ok {
		_, err := f.WriteString(text)
		return err
	}
	return ErrIOUnbound
}

// BindPortFile associates port with an open file, grounded on
// io_ports.py's open_file/open_files dict. The CPU owns the handle until
// CloseAllPortFiles or the process exits.
func (c *CPU) BindPortFile(port uint32, path string, flag int) error {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return err
	}
	if c.PortFiles == nil {
		c.PortFiles = map[uint32]*os.File{}
	}
	c.PortFiles[port] = f
	return nil
}

// CloseAllPortFiles closes every port-bound file handle.
func (c *CPU) CloseAllPortFiles() {
	for port, f := range c.PortFiles {
		f.Close()
		delete(c.PortFiles, port)
	}
}
