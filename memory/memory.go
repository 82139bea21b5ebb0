/*
 * EUCLID-64 - Byte-addressable memory.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package memory implements the flat, byte-addressable, little-endian
// buffer that backs a CPU's address space.
package memory

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// ErrAddressRange is returned whenever an access does not fit entirely
// within the buffer.
var ErrAddressRange = errors.New("address out of range")

// DefaultSize is used when New is called with size 0.
const DefaultSize = 64 * 1024

// MaxSize caps the configurable memory size at 1 MiB, the upper bound
// named in §3.
const MaxSize = 1024 * 1024

// Memory is a fixed-size, zero-initialized byte buffer with little-endian
// multi-byte accessors, held per CPU instance rather than as a package
// global so multiple machines can be constructed and tested independently.
type Memory struct {
	buf []byte
}

// New allocates a zero-initialized buffer of size bytes (clamped to
// MaxSize; DefaultSize if size is 0).
func New(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return &Memory{buf: make([]byte, size)}
}

// Size returns the buffer's size in bytes.
func (m *Memory) Size() uint64 { return uint64(len(m.buf)) }

func (m *Memory) fits(addr uint64, width uint64) bool {
	return addr+width <= uint64(len(m.buf)) && addr+width >= addr
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(addr uint64) (uint8, error) {
	if !m.fits(addr, 1) {
		return 0, ErrAddressRange
	}
	return m.buf[addr], nil
}

// WriteByte writes a single byte.
func (m *Memory) WriteByte(addr uint64, v uint8) error {
	if !m.fits(addr, 1) {
		return ErrAddressRange
	}
	m.buf[addr] = v
	return nil
}

// ReadHalf reads a little-endian 16-bit value.
func (m *Memory) ReadHalf(addr uint64) (uint16, error) {
	if !m.fits(addr, 2) {
		return 0, ErrAddressRange
	}
	return binary.LittleEndian.Uint16(m.buf[addr:]), nil
}

// WriteHalf writes a little-endian 16-bit value.
func (m *Memory) WriteHalf(addr uint64, v uint16) error {
	if !m.fits(addr, 2) {
		return ErrAddressRange
	}
	binary.LittleEndian.PutUint16(m.buf[addr:], v)
	return nil
}

// ReadWord reads a little-endian 32-bit value.
func (m *Memory) ReadWord(addr uint64) (uint32, error) {
	if !m.fits(addr, 4) {
		return 0, ErrAddressRange
	}
	return binary.LittleEndian.Uint32(m.buf[addr:]), nil
}

// WriteWord writes a little-endian 32-bit value.
func (m *Memory) WriteWord(addr uint64, v uint32) error {
	if !m.fits(addr, 4) {
		return ErrAddressRange
	}
	binary.LittleEndian.PutUint32(m.buf[addr:], v)
	return nil
}

// ReadDouble reads a little-endian 64-bit value — the CPU's native word
// size (instructions and register-sized data).
func (m *Memory) ReadDouble(addr uint64) (uint64, error) {
	if !m.fits(addr, 8) {
		return 0, ErrAddressRange
	}
	return binary.LittleEndian.Uint64(m.buf[addr:]), nil
}

// WriteDouble writes a little-endian 64-bit value.
func (m *Memory) WriteDouble(addr uint64, v uint64) error {
	if !m.fits(addr, 8) {
		return ErrAddressRange
	}
	binary.LittleEndian.PutUint64(m.buf[addr:], v)
	return nil
}

// ReadBit reads bit index 0..7 of the byte at addr (0 = LSB).
func (m *Memory) ReadBit(addr uint64, bit uint) (uint8, error) {
	if bit > 7 {
		return 0, ErrAddressRange
	}
	b, err := m.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	return (b >> bit) & 1, nil
}

// WriteBit sets or clears bit index 0..7 of the byte at addr.
func (m *Memory) WriteBit(addr uint64, bit uint, value uint8) error {
	if bit > 7 {
		return ErrAddressRange
	}
	b, err := m.ReadByte(addr)
	if err != nil {
		return err
	}
	if value != 0 {
		b |= 1 << bit
	} else {
		b &^= 1 << bit
	}
	return m.WriteByte(addr, b)
}

// LoadFromFile reads up to len(buf) bytes from path into the start of the
// buffer; a source file larger than the buffer is silently truncated.
func (m *Memory) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := io.ReadFull(f, m.buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	for i := n; i < len(m.buf); i++ {
		m.buf[i] = 0
	}
	return nil
}

// DumpToFile writes the entire buffer to path.
func (m *Memory) DumpToFile(path string) error {
	return os.WriteFile(path, m.buf, 0o644)
}

// Reset zeroes the entire buffer.
func (m *Memory) Reset() {
	clear(m.buf)
}
