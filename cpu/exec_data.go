/*
 * EUCLID-64 - Data-movement and I/O executors: ADDI, MOVI, LD, ST, CP,
 * IN, OUT, INS, OUTS (§4.1, §4.7).
 */

package cpu

import (
	"math"

	"github.com/rcornwell/euclid64/isa"
)

func signExtend32(imm32 uint32) int64 { return int64(int32(imm32)) }

func (c *CPU) execAddi(d isa.Decoded) (bool, error) {
	result, err := c.executeALU(ALUAdd, c.Regs[d.RS1], uint64(signExtend32(d.Imm32)))
	if err != nil {
		return false, err
	}
	c.Regs[d.RD] = result.Value
	c.Flags = result.Flags
	return true, nil
}

func (c *CPU) execMovi(d isa.Decoded) (bool, error) {
	switch d.Func {
	case 0:
		c.Regs[d.RD] = uint64(d.Imm32)
	case 1:
		c.Regs[d.RD] = c.Regs[d.RS1]
	case 2:
		f := float64(math.Float32frombits(d.Imm32))
		c.Regs[d.RD] = math.Float64bits(f)
	default:
		return false, ErrUnknownOpcode
	}
	c.trace("data", debugData, "movi r%d func=%d", d.RD, d.Func)
	return true, nil
}

func (c *CPU) ldAddr(d isa.Decoded) uint64 {
	if d.Func == 1 {
		return uint64(int64(c.Regs[d.RS1]) + signExtend32(d.Imm32))
	}
	return uint64(d.Imm32)
}

func (c *CPU) execLd(d isa.Decoded) (bool, error) {
	addr := c.ldAddr(d)
	v, err := c.Mem.ReadDouble(addr)
	if err != nil {
		return false, err
	}
	c.Regs[d.RD] = v
	return true, nil
}

func (c *CPU) execSt(d isa.Decoded) (bool, error) {
	addr := c.ldAddr(d)
	if err := c.Mem.WriteDouble(addr, c.Regs[d.RD]); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CPU) execCp(d isa.Decoded) (bool, error) {
	c.Regs[d.RD] = c.Regs[d.RS1]
	return true, nil
}

func (c *CPU) execIn(d isa.Decoded) (bool, error) {
	subop := uint8((d.Func >> isa.IOSubShift) & isa.IOSubMask)
	sep := byte((d.Func >> isa.IOSepShift) & isa.IOSepMask)

	if subop == isa.IOSubArray {
		base := c.Regs[d.RS1]
		n, err := c.readIntArray(base, d.Imm32, sep)
		if err != nil {
			return false, err
		}
		c.Regs[d.RD] = uint64(n)
		c.trace("io", debugIO, "in array base=%#x max=%d got=%d", base, d.Imm32, n)
		return true, nil
	}

	c.Regs[d.RD] = c.readInput(d.Imm32, d.Func)
	c.trace("io", debugIO, "in r%d source=%#x", d.RD, d.Imm32)
	return true, nil
}

func (c *CPU) execOut(d isa.Decoded) (bool, error) {
	if err := c.writeOutput(c.Regs[d.RS1], d.Imm32, d.Func); err != nil {
		if err != ErrIOUnbound {
			return false, err
		}
		c.trace("io", debugIO, "out to unbound target %#x ignored", d.Imm32)
	}
	c.trace("io", debugIO, "out r%d target=%#x func=%#x", d.RS1, d.Imm32, d.Func)
	return true, nil
}

func (c *CPU) execIns(d isa.Decoded) (bool, error) {
	text := c.readStringPort(d.Imm32)
	if err := c.writeStringToMemory(c.Regs[d.RD], text); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CPU) execOuts(d isa.Decoded) (bool, error) {
	text, err := c.readStringFromMemory(c.Regs[d.RD])
	if err != nil {
		return false, err
	}
	if err := c.writeStringPort(text, d.Imm32); err != nil {
		if err != ErrIOUnbound {
			return false, err
		}
		c.trace("io", debugIO, "outs to unbound port %#x ignored", d.Imm32)
	}
	return true, nil
}
