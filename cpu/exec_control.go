/*
 * EUCLID-64 - Control-flow executors: JMP family, CALL, RET, NOP, HALT.
 */

package cpu

import "github.com/rcornwell/euclid64/isa"

func (c *CPU) execJmp(d isa.Decoded) (bool, error) {
	c.PC = uint64(d.Imm32)
	return true, nil
}

func (c *CPU) execJz(d isa.Decoded) (bool, error) {
	if c.ZeroSet() {
		c.PC = uint64(d.Imm32)
	}
	return true, nil
}

func (c *CPU) execJnz(d isa.Decoded) (bool, error) {
	if !c.ZeroSet() {
		c.PC = uint64(d.Imm32)
	}
	return true, nil
}

func (c *CPU) execJc(d isa.Decoded) (bool, error) {
	if c.CarrySet() {
		c.PC = uint64(d.Imm32)
	}
	return true, nil
}

func (c *CPU) execJnc(d isa.Decoded) (bool, error) {
	if !c.CarrySet() {
		c.PC = uint64(d.Imm32)
	}
	return true, nil
}

func (c *CPU) execJs(d isa.Decoded) (bool, error) {
	if c.NegativeSet() {
		c.PC = uint64(d.Imm32)
	}
	return true, nil
}

func (c *CPU) execCall(d isa.Decoded) (bool, error) {
	if err := c.Push(c.PC); err != nil {
		return false, err
	}
	c.PC = uint64(d.Imm32)
	return true, nil
}

func (c *CPU) execRet(d isa.Decoded) (bool, error) {
	addr, err := c.Pop()
	if err != nil {
		return false, err
	}
	c.PC = addr
	return true, nil
}

func (c *CPU) execNop(d isa.Decoded) (bool, error) {
	return true, nil
}

func (c *CPU) execHalt(d isa.Decoded) (bool, error) {
	c.trace("cmd", debugCmd, "halt at pc=%#x", c.PC)
	return false, nil
}
