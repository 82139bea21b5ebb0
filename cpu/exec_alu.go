/*
 * EUCLID-64 - R-form executors: integer/float ALU ops, NOT, CMP.
 *
 * Grounded on emu/cpu's opcode-handler shape, re-expressed over the ALU
 * helpers in alu.go/floatalu.go.
 */

package cpu

import "github.com/rcornwell/euclid64/isa"

func (c *CPU) execAdd(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUAdd) }
func (c *CPU) execSub(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUSub) }
func (c *CPU) execMul(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUMul) }
func (c *CPU) execDiv(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUDiv) }
func (c *CPU) execAnd(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUAnd) }
func (c *CPU) execOr(d isa.Decoded) (bool, error)  { return c.execALUOp(d, ALUOr) }
func (c *CPU) execXor(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUXor) }
func (c *CPU) execShl(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUShl) }
func (c *CPU) execShr(d isa.Decoded) (bool, error) { return c.execALUOp(d, ALUShr) }

func (c *CPU) execALUOp(d isa.Decoded, op ALUOp) (bool, error) {
	result, err := c.executeALU(op, c.Regs[d.RS1], c.Regs[d.RS2])
	if err != nil {
		return false, err
	}
	c.Regs[d.RD] = result.Value
	c.Flags = result.Flags
	return true, nil
}

func (c *CPU) execNot(d isa.Decoded) (bool, error) {
	result, err := c.executeALU(ALUNot, c.Regs[d.RS1], 0)
	if err != nil {
		return false, err
	}
	c.Regs[d.RD] = result.Value
	c.Flags = result.Flags
	return true, nil
}

func (c *CPU) execCmp(d isa.Decoded) (bool, error) {
	result, err := c.executeALU(ALUCmp, c.Regs[d.RS1], c.Regs[d.RS2])
	if err != nil {
		return false, err
	}
	c.Flags = result.Flags
	return true, nil
}

func (c *CPU) execFloatOp(d isa.Decoded, op FloatOp) (bool, error) {
	result := c.executeFloatALU(op, c.Regs[d.RS1], c.Regs[d.RS2])
	c.Regs[d.RD] = result.Value
	c.Flags = result.Flags
	return true, nil
}

func (c *CPU) execFadd(d isa.Decoded) (bool, error) { return c.execFloatOp(d, FloatAdd) }
func (c *CPU) execFsub(d isa.Decoded) (bool, error) { return c.execFloatOp(d, FloatSub) }
func (c *CPU) execFmul(d isa.Decoded) (bool, error) { return c.execFloatOp(d, FloatMul) }
func (c *CPU) execFdiv(d isa.Decoded) (bool, error) { return c.execFloatOp(d, FloatDiv) }
