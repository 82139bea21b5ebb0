/*
 * EUCLID-64 - PUSH/POP executors, layered over stack.go's Push/Pop.
 */

package cpu

import "github.com/rcornwell/euclid64/isa"

func (c *CPU) execPush(d isa.Decoded) (bool, error) {
	var value uint64
	if d.Func == 1 {
		value = c.Regs[d.RS1]
	} else {
		value = uint64(d.Imm32)
	}
	if err := c.Push(value); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CPU) execPop(d isa.Decoded) (bool, error) {
	v, err := c.Pop()
	if err != nil {
		return false, err
	}
	c.Regs[d.RD] = v
	return true, nil
}
