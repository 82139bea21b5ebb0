/*
 * EUCLID-64 - Stack region (§4.6).
 *
 * Grounded on original_source/src/cpu/stack_ops.py's StackOperations.
 */

package cpu

// Push writes value at SP-8 and sets SP = SP-8. Fails with
// ErrStackOverflow when SP < 8 before the push.
func (c *CPU) Push(value uint64) error {
	if c.SP < 8 {
		return ErrStackOverflow
	}
	c.SP -= 8
	return c.Mem.WriteDouble(c.SP, value)
}

// Pop reads the value at SP and sets SP = SP+8. Fails with
// ErrStackUnderflow when SP >= memory size before the pop.
func (c *CPU) Pop() (uint64, error) {
	if c.SP >= c.Mem.Size() {
		return 0, ErrStackUnderflow
	}
	v, err := c.Mem.ReadDouble(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 8
	return v, nil
}
