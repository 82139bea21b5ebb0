package cpu

import "github.com/rcornwell/euclid64/isa"

// buildDispatchTable wires every opcode named in package isa to its
// executor. Entries left nil report ErrUnknownOpcode at Execute time.
func (c *CPU) buildDispatchTable() {
	c.table[isa.OpADD] = (*CPU).execAdd
	c.table[isa.OpSUB] = (*CPU).execSub
	c.table[isa.OpMUL] = (*CPU).execMul
	c.table[isa.OpDIV] = (*CPU).execDiv
	c.table[isa.OpAND] = (*CPU).execAnd
	c.table[isa.OpOR] = (*CPU).execOr
	c.table[isa.OpXOR] = (*CPU).execXor
	c.table[isa.OpNOT] = (*CPU).execNot
	c.table[isa.OpSHL] = (*CPU).execShl
	c.table[isa.OpSHR] = (*CPU).execShr
	c.table[isa.OpFADD] = (*CPU).execFadd
	c.table[isa.OpFSUB] = (*CPU).execFsub
	c.table[isa.OpFMUL] = (*CPU).execFmul
	c.table[isa.OpFDIV] = (*CPU).execFdiv

	c.table[isa.OpADDI] = (*CPU).execAddi
	c.table[isa.OpMOVI] = (*CPU).execMovi
	c.table[isa.OpLD] = (*CPU).execLd
	c.table[isa.OpST] = (*CPU).execSt
	c.table[isa.OpCP] = (*CPU).execCp
	c.table[isa.OpCMP] = (*CPU).execCmp

	c.table[isa.OpJMP] = (*CPU).execJmp
	c.table[isa.OpJZ] = (*CPU).execJz
	c.table[isa.OpJNZ] = (*CPU).execJnz
	c.table[isa.OpJC] = (*CPU).execJc
	c.table[isa.OpJNC] = (*CPU).execJnc
	c.table[isa.OpJS] = (*CPU).execJs
	c.table[isa.OpCALL] = (*CPU).execCall
	c.table[isa.OpRET] = (*CPU).execRet

	c.table[isa.OpPUSH] = (*CPU).execPush
	c.table[isa.OpPOP] = (*CPU).execPop

	c.table[isa.OpIN] = (*CPU).execIn
	c.table[isa.OpOUT] = (*CPU).execOut
	c.table[isa.OpINS] = (*CPU).execIns
	c.table[isa.OpOUTS] = (*CPU).execOuts

	c.table[isa.OpNOP] = (*CPU).execNop
	c.table[isa.OpHALT] = (*CPU).execHalt
}
