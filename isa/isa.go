/*
 * EUCLID-64 - Instruction set definitions.
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

// Package isa defines the EUCLID-64 opcode table, instruction forms, and
// the bit layout of the 64-bit instruction word.
package isa

// Opcode values. Numeric values are part of the ABI.
const (
	OpADD  = 0x10
	OpSUB  = 0x11
	OpMUL  = 0x12
	OpDIV  = 0x13
	OpAND  = 0x14
	OpOR   = 0x15
	OpXOR  = 0x16
	OpNOT  = 0x17
	OpSHL  = 0x18
	OpSHR  = 0x19
	OpFADD = 0x1A
	OpFSUB = 0x1B
	OpFMUL = 0x1C
	OpFDIV = 0x1D

	OpADDI = 0x20
	OpMOVI = 0x22
	OpLD   = 0x23
	OpST   = 0x24
	OpCP   = 0x29
	OpCMP  = 0x30

	OpJMP  = 0x40
	OpJZ   = 0x41
	OpJNZ  = 0x42
	OpJC   = 0x43
	OpJNC  = 0x44
	OpJS   = 0x45
	OpCALL = 0x46
	OpRET  = 0x47

	OpPUSH = 0x50
	OpPOP  = 0x51

	OpIN   = 0x60
	OpOUT  = 0x61
	OpINS  = 0x62
	OpOUTS = 0x63

	OpNOP  = 0x70
	OpHALT = 0x71
)

// Form is the instruction shape that determines which fields of the word
// carry meaning.
type Form int

const (
	FormR Form = iota
	FormI
	FormJ
	FormS
)

// opcodeForm maps every defined opcode to its form. Opcodes absent from
// this map decode to FormS and are reported as ErrUnknownOpcode at
// execute time, per §4.5.
var opcodeForm = map[uint8]Form{
	OpADD: FormR, OpSUB: FormR, OpMUL: FormR, OpDIV: FormR,
	OpAND: FormR, OpOR: FormR, OpXOR: FormR, OpNOT: FormR, OpSHL: FormR, OpSHR: FormR,
	OpFADD: FormR, OpFSUB: FormR, OpFMUL: FormR, OpFDIV: FormR,
	OpCMP: FormR,

	OpADDI: FormI, OpMOVI: FormI, OpLD: FormI, OpST: FormI, OpCP: FormI,
	OpPUSH: FormI, OpPOP: FormI,
	OpIN:   FormI, OpOUT: FormI, OpINS: FormI, OpOUTS: FormI,

	OpJMP: FormJ, OpJZ: FormJ, OpJNZ: FormJ, OpJC: FormJ, OpJNC: FormJ, OpJS: FormJ,
	OpCALL: FormJ, OpRET: FormJ,

	OpNOP: FormS, OpHALT: FormS,
}

// mnemonicOpcode maps assembler mnemonics to opcode values.
var mnemonicOpcode = map[string]uint8{
	"ADD": OpADD, "SUB": OpSUB, "MUL": OpMUL, "DIV": OpDIV,
	"AND": OpAND, "OR": OpOR, "XOR": OpXOR, "NOT": OpNOT, "SHL": OpSHL, "SHR": OpSHR,
	"FADD": OpFADD, "FSUB": OpFSUB, "FMUL": OpFMUL, "FDIV": OpFDIV,

	"ADDI": OpADDI, "MOVI": OpMOVI, "LD": OpLD, "ST": OpST, "CP": OpCP, "CMP": OpCMP,

	"JMP": OpJMP, "JZ": OpJZ, "JNZ": OpJNZ, "JC": OpJC, "JNC": OpJNC, "JS": OpJS,
	"CALL": OpCALL, "RET": OpRET,

	"PUSH": OpPUSH, "POP": OpPOP,

	"IN": OpIN, "OUT": OpOUT, "INS": OpINS, "OUTS": OpOUTS,

	"NOP": OpNOP, "HALT": OpHALT,
}

// FormOf reports the instruction form of a decoded opcode. Unknown
// opcodes report FormS, matching Decode's fallback.
func FormOf(opcode uint8) Form {
	f, ok := opcodeForm[opcode]
	if !ok {
		return FormS
	}
	return f
}

// IsKnownOpcode reports whether opcode appears in the opcode table.
func IsKnownOpcode(opcode uint8) bool {
	_, ok := opcodeForm[opcode]
	return ok
}

// IsKnownMnemonic reports whether mnemonic appears in the assembler
// mnemonic table, used by the assembler's pass 1 to catch unknown
// mnemonics before width accounting.
func IsKnownMnemonic(mnemonic string) bool {
	_, ok := mnemonicOpcode[mnemonic]
	return ok
}

// Mnemonics used by the IN/OUT extended FUNC sub-field layout (§4.1).
const (
	IOModePort = 1 // bit 0: 1 = port, 0 = MMIO
	IOSubShift = 1 // bits 3..1: sub-operation
	IOSubMask  = 0x7
	IOSepShift = 4 // bits 11..4: ASCII separator byte
	IOSepMask  = 0xFF

	IOSubArray      = 1 // OUT: print array / IN: read array
	IOSubNoNewline  = 2 // OUT: print integer without terminator
)

// MMIO addresses reserved for console I/O (§4.7).
const (
	MMIOConsoleOutChar = 0xFFFF0000
	MMIOConsoleOutInt  = 0xFFFF0008
	MMIOConsoleInChar  = 0xFFFF0010
	MMIOConsoleInInt   = 0xFFFF0018
)

// Port numbers mirroring the MMIO console addresses.
const (
	PortChar = 1
	PortInt  = 2
)
