/*
 * EUCLID-64 - Pass-2 item encoding: instructions and directive bodies.
 */

package assembler

import (
	"fmt"
	"math"

	"github.com/rcornwell/euclid64/isa"
)

// encodeInstruction resolves operands and encodes one instruction item.
// At most one operand may be a label reference (the ISA has a single
// IMM32 field); a label reference always produces a 32-bit-prefixed
// relocation rather than an inline resolved address, even when the
// label is already known (a same-file simplification documented in
// DESIGN.md; the loader materializes it to the identical value either
// way).
//
// IN/OUT written in their natural two-operand source form (register,
// MMIO address or port) get a default FUNC synthesized via isa.IOFunc
// (MMIO mode, no sub-operation, no separator) before reaching isa.Encode,
// which otherwise requires the packed FUNC as an explicit third operand.
func encodeInstruction(it item, symtab *SymbolTable, addrToIndex map[uint64]int) ([]outWord, error) {
	stmt := it.stmt
	ops := make([]isa.Operand, len(stmt.operands))
	labelOperand := -1
	var labelAddr uint64

	for i, tok := range stmt.operands {
		po, err := parseOperandToken(tok, stmt.line)
		if err != nil {
			return nil, err
		}
		switch {
		case po.isRegister:
			ops[i] = isa.Reg(po.reg)
		case po.isFloat:
			ops[i] = isa.FloatImm(po.float)
		case po.isImm:
			ops[i] = isa.Imm(po.imm)
		case po.isLabel:
			addr, ok := symtab.Lookup(po.label)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: undefined label %q", ErrSymbol, stmt.line, po.label)
			}
			labelOperand = i
			labelAddr = addr
			ops[i] = isa.Imm(0)
		}
	}

	if (stmt.mnemonic == "IN" || stmt.mnemonic == "OUT") && len(ops) == 2 {
		ops = append(ops, isa.Imm(int64(isa.IOFunc(false, 0, 0))))
	}

	word, err := isa.Encode(stmt.mnemonic, ops)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrEncoding, stmt.line, err)
	}

	if labelOperand < 0 {
		return []outWord{{kind: wordAbsolute, value: word, addr: it.addr, exec: true}}, nil
	}

	idx, ok := addrToIndex[labelAddr]
	if !ok {
		return nil, fmt.Errorf("%w: line %d: label address %#x is not word-aligned to a known word", ErrSymbol, stmt.line, labelAddr)
	}
	prefix := uint32(word >> 32)
	return []outWord{{kind: wordReloc32, value: uint64(prefix), targetIndex: idx, addr: it.addr, exec: true}}, nil
}

// encodeDirective builds the output words for ORG-adjacent directives
// (DW, RESW, DB). ORG itself emits no words.
func encodeDirective(it item, symtab *SymbolTable, addrToIndex map[uint64]int) ([]outWord, error) {
	stmt := it.stmt
	switch stmt.mnemonic {
	case dirDW:
		return encodeDW(it, symtab, addrToIndex)
	case dirRESW:
		return encodeRESW(it)
	case dirDB:
		return encodeDB(it)
	}
	return nil, nil
}

func encodeDW(it item, symtab *SymbolTable, addrToIndex map[uint64]int) ([]outWord, error) {
	stmt := it.stmt
	words := make([]outWord, len(stmt.operands))
	for i, tok := range stmt.operands {
		addr := it.addr + uint64(i)*8
		po, err := parseOperandToken(tok, stmt.line)
		if err != nil {
			return nil, err
		}
		switch {
		case po.isLabel:
			target, ok := symtab.Lookup(po.label)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: undefined label %q", ErrSymbol, stmt.line, po.label)
			}
			idx, ok := addrToIndex[target]
			if !ok {
				return nil, fmt.Errorf("%w: line %d: label address %#x is not word-aligned", ErrSymbol, stmt.line, target)
			}
			words[i] = outWord{kind: wordReloc64, targetIndex: idx, addr: addr}
		case po.isFloat:
			words[i] = outWord{kind: wordAbsolute, value: math.Float64bits(po.float), addr: addr}
		case po.isImm:
			words[i] = outWord{kind: wordAbsolute, value: uint64(po.imm), addr: addr}
		default:
			return nil, fmt.Errorf("%w: line %d: DW operand must be a number, float, or label", ErrEncoding, stmt.line)
		}
	}
	return words, nil
}

func encodeRESW(it item) ([]outWord, error) {
	n := it.width / 8
	words := make([]outWord, n)
	for i := 0; i < n; i++ {
		words[i] = outWord{kind: wordAbsolute, value: 0, addr: it.addr + uint64(i)*8}
	}
	return words, nil
}

func encodeDB(it item) ([]outWord, error) {
	raw, err := dbBytes(it.stmt)
	if err != nil {
		return nil, err
	}
	n := it.width / 8
	padded := make([]byte, n*8)
	copy(padded, raw)

	words := make([]outWord, n)
	for i := 0; i < n; i++ {
		var v uint64
		for b := 0; b < 8; b++ {
			v |= uint64(padded[i*8+b]) << (8 * b)
		}
		words[i] = outWord{kind: wordAbsolute, value: v, addr: it.addr + uint64(i)*8}
	}
	return words, nil
}
