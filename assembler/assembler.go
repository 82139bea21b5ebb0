/*
 * EUCLID-64 - Two-pass assembler driver (§4.8).
 *
 * The label/relocation pipeline is grounded on
 * original_source/src/assembler/assembler.py's Assembler._first_pass/
 * _second_pass; the per-line scanning style is grounded on
 * emu/assemble's hand-written scanner functions (lexer.go).
 */

package assembler

import (
	"fmt"
	"strings"

	"github.com/rcornwell/euclid64/isa"
)

// item is one pass-1-resolved source statement: its address, width, and
// raw content, ready for pass-2 encoding.
type item struct {
	stmt  *statement
	addr  uint64
	width int
}

// Output is the textual artifact set produced by Assemble, mirroring the
// on-disk .bin/.map/.exec triple described in §5.
type Output struct {
	Bin  string
	Map  string
	Exec string
}

// Assemble runs the two-pass pipeline over source text and produces the
// binary/map/exec text output.
func Assemble(source string) (*Output, error) {
	statements, err := scan(source)
	if err != nil {
		return nil, err
	}

	items, symtab, err := pass1(statements)
	if err != nil {
		return nil, err
	}

	addrToIndex := indexWords(items)

	words, err := pass2(items, symtab, addrToIndex)
	if err != nil {
		return nil, err
	}

	return render(words), nil
}

func scan(source string) ([]*statement, error) {
	var out []*statement
	for i, raw := range strings.Split(source, "\n") {
		stmt, err := lexLine(raw, i+1)
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}

// pass1 assigns every label its address and every non-ORG statement its
// address and width, advancing a location counter.
func pass1(statements []*statement) ([]item, *SymbolTable, error) {
	symtab := newSymbolTable()
	var items []item
	var lc uint64

	for _, stmt := range statements {
		if stmt.label != "" {
			if err := symtab.Define(stmt.label, lc, stmt.line); err != nil {
				return nil, nil, err
			}
		}
		if stmt.mnemonic == "" {
			continue
		}

		if stmt.mnemonic == dirORG {
			addr, err := orgAddress(stmt)
			if err != nil {
				return nil, nil, err
			}
			lc = addr
			continue
		}

		var width int
		var err error
		if isDirective(stmt.mnemonic) {
			width, err = directiveWidth(stmt)
		} else {
			if !isa.IsKnownMnemonic(stmt.mnemonic) {
				err = fmt.Errorf("%w: line %d: unknown mnemonic %q", ErrEncoding, stmt.line, stmt.mnemonic)
			}
			width = 8
		}
		if err != nil {
			return nil, nil, err
		}

		items = append(items, item{stmt: stmt, addr: lc, width: width})
		lc += uint64(width)
	}

	return items, symtab, nil
}

// indexWords assigns a sequential word index to every 8-byte unit across
// all items, keyed by address, independent of each word's eventual value.
func indexWords(items []item) map[uint64]int {
	addrToIndex := make(map[uint64]int)
	idx := 0
	for _, it := range items {
		for w := 0; w < it.width; w += 8 {
			addrToIndex[it.addr+uint64(w)] = idx
			idx++
		}
	}
	return addrToIndex
}

// pass2 resolves labels and encodes every item into its output words.
func pass2(items []item, symtab *SymbolTable, addrToIndex map[uint64]int) ([]outWord, error) {
	var words []outWord
	for _, it := range items {
		var itemWords []outWord
		var err error
		switch {
		case isDirective(it.stmt.mnemonic):
			itemWords, err = encodeDirective(it, symtab, addrToIndex)
		default:
			itemWords, err = encodeInstruction(it, symtab, addrToIndex)
		}
		if err != nil {
			return nil, err
		}
		words = append(words, itemWords...)
	}
	return words, nil
}
