/*
 * EUCLID-64 - Directive handling: ORG, DW, RESW, DB (§4.8).
 */

package assembler

import (
	"fmt"
	"strconv"
)

const (
	dirORG  = "ORG"
	dirDW   = "DW"
	dirRESW = "RESW"
	dirDB   = "DB"
)

func isDirective(mnemonic string) bool {
	switch mnemonic {
	case dirORG, dirDW, dirRESW, dirDB:
		return true
	}
	return false
}

// directiveWidth returns a directive's width in bytes; purely syntactic,
// it never needs label resolution (§4.8).
func directiveWidth(stmt *statement) (int, error) {
	switch stmt.mnemonic {
	case dirORG:
		return 0, nil
	case dirDW:
		return 8 * len(stmt.operands), nil
	case dirRESW:
		if len(stmt.operands) != 1 {
			return 0, fmt.Errorf("%w: line %d: RESW takes one operand", ErrParser, stmt.line)
		}
		n, err := strconv.ParseInt(stmt.operands[0], 0, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: line %d: bad RESW count %q", ErrParser, stmt.line, stmt.operands[0])
		}
		return 8 * int(n), nil
	case dirDB:
		bytes, err := dbBytes(stmt)
		if err != nil {
			return 0, err
		}
		n := len(bytes)
		return ((n + 7) / 8) * 8, nil
	}
	return 0, fmt.Errorf("%w: line %d: unknown directive %q", ErrParser, stmt.line, stmt.mnemonic)
}

// dbBytes expands a DB operand list (byte literals and quoted strings)
// into its flat byte sequence, before little-endian word packing.
func dbBytes(stmt *statement) ([]byte, error) {
	var out []byte
	for _, tok := range stmt.operands {
		if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
			s, err := strconv.Unquote(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad string literal %q", ErrLexer, stmt.line, tok)
			}
			out = append(out, []byte(s)...)
			continue
		}
		v, err := strconv.ParseInt(tok, 0, 64)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: line %d: bad DB byte %q", ErrParser, stmt.line, tok)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// orgAddress parses ORG's single numeric operand.
func orgAddress(stmt *statement) (uint64, error) {
	if len(stmt.operands) != 1 {
		return 0, fmt.Errorf("%w: line %d: ORG takes one operand", ErrParser, stmt.line)
	}
	v, err := strconv.ParseUint(stmt.operands[0], 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: bad ORG address %q", ErrParser, stmt.line, stmt.operands[0])
	}
	return v, nil
}
