/*
 * EUCLID-64 - Assembler error kinds (§4.8, §7).
 *
 * Sentinel errors wrapped with line context via fmt.Errorf("%w: ...", Err...)
 * at call sites.
 */

package assembler

import "errors"

var (
	ErrLexer    = errors.New("illegal character")
	ErrParser   = errors.New("unexpected token")
	ErrSymbol   = errors.New("symbol error")
	ErrEncoding = errors.New("encoding error")
)
