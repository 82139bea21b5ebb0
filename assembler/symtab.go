/*
 * EUCLID-64 - Assembler symbol table (§3).
 */

package assembler

import "fmt"

// SymbolTable maps a label name to its byte address, built during pass 1.
type SymbolTable struct {
	addrs map[string]uint64
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{addrs: make(map[string]uint64)}
}

// Define records a label's address, failing if the label is already
// defined (ErrSymbol).
func (s *SymbolTable) Define(name string, addr uint64, line int) error {
	if _, ok := s.addrs[name]; ok {
		return fmt.Errorf("%w: line %d: duplicate label %q", ErrSymbol, line, name)
	}
	s.addrs[name] = addr
	return nil
}

// Lookup returns a label's address and whether it is defined.
func (s *SymbolTable) Lookup(name string) (uint64, bool) {
	addr, ok := s.addrs[name]
	return addr, ok
}
