/*
 * EUCLID-64 - Binary/map validation and relocation parsing (§4.9).
 *
 * Grounded on original_source/src/memory/linker.py's validation pass,
 * re-expressed over the textual .bin/.map artifact pair produced by
 * package assembler.
 */

package linker

import (
	"fmt"
	"strconv"
	"strings"
)

type wordKind int

const (
	wordAbsolute wordKind = iota
	wordReloc32
	wordReloc64
)

// word is one parsed .bin line.
type word struct {
	kind   wordKind
	value  uint64 // absolute: full value. reloc32: 32-bit prefix.
	target int
}

// mapEntry is one parsed .map line.
type mapEntry struct {
	index int
	addr  uint64
	exec  bool
}

// parseBin parses the textual binary artifact into its word list, one
// entry per non-blank line, matching one of the three forms from §4.8.
func parseBin(text string) ([]word, error) {
	var words []word
	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		w, err := parseBinLine(line, lineNo+1)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

func parseBinLine(line string, lineNo int) (word, error) {
	if strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}") {
		idx, err := strconv.Atoi(line[1 : len(line)-1])
		if err != nil {
			return word{}, fmt.Errorf("%w: line %d: bad full-word relocation %q", ErrLink, lineNo, line)
		}
		return word{kind: wordReloc64, target: idx}, nil
	}

	if idx := strings.IndexByte(line, '{'); idx >= 0 && strings.HasSuffix(line, "}") {
		prefixBits := line[:idx]
		targetStr := line[idx+1 : len(line)-1]
		if len(prefixBits) != 32 {
			return word{}, fmt.Errorf("%w: line %d: 32-bit relocation prefix has %d bits, want 32", ErrLink, lineNo, len(prefixBits))
		}
		prefix, err := strconv.ParseUint(prefixBits, 2, 32)
		if err != nil {
			return word{}, fmt.Errorf("%w: line %d: bad relocation prefix %q", ErrLink, lineNo, prefixBits)
		}
		target, err := strconv.Atoi(targetStr)
		if err != nil {
			return word{}, fmt.Errorf("%w: line %d: bad relocation target %q", ErrLink, lineNo, targetStr)
		}
		return word{kind: wordReloc32, value: prefix, target: target}, nil
	}

	if len(line) != 64 {
		return word{}, fmt.Errorf("%w: line %d: binary word has %d bits, want 64", ErrLink, lineNo, len(line))
	}
	v, err := strconv.ParseUint(line, 2, 64)
	if err != nil {
		return word{}, fmt.Errorf("%w: line %d: bad binary word %q", ErrLink, lineNo, line)
	}
	return word{kind: wordAbsolute, value: v}, nil
}

// parseMap parses the textual memory map: "index,0xADDR,flag" per line,
// '#' starting a comment.
func parseMap(text string) ([]mapEntry, error) {
	var entries []mapEntry
	for lineNo, raw := range strings.Split(text, "\n") {
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: map record %q needs 3 fields", ErrLink, lineNo+1, line)
		}
		index, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad map index %q", ErrLink, lineNo+1, fields[0])
		}
		addr, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad map address %q", ErrLink, lineNo+1, fields[1])
		}
		flag, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || (flag != 0 && flag != 1) {
			return nil, fmt.Errorf("%w: line %d: bad map flag %q", ErrLink, lineNo+1, fields[2])
		}
		entries = append(entries, mapEntry{index: index, addr: addr, exec: flag == 1})
	}
	return entries, nil
}

// validate checks the cross-consistency rules from §4.9: equal counts,
// contiguous zero-based indices, and in-range relocation targets.
func validate(words []word, entries []mapEntry) error {
	if len(words) != len(entries) {
		return fmt.Errorf("%w: %d binary words but %d map entries", ErrLink, len(words), len(entries))
	}
	for i, e := range entries {
		if e.index != i {
			return fmt.Errorf("%w: map indices are not contiguous from 0 (entry %d has index %d)", ErrLink, i, e.index)
		}
	}
	for i, w := range words {
		if w.kind == wordAbsolute {
			continue
		}
		if w.target < 0 || w.target >= len(entries) {
			return fmt.Errorf("%w: word %d references out-of-range index %d", ErrLink, i, w.target)
		}
	}
	return nil
}

// materialize resolves every word to its final 64-bit value, per the
// loader rules in §4.9.
func materialize(words []word, entries []mapEntry) []uint64 {
	values := make([]uint64, len(words))
	for i, w := range words {
		switch w.kind {
		case wordAbsolute:
			values[i] = w.value
		case wordReloc32:
			target := entries[w.target].addr
			values[i] = (w.value << 32) | (target & 0xFFFFFFFF)
		case wordReloc64:
			values[i] = entries[w.target].addr
		}
	}
	return values
}
