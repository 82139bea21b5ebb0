/*
 * EUCLID-64 - Textual binary/map/exec emission (§4.8, §5).
 *
 * Relocation line forms are grounded on the three-column map form in
 * original_source/src/memory/linker.py (MapEntry); the placeholder
 * syntax is specific to this repository's textual (non-byte) artifact
 * format.
 */

package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

func binLine(w outWord) string {
	switch w.kind {
	case wordReloc32:
		prefix := strconv.FormatUint(w.value, 2)
		prefix = strings.Repeat("0", 32-len(prefix)) + prefix
		return fmt.Sprintf("%s{%d}", prefix, w.targetIndex)
	case wordReloc64:
		return fmt.Sprintf("{%d}", w.targetIndex)
	default:
		bits := strconv.FormatUint(w.value, 2)
		return strings.Repeat("0", 64-len(bits)) + bits
	}
}

func mapLine(index int, w outWord) string {
	flag := 0
	if w.exec {
		flag = 1
	}
	return fmt.Sprintf("%d,0x%X,%d", index, w.addr, flag)
}

// render produces the .bin/.map/.exec text triple from the final word
// list, in word-index order.
func render(words []outWord) *Output {
	binLines := make([]string, len(words))
	mapLines := make([]string, len(words))
	var execLines []string

	for i, w := range words {
		binLines[i] = binLine(w)
		mapLines[i] = mapLine(i, w)
		if w.exec {
			execLines = append(execLines, fmt.Sprintf("0x%X", w.addr))
		}
	}

	return &Output{
		Bin:  strings.Join(binLines, "\n") + "\n",
		Map:  strings.Join(mapLines, "\n") + "\n",
		Exec: strings.Join(execLines, "\n") + "\n",
	}
}
