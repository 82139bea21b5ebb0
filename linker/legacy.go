/*
 * EUCLID-64 - Legacy .img image loader (§4.10).
 *
 * No map, no relocation: every word is loaded at a literal address and
 * the whole loaded range is marked executable.
 */

package linker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/euclid64/cpu"
)

// LoadLegacyImage parses the ".img" textual format described in §5
// ("0x<addr>: 0x<word16hex>[, 0x<word16hex>]*", lines without an
// explicit address continuing from the previous one) and loads it into
// c.Mem, marking the entire loaded range executable.
func LoadLegacyImage(c *cpu.CPU, text string, name string) error {
	addr := uint64(0)
	haveAddr := false
	var minAddr, maxAddr uint64
	haveRange := false

	for lineNo, raw := range strings.Split(text, "\n") {
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rest := line
		if i := strings.IndexByte(line, ':'); i >= 0 {
			addrStr := strings.TrimSpace(line[:i])
			a, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 64)
			if err != nil {
				return fmt.Errorf("%w: line %d: bad image address %q", ErrLink, lineNo+1, addrStr)
			}
			addr = a
			haveAddr = true
			rest = line[i+1:]
		} else if !haveAddr {
			return fmt.Errorf("%w: line %d: first image line must carry an address", ErrLink, lineNo+1)
		}

		for _, tok := range strings.Split(rest, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 64)
			if err != nil {
				return fmt.Errorf("%w: line %d: bad image word %q", ErrLink, lineNo+1, tok)
			}
			if err := c.Mem.WriteDouble(addr, v); err != nil {
				return fmt.Errorf("%w: writing word at %#x: %v", ErrLink, addr, err)
			}
			if !haveRange || addr < minAddr {
				minAddr = addr
			}
			if !haveRange || addr > maxAddr {
				maxAddr = addr
			}
			haveRange = true
			addr += 8
		}
	}

	if !haveRange {
		return fmt.Errorf("%w: empty image", ErrLink)
	}

	if c.ExecSet == nil {
		c.ExecSet = make(map[uint64]bool)
	}
	for a := minAddr; a <= maxAddr; a += 8 {
		c.ExecSet[a] = true
	}
	c.PC = minAddr
	c.Segments = append(c.Segments, cpu.Segment{Min: minAddr, Max: maxAddr, Name: name})
	return nil
}
