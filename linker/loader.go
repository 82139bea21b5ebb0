/*
 * EUCLID-64 - Loader: places a validated binary/map pair into CPU
 * memory and builds its executable-address set (§4.9).
 *
 * Grounded on original_source/src/memory/loader.py's Loader.load.
 */

package linker

import (
	"fmt"

	"github.com/rcornwell/euclid64/cpu"
)

// ErrOverlap reports that a new image's addresses collide with an
// address that an earlier load marked executable. Data words of earlier
// images are not checked, so an overlap with them is not reported.
var ErrOverlap = fmt.Errorf("%w: overlapping load address", ErrLink)

// LoadOptions controls Load's placement and collision behavior.
type LoadOptions struct {
	Name          string  // segment name recorded for this image
	StartOverride *uint64 // explicit PC override; nil uses the smallest executable address
	Force         bool    // accept overlapping addresses instead of rejecting them
}

// Load validates binText/mapText, writes the materialized words into
// c.Mem, merges the image's executable addresses into c.ExecSet, sets
// c.PC, and appends a Segment recording the loaded range.
func Load(c *cpu.CPU, binText, mapText string, opts LoadOptions) error {
	words, err := parseBin(binText)
	if err != nil {
		return err
	}
	entries, err := parseMap(mapText)
	if err != nil {
		return err
	}
	if err := validate(words, entries); err != nil {
		return err
	}

	if !opts.Force {
		for _, e := range entries {
			if c.ExecSet != nil && c.ExecSet[e.addr] {
				return fmt.Errorf("%w: address %#x already occupied by a loaded segment", ErrOverlap, e.addr)
			}
		}
	}

	values := materialize(words, entries)

	var minAddr, maxAddr uint64
	haveRange := false
	execAddrs := make([]uint64, 0, len(entries))

	for i, e := range entries {
		if err := c.Mem.WriteDouble(e.addr, values[i]); err != nil {
			return fmt.Errorf("%w: writing word %d at %#x: %v", ErrLink, i, e.addr, err)
		}
		if !haveRange || e.addr < minAddr {
			minAddr = e.addr
		}
		if !haveRange || e.addr > maxAddr {
			maxAddr = e.addr
		}
		haveRange = true
		if e.exec {
			execAddrs = append(execAddrs, e.addr)
		}
	}

	if c.ExecSet == nil {
		c.ExecSet = make(map[uint64]bool)
	}
	var smallestExec uint64
	haveExec := false
	for _, a := range execAddrs {
		c.ExecSet[a] = true
		if !haveExec || a < smallestExec {
			smallestExec = a
			haveExec = true
		}
	}

	if opts.StartOverride != nil {
		c.PC = *opts.StartOverride
	} else if haveExec {
		c.PC = smallestExec
	}

	if haveRange {
		c.Segments = append(c.Segments, cpu.Segment{Min: minAddr, Max: maxAddr, Name: opts.Name})
	}
	return nil
}
