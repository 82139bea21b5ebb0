/*
 * EUCLID-64 - Console command parser (§5.13).
 *
 * A cmdLine line-scanner feeds a prefix-matching command table covering
 * the flat load/run/step/regs/mem/break command set.
 */

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/euclid64/machine"
)

type cmd struct {
	name     string
	min      int // minimum unambiguous prefix length
	usage    string
	process  func(*cmdLine, *machine.Machine) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "load", min: 1, usage: "load <base>            load <base>.bin/.map", process: cmdLoad},
	{name: "run", min: 1, usage: "run [maxcycles]         run until HALT, error, or breakpoint", process: cmdRun},
	{name: "step", min: 2, usage: "step [n]                execute n cycles, printing state after each", process: cmdStep},
	{name: "regs", min: 2, usage: "regs                    print PC, flags, and all 16 registers", process: cmdRegs},
	{name: "mem", min: 1, usage: "mem <addr> [count]      dump count 64-bit words starting at addr", process: cmdMem},
	{name: "setmem", min: 4, usage: "setmem <addr> <val>     write a 64-bit word to memory", process: cmdSetMem},
	{name: "setreg", min: 4, usage: "setreg <n> <val>        write register n", process: cmdSetReg},
	{name: "break", min: 3, usage: "break <addr>            set a breakpoint", process: cmdBreak},
	{name: "clear", min: 1, usage: "clear <addr>            clear a breakpoint", process: cmdClear},
	{name: "breaks", min: 6, usage: "breaks                  list breakpoints", process: cmdBreaks},
	{name: "reset", min: 3, usage: "reset                   reset the CPU and clear breakpoints", process: cmdReset},
	{name: "help", min: 1, usage: "help                    show this command list"},
	{name: "quit", min: 1, usage: "quit                    leave the console", process: cmdQuit},
	{name: "exit", min: 1, usage: "exit                    leave the console", process: cmdQuit},
}

// init wires the help command, whose handler reads cmdList itself and so
// cannot appear in cmdList's initializer.
func init() {
	for i := range cmdList {
		if cmdList[i].name == "help" {
			cmdList[i].process = cmdHelp
		}
	}
}

// ProcessCommand parses and runs one command line against m. It returns
// true when the console should exit.
func ProcessCommand(line string, m *machine.Machine) (bool, error) {
	cl := &cmdLine{line: line}
	name := cl.getWord()

	matches := matchList(name)
	switch len(matches) {
	case 0:
		return false, errors.New("command not found: " + name)
	case 1:
		return matches[0].process(cl, m)
	default:
		return false, errors.New("ambiguous command: " + name)
	}
}

// CompleteCmd completes the command name or, if one is already
// unambiguous, delegates to its completer.
func CompleteCmd(line string) []string {
	cl := &cmdLine{line: line}
	name := cl.getWord()

	if !cl.isEOL() {
		matches := matchList(name)
		if len(matches) != 1 || matches[0].complete == nil {
			return nil
		}
		return matches[0].complete(cl)
	}

	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, name) {
			out = append(out, c.name)
		}
	}
	return out
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) || len(name) < c.min {
		return false
	}
	return c.name[:len(name)] == name
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var out []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			out = append(out, c)
		}
	}
	return out
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line)
}

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

func (l *cmdLine) rest() string {
	l.skipSpace()
	return strings.TrimSpace(l.line[l.pos:])
}

func parseAddr(tok string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(tok), "0x"), 16, 64)
}

func parseValue(tok string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(tok), "0x"), 0, 64)
}

func cmdLoad(l *cmdLine, m *machine.Machine) (bool, error) {
	base := l.rest()
	if base == "" {
		return false, errors.New("load requires a base path")
	}
	return false, m.Load(base)
}

func cmdRun(l *cmdLine, m *machine.Machine) (bool, error) {
	tok := l.rest()
	var maxCycles uint64
	if tok != "" {
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return false, fmt.Errorf("bad cycle count %q", tok)
		}
		maxCycles = n
	}
	return false, m.Run(maxCycles)
}

func cmdStep(l *cmdLine, m *machine.Machine) (bool, error) {
	tok := l.rest()
	n := 1
	if tok != "" {
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 {
			return false, fmt.Errorf("bad step count %q", tok)
		}
		n = v
	}
	for i := 0; i < n; i++ {
		if err := m.StepN(1); err != nil {
			return false, err
		}
		fmt.Println(formatState(m))
	}
	return false, nil
}

func cmdRegs(_ *cmdLine, m *machine.Machine) (bool, error) {
	fmt.Println(formatState(m))
	return false, nil
}

func cmdMem(l *cmdLine, m *machine.Machine) (bool, error) {
	addrTok := l.getWord()
	if addrTok == "" {
		return false, errors.New("mem requires an address")
	}
	addr, err := parseAddr(addrTok)
	if err != nil {
		return false, fmt.Errorf("bad address %q", addrTok)
	}
	count := 1
	countTok := l.rest()
	if countTok != "" {
		n, err := strconv.Atoi(countTok)
		if err != nil || n <= 0 {
			return false, fmt.Errorf("bad count %q", countTok)
		}
		count = n
	}
	for i := 0; i < count; i++ {
		a := addr + uint64(i)*8
		v, err := m.CPU.Mem.ReadDouble(a)
		if err != nil {
			return false, err
		}
		fmt.Printf("%#06x: %016x\n", a, v)
	}
	return false, nil
}

func cmdSetMem(l *cmdLine, m *machine.Machine) (bool, error) {
	addrTok := l.getWord()
	valTok := l.getWord()
	if addrTok == "" || valTok == "" {
		return false, errors.New("setmem requires an address and a value")
	}
	addr, err := parseAddr(addrTok)
	if err != nil {
		return false, fmt.Errorf("bad address %q", addrTok)
	}
	val, err := parseValue(valTok)
	if err != nil {
		return false, fmt.Errorf("bad value %q", valTok)
	}
	return false, m.CPU.Mem.WriteDouble(addr, val)
}

func cmdSetReg(l *cmdLine, m *machine.Machine) (bool, error) {
	numTok := l.getWord()
	valTok := l.getWord()
	if numTok == "" || valTok == "" {
		return false, errors.New("setreg requires a register number and a value")
	}
	n, err := strconv.Atoi(numTok)
	if err != nil || n < 0 || n > 15 {
		return false, fmt.Errorf("bad register number %q", numTok)
	}
	val, err := parseValue(valTok)
	if err != nil {
		return false, fmt.Errorf("bad value %q", valTok)
	}
	m.CPU.Regs[n] = val
	return false, nil
}

func cmdBreak(l *cmdLine, m *machine.Machine) (bool, error) {
	tok := l.rest()
	if tok == "" {
		return false, errors.New("break requires an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, fmt.Errorf("bad address %q", tok)
	}
	m.SetBreak(addr)
	return false, nil
}

func cmdClear(l *cmdLine, m *machine.Machine) (bool, error) {
	tok := l.rest()
	if tok == "" {
		return false, errors.New("clear requires an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, fmt.Errorf("bad address %q", tok)
	}
	m.ClearBreak(addr)
	return false, nil
}

func cmdBreaks(_ *cmdLine, m *machine.Machine) (bool, error) {
	if len(m.Breakpoints) == 0 {
		fmt.Println("no breakpoints set")
		return false, nil
	}
	for addr := range m.Breakpoints {
		fmt.Printf("%#06x\n", addr)
	}
	return false, nil
}

func cmdReset(_ *cmdLine, m *machine.Machine) (bool, error) {
	m.Reset()
	return false, nil
}

func cmdQuit(_ *cmdLine, _ *machine.Machine) (bool, error) {
	return true, nil
}

func cmdHelp(_ *cmdLine, _ *machine.Machine) (bool, error) {
	fmt.Print(HelpText())
	return false, nil
}

// HelpText lists every console command with its usage, in the order the
// command table defines them. ConsoleReader prints it on startup so a
// user is never dropped into the prompt without knowing the command set.
func HelpText() string {
	var b strings.Builder
	for _, c := range cmdList {
		fmt.Fprintln(&b, c.usage)
	}
	return b.String()
}

func formatState(m *machine.Machine) string {
	c := m.CPU
	var b strings.Builder
	fmt.Fprintf(&b, "pc=%#06x cycles=%d flags=Z:%v C:%v N:%v P:%v O:%v I:%v\n",
		c.PC, c.Cycles, c.ZeroSet(), c.CarrySet(), c.NegativeSet(), c.PositiveSet(), c.OverflowSet(), c.InterruptSet())
	for i := 0; i < 16; i += 4 {
		fmt.Fprintf(&b, "r%-2d=%016x r%-2d=%016x r%-2d=%016x r%-2d=%016x\n",
			i, c.Regs[i], i+1, c.Regs[i+1], i+2, c.Regs[i+2], i+3, c.Regs[i+3])
	}
	return strings.TrimRight(b.String(), "\n")
}
