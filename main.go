/*
 * EUCLID-64 - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/euclid64/assembler"
	"github.com/rcornwell/euclid64/command/reader"
	"github.com/rcornwell/euclid64/config"
	"github.com/rcornwell/euclid64/linker"
	"github.com/rcornwell/euclid64/machine"
	"github.com/rcornwell/euclid64/memory"
	"github.com/rcornwell/euclid64/util/debug"
	"github.com/rcornwell/euclid64/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optOut := getopt.StringLong("out", 'o', "", "Output base name for asm")
	optStart := getopt.StringLong("start", 0, "", "Start address override (0x...)")
	optMaxCycles := getopt.Uint64Long("max-cycles", 0, 0, "Maximum cycles to run")
	optLegacy := getopt.BoolLong("legacy", 0, "Load a legacy .img image")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the interactive console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if *optLogFile != "" {
		logFile, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	logHandler := logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, 0)
	Logger = slog.New(logHandler)
	slog.SetDefault(Logger)
	debug.SetLogger(Logger)

	memSize := memory.DefaultSize
	var startOverride *uint64
	var ports []config.PortBinding
	debugMask := 0
	if *optConfig != "" {
		cfg, err := config.Load(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		if cfg.MemorySize != 0 {
			memSize = cfg.MemorySize
		}
		startOverride = cfg.StartOverride
		ports = cfg.Ports
		debugMask = cfg.DebugMask
		programLevel.Set(debugLevelFor(cfg.DebugMask))
		logHandler.SetDebugMask(cfg.DebugMask)
	}

	args := getopt.Args()
	if len(args) == 0 {
		if !*optInteractive {
			getopt.Usage()
			os.Exit(1)
		}
		runInteractive(memSize, ports, debugMask)
		return
	}

	var err error
	switch args[0] {
	case "asm":
		err = runAsm(args[1:], *optOut)
	case "run":
		err = runRun(args[1:], memSize, ports, startOverride, *optStart, *optMaxCycles, *optLegacy, debugMask)
	case "asmrun":
		err = runAsmRun(args[1:], memSize, ports, startOverride, *optStart, *optMaxCycles, debugMask)
	default:
		Logger.Error("unknown subcommand: " + args[0])
		os.Exit(1)
	}
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
}

// bindPorts attaches configured PORT <n> FILE <path> bindings to m,
// opening each file for read/write, creating it if absent.
func bindPorts(m *machine.Machine, ports []config.PortBinding) error {
	for _, b := range ports {
		if err := m.CPU.BindPortFile(b.Port, b.Path, os.O_RDWR|os.O_CREATE); err != nil {
			return fmt.Errorf("binding port %d to %s: %w", b.Port, b.Path, err)
		}
	}
	return nil
}

// wireDebug hooks m's CPU up to the -config DEBUG mask and the program
// Logger, so the CPU's cmd/inst/data/io trace lines (§4.12) reach the
// same handler -log/-config already pointed at stderr/the log file.
func wireDebug(m *machine.Machine, mask int) {
	m.CPU.DebugMask = mask
	if mask != 0 {
		m.CPU.Logf = func(format string, args ...any) {
			Logger.Info(fmt.Sprintf(format, args...))
		}
	}
}

func debugLevelFor(mask int) slog.Level {
	if mask != 0 {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func runAsm(args []string, outBase string) error {
	if len(args) == 0 {
		return fmt.Errorf("asm requires a source file")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	out, err := assembler.Assemble(string(src))
	if err != nil {
		return err
	}
	if outBase == "" {
		outBase = trimExt(args[0])
	}
	if err := os.WriteFile(outBase+".bin", []byte(out.Bin), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(outBase+".map", []byte(out.Map), 0o644); err != nil {
		return err
	}
	return os.WriteFile(outBase+".exec", []byte(out.Exec), 0o644)
}

func runRun(args []string, memSize int, ports []config.PortBinding, cfgStart *uint64, startFlag string, maxCycles uint64, legacy bool, debugMask int) error {
	if len(args) == 0 {
		return fmt.Errorf("run requires an image base name")
	}
	m := machine.New(memSize)
	defer m.CPU.CloseAllPortFiles()
	wireDebug(m, debugMask)
	if err := bindPorts(m, ports); err != nil {
		return err
	}

	start := cfgStart
	if startFlag != "" {
		v, err := parseHexFlag(startFlag)
		if err != nil {
			return err
		}
		start = &v
	}

	if legacy {
		if err := m.LoadLegacy(args[0]); err != nil {
			return err
		}
	} else if err := m.Load(args[0]); err != nil {
		return err
	}
	if start != nil {
		m.CPU.PC = *start
	}
	return installSignalStop(m, func() error { return m.Run(maxCycles) })
}

func runAsmRun(args []string, memSize int, ports []config.PortBinding, cfgStart *uint64, startFlag string, maxCycles uint64, debugMask int) error {
	if len(args) == 0 {
		return fmt.Errorf("asmrun requires a source file")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	out, err := assembler.Assemble(string(src))
	if err != nil {
		return err
	}

	m := machine.New(memSize)
	defer m.CPU.CloseAllPortFiles()
	wireDebug(m, debugMask)
	if err := bindPorts(m, ports); err != nil {
		return err
	}
	if err := linker.Load(m.CPU, out.Bin, out.Map, linker.LoadOptions{Name: trimExt(args[0])}); err != nil {
		return err
	}

	start := cfgStart
	if startFlag != "" {
		v, err := parseHexFlag(startFlag)
		if err != nil {
			return err
		}
		start = &v
	}
	if start != nil {
		m.CPU.PC = *start
	}
	return installSignalStop(m, func() error { return m.Run(maxCycles) })
}

func runInteractive(memSize int, ports []config.PortBinding, debugMask int) {
	m := machine.New(memSize)
	defer m.CPU.CloseAllPortFiles()
	wireDebug(m, debugMask)
	if err := bindPorts(m, ports); err != nil {
		Logger.Error(err.Error())
		return
	}
	reader.ConsoleReader(m)
}

// installSignalStop runs action in a goroutine and races it against
// SIGINT/SIGTERM, clearing the CPU's running flag on signal so a blocking
// run call still exits cleanly on Ctrl-C.
func installSignalStop(m *machine.Machine, action func() error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan error, 1)

	go func() {
		done <- action()
	}()

	select {
	case err := <-done:
		signal.Stop(sigChan)
		return err
	case <-sigChan:
		m.CPU.Stop()
		return <-done
	}
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

func parseHexFlag(tok string) (uint64, error) {
	var v uint64
	_, err := fmt.Sscanf(tok, "0x%x", &v)
	if err != nil {
		_, err = fmt.Sscanf(tok, "%d", &v)
	}
	return v, err
}
