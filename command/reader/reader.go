/*
 * EUCLID-64 - Interactive console reader (§5.13).
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

package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/peterh/liner"
	"github.com/rcornwell/euclid64/command/parser"
	"github.com/rcornwell/euclid64/machine"
)

// ConsoleReader drives the liner-backed REPL, dispatching each line to
// package parser until a command returns quit=true or the prompt is
// aborted (Ctrl-D, or Ctrl-C with SetCtrlCAborts).
//
// Unlike a bare prompt loop, it greets a new user with the live command
// table (parser.HelpText, so "help" text can never drift from cmdList)
// and folds the machine's last-loaded image name (machine.Machine's
// LastBase, set by Load/LoadLegacy) into the prompt itself, so the
// console always shows which image a run/step/regs command would act on.
func ConsoleReader(m *machine.Machine) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		return parser.CompleteCmd(l)
	})

	fmt.Println("EUCLID-64 interactive console. Commands:")
	fmt.Print(parser.HelpText())

	for {
		command, err := line.Prompt(prompt(m))
		if err == nil {
			line.AppendHistory(command)
			quit, err := parser.ProcessCommand(command, m)
			if err != nil {
				fmt.Println("Error: " + err.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}

// prompt names the currently loaded image, if any, so the console never
// leaves a user guessing which program "run"/"step"/"regs" apply to.
func prompt(m *machine.Machine) string {
	if m.LastBase == "" {
		return "euclid> "
	}
	return "euclid:" + filepath.Base(m.LastBase) + "> "
}
