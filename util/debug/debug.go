/*
 * EUCLID-64 - Trace gated debug logging (§4.12)
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

// Package debug gates trace messages by category against a mask, routing
// surviving messages through a single package-level slog.Logger installed
// at startup.
package debug

import (
	"fmt"
	"log/slog"
)

// Trace categories, matching config.DebugCmd/DebugInst/DebugData/DebugIO.
const (
	Cmd = 1 << iota
	Inst
	Data
	IO
)

var log = slog.Default()

// SetLogger installs the logger every Debugf call writes through. main
// calls this once, after building the configured slog.Logger.
func SetLogger(l *slog.Logger) {
	log = l
}

// Debugf emits a trace message when category is set in mask.
func Debugf(category int, mask int, format string, a ...any) {
	if category&mask == 0 {
		return
	}
	log.Debug(fmt.Sprintf(format, a...))
}
