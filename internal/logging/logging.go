// Copyright 2025 The CargoCache Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging configures the standard library's log package as the
// engine's sole logging surface, gated by the ANYCARGO_LOG environment
// variable (analogous to the upstream toolchain's own tracing directive
// variable). No structured logging library appears anywhere in the
// materialization engine's dependency chain, so this package does not
// introduce one either; see DESIGN.md for the stdlib justification.
package logging

import (
	"log"
	"os"
	"strings"
)

// Level is a coarse severity gate; the standard logger itself is unleveled,
// so Infof, Debugf and Warnf each check Enabled before logging at their
// level.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[string]Level{
	"error": LevelError,
	"warn":  LevelWarn,
	"info":  LevelInfo,
	"debug": LevelDebug,
	"trace": LevelTrace,
}

var current = LevelInfo

// Init reads ANYCARGO_LOG and sets the process-wide level; absent or
// unrecognized values default to info.
func Init() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ANYCARGO_LOG")))
	if lvl, ok := levelNames[v]; ok {
		current = lvl
	} else {
		current = LevelInfo
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// Enabled reports whether lvl should be logged at the current level.
func Enabled(lvl Level) bool {
	return lvl <= current
}

// Infof logs at info level if enabled.
func Infof(format string, args ...any) {
	if Enabled(LevelInfo) {
		log.Printf("INFO "+format, args...)
	}
}

// Debugf logs at debug level if enabled.
func Debugf(format string, args ...any) {
	if Enabled(LevelDebug) {
		log.Printf("DEBUG "+format, args...)
	}
}

// Warnf logs at warn level if enabled.
func Warnf(format string, args ...any) {
	if Enabled(LevelWarn) {
		log.Printf("WARN "+format, args...)
	}
}
