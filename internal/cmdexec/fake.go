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

package cmdexec

import (
	"context"
	"strings"
)

// Invocation is one recorded call to Fake.Execute.
type Invocation struct {
	Name string
	Args []string
	Dir  string
}

// String renders the invocation the way it would appear on a command line,
// for use in test failure messages.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Name}, i.Args...), " ")
}

// Handler produces the observable effect (writing to Output, returning an
// error) of one invocation; Fake looks one up per call by program name.
type Handler func(ctx context.Context, opts Options, args []string) error

// Fake is a recording, in-memory Executor. Every SBOM-driven materializer
// test substitutes one of these for the real executor so no subprocess, git
// remote, or network fetch is required. Idempotence tests assert on
// Invocations to confirm a second materialize call performed no additional
// subprocess invocations.
type Fake struct {
	Invocations []Invocation
	Handlers    map[string]Handler
	// LookPathErr, if set, is returned by LookPath for every name.
	LookPathErr error
}

// NewFake returns an empty Fake ready to record invocations.
func NewFake() *Fake {
	return &Fake{Handlers: make(map[string]Handler)}
}

func (f *Fake) Execute(ctx context.Context, opts Options, name string, args ...string) error {
	f.Invocations = append(f.Invocations, Invocation{Name: name, Args: args, Dir: opts.Dir})
	if h, ok := f.Handlers[name]; ok {
		return h(ctx, opts, args)
	}
	return nil
}

func (f *Fake) LookPath(name string) (string, error) {
	if f.LookPathErr != nil {
		return "", f.LookPathErr
	}
	return "/usr/bin/" + name, nil
}

// CountOf returns how many recorded invocations used the given program name.
func (f *Fake) CountOf(name string) int {
	n := 0
	for _, inv := range f.Invocations {
		if inv.Name == name {
			n++
		}
	}
	return n
}
