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

// Package cmdexec abstracts the external-program invocations (git, curl,
// tar, the container runtime) the materializers make, so tests can run
// without a network or a real toolchain installed.
package cmdexec

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/pkg/errors"
)

// Options configures a single command execution.
type Options struct {
	// Output streams stdout/stderr to the writer; nil discards it.
	Output io.Writer
	// Dir is the working directory the command runs in.
	Dir string
}

// SubprocessFailure is returned when an external program exits nonzero.
type SubprocessFailure struct {
	Program  string
	ExitCode int
}

func (e *SubprocessFailure) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Program, e.ExitCode)
}

// Executor abstracts command execution for testability, mirroring
// os/exec.CommandContext(...).Run() and exec.LookPath.
type Executor interface {
	// Execute runs name with args and waits for completion.
	Execute(ctx context.Context, opts Options, name string, args ...string) error
	// LookPath reports whether name is found on $PATH.
	LookPath(name string) (string, error)
}

type realExecutor struct{}

// NewReal returns an Executor backed by os/exec.
func NewReal() Executor { return &realExecutor{} }

func (r *realExecutor) Execute(ctx context.Context, opts Options, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if opts.Output != nil {
		cmd.Stdout = opts.Output
		cmd.Stderr = opts.Output
	}
	cmd.Dir = opts.Dir
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &SubprocessFailure{Program: name, ExitCode: exitErr.ExitCode()}
		}
		return errors.Wrapf(err, "executing %s", name)
	}
	return nil
}

func (r *realExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
