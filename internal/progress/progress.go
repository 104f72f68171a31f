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

// Package progress renders the orchestrator's monotonic dependency counter
// as a terminal progress bar.
package progress

import (
	"io"

	"github.com/cargocache/cargocache/pkg/cargocache"
	"github.com/cheggaaa/pb"
)

// Bar wraps a cheggaaa/pb progress bar sized to the SBOM's library
// component count, started lazily on the first reported dependency so a
// zero-dependency SBOM never renders one.
type Bar struct {
	out    io.Writer
	bar    *pb.ProgressBar
	total  int
}

// New returns a Bar writing to out.
func New(out io.Writer) *Bar {
	return &Bar{out: out}
}

// Func returns a cargocache.ProgressFunc that drives this bar.
func (b *Bar) Func() cargocache.ProgressFunc {
	return func(done, total int, name string) {
		if b.bar == nil {
			if total == 0 {
				return
			}
			b.total = total
			b.bar = pb.New(total)
			b.bar.Output = b.out
			b.bar.ShowTimeLeft = true
			b.bar.Prefix(name)
			b.bar.Start()
		}
		b.bar.Prefix(name)
		b.bar.Set(done)
		if done == b.total {
			b.bar.Finish()
		}
	}
}
