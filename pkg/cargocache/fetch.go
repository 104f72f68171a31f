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

package cargocache

import (
	"bytes"
	"context"

	"github.com/cargocache/cargocache/internal/cmdexec"
)

// Fetcher retrieves the bytes at url. The registry materializer uses it both
// for crate archive downloads and upstream index listing fetches.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// curlFetcher shells out to curl, the external fetch tool named in the
// container invocation contract, with `-L` to follow redirects and
// `--output -` to stream the response to stdout instead of a named file so
// the result can be written into the cache root's own filesystem
// abstraction (which may not be backed by real OS paths in tests).
type curlFetcher struct {
	exec cmdexec.Executor
}

// NewCurlFetcher returns a Fetcher backed by the given command executor.
func NewCurlFetcher(exec cmdexec.Executor) Fetcher {
	return &curlFetcher{exec: exec}
}

func (c *curlFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var out bytes.Buffer
	err := c.exec.Execute(ctx, cmdexec.Options{Output: &out}, "curl", "-s", "-L", "--output", "-", url)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
