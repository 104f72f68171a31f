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

// Package oncecache provides a process-local, key-coalescing guard so a
// cache root's one-time initialization (directory scaffolding, default
// index config) runs at most once per process, even if dependency
// materialization is parallelized across a cache root's dependencies.
package oncecache

import "sync"

// Guard maps an arbitrary key (a cache root path, typically) to a
// sync.OnceValue-wrapped initializer, coalescing concurrent callers onto a
// single execution and retrying on the next call if that execution failed.
type Guard struct {
	data sync.Map // key -> *entry
}

type entry struct {
	once func() error
}

// New returns an empty Guard.
func New() *Guard {
	return &Guard{}
}

// Do runs init for key if it has not already succeeded for that key in this
// Guard's lifetime, returning the error from whichever call actually ran
// (or nil if a prior call already succeeded).
func (g *Guard) Do(key string, init func() error) error {
	e, _ := g.data.LoadOrStore(key, &entry{once: sync.OnceValue(init)})
	err := e.(*entry).once()
	if err != nil {
		// Allow a later call to retry rather than caching the failure forever.
		g.data.CompareAndDelete(key, e)
	}
	return err
}
