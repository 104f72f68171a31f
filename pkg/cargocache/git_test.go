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
	"context"
	"io"
	"testing"

	"github.com/cargocache/cargocache/internal/cmdexec"
	"github.com/cargocache/cargocache/internal/oncecache"
	"github.com/go-git/go-billy/v5/memfs"
)

func TestGitMaterializer_S2(t *testing.T) {
	fs := memfs.New()
	exec := cmdexec.NewFake()
	mat := NewGitMaterializer(fs, "/root", exec, oncecache.New())
	dep := &GitDependency{
		Name:   "simple_lib",
		URL:    "https://github.com/silkovalexander/simple_lib",
		Commit: "abcdef0123456789abcdef0123456789abcdef01",
	}
	if err := mat.Materialize(context.Background(), "/root", dep); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	const sfx = "f9cb9f02e39b3874"
	headPath := "/root/git/db/simple_lib-" + sfx + "/refs/remotes/origin/HEAD"
	f, err := fs.Open(headPath)
	if err != nil {
		t.Fatalf("Open(HEAD) error = %v", err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != dep.Commit {
		t.Errorf("HEAD content = %q, want %q", data, dep.Commit)
	}

	okPath := "/root/git/checkouts/simple_lib-" + sfx + "/abcdef0/.cargo-ok"
	okF, err := fs.Open(okPath)
	if err != nil {
		t.Fatalf("Open(.cargo-ok) error = %v", err)
	}
	okF.Close()

	if exec.CountOf("git") < 2 {
		t.Errorf("expected at least a bare clone and a working clone, got %d git invocations", exec.CountOf("git"))
	}
}

func TestGitMaterializer_OptionalTag(t *testing.T) {
	fs := memfs.New()
	exec := cmdexec.NewFake()
	mat := NewGitMaterializer(fs, "/root", exec, oncecache.New())
	dep := &GitDependency{
		Name:   "simple_lib",
		URL:    "https://github.com/silkovalexander/simple_lib",
		Commit: "abcdef0123456789abcdef0123456789abcdef01",
		Tag:    "v1.0.0",
	}
	if err := mat.Materialize(context.Background(), "/root", dep); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	const sfx = "f9cb9f02e39b3874"
	tagPath := "/root/git/db/simple_lib-" + sfx + "/refs/remotes/origin/tags/v1.0.0"
	f, err := fs.Open(tagPath)
	if err != nil {
		t.Fatalf("Open(tag ref) error = %v", err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != dep.Commit {
		t.Errorf("tag ref content = %q, want %q", data, dep.Commit)
	}
}

func TestGitMaterializer_Idempotent(t *testing.T) {
	fs := memfs.New()
	exec := cmdexec.NewFake()
	once := oncecache.New()
	mat := NewGitMaterializer(fs, "/root", exec, once)
	dep := &GitDependency{
		Name:   "simple_lib",
		URL:    "https://github.com/silkovalexander/simple_lib",
		Commit: "abcdef0123456789abcdef0123456789abcdef01",
	}
	if err := mat.Materialize(context.Background(), "/root", dep); err != nil {
		t.Fatalf("first Materialize() error = %v", err)
	}
	first := len(exec.Invocations)
	if err := mat.Materialize(context.Background(), "/root", dep); err != nil {
		t.Fatalf("second Materialize() error = %v", err)
	}
	if len(exec.Invocations) != first {
		t.Errorf("second Materialize() made %d additional subprocess invocations, want 0", len(exec.Invocations)-first)
	}
}

func TestGitMaterializer_CACHEDIRTAG(t *testing.T) {
	fs := memfs.New()
	exec := cmdexec.NewFake()
	mat := NewGitMaterializer(fs, "/root", exec, oncecache.New())
	dep := &GitDependency{Name: "a", URL: "https://github.com/x/a", Commit: "abcdef0123456789abcdef0123456789abcdef01"}
	if err := mat.Materialize(context.Background(), "/root", dep); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	f, err := fs.Open("/root/git/CACHEDIR.TAG")
	if err != nil {
		t.Fatalf("Open(CACHEDIR.TAG) error = %v", err)
	}
	f.Close()
}
