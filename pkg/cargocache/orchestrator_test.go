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
	"errors"
	"testing"

	"github.com/cargocache/cargocache/internal/cmdexec"
	"github.com/cargocache/cargocache/internal/oncecache"
	"github.com/cargocache/cargocache/pkg/cyclonedx"
	"github.com/go-git/go-billy/v5/memfs"
)

func newTestOrchestrator(t *testing.T, fetcher Fetcher) (*Orchestrator, *[]string) {
	t.Helper()
	fs := memfs.New()
	exec := cmdexec.NewFake()
	reg := NewRegistryMaterializer(fs, fetcher, oncecache.New())
	gitMat := NewGitMaterializer(fs, "/root", exec, oncecache.New())
	order := new([]string)
	o := NewOrchestrator(reg, gitMat, func(done, total int, name string) {
		*order = append(*order, name)
	})
	return o, order
}

func TestOrchestrator_UnsupportedLibraryKind_S4(t *testing.T) {
	bom := &cyclonedx.BOM{
		Components: []cyclonedx.Component{
			{Type: cyclonedx.TypeLibrary, Name: "weird", MimeType: "cargo/bazaar"},
		},
	}
	o, _ := newTestOrchestrator(t, &fakeFetcher{responses: map[string][]byte{}})
	err := o.Materialize(context.Background(), bom, "/root")
	var unsupported *UnsupportedLibraryKind
	if !errors.As(err, &unsupported) {
		t.Fatalf("Materialize() error = %v, want *UnsupportedLibraryKind", err)
	}
	if unsupported.Kind != "cargo/bazaar" {
		t.Errorf("Kind = %q, want cargo/bazaar", unsupported.Kind)
	}
}

func TestOrchestrator_SkipsNonLibraryComponents(t *testing.T) {
	bom := &cyclonedx.BOM{
		Components: []cyclonedx.Component{
			{Type: cyclonedx.TypeApplication, Name: "root-app"},
		},
	}
	o, order := newTestOrchestrator(t, &fakeFetcher{responses: map[string][]byte{}})
	if err := o.Materialize(context.Background(), bom, "/root"); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(*order) != 0 {
		t.Errorf("progress callback invoked for non-library component: %v", *order)
	}
}

func TestOrchestrator_PlatformCheckSkippedWhenAbsent(t *testing.T) {
	bom := &cyclonedx.BOM{
		Metadata:   &cyclonedx.Metadata{Component: cyclonedx.Component{Name: "root"}},
		Components: []cyclonedx.Component{},
	}
	o, _ := newTestOrchestrator(t, &fakeFetcher{responses: map[string][]byte{}})
	if err := o.Materialize(context.Background(), bom, "/root"); err != nil {
		t.Fatalf("Materialize() error = %v, want nil (platform absent is a no-op)", err)
	}
}

func TestOrchestrator_GitDependencyMissingCommit_InputMalformed(t *testing.T) {
	bom := &cyclonedx.BOM{
		Components: []cyclonedx.Component{
			{
				Type: cyclonedx.TypeLibrary, Name: "nocommit", MimeType: LibraryKindGit,
				ExternalReferences: []cyclonedx.ExternalReference{{URL: "https://github.com/x/y"}},
			},
		},
	}
	o, _ := newTestOrchestrator(t, &fakeFetcher{responses: map[string][]byte{}})
	err := o.Materialize(context.Background(), bom, "/root")
	var malformed *InputMalformed
	if !errors.As(err, &malformed) {
		t.Fatalf("Materialize() error = %v, want *InputMalformed", err)
	}
}
