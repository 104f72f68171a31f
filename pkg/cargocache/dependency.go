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
	"github.com/cargocache/cargocache/pkg/cyclonedx"
)

// LibraryKind tag values recognized on a library component's classifying
// property or MIME-type field.
const (
	LibraryKindRegistry = "cargo/registry"
	LibraryKindGit      = "cargo/git"
)

// InputMalformed signals an SBOM library component missing a field required
// by the kind it was classified as.
type InputMalformed struct {
	Component string
	Reason    string
}

func (e *InputMalformed) Error() string {
	return "malformed SBOM component " + e.Component + ": " + e.Reason
}

// UnsupportedLibraryKind is returned for a classifying tag outside
// {cargo/registry, cargo/git}.
type UnsupportedLibraryKind struct {
	Kind string
}

func (e *UnsupportedLibraryKind) Error() string {
	return "unsupported library kind: " + e.Kind
}

// RegistryDependency is the well-formed derivation of a cargo/registry
// library component.
type RegistryDependency struct {
	Name        string
	Version     string
	DownloadURL string
	Hashes      []cyclonedx.Hash
}

// GitDependency is the well-formed derivation of a cargo/git library
// component.
type GitDependency struct {
	Name   string
	URL    string
	Commit string
	Tag    string
	Hashes []cyclonedx.Hash
}

// NewRegistryDependency derives a RegistryDependency from c, which must have
// a non-empty Version and exactly one external reference.
func NewRegistryDependency(c cyclonedx.Component) (*RegistryDependency, error) {
	if c.Version == "" {
		return nil, &InputMalformed{Component: c.Name, Reason: "registry dependency missing version"}
	}
	url, ok := c.ExternalReferenceURL()
	if !ok {
		return nil, &InputMalformed{Component: c.Name, Reason: "registry dependency requires exactly one external reference"}
	}
	return &RegistryDependency{
		Name:        c.Name,
		Version:     c.Version,
		DownloadURL: url,
		Hashes:      c.Hashes,
	}, nil
}

// NewGitDependency derives a GitDependency from c, which must carry a
// "commit" property and exactly one external reference. The "tag" property
// is optional.
func NewGitDependency(c cyclonedx.Component) (*GitDependency, error) {
	commit, ok := c.Property("commit")
	if !ok || commit == "" {
		return nil, &InputMalformed{Component: c.Name, Reason: "git dependency missing commit property"}
	}
	url, ok := c.ExternalReferenceURL()
	if !ok {
		return nil, &InputMalformed{Component: c.Name, Reason: "git dependency requires exactly one external reference"}
	}
	tag, _ := c.Property("tag")
	return &GitDependency{
		Name:   c.Name,
		URL:    url,
		Commit: commit,
		Tag:    tag,
		Hashes: c.Hashes,
	}, nil
}
