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
	"github.com/go-git/go-billy/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// PackageManifest is the subset of a Cargo.toml [package] section this
// engine inspects after extraction, to confirm the archive actually
// contains the crate the dependency record names.
type PackageManifest struct {
	Name       string `toml:"name"`
	RawVersion any    `toml:"version"`
}

// cargoTOML is the top-level Cargo.toml shape.
type cargoTOML struct {
	Package PackageManifest `toml:"package"`
}

// Version returns the package's version string, or the empty string if
// the manifest declares a workspace-inherited version (a bare `workspace =
// true` table rather than a literal string).
func (pm PackageManifest) Version() string {
	if v, ok := pm.RawVersion.(string); ok {
		return v
	}
	return ""
}

// ReadManifest parses the Cargo.toml at path on fs and returns its
// [package] section.
func ReadManifest(fs billy.Filesystem, path string) (*PackageManifest, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &IoFailure{Path: path, Err: err}
	}
	defer f.Close()
	var doc cargoTOML
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &doc.Package, nil
}

// VerifyManifest confirms the extracted crate's Cargo.toml declares the
// expected name and version, catching an archive whose top-level directory
// name lied about its contents.
func VerifyManifest(fs billy.Filesystem, srcDir, name, version string) error {
	pm, err := ReadManifest(fs, srcDir+"/Cargo.toml")
	if err != nil {
		return err
	}
	if pm.Name != name {
		return errors.Errorf("Cargo.toml declares package name %q, expected %q", pm.Name, name)
	}
	if v := pm.Version(); v != "" && v != version {
		return errors.Errorf("Cargo.toml declares version %q, expected %q", v, version)
	}
	return nil
}
