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
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
)

func TestVerifyManifest_OK(t *testing.T) {
	fs := memfs.New()
	writeFile(fs, "/src/serde-1.0.0/Cargo.toml", []byte("[package]\nname = \"serde\"\nversion = \"1.0.0\"\n"))
	if err := VerifyManifest(fs, "/src/serde-1.0.0", "serde", "1.0.0"); err != nil {
		t.Fatalf("VerifyManifest() error = %v", err)
	}
}

func TestVerifyManifest_NameMismatch(t *testing.T) {
	fs := memfs.New()
	writeFile(fs, "/src/serde-1.0.0/Cargo.toml", []byte("[package]\nname = \"not-serde\"\nversion = \"1.0.0\"\n"))
	if err := VerifyManifest(fs, "/src/serde-1.0.0", "serde", "1.0.0"); err == nil {
		t.Fatal("VerifyManifest() error = nil, want mismatch error")
	}
}

func TestVerifyManifest_WorkspaceVersionSkipsCheck(t *testing.T) {
	fs := memfs.New()
	writeFile(fs, "/src/crate-0.1.0/Cargo.toml", []byte("[package]\nname = \"crate\"\nversion.workspace = true\n"))
	if err := VerifyManifest(fs, "/src/crate-0.1.0", "crate", "0.1.0"); err != nil {
		t.Fatalf("VerifyManifest() error = %v, want nil (workspace version is not a literal string, should not be compared)", err)
	}
}
