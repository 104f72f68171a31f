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
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// IoFailure wraps a filesystem operation failure with the path it occurred
// on, per the error-kind taxonomy.
type IoFailure struct {
	Path string
	Err  error
}

func (e *IoFailure) Error() string {
	return "io failure at " + e.Path + ": " + e.Err.Error()
}

func (e *IoFailure) Unwrap() error { return e.Err }

// pathExists reports whether path exists on fs, treating any stat error
// other than "not exist" as a propagated IoFailure via the second return.
func pathExists(fs billy.Filesystem, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &IoFailure{Path: path, Err: err}
}

// writeFile creates path (and its parent directories) on fs and writes data,
// overwriting any existing content.
func writeFile(fs billy.Filesystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return &IoFailure{Path: dir, Err: err}
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return &IoFailure{Path: path, Err: err}
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return &IoFailure{Path: path, Err: err}
	}
	return nil
}

// ensureFile writes data to path only if it does not already exist,
// implementing the "ensure X exists" steps of the materializer algorithms.
func ensureFile(fs billy.Filesystem, path string, data []byte) error {
	exists, err := pathExists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return writeFile(fs, path, data)
}

func ensureDir(fs billy.Filesystem, path string) error {
	if err := fs.MkdirAll(path, 0755); err != nil {
		return &IoFailure{Path: path, Err: err}
	}
	return nil
}
