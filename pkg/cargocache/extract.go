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
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"path/filepath"

	"github.com/cargocache/cargocache/internal/cmdexec"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
)

// Extractor unpacks a gzip-compressed tar archive already written at
// archivePath on fs into parentDir on fs. The registry materializer
// defaults to inProcessExtractor and can be configured to use a
// subprocessExtractor instead.
type Extractor interface {
	Extract(ctx context.Context, fs billy.Filesystem, archivePath, parentDir string) error
}

// inProcessExtractor parses the archive directly with archive/tar and
// compress/gzip. It needs no external binary and no real OS paths, so it
// works unmodified against memfs in tests; this is the default.
type inProcessExtractor struct{}

func (inProcessExtractor) Extract(ctx context.Context, fs billy.Filesystem, archivePath, parentDir string) error {
	f, err := fs.Open(archivePath)
	if err != nil {
		return &IoFailure{Path: archivePath, Err: err}
	}
	defer f.Close()
	return extractTarGz(fs, f, parentDir)
}

// subprocessExtractor shells out to `tar -xzf`, for parity with a genuinely
// hermetic deployment where /usr/bin/tar is guaranteed but embedding
// archive-parsing logic is not desired. Like the git materializer, it needs
// OSRoot because tar cannot be pointed at an in-memory filesystem: fsPath
// always starts with root, and OSRoot is the real path that root maps to.
type subprocessExtractor struct {
	Exec   cmdexec.Executor
	Root   string
	OSRoot string
}

// NewSubprocessExtractor returns an Extractor that shells out to `tar`
// through exec, mapping cache-root-relative paths (prefixed with root) onto
// osRoot before invoking the subprocess.
func NewSubprocessExtractor(exec cmdexec.Executor, root, osRoot string) Extractor {
	return &subprocessExtractor{Exec: exec, Root: root, OSRoot: osRoot}
}

func (e *subprocessExtractor) osPath(fsPath string) string {
	return e.OSRoot + fsPath[len(e.Root):]
}

func (e *subprocessExtractor) Extract(ctx context.Context, fs billy.Filesystem, archivePath, parentDir string) error {
	if err := ensureDir(fs, parentDir); err != nil {
		return err
	}
	osArchive := e.osPath(archivePath)
	osParent := e.osPath(parentDir)
	if err := e.Exec.Execute(ctx, cmdexec.Options{}, "tar", "-xzf", osArchive, "-C", osParent); err != nil {
		return errors.Wrapf(err, "extracting %s", archivePath)
	}
	return nil
}

// extractTarGz extracts a gzip-compressed tar stream whose entries are
// rooted under a single top-level directory (as crate source archives are)
// into parentDir on fs, in-process, preserving regular files and
// directories (the only entry kinds a crate source archive contains). This
// is the default extractor; the registry materializer can be configured to
// shell out to `tar` instead when byte-for-byte parity with the external
// tool matters more than avoiding the subprocess.
func extractTarGz(fs billy.Filesystem, src io.Reader, parentDir string) error {
	gzr, err := gzip.NewReader(src)
	if err != nil {
		return errors.Wrap(err, "initializing gzip reader")
	}
	defer gzr.Close()
	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading tar stream")
		}
		path := fs.Join(parentDir, hdr.Name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := ensureDir(fs, path); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := ensureDir(fs, filepath.Dir(path)); err != nil {
				return err
			}
			out, err := fs.Create(path)
			if err != nil {
				return &IoFailure{Path: path, Err: err}
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return &IoFailure{Path: path, Err: err}
			}
			out.Close()
		}
	}
}
