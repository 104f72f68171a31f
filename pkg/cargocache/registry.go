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
	"fmt"

	"github.com/cargocache/cargocache/internal/cmdexec"
	"github.com/cargocache/cargocache/internal/logging"
	"github.com/cargocache/cargocache/internal/oncecache"
	"github.com/cargocache/cargocache/pkg/hashverify"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
)

// RegistryMaterializer realizes one cargo/registry dependency's slice of
// the cache tree: the downloaded crate archive, its extracted source tree,
// the index cache entry describing its releases, and the .cargo-ok marker
// that signals the directory is ready to use.
type RegistryMaterializer struct {
	FS      billy.Filesystem
	Fetcher Fetcher
	Once    *oncecache.Guard
	// Extractor unpacks downloaded crate archives. Nil selects the default
	// in-process tar/gzip extractor; set it to a subprocessExtractor (via
	// NewSubprocessExtractor) to shell out to `tar` instead.
	Extractor Extractor
}

// NewRegistryMaterializer returns a RegistryMaterializer writing into fs and
// fetching via fetcher, coalescing per-root one-time init through once. It
// extracts archives in-process; call UseSubprocessExtractor to shell out to
// `tar` instead.
func NewRegistryMaterializer(fs billy.Filesystem, fetcher Fetcher, once *oncecache.Guard) *RegistryMaterializer {
	return &RegistryMaterializer{FS: fs, Fetcher: fetcher, Once: once}
}

// UseSubprocessExtractor switches m to extract archives by shelling out to
// `tar -xzf` through exec instead of parsing them in-process.
func (m *RegistryMaterializer) UseSubprocessExtractor(exec cmdexec.Executor, root, osRoot string) {
	m.Extractor = NewSubprocessExtractor(exec, root, osRoot)
}

func (m *RegistryMaterializer) extractor() Extractor {
	if m.Extractor != nil {
		return m.Extractor
	}
	return inProcessExtractor{}
}

// initRegistry ensures the registry's index directory and default config.json
// exist, exactly once per (guard, root).
func (m *RegistryMaterializer) initRegistry(ctx context.Context, root string) error {
	return m.Once.Do("registry:"+root, func() error {
		sfx := registrySuffix()
		if err := ensureDir(m.FS, registryIndexDir(root, sfx)+"/.cache"); err != nil {
			return err
		}
		logging.Debugf("cargocache: initialized registry index at %s", registryIndexDir(root, sfx))
		return ensureFile(m.FS, registryIndexDir(root, sfx)+"/config.json", []byte(defaultIndexConfig))
	})
}

// Materialize runs the registry materialization algorithm for dep against
// cache root.
func (m *RegistryMaterializer) Materialize(ctx context.Context, root string, dep *RegistryDependency) error {
	if err := m.initRegistry(ctx, root); err != nil {
		return errors.Wrap(err, "initializing registry")
	}
	sfx := registrySuffix()
	archivePath := fmt.Sprintf("%s/%s-%s.crate", registryCacheDir(root, sfx), dep.Name, dep.Version)

	exists, err := pathExists(m.FS, archivePath)
	if err != nil {
		return err
	}
	if !exists {
		logging.Infof("cargocache: downloading %s %s", dep.Name, dep.Version)
		data, err := m.Fetcher.Fetch(ctx, dep.DownloadURL)
		if err != nil {
			return errors.Wrapf(err, "downloading %s-%s", dep.Name, dep.Version)
		}
		if len(dep.Hashes) > 0 {
			if err := hashverify.Verify(dep.Hashes, data); err != nil {
				return err
			}
		}
		if err := writeFile(m.FS, archivePath, data); err != nil {
			return err
		}
		srcParent := registrySrcDir(root, sfx)
		if err := m.extractor().Extract(ctx, m.FS, archivePath, srcParent); err != nil {
			return errors.Wrapf(err, "extracting %s-%s", dep.Name, dep.Version)
		}
		srcDir := fmt.Sprintf("%s/%s-%s", srcParent, dep.Name, dep.Version)
		if err := m.verifyManifestIfPresent(srcDir, dep.Name, dep.Version); err != nil {
			return err
		}
	}

	if err := m.materializeIndexEntry(ctx, root, sfx, dep.Name); err != nil {
		return err
	}

	srcDir := fmt.Sprintf("%s/%s-%s", registrySrcDir(root, sfx), dep.Name, dep.Version)
	return ensureFile(m.FS, srcDir+"/.cargo-ok", []byte(cargoOkContent))
}

// verifyManifestIfPresent cross-checks the extracted archive's Cargo.toml
// against the dependency's declared name and version when the manifest is
// present; a missing Cargo.toml is not itself an error (some crates vendor
// build-script-only archives without one at this layer).
func (m *RegistryMaterializer) verifyManifestIfPresent(srcDir, name, version string) error {
	exists, err := pathExists(m.FS, srcDir+"/Cargo.toml")
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return VerifyManifest(m.FS, srcDir, name, version)
}

// materializeIndexEntry fetches and encodes the index listing for name, but
// only when the encoded entry is not already present: the index fetch
// shares the same idempotence invariant as the archive download (§5), which
// is what lets a re-run avoid invoking curl at all.
func (m *RegistryMaterializer) materializeIndexEntry(ctx context.Context, root, sfx, name string) error {
	idxPath, err := IndexPath(name)
	if err != nil {
		return err
	}
	cachePath := fmt.Sprintf("%s/.cache/%s", registryIndexDir(root, sfx), idxPath)
	exists, err := pathExists(m.FS, cachePath)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	listingURL := fmt.Sprintf("%s/raw/master/%s", gitIndexURL, idxPath)
	text, err := m.Fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return errors.Wrapf(err, "fetching index listing for %s", name)
	}
	encoded, err := EncodeIndexCache(string(text))
	if err != nil {
		return err
	}
	return writeFile(m.FS, cachePath, encoded)
}
