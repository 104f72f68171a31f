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
	"runtime"

	"github.com/cargocache/cargocache/internal/logging"
	"github.com/cargocache/cargocache/pkg/cyclonedx"
	"github.com/pkg/errors"
)

// ProgressFunc is notified after each dependency is materialized, in SBOM
// order, with a 1-based count and the total number of library components.
type ProgressFunc func(done, total int, name string)

// Orchestrator iterates a BOM's library components in document order and
// dispatches each to the registry or git materializer, single-threaded and
// sequential (§5): no dependency's materialization observes another's
// in-flight state.
type Orchestrator struct {
	Registry *RegistryMaterializer
	Git      *GitMaterializer
	Progress ProgressFunc
}

// NewOrchestrator returns an Orchestrator dispatching to the given
// materializers. progress may be nil.
func NewOrchestrator(registry *RegistryMaterializer, git *GitMaterializer, progress ProgressFunc) *Orchestrator {
	if progress == nil {
		progress = func(done, total int, name string) {}
	}
	return &Orchestrator{Registry: registry, Git: git, Progress: progress}
}

// Materialize runs bom's components against cache root in document order.
// The first failure aborts the run; partial state on disk is left as-is,
// relying on each materializer's idempotence to make a re-run safe.
func (o *Orchestrator) Materialize(ctx context.Context, bom *cyclonedx.BOM, root string) error {
	if err := checkPlatform(bom); err != nil {
		return err
	}
	libs := make([]cyclonedx.Component, 0, len(bom.Components))
	for _, c := range bom.Components {
		if c.Type == cyclonedx.TypeLibrary {
			libs = append(libs, c)
		}
	}
	for i, c := range libs {
		kind := c.LibraryKind()
		switch kind {
		case LibraryKindRegistry:
			dep, err := NewRegistryDependency(c)
			if err != nil {
				return err
			}
			if err := o.Registry.Materialize(ctx, root, dep); err != nil {
				return errors.Wrapf(err, "materializing registry dependency %s", c.Name)
			}
		case LibraryKindGit:
			dep, err := NewGitDependency(c)
			if err != nil {
				return err
			}
			if err := o.Git.Materialize(ctx, root, dep); err != nil {
				return errors.Wrapf(err, "materializing git dependency %s", c.Name)
			}
		default:
			return &UnsupportedLibraryKind{Kind: kind}
		}
		o.Progress(i+1, len(libs), c.Name)
		logging.Debugf("cargocache: materialized %d/%d: %s", i+1, len(libs), c.Name)
	}
	return nil
}

// hostOSFamily maps runtime.GOOS to the OS-family strings the SBOM's
// "platform" property uses.
func hostOSFamily() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}

// checkPlatform performs the advisory platform check against the root
// component: if "platform" is absent, the check is skipped (§9 Open
// Questions); if present, a mismatch is logged but not fatal, since the
// check exists to warn, not to gate materialization.
func checkPlatform(bom *cyclonedx.BOM) error {
	if bom.Metadata == nil {
		return nil
	}
	platform, ok := bom.Metadata.Component.Property("platform")
	if !ok || platform == "" {
		return nil
	}
	if platform != hostOSFamily() {
		logging.Warnf("cargocache: SBOM declares platform %q, host is %q", platform, hostOSFamily())
	}
	return nil
}
