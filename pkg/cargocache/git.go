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
	"bytes"
	"context"

	"github.com/cargocache/cargocache/internal/cmdexec"
	"github.com/cargocache/cargocache/internal/logging"
	"github.com/cargocache/cargocache/internal/oncecache"
	"github.com/cargocache/cargocache/pkg/hashverify"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
)

// GitMaterializer realizes one cargo/git dependency's slice of the cache
// tree: the bare clone, synthetic pinned-commit refs, and a working-tree
// checkout at the pinned commit.
//
// Unlike the registry materializer, this one drives the real `git` binary
// through cmdexec.Executor rather than an in-process library: bare clones,
// ref synthesis, and checkouts are filesystem-level operations whose exact
// byte layout is the external interface being reproduced (§6), and `git`
// itself is the simplest way to get that layout exactly right.
type GitMaterializer struct {
	FS   billy.Filesystem
	Exec cmdexec.Executor
	Once *oncecache.Guard
	// OSRoot is the real filesystem path that the cache root passed to
	// Materialize maps to, needed because `git` operates on real paths and
	// cannot be pointed at FS directly when FS is not OS-backed (e.g. in
	// tests). Production callers, whose FS is rooted at "/", set this to the
	// cache root itself.
	OSRoot string
}

// NewGitMaterializer returns a GitMaterializer writing into fs, invoking git
// through exec on real paths formed by replacing the cache-root prefix with
// osRoot.
func NewGitMaterializer(fs billy.Filesystem, osRoot string, exec cmdexec.Executor, once *oncecache.Guard) *GitMaterializer {
	return &GitMaterializer{FS: fs, Exec: exec, Once: once, OSRoot: osRoot}
}

func (m *GitMaterializer) initGit(ctx context.Context, root string) error {
	return m.Once.Do("git:"+root, func() error {
		if err := ensureDir(m.FS, root+"/git"); err != nil {
			return err
		}
		logging.Debugf("cargocache: initialized git cache at %s/git", root)
		return ensureFile(m.FS, root+"/git/CACHEDIR.TAG", []byte(cacheDirTag))
	})
}

// Materialize runs the git materialization algorithm for dep against cache
// root.
func (m *GitMaterializer) Materialize(ctx context.Context, root string, dep *GitDependency) error {
	if err := m.initGit(ctx, root); err != nil {
		return errors.Wrap(err, "initializing git cache")
	}
	sfx := Suffix(dep.URL, nil)
	bare := gitDbDir(root, dep.Name, sfx)
	osBare := m.osPath(root, bare)

	exists, err := pathExists(m.FS, bare)
	if err != nil {
		return err
	}
	if !exists {
		logging.Infof("cargocache: cloning %s", dep.URL)
		if err := m.Exec.Execute(ctx, cmdexec.Options{}, "git", "clone", "--bare", dep.URL, osBare); err != nil {
			return errors.Wrapf(err, "bare-cloning %s", dep.URL)
		}
		if len(dep.Hashes) > 0 {
			var out bytes.Buffer
			if err := m.Exec.Execute(ctx, cmdexec.Options{Dir: osBare, Output: &out}, "git", "archive", "--format=tar", dep.Commit); err != nil {
				return errors.Wrapf(err, "archiving %s at %s", dep.Name, dep.Commit)
			}
			if err := hashverify.Verify(dep.Hashes, out.Bytes()); err != nil {
				return err
			}
		}
		if err := m.synthesizeRefs(bare, dep); err != nil {
			return err
		}
	}

	checkout := gitCheckoutDir(root, dep.Name, sfx, shortCommit(dep.Commit))
	osCheckout := m.osPath(root, checkout)
	checkoutExists, err := pathExists(m.FS, checkout)
	if err != nil {
		return err
	}
	if !checkoutExists {
		if err := ensureDir(m.FS, checkout); err != nil {
			return err
		}
		if err := m.Exec.Execute(ctx, cmdexec.Options{}, "git", "clone", "--recurse-submodules", osBare, osCheckout); err != nil {
			return errors.Wrapf(err, "cloning working tree for %s", dep.Name)
		}
		if err := m.Exec.Execute(ctx, cmdexec.Options{Dir: osCheckout}, "git", "checkout", "-f", dep.Commit); err != nil {
			return errors.Wrapf(err, "checking out %s at %s", dep.Name, dep.Commit)
		}
	}
	return ensureFile(m.FS, checkout+"/.cargo-ok", nil)
}

// synthesizeRefs writes the refs the offline toolchain inspects to believe
// the dependency was legitimately fetched: a remote-tracking HEAD pointing
// at the pinned commit, and optionally a tag ref with the same content.
func (m *GitMaterializer) synthesizeRefs(bare string, dep *GitDependency) error {
	remoteDir := bare + "/refs/remotes/origin"
	if err := ensureDir(m.FS, remoteDir); err != nil {
		return err
	}
	if err := writeFile(m.FS, remoteDir+"/HEAD", []byte(dep.Commit)); err != nil {
		return err
	}
	if dep.Tag != "" {
		if err := ensureDir(m.FS, remoteDir+"/tags"); err != nil {
			return err
		}
		if err := writeFile(m.FS, remoteDir+"/tags/"+dep.Tag, []byte(dep.Commit)); err != nil {
			return err
		}
	}
	return nil
}

// osPath maps a path relative to the cache root into the real OS path git
// must be invoked against.
func (m *GitMaterializer) osPath(root, fsPath string) string {
	rel := fsPath[len(root):]
	return m.OSRoot + rel
}
