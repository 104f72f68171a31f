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

import "fmt"

// sparseRegistryURL is the canonical sparse-registry URL whose suffix hash
// fixes the on-disk name of the one registry this engine materializes
// against.
const sparseRegistryURL = "sparse+https://index.crates.io/"

// gitIndexURL is the upstream git-index mirror consulted for index listings
// (§4.5 step 6); it is a distinct source from sparseRegistryURL and is never
// hashed for a directory name.
const gitIndexURL = "https://github.com/rust-lang/crates.io-index"

// registrySuffix is the fixed 16-char suffix all registry cache paths share,
// derived once from sparseRegistryURL under the SparseRegistry discriminant.
func registrySuffix() string {
	kind := SparseRegistry
	return Suffix(sparseRegistryURL, &kind)
}

// defaultIndexConfig is the literal content of a registry's config.json.
const defaultIndexConfig = `{"dl": "https://crates.io/api/v1/crates", "api": "https://crates.io"}`

// cacheDirTag is the fixed signature content of git/CACHEDIR.TAG, following
// the CACHEDIR.TAG convention (https://bford.info/cachedir/) tools use to
// recognize cache directories worth excluding from backups and greps.
const cacheDirTag = "Signature: 8a477f597d28d172789f06886806bc55\n"

// cargoOkContent is the literal marker content written for registry source
// directories; git checkouts use an empty marker instead (§4.6 step 10).
const cargoOkContent = "ok"

func registryIndexDir(root, suffix string) string {
	return fmt.Sprintf("%s/registry/index/index.crates.io-%s", root, suffix)
}

func registryCacheDir(root, suffix string) string {
	return fmt.Sprintf("%s/registry/cache/index.crates.io-%s", root, suffix)
}

func registrySrcDir(root, suffix string) string {
	return fmt.Sprintf("%s/registry/src/index.crates.io-%s", root, suffix)
}

func gitDbDir(root, name, suffix string) string {
	return fmt.Sprintf("%s/git/db/%s-%s", root, name, suffix)
}

func gitCheckoutDir(root, name, suffix, commit7 string) string {
	return fmt.Sprintf("%s/git/checkouts/%s-%s/%s", root, name, suffix, commit7)
}

// shortCommit returns the first 7 characters of a full commit hash, the
// convention cargo's own checkout directories use.
func shortCommit(commit string) string {
	if len(commit) < 7 {
		return commit
	}
	return commit[:7]
}
