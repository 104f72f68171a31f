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

package main

import (
	"github.com/cargocache/cargocache/pkg/cargocache"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var suffixKind string

var suffixCmd = &cobra.Command{
	Use:   "suffix <url>",
	Short: "Print the 16-char directory-suffix hash for a source URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuffix,
}

func init() {
	suffixCmd.Flags().StringVar(&suffixKind, "kind", "", "source kind: git, path, registry, sparse-registry, local-registry, directory (default: none)")
}

var suffixKindValues = map[string]cargocache.SourceKind{
	"git":             cargocache.Git,
	"path":            cargocache.Path,
	"registry":        cargocache.Registry,
	"sparse-registry": cargocache.SparseRegistry,
	"local-registry":  cargocache.LocalRegistry,
	"directory":       cargocache.Directory,
}

func runSuffix(cmd *cobra.Command, args []string) error {
	var kind *cargocache.SourceKind
	if suffixKind != "" {
		k, ok := suffixKindValues[suffixKind]
		if !ok {
			return errors.Errorf("unknown --kind %q", suffixKind)
		}
		kind = &k
	}
	cmd.Println(cargocache.Suffix(args[0], kind))
	return nil
}
