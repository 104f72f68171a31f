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
	"os"

	"github.com/cargocache/cargocache/internal/cmdexec"
	"github.com/cargocache/cargocache/internal/config"
	"github.com/cargocache/cargocache/internal/oncecache"
	"github.com/cargocache/cargocache/internal/progress"
	"github.com/cargocache/cargocache/pkg/cargocache"
	"github.com/cargocache/cargocache/pkg/cyclonedx"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	sbomPath string
	rootDir  string
)

var materializeCmd = &cobra.Command{
	Use:   "materialize",
	Short: "Materialize a cargo dependency cache from an SBOM",
	RunE:  runMaterialize,
}

func init() {
	materializeCmd.Flags().StringVar(&sbomPath, "sbom", "", "path to the CycloneDX SBOM")
	materializeCmd.Flags().StringVar(&rootDir, "root", "", "cache root directory")
	materializeCmd.MarkFlagRequired("sbom")
}

func runMaterialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	root := rootDir
	if root == "" {
		root = cfg.Root
	}
	if root == "" {
		return errors.New("--root or ANYCARGO_ROOT must be set")
	}

	f, err := os.Open(sbomPath)
	if err != nil {
		return errors.Wrap(err, "opening SBOM")
	}
	defer f.Close()
	bom, err := cyclonedx.Decode(f)
	if err != nil {
		return errors.Wrap(err, "decoding SBOM")
	}

	// fs is rooted at "/" rather than chrooted to root: every path the
	// cargocache package computes (registryCacheDir, gitDbDir, ...) already includes
	// root as a prefix, matching how the same code addresses an in-memory
	// filesystem in tests.
	fs := osfs.New("/")
	exec := cmdexec.NewReal()
	once := oncecache.New()
	registry := cargocache.NewRegistryMaterializer(fs, cargocache.NewCurlFetcher(exec), once)
	if cfg.UseSubprocessExtractor() {
		registry.UseSubprocessExtractor(exec, root, root)
	}
	git := cargocache.NewGitMaterializer(fs, root, exec, once)
	bar := progress.New(cmd.OutOrStdout())
	orch := cargocache.NewOrchestrator(registry, git, bar.Func())

	if err := orch.Materialize(cmd.Context(), bom, root); err != nil {
		return err
	}
	cmd.Println(color.GreenString("materialized cache at %s", root))
	return nil
}
