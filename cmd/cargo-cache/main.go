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

// Command cargo-cache materializes an offline cargo dependency cache from a
// CycloneDX SBOM.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cargocache/cargocache/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "cargo-cache",
	Short: "Materializes an offline cargo dependency cache from a CycloneDX SBOM",
}

func main() {
	logging.Init()
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(materializeCmd)
	rootCmd.AddCommand(suffixCmd)
	rootCmd.AddCommand(indexPathCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		log.SetOutput(os.Stderr)
		os.Exit(1)
	}
}
