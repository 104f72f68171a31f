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
	"github.com/spf13/cobra"
)

var indexPathCmd = &cobra.Command{
	Use:   "index-path <name>",
	Short: "Print the registry index subpath for a crate name",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexPath,
}

func runIndexPath(cmd *cobra.Command, args []string) error {
	p, err := cargocache.IndexPath(args[0])
	if err != nil {
		return err
	}
	cmd.Println(p)
	return nil
}
