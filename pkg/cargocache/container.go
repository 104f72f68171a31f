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
	"fmt"
	"os"

	"github.com/cargocache/cargocache/pkg/cyclonedx"
	"github.com/google/uuid"
)

// pathExistsOS reports whether path exists on the real OS filesystem; the
// container invocation contract only ever deals in real host paths, unlike
// the materializers' billy.Filesystem abstraction.
func pathExistsOS(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// containerProjectMount, containerGitMount, and containerRegistryMount are
// the fixed in-container destinations the offline build expects; only the
// host sources vary per invocation.
const (
	containerProjectMount  = "/tmp/proj/"
	containerGitMount      = "/usr/local/cargo/git/"
	containerRegistryMount = "/usr/local/cargo/registry/"

	// baseImage is the fixed toolchain image tag the container runtime must
	// launch; the offline build is only reproducible against a pinned
	// toolchain version.
	baseImage = "rust:1-slim"
)

// Mount is one bind-mount entry in a DockerRunPlan.
type Mount struct {
	Source string
	Target string
}

// DockerRunPlan is the mount layout, workdir, and isolation flags the
// orchestrator hands to its outer collaborator (the process that actually
// invokes `docker run`); this package never shells out to the container
// runtime itself (§6, Non-goals).
type DockerRunPlan struct {
	Name           string
	Image          string
	Command        []string
	WorkingDir     string
	Mounts         []Mount
	NetworkDisabled bool
	// ArtifactName is the root component's declared build output, to be
	// copied out of the container (e.g. via `docker cp`) after the build
	// command completes.
	ArtifactName string
}

// NewDockerRunPlan derives the bind-mount layout the container invocation
// contract requires for a build rooted at srcDir against cache root root,
// given the SBOM's root component (for its "result" property).
func NewDockerRunPlan(srcDir, root string, rootComponent cyclonedx.Component) (*DockerRunPlan, error) {
	artifact, ok := rootComponent.Property("result")
	if !ok || artifact == "" {
		return nil, &InputMalformed{Component: rootComponent.Name, Reason: "root component missing result property"}
	}
	mounts := []Mount{{Source: srcDir, Target: containerProjectMount}}
	if exists, err := pathExistsOS(root + "/git"); err == nil && exists {
		mounts = append(mounts, Mount{Source: root + "/git/", Target: containerGitMount})
	}
	if exists, err := pathExistsOS(root + "/registry"); err == nil && exists {
		mounts = append(mounts, Mount{Source: root + "/registry/", Target: containerRegistryMount})
	}
	return &DockerRunPlan{
		Name:            fmt.Sprintf("cargocache-%s", uuid.NewString()),
		Image:           baseImage,
		Command:         []string{"cargo", "build", "--offline", "--release"},
		WorkingDir:      containerProjectMount,
		Mounts:          mounts,
		NetworkDisabled: true,
		ArtifactName:    artifact,
	}, nil
}
