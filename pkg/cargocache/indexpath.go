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

// InvariantViolation signals SBOM input that cannot be well-formed under any
// reading of the format, as opposed to InputMalformed which signals a
// specific, recoverable field problem.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

// IndexPath maps a crate name to its index subpath, following the registry's
// fixed sharding-by-name-length convention:
//
//	len 1     -> "1/<name>"
//	len 2     -> "2/<name>"
//	len 3     -> "3/<name[0]>/<name>"
//	len >= 4  -> "<name[0:2]>/<name[2:4]>/<name>"
//
// A zero-length name is an ill-formed SBOM, not a valid sharding case.
func IndexPath(name string) (string, error) {
	switch len(name) {
	case 0:
		return "", &InvariantViolation{Reason: "index_path: empty crate name"}
	case 1:
		return fmt.Sprintf("1/%s", name), nil
	case 2:
		return fmt.Sprintf("2/%s", name), nil
	case 3:
		return fmt.Sprintf("3/%c/%s", name[0], name), nil
	default:
		return fmt.Sprintf("%s/%s/%s", name[0:2], name[2:4], name), nil
	}
}
