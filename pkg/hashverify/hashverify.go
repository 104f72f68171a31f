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

// Package hashverify checks SBOM-declared digests against materialized
// bytes, across the heterogeneous set of algorithms CycloneDX documents use.
package hashverify

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	"github.com/cargocache/cargocache/pkg/cyclonedx"
)

// HashMismatch is returned when a computed digest disagrees with the
// SBOM-declared one.
type HashMismatch struct {
	Alg      string
	Expected string
	Actual   string
}

func (e *HashMismatch) Error() string {
	return "hash mismatch (" + e.Alg + "): expected " + e.Expected + ", got " + e.Actual
}

// UnsupportedAlgorithm is returned for any alg label outside {MD5, SHA-1,
// SHA-256, SHA-512}.
type UnsupportedAlgorithm struct {
	Alg string
}

func (e *UnsupportedAlgorithm) Error() string {
	return "unsupported hash algorithm: " + e.Alg
}

// newHasher returns the hash.Hash for the exact, case-sensitive SBOM label,
// or nil if unrecognized.
func newHasher(alg string) hash.Hash {
	switch alg {
	case "MD5":
		return md5.New()
	case "SHA-1":
		return sha1.New()
	case "SHA-256":
		return sha256.New()
	case "SHA-512":
		return sha512.New()
	default:
		return nil
	}
}

// Verify computes the digest of data under each declared hash's algorithm
// and compares it, as lowercase hex, against the declared content. It
// returns on the first disagreement or unsupported label; an empty hash
// list is a no-op success.
func Verify(hashes []cyclonedx.Hash, data []byte) error {
	for _, h := range hashes {
		hasher := newHasher(h.Alg)
		if hasher == nil {
			return &UnsupportedAlgorithm{Alg: h.Alg}
		}
		hasher.Write(data)
		actual := hex.EncodeToString(hasher.Sum(nil))
		if actual != h.Content {
			return &HashMismatch{Alg: h.Alg, Expected: h.Content, Actual: actual}
		}
	}
	return nil
}
