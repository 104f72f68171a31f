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

package hashverify

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/cargocache/cargocache/pkg/cyclonedx"
)

func digestHex(alg string, data []byte) string {
	switch alg {
	case "MD5":
		s := md5.Sum(data)
		return hex.EncodeToString(s[:])
	case "SHA-1":
		s := sha1.Sum(data)
		return hex.EncodeToString(s[:])
	case "SHA-256":
		s := sha256.Sum256(data)
		return hex.EncodeToString(s[:])
	case "SHA-512":
		s := sha512.Sum512(data)
		return hex.EncodeToString(s[:])
	}
	panic("unreachable")
}

func TestVerify_RoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	for _, alg := range []string{"MD5", "SHA-1", "SHA-256", "SHA-512"} {
		t.Run(alg, func(t *testing.T) {
			want := digestHex(alg, data)
			if err := Verify([]cyclonedx.Hash{{Alg: alg, Content: want}}, data); err != nil {
				t.Fatalf("Verify() = %v, want nil", err)
			}
		})
	}
}

func TestVerify_Mismatch(t *testing.T) {
	data := []byte("hello world")
	want := digestHex("SHA-256", data)
	// Flip a hex digit.
	bad := []byte(want)
	if bad[0] == '0' {
		bad[0] = '1'
	} else {
		bad[0] = '0'
	}
	err := Verify([]cyclonedx.Hash{{Alg: "SHA-256", Content: string(bad)}}, data)
	var mismatch *HashMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Verify() = %v, want *HashMismatch", err)
	}
	if mismatch.Alg != "SHA-256" {
		t.Errorf("mismatch.Alg = %q, want SHA-256", mismatch.Alg)
	}
}

func TestVerify_UnsupportedAlgorithm(t *testing.T) {
	err := Verify([]cyclonedx.Hash{{Alg: "CRC32", Content: "deadbeef"}}, []byte("x"))
	var unsupported *UnsupportedAlgorithm
	if !errors.As(err, &unsupported) {
		t.Fatalf("Verify() = %v, want *UnsupportedAlgorithm", err)
	}
}

func TestVerify_EmptyIsNoop(t *testing.T) {
	if err := Verify(nil, []byte("anything")); err != nil {
		t.Fatalf("Verify(nil, ...) = %v, want nil", err)
	}
}

func TestVerify_CaseSensitiveLabel(t *testing.T) {
	data := []byte("x")
	want := digestHex("SHA-256", data)
	// Lowercase label must NOT match; SBOM labels are case-sensitive.
	err := Verify([]cyclonedx.Hash{{Alg: "sha-256", Content: want}}, data)
	var unsupported *UnsupportedAlgorithm
	if !errors.As(err, &unsupported) {
		t.Fatalf("Verify() with lowercase label = %v, want *UnsupportedAlgorithm", err)
	}
}
