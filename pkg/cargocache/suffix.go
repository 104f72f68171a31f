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
	"encoding/binary"
	"encoding/hex"
	"math/bits"
	"strings"
)

// SourceKind mirrors the (trimmed) cargo SourceKind enum whose discriminant
// feeds the directory-suffix hash. Ordering is normative: a reordering would
// change every derived suffix.
type SourceKind int

const (
	Git SourceKind = iota
	Path
	Registry
	SparseRegistry
	LocalRegistry
	Directory
)

// Suffix computes the 16-character lowercase-hex directory-suffix hash cargo
// derives from a source URL (and, for registries, a SourceKind
// discriminator). This reproduces cargo's own SipHash-2-4-based
// "stable hash" used to disambiguate same-named cache directories from
// distinct sources; the algorithm and feeder order are fixed by
// compatibility with that external, undocumented format and must not
// change. kind may be nil (the git materializer never supplies one; see
// Open Questions).
func Suffix(url string, kind *SourceKind) string {
	h := new(sipState)
	if kind != nil {
		h.writeUint64LE(uint64(*kind))
	}
	h.writeHashableString(strings.ToLower(strings.TrimSuffix(url, ".git")))
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], h.sum64())
	return hex.EncodeToString(out[:])
}

// sipState accumulates bytes written by the cargo-compatible Hash feeder and
// reduces them with SipHash-2-4 under the zero key, matching Rust's
// (deprecated) std::hash::SipHasher.
//
// Values are appended to a single buffer rather than processed block-by-block
// as they arrive; this is behaviorally identical to a true streaming
// SipHasher since consecutive Hasher::write calls are never boundary-padded,
// only simpler to get right without a toolchain to check it against.
type sipState struct {
	buf []byte
}

// writeUint64LE reproduces Rust's `#[derive(Hash)]` for a fieldless enum,
// which hashes mem::discriminant(self) as an isize (8 bytes on the
// reference platform), not a raw u32.
func (h *sipState) writeUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.buf = append(h.buf, b[:]...)
}

// writeHashableString reproduces Rust's `impl Hash for str`: the UTF-8 bytes
// followed by a single 0xff terminator byte. The terminator disambiguates
// adjacent variable-length fields (e.g. ("a","bc") from ("ab","c")) and must
// be present even though this caller only ever hashes one string.
func (h *sipState) writeHashableString(s string) {
	h.buf = append(h.buf, s...)
	h.buf = append(h.buf, 0xff)
}

const (
	sipInitV0 = 0x736f6d6570736575
	sipInitV1 = 0x646f72616e646f6d
	sipInitV2 = 0x6c7967656e657261
	sipInitV3 = 0x7465646279746573
)

// sum64 runs the classic SipHash-2-4 reduction (2 compression rounds per
// 8-byte block, 4 finalization rounds) over the accumulated buffer with
// k0 = k1 = 0, matching cargo's use of the hasher's all-zero default key.
func (h *sipState) sum64() uint64 {
	v0, v1, v2, v3 := uint64(sipInitV0), uint64(sipInitV1), uint64(sipInitV2), uint64(sipInitV3)
	round := func() {
		v0 += v1
		v1 = bits.RotateLeft64(v1, 13)
		v1 ^= v0
		v0 = bits.RotateLeft64(v0, 32)
		v2 += v3
		v3 = bits.RotateLeft64(v3, 16)
		v3 ^= v2
		v0 += v3
		v3 = bits.RotateLeft64(v3, 21)
		v3 ^= v0
		v2 += v1
		v1 = bits.RotateLeft64(v1, 17)
		v1 ^= v2
		v2 = bits.RotateLeft64(v2, 32)
	}
	data := h.buf
	n := len(data)
	full := n - (n % 8)
	for i := 0; i < full; i += 8 {
		m := binary.LittleEndian.Uint64(data[i : i+8])
		v3 ^= m
		round()
		round()
		v0 ^= m
	}
	var last [8]byte
	copy(last[:], data[full:])
	last[7] = byte(n)
	m := binary.LittleEndian.Uint64(last[:])
	v3 ^= m
	round()
	round()
	v0 ^= m
	v2 ^= 0xff
	round()
	round()
	round()
	round()
	return v0 ^ v1 ^ v2 ^ v3
}
