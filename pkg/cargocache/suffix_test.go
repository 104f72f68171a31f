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

import "testing"

func TestSuffix_NormativeVectors(t *testing.T) {
	reg := Registry
	sparse := SparseRegistry
	tests := []struct {
		name string
		url  string
		kind *SourceKind
		want string
	}{
		{
			name: "crates.io git index",
			url:  "https://github.com/rust-lang/crates.io-index",
			kind: &reg,
			want: "1ecc6299db9ec823",
		},
		{
			name: "sparse index",
			url:  "sparse+https://index.crates.io/",
			kind: &sparse,
			want: "6f17d22bba15001f",
		},
		{
			name: "git dependency, no kind",
			url:  "https://github.com/silkovalexander/simple_lib",
			kind: nil,
			want: "f9cb9f02e39b3874",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Suffix(tt.url, tt.kind); got != tt.want {
				t.Errorf("Suffix(%q, %v) = %q, want %q", tt.url, tt.kind, got, tt.want)
			}
		})
	}
}

func TestSuffix_TrimsDotGitAndLowercases(t *testing.T) {
	a := Suffix("https://github.com/silkovalexander/simple_lib", nil)
	b := Suffix("https://github.com/silkovalexander/simple_lib.git", nil)
	if a != b {
		t.Errorf("Suffix with/without .git suffix diverged: %q vs %q", a, b)
	}
	c := Suffix("HTTPS://GITHUB.COM/silkovalexander/simple_lib", nil)
	if a != c {
		t.Errorf("Suffix is not case-insensitive: %q vs %q", a, c)
	}
}

func TestSuffix_KindChangesResult(t *testing.T) {
	reg := Registry
	sparse := SparseRegistry
	url := "https://example.com/index"
	a := Suffix(url, &reg)
	b := Suffix(url, &sparse)
	if a == b {
		t.Errorf("Suffix with different SourceKind discriminants collided: %q", a)
	}
	c := Suffix(url, nil)
	if a == c || b == c {
		t.Errorf("Suffix with a kind must differ from Suffix with no kind")
	}
}
