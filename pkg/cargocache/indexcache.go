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
	"bytes"
	"encoding/json"
	"strings"
)

// indexCacheHeader is the fixed cache-version/max-index-version/padding
// prefix of every encoded index cache file.
var indexCacheHeader = []byte{0x03, 0x02, 0x00, 0x00, 0x00}

// indexCacheETag is a synthetic ETag pseudo-header. The toolchain accepts
// any value here because it re-validates cache entries by other means when
// running offline; this constant is never compared against a real upstream
// ETag.
const indexCacheETag = `etag: W/"bbbf8771a5922743c5e0b466d90e7ab6"`

// MalformedIndex is returned when a non-empty line of an index listing
// cannot be parsed as JSON, or parses but lacks a string "vers" field.
type MalformedIndex struct {
	Line string
	Err  error
}

func (e *MalformedIndex) Error() string {
	if e.Err != nil {
		return "malformed index line " + e.Line + ": " + e.Err.Error()
	}
	return "malformed index line " + e.Line + ": missing vers field"
}

func (e *MalformedIndex) Unwrap() error { return e.Err }

// EncodeIndexCache translates a textual index listing (one JSON record per
// version, newline-separated, terminated by an empty line) into the
// toolchain's binary index cache format: a fixed header, a synthetic ETag
// pseudo-header, then one `<vers>\0<line>\0` record per version in order.
func EncodeIndexCache(indexText string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(indexCacheHeader)
	buf.WriteString(indexCacheETag)
	buf.WriteByte(0x00)

	for _, line := range strings.Split(indexText, "\n") {
		if line == "" {
			break
		}
		var rec struct {
			Vers string `json:"vers"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, &MalformedIndex{Line: line, Err: err}
		}
		if rec.Vers == "" {
			return nil, &MalformedIndex{Line: line}
		}
		buf.WriteString(rec.Vers)
		buf.WriteByte(0x00)
		buf.WriteString(line)
		buf.WriteByte(0x00)
	}
	return buf.Bytes(), nil
}
