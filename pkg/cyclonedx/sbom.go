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

// Package cyclonedx provides a read-only decoder for the subset of the
// CycloneDX SBOM schema consumed by the cargo dependency materialization
// engine. It performs no validation beyond what JSON unmarshalling gives for
// free: the document is assumed to have been produced by a trusted,
// pre-resolved build pipeline.
package cyclonedx

import (
	"encoding/json"
	"io"
)

// ComponentType enumerates the CycloneDX component types this package cares
// about; unrecognized values decode verbatim and are otherwise ignored.
type ComponentType string

const (
	TypeApplication ComponentType = "application"
	TypeLibrary     ComponentType = "library"
)

// BOM is the root CycloneDX document.
type BOM struct {
	BOMFormat  string     `json:"bomFormat"`
	SpecVer    string     `json:"specVersion"`
	Metadata   *Metadata  `json:"metadata,omitempty"`
	Components []Component `json:"components"`
}

// Metadata carries the root-component description of the document.
type Metadata struct {
	Component Component `json:"component"`
}

// Hash is an algorithm-labelled content digest, e.g. {"alg":"SHA-256","content":"..."}.
//
// The alg label is reproduced verbatim from the SBOM; it is matched
// case-sensitively against the hashverify package's supported algorithm
// labels.
type Hash struct {
	Alg     string `json:"alg"`
	Content string `json:"content"`
}

// ExternalReference is a single URL entry in a component's externalReferences list.
type ExternalReference struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Component is a single SBOM entry: the root application, or one dependency.
type Component struct {
	Type                  ComponentType       `json:"type"`
	Name                  string              `json:"name"`
	Version               string              `json:"version,omitempty"`
	ExternalReferences    []ExternalReference `json:"externalReferences,omitempty"`
	Properties            []Property          `json:"properties,omitempty"`
	Hashes                []Hash              `json:"hashes,omitempty"`
	MimeType              string              `json:"mime-type,omitempty"`
}

// Property is a single name/value pair in a component's properties list.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Decode reads a CycloneDX document from r.
func Decode(r io.Reader) (*BOM, error) {
	var b BOM
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Property returns the value of the named property and whether it was present.
func (c Component) Property(name string) (string, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// ExternalReferenceURL returns the component's sole external reference URL, if
// exactly one is present. The orchestrator's well-formedness rules require
// exactly one; callers needing that invariant should check len() themselves
// when more context is needed for the error message.
func (c Component) ExternalReferenceURL() (string, bool) {
	if len(c.ExternalReferences) != 1 {
		return "", false
	}
	return c.ExternalReferences[0].URL, true
}

// LibraryKind returns the value used to dispatch a library component to a
// materializer: the "mime-type" field if present, else the "library_kind"
// property (both forms appear in CycloneDX producers in the wild).
func (c Component) LibraryKind() string {
	if c.MimeType != "" {
		return c.MimeType
	}
	if v, ok := c.Property("library_kind"); ok {
		return v
	}
	return ""
}
