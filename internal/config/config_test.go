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

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.BaseImage != "rust:1-slim" {
		t.Errorf("BaseImage = %q, want %q", cfg.BaseImage, "rust:1-slim")
	}
	if cfg.Extractor != ExtractorInProcess {
		t.Errorf("Extractor = %q, want %q", cfg.Extractor, ExtractorInProcess)
	}
	if cfg.UseSubprocessExtractor() {
		t.Error("UseSubprocessExtractor() = true, want false for default config")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ANYCARGO_LOG_LEVEL", "debug")
	t.Setenv("ANYCARGO_ROOT", "/var/cache/cargo")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Root != "/var/cache/cargo" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/var/cache/cargo")
	}
}

func TestLoad_SubprocessExtractor(t *testing.T) {
	t.Setenv("ANYCARGO_EXTRACTOR", ExtractorSubprocess)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UseSubprocessExtractor() {
		t.Error("UseSubprocessExtractor() = false, want true when ANYCARGO_EXTRACTOR=subprocess")
	}
}
