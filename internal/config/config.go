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

// Package config loads cargo-cache's runtime configuration from an optional
// YAML file and ANYCARGO_-prefixed environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the engine's runtime configuration.
type Config struct {
	// Root is the cache root directory to materialize into.
	Root string `mapstructure:"root"`
	// LogLevel is the configured log level (debug, info, warn, error). The
	// logging package reads its own ANYCARGO_LOG variable and does not
	// consult this field.
	LogLevel string `mapstructure:"log_level"`
	// BaseImage is the configured container base image tag. The container
	// run plan always uses its own fixed tag and does not read this field.
	BaseImage string `mapstructure:"base_image"`
	// Extractor selects the archive extraction strategy: "in-process"
	// (default, parses tar/gzip directly) or "subprocess" (shells out to
	// `tar -xzf`).
	Extractor string `mapstructure:"extractor"`
}

// UseSubprocessExtractor reports whether Extractor selects the subprocess
// `tar` extraction path rather than the in-process default.
func (c *Config) UseSubprocessExtractor() bool {
	return c.Extractor == ExtractorSubprocess
}

const (
	defaultLogLevel  = "info"
	defaultBaseImage = "rust:1-slim"
	envPrefix        = "ANYCARGO"

	// ExtractorInProcess selects the in-process archive/tar + compress/gzip
	// extractor (the default).
	ExtractorInProcess = "in-process"
	// ExtractorSubprocess selects the `tar -xzf` subprocess extractor.
	ExtractorSubprocess = "subprocess"
)

// Load reads configuration from an optional config file (if configFile is
// non-empty) and ANYCARGO_-prefixed environment variables, with the latter
// taking precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("base_image", defaultBaseImage)
	v.SetDefault("extractor", ExtractorInProcess)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("root")
	v.BindEnv("log_level")
	v.BindEnv("base_image")
	v.BindEnv("extractor")

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
