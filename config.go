// Copyright 2025 Naren Yellavula
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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cybrota/bantree/banindex"
)

const configFileName = ".bantree.yaml"

type IndexConfig struct {
	Alpha  float64 `yaml:"alpha"`
	Lookup string  `yaml:"lookup"` // summary | tree
}

type IngestConfig struct {
	Strict       bool `yaml:"strict"`
	ShowProgress bool `yaml:"show_progress"`
}

type QueryConfig struct {
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	BloomBits   uint          `yaml:"bloom_bits"`
	BloomHashes uint          `yaml:"bloom_hashes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Index  IndexConfig  `yaml:"index"`
	Ingest IngestConfig `yaml:"ingest"`
	Query  QueryConfig  `yaml:"query"`
	Log    LogConfig    `yaml:"log"`
}

const (
	lookupSummary = "summary"
	lookupTree    = "tree"
)

var defaultConfig = Config{
	Index: IndexConfig{
		Alpha:  0.75,
		Lookup: lookupSummary,
	},
	Query: QueryConfig{
		CacheTTL:    30 * time.Minute,
		BloomBits:   1 << 16,
		BloomHashes: 4,
	},
	Log: LogConfig{
		Level: "info",
	},
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the config file at path, or ~/.bantree.yaml when path is
// empty. A missing file yields the defaults and no error. Keys absent from
// the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return &config, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &config, nil
	}
	if err != nil {
		return &config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig
		return &fallback, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		fallback := defaultConfig
		return &fallback, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// Validate checks values the index and logger would reject later.
func (c *Config) Validate() error {
	if _, err := banindex.NewScapegoatTree(c.Index.Alpha); err != nil {
		return err
	}
	switch c.Index.Lookup {
	case lookupSummary, lookupTree:
	default:
		return fmt.Errorf("unknown lookup %q (valid: %s, %s)", c.Index.Lookup, lookupSummary, lookupTree)
	}
	if c.Query.BloomBits == 0 || c.Query.BloomHashes == 0 {
		return fmt.Errorf("bloom_bits and bloom_hashes must be positive")
	}
	return validateLogLevel(c.Log.Level)
}

func createDefaultConfigFile(path string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// displaySettings prints the effective configuration, creating a default
// config file first when none exists.
func displaySettings(w io.Writer, path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	created := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFile(path); err != nil {
			return err
		}
		created = true
	}

	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔧 bantree configuration\n")
	fmt.Fprintf(w, "═══════════════════════════════════\n\n")
	if created {
		fmt.Fprintf(w, "📍 Config file: %s (newly created)\n\n", path)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s\n\n", path)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintf(w, "%s\n", data)
	fmt.Fprintf(w, "💡 alpha only affects the scapegoat mode; lookup %q answers from the aggregated summary, %q walks the tree.\n",
		lookupSummary, lookupTree)
	return nil
}
