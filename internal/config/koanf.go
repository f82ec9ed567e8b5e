// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order of
// priority. The first file found wins.
var DefaultConfigPaths = []string{
	"voyo.yaml",
	"voyo.yml",
	"/etc/voyo/engine.yaml",
	"/etc/voyo/engine.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "VOYO_CONFIG_PATH"

// envPrefix namespaces the engine's environment variables.
const envPrefix = "VOYO_"

// Load builds the configuration in three layers: struct defaults, an
// optional YAML file, then environment variables (highest priority).
func Load() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile builds the configuration from an explicit file path plus
// environment overrides.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// VOYO_STORE_BASE_URL -> store.base_url, VOYO_ESSENCE_INTENT_WEIGHT
	// -> essence.intent_weight.
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// sectionNames are the top-level config sections; envTransform uses them
// to split VOYO_SECTION_FIELD_NAME into section.field_name.
var sectionNames = []string{"essence", "store", "planner", "trainer", "local", "logging"}

// envTransform maps an environment variable name to a koanf path.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sectionNames {
		if strings.HasPrefix(s, section+"_") {
			return section + "." + strings.TrimPrefix(s, section+"_")
		}
	}
	// Unknown names are left as-is; Unmarshal ignores keys that match
	// no field.
	return s
}

// findConfigFile returns the first existing config path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
