// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

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

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/learnpath/config.yaml",
	"/etc/learnpath/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces Learnpath environment variables.
const envPrefix = "LEARNPATH_"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if exists)
//  3. Environment variables: LEARNPATH_* overrides any setting
//
// Precedence: ENV > File > Defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// LEARNPATH_HTTP_PORT -> server.port
	// LEARNPATH_ENGINE_ZPD_DELTA -> engine.zpd_delta
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string.
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

// envTransformFunc maps LEARNPATH_* environment variable names to koanf
// config paths. Unmapped variables are skipped so random environment
// variables cannot pollute config.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Server mappings
		"http_host":         "server.host",
		"http_port":         "server.port",
		"http_timeout":      "server.timeout",
		"shutdown_timeout":  "server.shutdown_timeout",
		"rate_limit_reqs":   "server.rate_limit_reqs",
		"rate_limit_window": "server.rate_limit_window",
		"environment":       "server.environment",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Store mappings
		"store_path":             "store.path",
		"store_in_memory":        "store.in_memory",
		"store_gc_interval":      "store.gc_interval",
		"store_gc_discard_ratio": "store.gc_discard_ratio",

		// Engine mappings
		"engine_zpd_delta":         "engine.zpd_delta",
		"engine_zpd_sigma":         "engine.zpd_sigma",
		"engine_cl_optimal":        "engine.cl_optimal",
		"engine_cl_max":            "engine.cl_max",
		"engine_beta0":             "engine.beta_0",
		"engine_mastery_threshold": "engine.mastery_threshold",

		// Weight mappings
		"weight_learning_style": "engine.weights.learning_style",
		"weight_difficulty":     "engine.weights.difficulty",
		"weight_cognitive_load": "engine.weights.cognitive_load",
		"weight_knowledge_gap":  "engine.weights.knowledge_gap",
		"weight_engagement":     "engine.weights.engagement",

		// BKT mappings
		"bkt_p_init":  "engine.bkt.p_init",
		"bkt_p_learn": "engine.bkt.p_learn",
		"bkt_p_slip":  "engine.bkt.p_slip",
		"bkt_p_guess": "engine.bkt.p_guess",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
