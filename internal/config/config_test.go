// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Engine.ZPDDelta != 0.2 {
		t.Errorf("default zpd delta = %v, want 0.2", cfg.Engine.ZPDDelta)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"negative rate limit", func(c *Config) { c.Server.RateLimitReqs = -1 }, true},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimitReqs = 0 }, false},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, true},
		{"bad engine weights", func(c *Config) { c.Engine.Weights.Engagement = 0.9 }, true},
		{"bad store gc ratio", func(c *Config) { c.Store.GCDiscardRatio = 2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEARNPATH_HTTP_PORT", "9090")
	t.Setenv("LEARNPATH_LOG_LEVEL", "debug")
	t.Setenv("LEARNPATH_ENGINE_ZPD_DELTA", "0.3")
	t.Setenv("LEARNPATH_WEIGHT_LEARNING_STYLE", "0.2")
	t.Setenv("LEARNPATH_WEIGHT_DIFFICULTY", "0.2")
	t.Setenv("LEARNPATH_WEIGHT_COGNITIVE_LOAD", "0.2")
	t.Setenv("LEARNPATH_WEIGHT_KNOWLEDGE_GAP", "0.2")
	t.Setenv("LEARNPATH_WEIGHT_ENGAGEMENT", "0.2")
	t.Setenv("LEARNPATH_STORE_IN_MEMORY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Engine.ZPDDelta != 0.3 {
		t.Errorf("zpd delta = %v, want 0.3", cfg.Engine.ZPDDelta)
	}
	if cfg.Engine.Weights.LearningStyle != 0.2 {
		t.Errorf("learning style weight = %v, want 0.2", cfg.Engine.Weights.LearningStyle)
	}
	if !cfg.Store.InMemory {
		t.Error("store in-memory flag not applied")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 7070
  environment: production
engine:
  beta_0: 2.0
store:
  in_memory: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("environment = %q, want production", cfg.Server.Environment)
	}
	if cfg.Engine.Beta0 != 2.0 {
		t.Errorf("beta_0 = %v, want 2.0", cfg.Engine.Beta0)
	}
	// Defaults survive partial files.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Server.Timeout)
	}
}

func TestEnvPrecedenceOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\nstore:\n  in_memory: true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LEARNPATH_HTTP_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999 (env should beat file)", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("LEARNPATH_HTTP_PORT", "0")
	t.Setenv("LEARNPATH_STORE_IN_MEMORY", "true")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestEnvTransformSkipsUnknown(t *testing.T) {
	if got := envTransformFunc("LEARNPATH_RANDOM_THING"); got != "" {
		t.Errorf("unknown env var mapped to %q, want empty", got)
	}
	if got := envTransformFunc("LEARNPATH_BKT_P_SLIP"); got != "engine.bkt.p_slip" {
		t.Errorf("BKT mapping = %q", got)
	}
}
