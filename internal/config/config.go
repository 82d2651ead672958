// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/store"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `json:"server" koanf:"server"`
	Logging LoggingConfig `json:"logging" koanf:"logging"`
	Store   store.Config  `json:"store" koanf:"store"`
	Engine  learn.Config  `json:"engine" koanf:"engine"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0.
	Host string `json:"host" koanf:"host"`

	// Port is the listen port. Default: 8080.
	Port int `json:"port" koanf:"port"`

	// Timeout bounds request read/write. Default: 30s.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`

	// ShutdownTimeout bounds graceful drain on shutdown. Default: 15s.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`

	// RateLimitReqs is the per-IP request budget per window. 0 disables
	// rate limiting. Default: 100.
	RateLimitReqs int `json:"rate_limit_reqs" koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate-limit window. Default: 1m.
	RateLimitWindow time.Duration `json:"rate_limit_window" koanf:"rate_limit_window"`

	// Environment is "development" or "production".
	Environment string `json:"environment" koanf:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info.
	Level string `json:"level" koanf:"level"`

	// Format is json or console. Default: json.
	Format string `json:"format" koanf:"format"`

	// Caller includes caller file:line in logs. Default: false.
	Caller bool `json:"caller" koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store:  store.DefaultConfig(),
		Engine: *learn.DefaultConfig(),
	}
}

// Validate checks the complete configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("rate limit requests must be non-negative, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitReqs > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %v", c.Server.RateLimitWindow)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("environment must be development or production, got %q", c.Server.Environment)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
