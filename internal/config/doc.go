// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

/*
Package config provides centralized configuration management for Learnpath.

# Configuration Sources

Configuration is loaded with Koanf v2 in layered order, later layers
overriding earlier ones:

 1. Built-in defaults
 2. Optional YAML config file (config.yaml, or CONFIG_PATH)
 3. Environment variables (LEARNPATH_HTTP_PORT, LEARNPATH_LOG_LEVEL, ...)

# Configuration Structure

  - ServerConfig: HTTP server settings (host, port, timeouts, rate limits)
  - LoggingConfig: log level, format, caller reporting
  - store.Config: BadgerDB path and GC tuning
  - learn.Config: selection weights, ZPD, cognitive load, BKT parameters

# Usage

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
*/
package config
