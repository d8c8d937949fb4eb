// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for benchreport.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: --config, $BENCHREPORT_CONFIG, or ./.benchreport.yaml
// 3. Environment Variables: BENCHREPORT_SECTION__KEY
// 4. Command line flags (applied by the CLI)
package config

import (
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Report    ReportConfig     `yaml:"report"`
	Platforms []PlatformConfig `yaml:"platforms"`
	Formatter FormatterConfig  `yaml:"formatter"`
	Global    GlobalConfig     `yaml:"global"`
}

// ReportConfig describes the document to produce.
type ReportConfig struct {
	// Template is the template file; empty selects the built-in one.
	Template string `yaml:"template"`
	// Output is a file path, gs://bucket/object, or "-" for stdout.
	Output string `yaml:"output"`
	// Timeout bounds the whole run (0 means no limit).
	Timeout time.Duration `yaml:"timeout"`
	// Parallelism bounds concurrent platforms (0 means all at once).
	Parallelism int `yaml:"parallelism"`
	// TrimTrailingNewline strips trailing newlines from each table.
	TrimTrailingNewline bool `yaml:"trim_trailing_newline"`
}

// PlatformConfig represents a single platform, in report order.
type PlatformConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Slot   string `yaml:"slot,omitempty"`
}

// FormatterConfig selects and configures the table formatter.
type FormatterConfig struct {
	Kind    string        `yaml:"kind"`              // command, shell, gobench, passthrough
	Command []string      `yaml:"command,omitempty"` // argv for kind=command
	Script  string        `yaml:"script,omitempty"`  // script for kind=shell
	Timeout time.Duration `yaml:"timeout"`           // per invocation
	Units   []string      `yaml:"units,omitempty"`   // columns for kind=gobench
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	// Dir is the directory relative sources, the template, and the
	// output are resolved against. It is also the formatter's working
	// directory. Empty means the config file's directory.
	Dir string `yaml:"dir"`
}
