// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "BENCHREPORT"
	// EnvConfigPath names the config file when --config is not given.
	EnvConfigPath = "BENCHREPORT_CONFIG"
	// ProjectConfigFile is the project-level config file name.
	ProjectConfigFile = ".benchreport.yaml"
)

// Loader loads configuration from files and environment.
type Loader struct {
	projectRoot string
	path        string
	getenv      func(string) string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

// WithProjectRoot sets the directory searched for ProjectConfigFile.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// WithPath loads the given file instead of searching. The file must
// exist.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// WithEnv replaces the environment lookup, mainly for tests.
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Config file (explicit path, $BENCHREPORT_CONFIG, or project file)
// 3. Environment Variables (BENCHREPORT_*)
//
// An explicitly named config file must exist; the project file is
// optional. The result is validated.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path, required := l.path, true
	if path == "" {
		path = l.getenv(EnvConfigPath)
	}
	if path == "" {
		root := l.projectRoot
		if root == "" {
			root = "."
		}
		path, required = filepath.Join(root, ProjectConfigFile), false
	}

	loaded, err := l.loadInto(cfg, path)
	if err != nil && (required || !errors.Is(err, fs.ErrNotExist)) {
		return nil, err
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// A relative dir, from the file or the environment, is relative to
	// the config file.
	if cfg.Global.Dir == "" {
		if loaded {
			cfg.Global.Dir = filepath.Dir(path)
		} else {
			cfg.Global.Dir = "."
		}
	} else if loaded && !filepath.IsAbs(cfg.Global.Dir) {
		cfg.Global.Dir = filepath.Join(filepath.Dir(path), cfg.Global.Dir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path on top of the
// defaults, without environment overrides or validation.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := l.loadInto(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadInto decodes the file at path over cfg. Unknown keys are errors.
// It reports whether a file was read.
func (l *Loader) loadInto(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, &ConfigError{Path: path, Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return false, &ConfigError{Path: path, Err: err}
	}

	return true, nil
}

// applyEnvOverrides applies environment variable overrides.
// Format: BENCHREPORT_SECTION__KEY=value
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	// Report settings
	if v := l.getenv("BENCHREPORT_REPORT__TEMPLATE"); v != "" {
		cfg.Report.Template = v
	}
	if v := l.getenv("BENCHREPORT_REPORT__OUTPUT"); v != "" {
		cfg.Report.Output = v
	}
	if v := l.getenv("BENCHREPORT_REPORT__TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{Field: "report.timeout", Err: err}
		}
		cfg.Report.Timeout = d
	}
	if v := l.getenv("BENCHREPORT_REPORT__PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "report.parallelism", Err: err}
		}
		cfg.Report.Parallelism = n
	}

	// Formatter settings
	if v := l.getenv("BENCHREPORT_FORMATTER__TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{Field: "formatter.timeout", Err: err}
		}
		cfg.Formatter.Timeout = d
	}
	if v := l.getenv("BENCHREPORT_FORMATTER__SCRIPT"); v != "" {
		cfg.Formatter.Kind = "shell"
		cfg.Formatter.Script = v
	}

	// Global settings
	if v := l.getenv("BENCHREPORT_GLOBAL__LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := l.getenv("BENCHREPORT_GLOBAL__LOG_FORMAT"); v != "" {
		cfg.Global.LogFormat = v
	}
	if v := l.getenv("BENCHREPORT_GLOBAL__DIR"); v != "" {
		cfg.Global.Dir = v
	}

	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return "config error in " + e.Path + ": " + e.Err.Error()
	}
	if e.Field != "" {
		return "config error for " + e.Field + ": " + e.Err.Error()
	}
	return "config error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DetectProjectRoot finds the project root by looking for the config
// file in the working directory and its parents. It returns "." if none
// is found.
func DetectProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return ".", nil
		}
		dir = parent
	}
}

// GetEnvConfig returns all environment variables that start with
// BENCHREPORT_.
func GetEnvConfig() map[string]string {
	result := make(map[string]string)

	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			kv := strings.SplitN(env, "=", 2)
			if len(kv) == 2 {
				result[kv[0]] = kv[1]
			}
		}
	}

	return result
}
