// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"strings"

	"github.com/benchreport/benchreport/pkg/document"
	"github.com/benchreport/benchreport/pkg/formatter"
)

const (
	// MaxParallelism is the maximum allowed value for report.parallelism
	MaxParallelism = 64
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if err := c.Report.Validate(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if len(c.Platforms) == 0 {
		return fmt.Errorf("platforms: at least one platform is required")
	}
	for i, p := range c.Platforms {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("platforms[%d]: %w", i, err)
		}
	}
	// Uniqueness of names and slots.
	if _, err := c.PlatformList(); err != nil {
		return fmt.Errorf("platforms: %w", err)
	}

	if err := c.Formatter.Validate(); err != nil {
		return fmt.Errorf("formatter: %w", err)
	}

	if err := c.Global.Validate(); err != nil {
		return fmt.Errorf("global: %w", err)
	}

	return nil
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be non-negative")
	}
	if c.Parallelism > MaxParallelism {
		return fmt.Errorf("parallelism must not exceed %d", MaxParallelism)
	}
	return nil
}

// Validate validates a platform entry
func (c *PlatformConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.Source == "" {
		return fmt.Errorf("platform %q: source is required", c.Name)
	}
	slot := c.Slot
	if slot == "" {
		slot = c.Name
	}
	if !document.ValidSlotName(slot) {
		return fmt.Errorf("platform %q: invalid slot name %q (want letters, digits, and underscores, not starting with a digit)", c.Name, slot)
	}
	return nil
}

// Validate validates the formatter configuration
func (c *FormatterConfig) Validate() error {
	kind := formatter.Kind(strings.ToLower(c.Kind))
	if kind == "" {
		kind = formatter.KindCommand
	}
	if !kind.IsValid() {
		return fmt.Errorf("invalid kind: %s (must be command, shell, gobench, or passthrough)", c.Kind)
	}
	// Normalize to lowercase
	c.Kind = string(kind)

	switch kind {
	case formatter.KindCommand:
		if len(c.Command) == 0 || c.Command[0] == "" {
			return fmt.Errorf("command is required for kind %q", kind)
		}
	case formatter.KindShell:
		if strings.TrimSpace(c.Script) == "" {
			return fmt.Errorf("script is required for kind %q", kind)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

// Validate validates the global configuration
func (c *GlobalConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", c.LogFormat)
	}
	return nil
}
