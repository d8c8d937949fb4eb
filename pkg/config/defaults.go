// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"time"

	"github.com/benchreport/benchreport/pkg/formatter"
	"github.com/benchreport/benchreport/pkg/platform"
)

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Report:    DefaultReportConfig(),
		Platforms: DefaultPlatforms(),
		Formatter: DefaultFormatterConfig(),
		Global:    DefaultGlobalConfig(),
	}
}

// DefaultReportConfig returns default report configuration.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Output:  "-",
		Timeout: 5 * time.Minute,
	}
}

// DefaultPlatforms returns the standard board lineup.
func DefaultPlatforms() []PlatformConfig {
	var ps []PlatformConfig
	for _, p := range platform.StandardPlatforms() {
		ps = append(ps, PlatformConfig{Name: p.Name, Source: p.Source, Slot: p.Slot})
	}
	return ps
}

// DefaultFormatterConfig returns default formatter configuration.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		Kind:    string(formatter.KindCommand),
		Command: []string{"./generate_table.awk"},
		Timeout: time.Minute,
	}
}

// DefaultGlobalConfig returns default global configuration.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel:  "info",
		LogFormat: "text",
	}
}
