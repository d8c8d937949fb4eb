// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"path/filepath"

	"github.com/benchreport/benchreport/pkg/document"
	"github.com/benchreport/benchreport/pkg/emit"
	"github.com/benchreport/benchreport/pkg/formatter"
	"github.com/benchreport/benchreport/pkg/objstore"
	"github.com/benchreport/benchreport/pkg/platform"
)

// PlatformList builds the immutable, ordered platform list.
func (c *Config) PlatformList() (*platform.List, error) {
	ps := make([]platform.Platform, len(c.Platforms))
	for i, p := range c.Platforms {
		ps[i] = platform.Platform{Name: p.Name, Source: p.Source, Slot: p.Slot}
	}
	return platform.NewList(ps...)
}

// FormatterSpec describes the configured formatter. External programs
// run in Global.Dir.
func (c *Config) FormatterSpec() formatter.Spec {
	return formatter.Spec{
		Kind:    formatter.Kind(c.Formatter.Kind),
		Command: c.Formatter.Command,
		Script:  c.Formatter.Script,
		Dir:     c.Global.Dir,
		Timeout: c.Formatter.Timeout,
		Units:   c.Formatter.Units,
	}
}

// Template returns the configured template. An empty value selects the
// default built-in; a built-in name (see document.BuiltinNames) selects
// that template; anything else is a file path.
func (c *Config) Template() (*document.Template, error) {
	name := c.Report.Template
	if name == "" {
		name = document.DefaultTemplateName
	}
	if t, ok := document.Builtin(name); ok {
		return t, nil
	}
	return document.ParseFile(c.ResolvePath(name))
}

// OutputPath returns the output destination with file paths resolved
// against Global.Dir.
func (c *Config) OutputPath() string {
	out := c.Report.Output
	if out == "" || out == emit.StdoutDest || objstore.IsURL(out) {
		return out
	}
	return c.ResolvePath(out)
}

// ResolvePath resolves a relative path against Global.Dir.
func (c *Config) ResolvePath(p string) string {
	if filepath.IsAbs(p) || c.Global.Dir == "" {
		return p
	}
	return filepath.Join(c.Global.Dir, p)
}
