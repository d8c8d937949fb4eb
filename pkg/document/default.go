// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package document

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed templates/*.md
var builtinFS embed.FS

// Built-in template names. Each has one slot per standard board
// ("nano_results" ... "teensy32_results").
const (
	DefaultTemplateName = "default"
	// AutoBenchmarkTemplateName is the coroutine context-switch report.
	AutoBenchmarkTemplateName = "autobenchmark"
	// ChannelBenchmarkTemplateName is the channel message-passing report.
	ChannelBenchmarkTemplateName = "channelbenchmark"
)

// Builtin returns the built-in template called name.
func Builtin(name string) (*Template, bool) {
	if name == "" || strings.ContainsAny(name, "/.") {
		return nil, false
	}
	data, err := builtinFS.ReadFile(path.Join("templates", name+".md"))
	if err != nil {
		return nil, false
	}
	return MustParse(name, string(data)), true
}

// BuiltinNames lists the built-in templates in name order.
func BuiltinNames() []string {
	entries, _ := builtinFS.ReadDir("templates")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Default returns the generic built-in template.
func Default() *Template {
	t, _ := Builtin(DefaultTemplateName)
	return t
}
