// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package formatter

import (
	"fmt"
	"time"
)

// Kind selects a Formatter implementation.
type Kind string

const (
	// KindCommand runs an external program.
	KindCommand Kind = "command"
	// KindShell runs a shell script with "sh -c".
	KindShell Kind = "shell"
	// KindGoBench parses the Go benchmark text format in-process.
	KindGoBench Kind = "gobench"
	// KindPassthrough copies raw results unchanged.
	KindPassthrough Kind = "passthrough"
)

// IsValid reports whether k names a known formatter.
func (k Kind) IsValid() bool {
	switch k {
	case KindCommand, KindShell, KindGoBench, KindPassthrough:
		return true
	}
	return false
}

// Spec describes the formatter to build.
type Spec struct {
	Kind    Kind
	Command []string      // KindCommand: argv
	Script  string        // KindShell: script text
	Dir     string        // working directory for external programs
	Timeout time.Duration // per-invocation limit for external programs
	Units   []string      // KindGoBench: column selection
}

// New creates the Formatter described by spec. External programs are
// checked for existence so a misconfigured formatter fails before any
// platform is processed.
func New(spec Spec) (Formatter, error) {
	if spec.Kind == "" {
		spec.Kind = KindCommand
	}
	if !spec.Kind.IsValid() {
		return nil, fmt.Errorf("invalid formatter kind: %s", spec.Kind)
	}

	switch spec.Kind {
	case KindCommand:
		c, err := NewCommand(spec.Command...)
		if err != nil {
			return nil, err
		}
		c.WithDir(spec.Dir).WithTimeout(spec.Timeout)
		if err := c.Resolve(); err != nil {
			return nil, err
		}
		return c, nil
	case KindShell:
		if spec.Script == "" {
			return nil, fmt.Errorf("shell formatter requires a script")
		}
		c := NewShellCommand(spec.Script).WithDir(spec.Dir).WithTimeout(spec.Timeout)
		if err := c.Resolve(); err != nil {
			return nil, err
		}
		return c, nil
	case KindGoBench:
		return GoBench{Units: spec.Units}, nil
	default:
		return Passthrough{}, nil
	}
}
