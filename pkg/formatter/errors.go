// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package formatter

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrNotFound     = errors.New("formatter executable not found")
	ErrEmptyOutput  = errors.New("formatter produced no output")
	ErrTimeout      = errors.New("formatter timed out")
	ErrNoBenchmarks = errors.New("no benchmark results in input")
)

// ExitError reports an external formatter that terminated abnormally.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed (exit code %d): %s", e.Command, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s failed (exit code %d): %v", e.Command, e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
