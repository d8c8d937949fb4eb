// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package errors provides typed errors for the report pipeline.
package errors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota + 1
	// ErrMissingSource indicates a platform's raw results are absent or unreadable
	ErrMissingSource
	// ErrFormatter indicates the table formatter failed or returned unusable output
	ErrFormatter
	// ErrSlotMismatch indicates template slots and platforms are out of sync
	ErrSlotMismatch
	// ErrEmit indicates the document could not be delivered
	ErrEmit
	// ErrTimeout indicates the run was cancelled or timed out
	ErrTimeout
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitConfig        = 1
	ExitMissingSource = 2
	ExitFormatter     = 3
	ExitSlotMismatch  = 4
	ExitEmit          = 5
	ExitTimeout       = 6
)

// ReportError is the base error type for all pipeline errors.
type ReportError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error returns the error message
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// New creates a new ReportError
func New(errType ErrorType, message string, cause error) *ReportError {
	return &ReportError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context to the error
func (e *ReportError) WithContext(key string, value any) *ReportError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var rerr *ReportError
	if err == nil {
		return false
	}
	if errors.As(err, &rerr) {
		return rerr.Type == errType
	}
	return false
}

// TypeOf returns the type of the outermost ReportError in err's chain,
// or zero if there is none.
func TypeOf(err error) ErrorType {
	var rerr *ReportError
	if errors.As(err, &rerr) {
		return rerr.Type
	}
	return 0
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch TypeOf(err) {
	case ErrMissingSource:
		return ExitMissingSource
	case ErrFormatter:
		return ExitFormatter
	case ErrSlotMismatch:
		return ExitSlotMismatch
	case ErrEmit:
		return ExitEmit
	case ErrTimeout:
		return ExitTimeout
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}
	return ExitConfig
}

func (et ErrorType) String() string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrMissingSource:
		return "MISSING_SOURCE"
	case ErrFormatter:
		return "FORMATTER"
	case ErrSlotMismatch:
		return "SLOT_MISMATCH"
	case ErrEmit:
		return "EMIT"
	case ErrTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *ReportError {
	return New(ErrConfig, message, cause)
}

// MissingSourceError reports that platform's raw results at source could
// not be read.
func MissingSourceError(platform, source string, cause error) *ReportError {
	return New(ErrMissingSource, fmt.Sprintf("platform %q: cannot read %s", platform, source), cause).
		WithContext("platform", platform).
		WithContext("source", source)
}

// FormatterFailureError reports that formatting platform's results failed.
func FormatterFailureError(platform string, cause error) *ReportError {
	return New(ErrFormatter, fmt.Sprintf("platform %q: table formatter failed", platform), cause).
		WithContext("platform", platform)
}

// SlotMismatchError reports template slots without a platform (missing)
// and platforms without a template slot (extra).
func SlotMismatchError(missing, extra []string) *ReportError {
	missing = sortedCopy(missing)
	extra = sortedCopy(extra)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "unfilled slots: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "no slot for: "+strings.Join(extra, ", "))
	}
	return New(ErrSlotMismatch, "template and platforms disagree ("+strings.Join(parts, "; ")+")", nil).
		WithContext("missing", missing).
		WithContext("extra", extra)
}

// EmitError reports that the document could not be written to dest.
func EmitError(dest string, cause error) *ReportError {
	return New(ErrEmit, "cannot write document to "+dest, cause).
		WithContext("destination", dest)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *ReportError {
	return New(ErrTimeout, message, cause)
}

func sortedCopy(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
