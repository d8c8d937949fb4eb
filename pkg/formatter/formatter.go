// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package formatter turns a platform's raw benchmark results into the
// table text embedded in the report.
//
// A Formatter is a pure text transform: the same input always yields the
// same table. How the table is laid out is up to the implementation,
// which may be an external program (Command), Go code (Func, GoBench),
// or nothing at all (Passthrough).
package formatter

import (
	"context"
)

// Formatter converts raw results into table text.
type Formatter interface {
	Format(ctx context.Context, raw []byte) (string, error)
}

// Func adapts a function to the Formatter interface.
type Func func(ctx context.Context, raw []byte) (string, error)

// Format calls f.
func (f Func) Format(ctx context.Context, raw []byte) (string, error) {
	return f(ctx, raw)
}

// Passthrough returns raw results unchanged, for sources that already
// hold a formatted table.
type Passthrough struct{}

// Format returns raw as text.
func (Passthrough) Format(ctx context.Context, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(raw), nil
}
