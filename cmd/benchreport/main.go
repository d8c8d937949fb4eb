// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package main is the entry point for the benchreport CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/benchreport/benchreport/pkg/errors"
)

func main() {
	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			slog.Error("PANIC", "error", r, "stack", string(debug.Stack()))
			os.Exit(errors.ExitConfig)
		}
	}()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "benchreport:", err)
		os.Exit(errors.ExitCode(err))
	}
}
