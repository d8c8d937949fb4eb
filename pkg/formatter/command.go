// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package formatter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// maxStderr bounds how much of a failing formatter's stderr is kept.
const maxStderr = 4 * 1024

// Command runs an external program as the formatter. Raw results are
// written to its stdin and its stdout is the table, mirroring
// "./generate_table.awk < nano.txt".
type Command struct {
	// Path is the program to run.
	Path string
	// Args are passed to the program.
	Args []string
	// Dir is the working directory ("" means the current one).
	Dir string
	// Env is appended to the inherited environment.
	Env []string
	// Timeout bounds a single invocation (0 means no limit).
	Timeout time.Duration
}

// NewCommand creates a formatter running argv[0] with argv[1:].
func NewCommand(argv ...string) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("formatter command is empty")
	}
	return &Command{
		Path: argv[0],
		Args: argv[1:],
	}, nil
}

// NewShellCommand creates a formatter running script with "sh -c".
func NewShellCommand(script string) *Command {
	return &Command{
		Path: "sh",
		Args: []string{"-c", script},
	}
}

// WithDir sets the working directory.
func (c *Command) WithDir(dir string) *Command {
	c.Dir = dir
	return c
}

// WithTimeout sets the per-invocation timeout.
func (c *Command) WithTimeout(d time.Duration) *Command {
	c.Timeout = d
	return c
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Resolve checks that the program can be found.
func (c *Command) Resolve() error {
	path := c.Path
	if c.Dir != "" && strings.ContainsRune(path, filepath.Separator) && !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, c.Path)
	}
	return nil
}

// Format runs the program once with raw on stdin.
func (c *Command) Format(ctx context.Context, raw []byte) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	cmd.Stdin = bytes.NewReader(raw)
	// Give the program a moment to exit after being killed before
	// abandoning its pipes.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Context timeout/cancellation takes precedence over the kill
		// signal the process died from.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrTimeout, c, ctxErr)
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, c.Path)
		}

		exitErr := &ExitError{Command: c.String(), Code: -1, Err: err}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.Code = ee.ExitCode()
		}
		exitErr.Stderr = truncate(strings.TrimSpace(stderr.String()), maxStderr)
		return "", exitErr
	}

	return stdout.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
