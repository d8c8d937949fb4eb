// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package report composes per-platform benchmark tables into a report.
package report

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/formatter"
	"github.com/benchreport/benchreport/pkg/loader"
	"github.com/benchreport/benchreport/pkg/observability"
	"github.com/benchreport/benchreport/pkg/perf"
	"github.com/benchreport/benchreport/pkg/platform"
)

// Composer loads and formats every platform's results.
type Composer struct {
	loader      loader.Loader
	formatter   formatter.Formatter
	parallelism int
	trimNewline bool
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// Option configures a Composer.
type Option func(*Composer)

// WithParallelism bounds how many platforms are processed at once.
// n <= 0 means one task per platform.
func WithParallelism(n int) Option {
	return func(c *Composer) { c.parallelism = n }
}

// WithTrimTrailingNewline strips trailing newlines from each table, so
// a slot on its own line does not gain a blank line after it.
func WithTrimTrailingNewline(trim bool) Option {
	return func(c *Composer) { c.trimNewline = trim }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// WithMetrics records per-platform stage durations into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Composer) { c.metrics = m }
}

// NewComposer creates a Composer.
func NewComposer(l loader.Loader, f formatter.Formatter, opts ...Option) *Composer {
	c := &Composer{
		loader:    l,
		formatter: f,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose produces one table per platform, in the order of platforms.
// The first failure aborts the whole composition and cancels any work
// still in flight; no partial result is returned.
func (c *Composer) Compose(ctx context.Context, platforms *platform.List) (*Tables, error) {
	start := time.Now()

	results, err := perf.Map(ctx, platforms.All(), c.parallelism, c.process)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.TimeoutError("composition aborted", ctxErr)
		}
		return nil, err
	}

	c.logger.Debug("composition complete",
		"platforms", platforms.Len(),
		"duration", time.Since(start))
	return newTables(results), nil
}

// process loads and formats a single platform.
func (c *Composer) process(ctx context.Context, _ int, p platform.Platform) (PlatformResult, error) {
	log := c.logger.With("platform", p.Name)
	res := PlatformResult{Platform: p}

	start := time.Now()
	raw, err := c.loader.Load(ctx, p)
	c.metrics.RecordStage(observability.StageLoad, p.Name, time.Since(start), err == nil)
	if err != nil {
		if errors.TypeOf(err) == 0 && ctx.Err() == nil {
			err = errors.MissingSourceError(p.Name, p.Source, err)
		}
		return res, err
	}
	res.Raw = raw
	log.Debug("loaded raw results", "source", p.Source, "bytes", len(raw))

	start = time.Now()
	table, err := c.formatter.Format(ctx, raw)
	elapsed := time.Since(start)
	c.metrics.RecordStage(observability.StageFormat, p.Name, elapsed, err == nil)
	if err != nil {
		return res, errors.FormatterFailureError(p.Name, err)
	}
	if c.trimNewline {
		table = strings.TrimRight(table, "\r\n")
	}
	if strings.TrimSpace(table) == "" {
		return res, errors.FormatterFailureError(p.Name, formatter.ErrEmptyOutput)
	}
	res.Table = table
	log.Debug("formatted table", "lines", strings.Count(table, "\n")+1, "duration", elapsed)

	return res, nil
}

// describe summarizes an error for logs.
func describe(err error) string {
	var rerr *errors.ReportError
	if stderrors.As(err, &rerr) {
		return fmt.Sprintf("%s: %s", rerr.Type, rerr.Message)
	}
	return err.Error()
}
