// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/benchreport/benchreport/pkg/document"
	"github.com/benchreport/benchreport/pkg/emit"
	"github.com/benchreport/benchreport/pkg/platform"
)

// Pipeline composes, renders, and emits one report.
type Pipeline struct {
	Platforms *platform.List
	Template  *document.Template
	Composer  *Composer
	Emitter   emit.Emitter
	Logger    *slog.Logger
}

// Run executes the pipeline once. Nothing is emitted unless every
// platform was loaded and formatted and the template rendered.
func (p *Pipeline) Run(ctx context.Context) (document.Document, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", uuid.NewString())
	start := time.Now()

	logger.Info("generating report",
		"template", p.Template.Name(),
		"platforms", p.Platforms.Names(),
		"destination", p.Emitter.Destination())

	// Catch template drift before running any formatter.
	if err := p.Template.Check(p.Platforms.Slots()); err != nil {
		logger.Error("slot check failed", "error", describe(err))
		return document.Document{}, err
	}

	tables, err := p.Composer.Compose(ctx, p.Platforms)
	if err != nil {
		logger.Error("composition failed", "error", describe(err))
		return document.Document{}, err
	}

	doc, err := p.Template.Render(tables)
	if err != nil {
		logger.Error("render failed", "error", describe(err))
		return document.Document{}, err
	}

	if err := p.Emitter.Emit(ctx, doc); err != nil {
		logger.Error("emit failed", "error", describe(err))
		return document.Document{}, err
	}

	attrs := []any{"bytes", doc.Len(), "duration", time.Since(start)}
	if m := p.Composer.metrics; m != nil {
		attrs = append(attrs, "stages", m)
	}
	logger.Info("report generated", attrs...)
	return doc, nil
}
