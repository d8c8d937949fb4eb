// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"

	"github.com/benchreport/benchreport/pkg/config"
	"github.com/benchreport/benchreport/pkg/emit"
	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/formatter"
	"github.com/benchreport/benchreport/pkg/loader"
	"github.com/benchreport/benchreport/pkg/objstore"
	"github.com/benchreport/benchreport/pkg/observability"
	"github.com/benchreport/benchreport/pkg/platform"
	"github.com/benchreport/benchreport/pkg/report"
	"github.com/benchreport/benchreport/pkg/runctx"
)

// generateFlags holds the flags for the generate command
type generateFlags struct {
	output   string
	timeout  time.Duration
	parallel int
	dir      string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the report",
		Long: `Load every platform's raw results, format each into a table, fill the
template's slots, and write the document.

Nothing is written unless every platform succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			logger, err := root.logger(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := runctx.WithSignalTimeout(cmd.Context(), cfg.Report.Timeout)
			defer cancel()

			p, cleanup, err := buildPipeline(ctx, cmd, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = p.Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", `output file, gs://bucket/object, or "-" for stdout`)
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "abort the run after this long (0 means no limit)")
	cmd.Flags().IntVarP(&flags.parallel, "parallel", "p", 0, "platforms processed at once (0 means all)")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "directory sources, template, and output are resolved against")

	return cmd
}

// apply overrides cfg with flags that were set explicitly.
func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Report.Output = f.output
	}
	if changed("timeout") {
		cfg.Report.Timeout = f.timeout
	}
	if changed("parallel") {
		cfg.Report.Parallelism = f.parallel
	}
	if changed("dir") {
		dir, err := filepath.Abs(f.dir)
		if err != nil {
			return errors.ConfigError("invalid --dir", err)
		}
		cfg.Global.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		return errors.ConfigError("invalid flags", err)
	}
	return nil
}

// buildPipeline wires the report pipeline for cfg. The returned cleanup
// releases the storage client, if one was created.
func buildPipeline(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*report.Pipeline, func(), error) {
	cleanup := func() {}

	list, err := cfg.PlatformList()
	if err != nil {
		return nil, cleanup, errors.ConfigError("invalid platforms", err)
	}
	tmpl, err := cfg.Template()
	if err != nil {
		return nil, cleanup, err
	}
	output := cfg.OutputPath()

	client, err := storageClient(ctx, list, output)
	if err != nil {
		return nil, cleanup, err
	}
	if client != nil {
		cleanup = func() { _ = client.Close() }
	}

	f, err := formatter.New(cfg.FormatterSpec())
	if err != nil {
		cleanup()
		return nil, func() {}, errors.New(errors.ErrFormatter, "cannot set up table formatter", err)
	}

	var emitter emit.Emitter
	if output == "" || output == emit.StdoutDest {
		emitter = emit.NewWriter(cmd.OutOrStdout(), "stdout")
	} else if emitter, err = emit.New(output, client); err != nil {
		cleanup()
		return nil, func() {}, err
	}

	ld := &loader.Router{Local: loader.NewFileLoader(cfg.Global.Dir)}
	if client != nil {
		ld.Remote = loader.NewGCSLoader(client)
	}

	composer := report.NewComposer(ld, f,
		report.WithParallelism(cfg.Report.Parallelism),
		report.WithTrimTrailingNewline(cfg.Report.TrimTrailingNewline),
		report.WithMetrics(observability.NewMetrics()),
		report.WithLogger(logger),
	)

	return &report.Pipeline{
		Platforms: list,
		Template:  tmpl,
		Composer:  composer,
		Emitter:   emitter,
		Logger:    logger,
	}, cleanup, nil
}

// storageClient creates a Cloud Storage client only when a source or
// the output lives in a bucket.
func storageClient(ctx context.Context, list *platform.List, output string) (*storage.Client, error) {
	if !loader.NeedsRemote(list) && !objstore.IsURL(output) {
		return nil, nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.ConfigError("cannot create storage client", err)
	}
	return client, nil
}
