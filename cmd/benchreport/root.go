// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/benchreport/benchreport/pkg/config"
	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/observability"
	"github.com/benchreport/benchreport/pkg/version"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "benchreport",
		Short: "Assemble benchmark tables into a report",
		Long: `benchreport turns per-platform benchmark results into a single
document. Each platform's raw results are passed through a table
formatter and substituted into the matching slot of a template.`,
		Version:       version.FullString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is ./"+config.ProjectConfigFile+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text, json")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newSlotsCmd(opts))
	cmd.AddCommand(newBuiltinsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig loads configuration and applies the persistent flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	loader := config.NewLoader().WithPath(o.configPath)
	if o.configPath == "" {
		root, err := config.DetectProjectRoot()
		if err != nil {
			return nil, errors.ConfigError("cannot locate project root", err)
		}
		loader = loader.WithProjectRoot(root)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Global.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Global.LogFormat = o.logFormat
	}
	return cfg, nil
}

// logger builds the logger for cfg. Logs go to stderr so stdout stays
// free for the document.
func (o *rootOptions) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := observability.NewLogger(cfg.Global.LogLevel, cfg.Global.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, errors.ConfigError("invalid logging flags", err)
	}
	return logger, nil
}
