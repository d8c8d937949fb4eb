// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchreport/benchreport/pkg/config"
	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/formatter"
	"github.com/benchreport/benchreport/pkg/loader"
	"github.com/benchreport/benchreport/pkg/objstore"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the configuration without generating",
		Long: `Verify that the template's slots and the platforms correspond one to
one, that every platform's raw results exist, and that the table
formatter can be found. No formatter is run and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Global.Validate(); err != nil {
				return errors.ConfigError("invalid logging flags", err)
			}
			logger, err := root.logger(cmd, cfg)
			if err != nil {
				return err
			}
			for k, v := range config.GetEnvConfig() {
				logger.Debug("environment override", "key", k, "value", v)
			}

			list, err := cfg.PlatformList()
			if err != nil {
				return errors.ConfigError("invalid platforms", err)
			}
			tmpl, err := cfg.Template()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if err := tmpl.Check(list.Slots()); err != nil {
				return err
			}
			fmt.Fprintf(out, "template %s: %d slots match %d platforms\n", tmpl.Name(), len(tmpl.Slots()), list.Len())

			if _, err := formatter.New(cfg.FormatterSpec()); err != nil {
				return errors.New(errors.ErrFormatter, "cannot set up table formatter", err)
			}
			fmt.Fprintf(out, "formatter: %s\n", cfg.Formatter.Kind)

			// The output is never written here, so only sources count.
			client, err := storageClient(cmd.Context(), list, "")
			if err != nil {
				return err
			}
			if client != nil {
				defer client.Close()
			}

			local := loader.NewFileLoader(cfg.Global.Dir)
			var firstErr error
			for _, p := range list.All() {
				var err error
				if objstore.IsURL(p.Source) {
					err = loader.NewGCSLoader(client).Exists(cmd.Context(), p)
				} else {
					err = local.Exists(p)
				}
				if err != nil {
					fmt.Fprintf(out, "  %-10s missing: %v\n", p.Name, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				fmt.Fprintf(out, "  %-10s ok\n", p.Name)
			}
			return firstErr
		},
	}
}
