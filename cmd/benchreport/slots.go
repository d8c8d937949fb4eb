// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/platform"
)

func newSlotsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the template's slots",
		Long:  `Print each slot of the template in order of first appearance, with the platform bound to it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			tmpl, err := cfg.Template()
			if err != nil {
				return err
			}
			list, err := cfg.PlatformList()
			if err != nil {
				return errors.ConfigError("invalid platforms", err)
			}

			bySlot := make(map[string]platform.Platform, list.Len())
			for _, p := range list.All() {
				bySlot[p.SlotName()] = p
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLOT\tPLATFORM\tDESCRIPTION")
			for _, slot := range tmpl.Slots() {
				p, ok := bySlot[slot]
				if !ok {
					fmt.Fprintf(tw, "%s\t-\t(unbound)\n", slot)
					continue
				}
				desc := ""
				if b, ok := platform.LookupBoard(p.Name); ok {
					desc = b.Description
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", slot, p.Name, desc)
			}
			return tw.Flush()
		},
	}
}
