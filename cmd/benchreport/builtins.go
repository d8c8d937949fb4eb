// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benchreport/benchreport/pkg/document"
	"github.com/benchreport/benchreport/pkg/platform"
)

func newBuiltinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "List built-in templates and standard boards",
		Long: `Print the templates that report.template can name directly, and the
standard board lineup used when no platforms are configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "TEMPLATE\tSLOTS")
			for _, name := range document.BuiltinNames() {
				tmpl, _ := document.Builtin(name)
				fmt.Fprintf(tw, "%s\t%d\n", name, len(tmpl.Slots()))
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "BOARD\tSOURCE\tDESCRIPTION")
			for _, b := range platform.StandardBoards() {
				fmt.Fprintf(tw, "%s\t%s.txt\t%s\n", b.Name, b.Name, b.Description)
			}
			return tw.Flush()
		},
	}
}
