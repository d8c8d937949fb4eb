// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package formatter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchunit"
)

// GoBench formats results written in the Go benchmark text format
// ("BenchmarkX-8  1000  1234 ns/op  16 B/op"). Each benchmark becomes
// one row holding the mean of every unit it reports, scaled for
// reading.
type GoBench struct {
	// Units restricts and orders the columns. Empty means every unit,
	// in the order first seen.
	Units []string
}

type benchRow struct {
	name  string
	sums  map[string]float64
	count map[string]int
}

// Format parses raw and lays it out as an aligned text table.
func (g GoBench) Format(ctx context.Context, raw []byte) (string, error) {
	r := benchfmt.NewReader(bytes.NewReader(raw), "results")

	var (
		rows  []*benchRow
		index = make(map[string]*benchRow)
		units []string
		seen  = make(map[string]bool)
	)

	for r.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		switch rec := r.Result().(type) {
		case *benchfmt.SyntaxError:
			return "", rec
		case *benchfmt.Result:
			name := string(rec.Name.Full())
			row, ok := index[name]
			if !ok {
				row = &benchRow{name: name, sums: map[string]float64{}, count: map[string]int{}}
				index[name] = row
				rows = append(rows, row)
			}
			for _, v := range rec.Values {
				row.sums[v.Unit] += v.Value
				row.count[v.Unit]++
				if !seen[v.Unit] {
					seen[v.Unit] = true
					units = append(units, v.Unit)
				}
			}
		}
	}
	if err := r.Err(); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrNoBenchmarks
	}
	if len(g.Units) > 0 {
		units = g.Units
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "name\t%s\n", strings.Join(units, "\t"))
	for _, row := range rows {
		cells := make([]string, len(units))
		for i, unit := range units {
			n := row.count[unit]
			if n == 0 {
				cells[i] = "-"
				continue
			}
			cells[i] = benchunit.Scale(row.sums[unit]/float64(n), benchunit.ClassOf(unit))
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.name, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
