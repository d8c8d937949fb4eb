// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package report_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchreport/benchreport/pkg/document"
	"github.com/benchreport/benchreport/pkg/emit"
	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/formatter"
	"github.com/benchreport/benchreport/pkg/loader"
	"github.com/benchreport/benchreport/pkg/observability"
	"github.com/benchreport/benchreport/pkg/platform"
	"github.com/benchreport/benchreport/pkg/report"
)

// bracket maps "X=v" to "[X=v]".
var bracket = formatter.Func(func(_ context.Context, raw []byte) (string, error) {
	return "[" + strings.TrimSpace(string(raw)) + "]", nil
})

func memLoader(sources map[string]string) loader.Loader {
	return loader.Func(func(_ context.Context, p platform.Platform) ([]byte, error) {
		s, ok := sources[p.Source]
		if !ok {
			return nil, errors.MissingSourceError(p.Name, p.Source, os.ErrNotExist)
		}
		return []byte(s), nil
	})
}

func scenario(t *testing.T) (string, *platform.List, *document.Template) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nano.txt"), []byte("X=5.2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "esp32.txt"), []byte("X=0.3"), 0644))

	l := platform.MustList(
		platform.Platform{Name: "nano", Source: "nano.txt"},
		platform.Platform{Name: "esp32", Source: "esp32.txt"},
	)
	return dir, l, document.MustParse("readme", "Nano: {nano}\nESP32: {esp32}")
}

func TestPipelineConcreteScenario(t *testing.T) {
	dir, l, tmpl := scenario(t)

	var out bytes.Buffer
	p := &report.Pipeline{
		Platforms: l,
		Template:  tmpl,
		Composer:  report.NewComposer(loader.NewFileLoader(dir), bracket),
		Emitter:   emit.NewWriter(&out, "buffer"),
	}

	doc, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nano: [X=5.2]\nESP32: [X=0.3]", doc.Text)
	assert.Equal(t, doc.Text, out.String())
}

func TestPipelineIsIdempotent(t *testing.T) {
	dir, l, tmpl := scenario(t)

	run := func() string {
		var out bytes.Buffer
		p := &report.Pipeline{
			Platforms: l,
			Template:  tmpl,
			Composer:  report.NewComposer(loader.NewFileLoader(dir), bracket),
			Emitter:   emit.NewWriter(&out, "buffer"),
		}
		_, err := p.Run(context.Background())
		require.NoError(t, err)
		return out.String()
	}

	assert.Equal(t, run(), run())
}

func TestComposeOrderIndependentOfCompletion(t *testing.T) {
	names := []string{"nano", "micro", "stm32", "esp8266", "esp32", "teensy32"}
	sources := make(map[string]string)
	var ps []platform.Platform
	for i, n := range names {
		sources[n+".txt"] = fmt.Sprintf("%d", len(names)-i)
		ps = append(ps, platform.Platform{Name: n, Source: n + ".txt"})
	}

	// Earlier platforms take longer, so they finish last.
	slow := formatter.Func(func(_ context.Context, raw []byte) (string, error) {
		var n int
		_, _ = fmt.Sscanf(string(raw), "%d", &n)
		time.Sleep(time.Duration(n) * 5 * time.Millisecond)
		return "table " + string(raw), nil
	})

	tables, err := report.NewComposer(memLoader(sources), slow).Compose(context.Background(), platform.MustList(ps...))
	require.NoError(t, err)

	assert.Equal(t, names, tables.Slots())
	for i, b := range tables.Bindings() {
		assert.Equal(t, names[i], b.Platform)
		assert.Equal(t, fmt.Sprintf("table %d", len(names)-i), b.Text)
	}
}

func TestComposeSequential(t *testing.T) {
	var active, peak atomic.Int32
	f := formatter.Func(func(_ context.Context, raw []byte) (string, error) {
		n := active.Add(1)
		if n > peak.Load() {
			peak.Store(n)
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return string(raw), nil
	})

	l := platform.MustList(
		platform.Platform{Name: "a", Source: "a"},
		platform.Platform{Name: "b", Source: "b"},
		platform.Platform{Name: "c", Source: "c"},
	)
	tables, err := report.NewComposer(memLoader(map[string]string{"a": "1", "b": "2", "c": "3"}), f,
		report.WithParallelism(1)).Compose(context.Background(), l)
	require.NoError(t, err)

	assert.Equal(t, 3, tables.Len())
	assert.Equal(t, int32(1), peak.Load())
}

func TestComposeUsesSlotNames(t *testing.T) {
	l := platform.MustList(platform.Platform{Name: "nano", Source: "nano.txt", Slot: "nano_results"})

	tables, err := report.NewComposer(memLoader(map[string]string{"nano.txt": "X=1"}), bracket).
		Compose(context.Background(), l)
	require.NoError(t, err)

	text, ok := tables.Lookup("nano_results")
	require.True(t, ok)
	assert.Equal(t, "[X=1]", text)

	_, ok = tables.Lookup("nano")
	assert.False(t, ok)
}

func TestComposeTrimTrailingNewline(t *testing.T) {
	l := platform.MustList(platform.Platform{Name: "nano", Source: "nano.txt"})
	f := formatter.Func(func(_ context.Context, raw []byte) (string, error) {
		return "| a |\n| b |\n\n", nil
	})

	tables, err := report.NewComposer(memLoader(map[string]string{"nano.txt": "x"}), f,
		report.WithTrimTrailingNewline(true)).Compose(context.Background(), l)
	require.NoError(t, err)

	text, _ := tables.Lookup("nano")
	assert.Equal(t, "| a |\n| b |", text)
}

func TestPipelineMissingSource(t *testing.T) {
	dir, l, tmpl := scenario(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "esp32.txt")))

	var formatted atomic.Int32
	f := formatter.Func(func(ctx context.Context, raw []byte) (string, error) {
		formatted.Add(1)
		return bracket(ctx, raw)
	})

	var out bytes.Buffer
	p := &report.Pipeline{
		Platforms: l,
		Template:  tmpl,
		Composer:  report.NewComposer(loader.NewFileLoader(dir), f, report.WithParallelism(1)),
		Emitter:   emit.NewWriter(&out, "buffer"),
	}

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrMissingSource))
	assert.Empty(t, out.String())
}

func TestPipelineFormatterFailure(t *testing.T) {
	dir, l, tmpl := scenario(t)

	f := formatter.Func(func(ctx context.Context, raw []byte) (string, error) {
		if strings.Contains(string(raw), "0.3") {
			return "", &formatter.ExitError{Command: "generate_table.awk", Code: 1, Stderr: "syntax error"}
		}
		return bracket(ctx, raw)
	})

	var out bytes.Buffer
	p := &report.Pipeline{
		Platforms: l,
		Template:  tmpl,
		Composer:  report.NewComposer(loader.NewFileLoader(dir), f),
		Emitter:   emit.NewWriter(&out, "buffer"),
	}

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrFormatter))
	assert.Contains(t, err.Error(), `platform "esp32"`)

	var exitErr *formatter.ExitError
	assert.True(t, stderrors.As(err, &exitErr))
	assert.Empty(t, out.String())
}

func TestComposeEmptyFormatterOutput(t *testing.T) {
	for _, output := range []string{"", "  \n\t\n"} {
		f := formatter.Func(func(_ context.Context, _ []byte) (string, error) {
			return output, nil
		})
		l := platform.MustList(platform.Platform{Name: "nano", Source: "nano.txt"})

		_, err := report.NewComposer(memLoader(map[string]string{"nano.txt": "x"}), f).Compose(context.Background(), l)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrFormatter))
		assert.ErrorIs(t, err, formatter.ErrEmptyOutput)
	}
}

func TestPipelineSlotMismatch(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"platform without slot", "Nano: {nano}"},
		{"slot without platform", "Nano: {nano}\nESP32: {esp32}\nTeensy: {teensy32}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, l, _ := scenario(t)

			var formatted atomic.Int32
			f := formatter.Func(func(ctx context.Context, raw []byte) (string, error) {
				formatted.Add(1)
				return bracket(ctx, raw)
			})

			var out bytes.Buffer
			p := &report.Pipeline{
				Platforms: l,
				Template:  document.MustParse("t", tt.tmpl),
				Composer:  report.NewComposer(loader.NewFileLoader(dir), f),
				Emitter:   emit.NewWriter(&out, "buffer"),
			}

			_, err := p.Run(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrSlotMismatch))
			assert.Empty(t, out.String())
			assert.Zero(t, formatted.Load(), "formatters must not run when slots disagree")
		})
	}
}

func TestPipelineEmitFailure(t *testing.T) {
	dir, l, tmpl := scenario(t)
	target := filepath.Join(dir, "missing-dir", "README.md")

	p := &report.Pipeline{
		Platforms: l,
		Template:  tmpl,
		Composer:  report.NewComposer(loader.NewFileLoader(dir), bracket),
		Emitter:   emit.NewFile(target),
	}

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrEmit))
	assert.NoFileExists(t, target)
}

func TestComposeRunTimeout(t *testing.T) {
	hang := formatter.Func(func(ctx context.Context, _ []byte) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	l := platform.MustList(platform.Platform{Name: "nano", Source: "nano.txt"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := report.NewComposer(memLoader(map[string]string{"nano.txt": "x"}), hang).Compose(ctx, l)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPipelineWithShellFormatter(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("skipping: sh not available: %v", err)
	}
	dir, l, tmpl := scenario(t)

	f := formatter.NewShellCommand(`printf '[%s]' "$(cat)"`)
	var out bytes.Buffer
	p := &report.Pipeline{
		Platforms: l,
		Template:  tmpl,
		Composer:  report.NewComposer(loader.NewFileLoader(dir), f),
		Emitter:   emit.NewWriter(&out, "buffer"),
	}

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nano: [X=5.2]\nESP32: [X=0.3]", out.String())
}

func TestComposeRecordsMetrics(t *testing.T) {
	dir, l, _ := scenario(t)
	m := observability.NewMetrics()

	_, err := report.NewComposer(loader.NewFileLoader(dir), bracket, report.WithMetrics(m)).
		Compose(context.Background(), l)
	require.NoError(t, err)

	for _, stage := range []string{observability.StageLoad, observability.StageFormat} {
		s, ok := m.Stage(stage)
		require.True(t, ok, stage)
		assert.Equal(t, 2, s.Count)
		assert.Zero(t, s.Failures)
	}
}
