// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", FormatJSON, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "platform", "nano")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "nano", rec["platform"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "", &buf)
	require.NoError(t, err)

	logger.Debug("loaded", "bytes", 12)
	assert.Contains(t, buf.String(), "msg=loaded bytes=12")

	_, err = NewLogger("info", "xml", &buf)
	assert.Error(t, err)
}

func TestMetricsRecordStage(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i, name := range []string{"nano", "micro", "esp32"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			m.RecordStage(StageFormat, name, time.Duration(i+1)*time.Millisecond, name != "micro")
		}(i, name)
	}
	wg.Wait()

	s, ok := m.Stage(StageFormat)
	require.True(t, ok)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Failures)
	assert.Equal(t, 6*time.Millisecond, s.Total)
	assert.Equal(t, "esp32", s.Slowest)

	_, ok = m.Stage(StageLoad)
	assert.False(t, ok)
}

func TestMetricsLogValue(t *testing.T) {
	m := NewMetrics()
	m.RecordStage(StageLoad, "nano", time.Millisecond, true)

	var buf bytes.Buffer
	logger, err := NewLogger("info", FormatText, &buf)
	require.NoError(t, err)
	logger.Info("done", "stages", m)

	assert.Contains(t, buf.String(), "stages.load.count=1")
	assert.Contains(t, buf.String(), "stages.load.slowest=nano")
}

func TestNilMetricsIgnoresRecords(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.RecordStage(StageLoad, "nano", time.Second, true) })
}
