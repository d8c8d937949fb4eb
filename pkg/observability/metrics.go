// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Pipeline stages recorded by Metrics.
const (
	StageLoad   = "load"
	StageFormat = "format"
)

// StageStats aggregates one stage across platforms.
type StageStats struct {
	Count    int
	Failures int
	Total    time.Duration
	Max      time.Duration
	Slowest  string
}

// Metrics collects per-stage durations for a single run.
// It is safe for concurrent use.
type Metrics struct {
	mu     sync.Mutex
	stages map[string]*StageStats
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{stages: make(map[string]*StageStats)}
}

// RecordStage records one platform's pass through stage.
func (m *Metrics) RecordStage(stage, platform string, d time.Duration, success bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stages[stage]
	if !ok {
		s = &StageStats{}
		m.stages[stage] = s
	}
	s.Count++
	if !success {
		s.Failures++
	}
	s.Total += d
	if d >= s.Max {
		s.Max = d
		s.Slowest = platform
	}
}

// Stage returns a copy of the stats for stage.
func (m *Metrics) Stage(stage string) (StageStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stages[stage]
	if !ok {
		return StageStats{}, false
	}
	return *s, true
}

// LogValue renders the collected stats as a slog group, one entry per
// stage in name order.
func (m *Metrics) LogValue() slog.Value {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.stages))
	for name := range m.stages {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		s := m.stages[name]
		attrs = append(attrs, slog.Group(name,
			"count", s.Count,
			"failures", s.Failures,
			"total", s.Total,
			"max", s.Max,
			"slowest", s.Slowest,
		))
	}
	return slog.GroupValue(attrs...)
}
